package adapter

// CodeGenerator produces verification codes. Codes are exactly six ASCII
// digits, uniform over 000000-999999, represented with leading zeros.
type CodeGenerator interface {
	Generate() (string, error)
}
