package adapters

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/fortify/backend/internal/application/adapter"
)

// codeSpace is the number of possible 6-digit codes (000000-999999).
var codeSpace = big.NewInt(1000000)

// codeGenerator implements adapter.CodeGenerator using crypto/rand.
type codeGenerator struct{}

// NewCodeGenerator creates a new verification code generator.
func NewCodeGenerator() adapter.CodeGenerator {
	return &codeGenerator{}
}

// Generate returns a uniform 6-digit code, zero-padded.
func (g *codeGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
