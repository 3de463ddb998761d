// Package valueobject contains immutable domain values and pure domain logic.
package valueobject

import "unicode"

// MaxStrengthScore is the score of a password satisfying every criterion.
const MaxStrengthScore = 100

// strengthStep is the score contribution of each satisfied criterion.
const strengthStep = 25

// StrengthScore rates a password from 0 to 100. Each independent criterion
// adds 25: length of at least 8, an uppercase letter, a digit, and a
// non-alphanumeric character. Order-irrelevant, deterministic, no I/O.
func StrengthScore(password string) int {
	if password == "" {
		return 0
	}

	score := 0
	if len(password) >= 8 {
		score += strengthStep
	}

	var hasUpper, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			hasSpecial = true
		}
	}

	if hasUpper {
		score += strengthStep
	}
	if hasDigit {
		score += strengthStep
	}
	if hasSpecial {
		score += strengthStep
	}

	return score
}
