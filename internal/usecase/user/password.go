package user

import (
	"crypto/sha256"
	"encoding/hex"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/appointmenttech-api/internal/httperr"
)

const minPasswordLength = 8

// ValidatePassword enforces the password policy: at least eight characters
// with a digit and an uppercase letter.
func ValidatePassword(p string) error {
	var digit, upper bool
	for _, r := range p {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsUpper(r):
			upper = true
		}
	}
	if len([]rune(p)) < minPasswordLength || !digit || !upper {
		return httperr.BusinessError{
			Code:    "weak_password",
			Message: "Password must be at least 8 characters and contain a digit and an uppercase letter.",
		}
	}
	return nil
}

func hashPassword(p string, cost int) (string, error) {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(p), cost)
	return string(b), err
}

func checkPassword(hash, p string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(p)) == nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
