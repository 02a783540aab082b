package auth

import (
	"fmt"
	"strings"

	"feriwala/model"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLen = 8
	// bcrypt rejects longer input.
	maxPasswordBytes = 72
	specialChars     = `!@#$%^&*(),.?":{}|<>`
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidatePassword enforces 8 characters to 72 bytes with an ASCII upper and
// lower case letter, an ASCII digit and one of !@#$%^&*(),.?":{}|<>.
func ValidatePassword(pw string) error {
	if len([]rune(pw)) < minPasswordLen {
		return model.NewValidationError(model.MsgPasswordTooShort, "password")
	}
	if len(pw) > maxPasswordBytes {
		return model.NewValidationError(model.MsgPasswordTooLong, "password")
	}
	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(specialChars, r):
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		return model.NewValidationError(model.MsgPasswordTooWeak, "password")
	}
	return nil
}

// NormalizeEmail trims and lowercases an address and checks it against the validator email rule.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if err := validate.Var(email, "required,email"); err != nil {
		return "", model.NewValidationError(model.MsgInvalidEmail, "email")
	}
	return email, nil
}

func HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
