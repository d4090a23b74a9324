package entity

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidationError lists the offending fields of a rejected input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range []string{"name", "email", "password", "address"} {
		if msg, ok := e.Fields[f]; ok {
			parts = append(parts, f+" "+msg)
		}
	}
	return "invalid user: " + strings.Join(parts, "; ")
}

// ValidateNewUser checks registration input before a User is constructed.
// It returns nil or a *ValidationError.
func ValidateNewUser(name, email, password string) error {
	fields := map[string]string{}
	if strings.TrimSpace(name) == "" {
		fields["name"] = "is required"
	}
	if msg := checkEmail(email); msg != "" {
		fields["email"] = msg
	}
	if msg := CheckPassword(password); msg != "" {
		fields["password"] = msg
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func checkEmail(email string) string {
	email = NormalizeEmail(email)
	if email == "" {
		return "is required"
	}
	if err := validate.Var(email, "email"); err != nil {
		return "must be a valid email"
	}
	return ""
}

// MaxPasswordBytes is the longest input bcrypt will hash.
const MaxPasswordBytes = 72

// CheckPassword returns a message when plain lacks a letter or a digit or is
// longer than MaxPasswordBytes, "" otherwise.
func CheckPassword(plain string) string {
	if len(plain) > MaxPasswordBytes {
		return fmt.Sprintf("must be at most %d bytes long", MaxPasswordBytes)
	}
	plain = strings.TrimSpace(plain)
	if plain == "" {
		return "is required"
	}
	var letter, digit bool
	for _, r := range plain {
		switch {
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letter = true
		}
	}
	if !letter || !digit {
		return "must contain at least one letter and one number"
	}
	return ""
}
