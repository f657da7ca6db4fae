// Package password mirrors the server's password policy so registration
// can fail fast with the same message the server would return. The server
// stays authoritative; this is a pre-check only.
package password

import (
	"errors"
	"strings"
	"unicode"
)

const minLength = 12

const specialCharacters = "!@#$%^&*()_+-=[]{}|;:'\",.<>/?"

var weakPatterns = []string{
	"password",
	"123456",
	"123456789",
	"qwerty",
	"letmein",
	"welcome",
	"admin",
}

var (
	ErrRequired    = errors.New("Password is required.")
	ErrWhitespace  = errors.New("Password cannot start or end with whitespace.")
	ErrTooShort    = errors.New("Password must be at least 12 characters long.")
	ErrCommon      = errors.New("Choose a password that is harder to guess.")
	ErrNoUppercase = errors.New("Password must include at least one uppercase letter.")
	ErrNoLowercase = errors.New("Password must include at least one lowercase letter.")
	ErrNoDigit     = errors.New("Password must include at least one number.")
	ErrNoSpecial   = errors.New("Password must include at least one special character.")
	ErrGuessable   = errors.New("Password is too easy to guess.")
)

// Validate checks the password against the policy, returning nil when it
// passes and the first violated rule otherwise.
func Validate(pw string) error {
	if pw == "" {
		return ErrRequired
	}
	if pw != strings.TrimSpace(pw) {
		return ErrWhitespace
	}
	if len(pw) < minLength {
		return ErrTooShort
	}

	lowered := strings.ToLower(pw)
	for _, pattern := range weakPatterns {
		if lowered == pattern {
			return ErrCommon
		}
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
		if strings.ContainsRune(specialCharacters, r) {
			hasSpecial = true
		}
	}

	if !hasUpper {
		return ErrNoUppercase
	}
	if !hasLower {
		return ErrNoLowercase
	}
	if !hasDigit {
		return ErrNoDigit
	}
	if !hasSpecial {
		return ErrNoSpecial
	}

	for _, pattern := range weakPatterns {
		if strings.Contains(lowered, pattern) {
			return ErrGuessable
		}
	}

	return nil
}
