// Package validation contains input validation rules for user-supplied data.
package validation

import (
	"errors"
	"net/mail"
	"strings"
)

const (
	// MinPasswordLength is the minimum accepted password length.
	MinPasswordLength = 6
	// MaxFullNameLength bounds display names to keep them renderable.
	MaxFullNameLength = 100
	// MaxAboutLength bounds the free-text about section.
	MaxAboutLength = 500
)

// ValidateEmail checks that the address parses as a bare RFC 5322 address.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("Email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.New("Invalid email address")
	}
	return nil
}

// ValidatePassword checks minimum password strength.
func ValidatePassword(password string) error {
	if password == "" {
		return errors.New("Password is required")
	}
	if len(password) < MinPasswordLength {
		return errors.New("Password must be at least 6 characters")
	}
	return nil
}

// ValidateFullName checks that the display name is non-blank and bounded.
func ValidateFullName(fullName string) error {
	trimmed := strings.TrimSpace(fullName)
	if trimmed == "" {
		return errors.New("Full name is required")
	}
	if len(trimmed) > MaxFullNameLength {
		return errors.New("Full name too long (max 100 characters)")
	}
	return nil
}
