package services

import (
	"errors"
	"net/mail"
	"strings"
)

const minPasswordLength = 8

var (
	ErrAuthCredentialsInvalid = errors.New("auth credentials invalid")
	ErrAuthPasswordTooShort   = errors.New("auth password too short")
)

func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}

func NormalizeCredentialsInput(emailRaw string, passwordRaw string) (string, string, error) {
	email := NormalizeAuthEmail(emailRaw)
	password := strings.TrimSpace(passwordRaw)
	if email == "" || password == "" {
		return "", "", ErrAuthCredentialsInvalid
	}
	return email, password, nil
}

func ValidateRegistrationPassword(password string) error {
	if len(password) < minPasswordLength {
		return ErrAuthPasswordTooShort
	}
	return nil
}
