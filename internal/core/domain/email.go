package domain

import (
	"net/mail"
	"strings"
)

// Email is a validated, normalized email address. The zero value is not a
// valid Email; use ParseEmail.
type Email struct {
	value string
}

// ParseEmail validates raw as a bare addr-spec (no display name) with a
// dot-separated domain and returns the lower-cased address. It never panics;
// every input yields either a valid Email or ErrInvalidEmail.
func ParseEmail(raw string) (Email, error) {
	if strings.ContainsAny(raw, " \t\r\n") {
		return Email{}, ErrInvalidEmail
	}

	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw {
		return Email{}, ErrInvalidEmail
	}

	at := strings.LastIndex(raw, "@")
	domain := raw[at+1:]
	if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
		return Email{}, ErrInvalidEmail
	}

	return Email{value: strings.ToLower(raw)}, nil
}

func (e Email) String() string {
	return e.value
}

// IsZero reports whether e was not produced by ParseEmail.
func (e Email) IsZero() bool {
	return e.value == ""
}

func (e Email) MarshalText() ([]byte, error) {
	return []byte(e.value), nil
}

func (e *Email) UnmarshalText(text []byte) error {
	parsed, err := ParseEmail(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

