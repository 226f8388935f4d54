// Package validate holds the field checks shared by the form endpoints.
package validate

import (
	"errors"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const maxEmailLength = 254

// ErrInvalidEmail is returned for addresses that do not parse as a bare
// RFC 5322 address with a dotted domain.
var ErrInvalidEmail = errors.New("invalid email address")

// Email validates raw and returns the lower-cased bare address.
func Email(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > maxEmailLength {
		return "", ErrInvalidEmail
	}
	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Name != "" || addr.Address != raw {
		return "", ErrInvalidEmail
	}
	at := strings.LastIndexByte(addr.Address, '@')
	if at < 1 || !strings.Contains(addr.Address[at+1:], ".") {
		return "", ErrInvalidEmail
	}
	return strings.ToLower(addr.Address), nil
}

// Errors collects per-field messages
type Errors map[string]string

// Add records msg for field unless the field already has a message.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Required trims v and records an error when it is empty.
func (e Errors) Required(field, v, msg string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		e.Add(field, msg)
	}
	return v
}

// Length records an error when v has fewer than min or more than max runes.
// A max of 0 means unbounded.
func (e Errors) Length(field, v string, min, max int, msg string) {
	n := utf8.RuneCountInString(v)
	if n < min || (max > 0 && n > max) {
		e.Add(field, msg)
	}
}

// Empty reports whether no field failed
func (e Errors) Empty() bool {
	return len(e) == 0
}
