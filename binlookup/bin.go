package binlookup

import (
	"fmt"
	"strings"
)

const (
	minBINLength = 6
	maxBINLength = 8
)

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}

	return true
}

// IsValidBIN reports whether s holds 6 to 8 digits once separators are removed.
func IsValidBIN(s string) bool {
	n := len(digitsOnly(s))
	return n >= minBINLength && n <= maxBINLength
}

// CleanBIN strips non-digits and truncates to 8 digits. Inputs with fewer
// than 6 digits are returned stripped but otherwise untouched.
func CleanBIN(s string) string {
	d := digitsOnly(s)
	if len(d) > maxBINLength {
		return d[:maxBINLength]
	}

	return d
}

// ValidateBIN returns ErrInvalidBIN unless bin is 6 to 8 digits and nothing else.
func ValidateBIN(bin string) error {
	if !isDigits(bin) {
		return fmt.Errorf("%w: %q is not numeric", ErrInvalidBIN, bin)
	}

	if len(bin) < minBINLength || len(bin) > maxBINLength {
		return fmt.Errorf("%w: got %d digits", ErrInvalidBIN, len(bin))
	}

	return nil
}

// FormatCardNumber renders the digits of s in groups of four.
func FormatCardNumber(s string) string {
	d := digitsOnly(s)

	var b strings.Builder
	for i := 0; i < len(d); i += 4 {
		if i > 0 {
			b.WriteByte(' ')
		}

		b.WriteString(d[i:min(i+4, len(d))])
	}

	return b.String()
}

// MaskCardNumber keeps the BIN and the last four digits of a card number and
// masks the rest. Numbers too short to mask are returned as digits only.
func MaskCardNumber(s string) string {
	d := digitsOnly(s)
	if len(d) <= minBINLength+4 {
		return d
	}

	return d[:minBINLength] + strings.Repeat("*", len(d)-minBINLength-4) + d[len(d)-4:]
}
