package oauth1

import (
	"fmt"
	"strings"
)

// authorizationPrefix starts every header value; the trailing space is part
// of the syntax.
const authorizationPrefix = "OAuth "

// renderHeader formats params per RFC 5849 section 3.5.1 in insertion
// order: key="percent-encoded value" pairs joined with ", ".
func renderHeader(params *Params) string {
	var b strings.Builder

	b.WriteString(authorizationPrefix)

	i := 0
	for k, v := range params.All() {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(PercentEncode(v))
		b.WriteByte('"')
		i++
	}

	return b.String()
}

// ParseHeader parses an OAuth Authorization header value into its
// parameters, percent-decoded and in header order. The realm parameter is
// skipped.
func ParseHeader(value string) (*Params, error) {
	scheme, rest, ok := strings.Cut(strings.TrimSpace(value), " ")
	if !ok || !strings.EqualFold(scheme, "OAuth") {
		return nil, fmt.Errorf("%w: not an OAuth header", ErrMalformedHeader)
	}

	params := &Params{}

	for _, entry := range splitEntries(rest) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		key, quoted, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: invalid entry %q", ErrMalformedHeader, entry)
		}

		if len(quoted) < 2 || quoted[0] != '"' || quoted[len(quoted)-1] != '"' {
			return nil, fmt.Errorf("%w: value of %s not quoted", ErrMalformedHeader, key)
		}

		decoded, err := PercentDecode(quoted[1 : len(quoted)-1])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedHeader, key, err)
		}

		if key == "realm" {
			continue
		}

		if params.Has(key) {
			return nil, fmt.Errorf("%w: duplicate parameter %s", ErrMalformedHeader, key)
		}

		params.Set(key, decoded)
	}

	return params, nil
}

// splitEntries splits a parameter list on commas outside double quotes.
func splitEntries(s string) []string {
	var (
		entries []string
		quoted  bool
		start   int
	)

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			quoted = !quoted
		case ',':
			if !quoted {
				entries = append(entries, s[start:i])
				start = i + 1
			}
		}
	}

	return append(entries, s[start:])
}
