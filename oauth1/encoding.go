package oauth1

import (
	"net/url"
	"strings"
)

const upperHex = "0123456789ABCDEF"

// PercentEncode escapes s per RFC 3986 section 2.1 as required by RFC 5849
// section 3.6. Unreserved characters (ALPHA, DIGIT, "-", ".", "_", "~") are
// kept; every other byte of the UTF-8 encoding becomes %XX with uppercase
// hex digits. Space is encoded as %20, never "+".
func PercentEncode(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if shouldEscape(s[i]) {
			n++
		}
	}

	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)

	for i := 0; i < len(s); i++ {
		c := s[i]
		if !shouldEscape(c) {
			b.WriteByte(c)
			continue
		}

		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0f])
	}

	return b.String()
}

// PercentDecode reverses PercentEncode. A "+" is kept literally.
func PercentDecode(s string) (string, error) {
	return url.PathUnescape(s)
}

// shouldEscape reports whether c is outside the RFC 3986 unreserved set.
func shouldEscape(c byte) bool {
	if 'A' <= c && c <= 'Z' || 'a' <= c && c <= 'z' || '0' <= c && c <= '9' {
		return false
	}

	switch c {
	case '-', '.', '_', '~':
		return false
	}

	return true
}
