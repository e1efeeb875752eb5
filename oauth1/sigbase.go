package oauth1

import (
	"cmp"
	"net/url"
	"slices"
	"strings"
)

type encodedPair struct {
	key   string
	value string
}

// BaseString constructs the signature base string per RFC 5849 section
// 3.4.1: the uppercased method, the percent-encoded base URL and the
// percent-encoded normalized parameter string, joined with "&".
//
// baseURL must not carry a query string; query parameters belong in params.
// The result depends only on the set of parameters, never on their order.
func BaseString(method, baseURL string, params *Params) string {
	var b strings.Builder

	b.WriteString(strings.ToUpper(method))
	b.WriteByte('&')
	b.WriteString(PercentEncode(baseURL))
	b.WriteByte('&')
	b.WriteString(PercentEncode(NormalizeParams(params)))

	return b.String()
}

// NormalizeParams produces the parameter string of RFC 5849 section
// 3.4.1.3.2. Keys and values are percent-encoded, pairs are sorted by
// encoded key and then encoded value, and joined as key=value with "&".
func NormalizeParams(params *Params) string {
	pairs := make([]encodedPair, 0, params.Len())
	for k, v := range params.All() {
		pairs = append(pairs, encodedPair{key: PercentEncode(k), value: PercentEncode(v)})
	}

	slices.SortFunc(pairs, func(a, b encodedPair) int {
		return cmp.Or(strings.Compare(a.key, b.key), strings.Compare(a.value, b.value))
	})

	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteByte('&')
		}

		b.WriteString(p.key)
		b.WriteByte('=')
		b.WriteString(p.value)
	}

	return b.String()
}

// BaseURL renders the base string URI of u: scheme, optional userinfo,
// host and escaped path. Query and fragment are dropped.
func BaseURL(u *url.URL) string {
	var b strings.Builder

	b.WriteString(u.Scheme)
	b.WriteString("://")

	if u.User != nil {
		b.WriteString(u.User.String())
		b.WriteByte('@')
	}

	b.WriteString(u.Host)
	b.WriteString(u.EscapedPath())

	return b.String()
}

// queryParams extracts the query parameters of u in sorted key order.
// Pairs are separated by "&" only, so ";" stays part of a value. Blank
// values and pairs without "=" are dropped and, for a repeated name, the
// last non-blank value wins. Escapes that do not decode are kept literally.
func queryParams(u *url.URL) *Params {
	values := make(map[string]string)

	for pair := range strings.SplitSeq(u.RawQuery, "&") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}

		value = queryUnescape(value)
		if value == "" {
			continue
		}

		values[queryUnescape(key)] = value
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	params := &Params{}
	for _, k := range keys {
		params.Set(k, values[k])
	}

	return params
}

// queryUnescape decodes a form-encoded query component. "+" becomes a
// space and a "%" not followed by two hex digits is copied as is.
func queryUnescape(s string) string {
	if !strings.ContainsAny(s, "%+") {
		return s
	}

	b := make([]byte, 0, len(s))

	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '+':
			b = append(b, ' ')
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b = append(b, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
		default:
			b = append(b, c)
		}
	}

	return string(b)
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case c >= 'a':
		return c - 'a' + 10
	case c >= 'A':
		return c - 'A' + 10
	default:
		return c - '0'
	}
}
