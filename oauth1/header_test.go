package oauth1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHeader(t *testing.T) {
	p := &Params{}
	p.Set(ParamConsumerKey, "key with space")
	p.Set(ParamNonce, "abc")
	p.Set(ParamSignature, "a+b/c=")

	assert.Equal(t,
		`OAuth oauth_consumer_key="key%20with%20space", oauth_nonce="abc", oauth_signature="a%2Bb%2Fc%3D"`,
		renderHeader(p))
}

func TestParseHeader(t *testing.T) {
	t.Run("round trips rendered header", func(t *testing.T) {
		p := &Params{}
		p.Set(ParamConsumerKey, "ck!")
		p.Set(ParamNonce, "n")
		p.Set(ParamSignature, "s+/=")

		parsed, err := ParseHeader(renderHeader(p))
		require.NoError(t, err)

		assert.Equal(t, p.Keys(), parsed.Keys())

		v, _ := parsed.Get(ParamSignature)
		assert.Equal(t, "s+/=", v)
	})

	t.Run("realm is skipped", func(t *testing.T) {
		parsed, err := ParseHeader(`OAuth realm="Example", oauth_nonce="n"`)
		require.NoError(t, err)

		assert.Equal(t, []string{ParamNonce}, parsed.Keys())
	})

	t.Run("comma inside quoted realm", func(t *testing.T) {
		parsed, err := ParseHeader(`OAuth realm="a,b", oauth_nonce="n", oauth_timestamp="1"`)
		require.NoError(t, err)

		assert.Equal(t, []string{ParamNonce, ParamTimestamp}, parsed.Keys())
	})

	t.Run("comma inside quoted value", func(t *testing.T) {
		parsed, err := ParseHeader(`OAuth oauth_consumer_key="a,b", oauth_nonce="n"`)
		require.NoError(t, err)

		v, _ := parsed.Get(ParamConsumerKey)
		assert.Equal(t, "a,b", v)
	})

	t.Run("scheme is case-insensitive", func(t *testing.T) {
		_, err := ParseHeader(`oauth oauth_nonce="n"`)
		assert.NoError(t, err)
	})

	malformed := map[string]string{
		"bearer scheme":      `Bearer abc`,
		"no parameters":      `OAuth`,
		"unquoted value":     `OAuth oauth_nonce=n`,
		"missing equals":     `OAuth oauth_nonce`,
		"empty key":          `OAuth ="n"`,
		"bad escape":         `OAuth oauth_nonce="%zz"`,
		"duplicate key":      `OAuth oauth_nonce="a", oauth_nonce="b"`,
		"single quote char":  `OAuth oauth_nonce="`,
		"unterminated quote": `OAuth oauth_nonce="a, oauth_timestamp="1`,
	}

	for name, value := range malformed {
		t.Run(name, func(t *testing.T) {
			_, err := ParseHeader(value)
			assert.ErrorIs(t, err, ErrMalformedHeader)
		})
	}
}
