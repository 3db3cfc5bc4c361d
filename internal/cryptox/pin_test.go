package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPIN_Format(t *testing.T) {
	h := HashPIN("4821")

	parts := strings.Split(h, "$")
	require.Len(t, parts, 3)
	assert.Equal(t, "argon2id", parts[0])
	assert.NotContains(t, h, "4821")
	assert.False(t, IsLegacy(h))
}

func TestHashPIN_Salted(t *testing.T) {
	assert.NotEqual(t, HashPIN("1234"), HashPIN("1234"))
}

func TestVerifyPIN(t *testing.T) {
	h := HashPIN("4821")

	ok, err := VerifyPIN(h, "4821")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPIN(h, "1111")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPIN_Legacy(t *testing.T) {
	require.True(t, IsLegacy("4821"))

	ok, err := VerifyPIN("4821", "4821")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPIN("4821", "4822")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPIN_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		stored string
	}{
		{"empty", ""},
		{"missing parts", "argon2id$abc"},
		{"bad salt", "argon2id$!!!$AAAA"},
		{"short hash", "argon2id$AAAAAAAAAAAAAAAAAAAAAA$AAAA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyPIN(tt.stored, "1234")
			require.ErrorIs(t, err, ErrMalformedCredential)
		})
	}
}
