package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	seen := make(map[string]struct{}, 500)
	for i := 0; i < 500; i++ {
		tok, err := Generate(DefaultLength)
		require.NoError(t, err)
		assert.True(t, Valid(tok, DefaultLength), tok)
		seen[tok] = struct{}{}
	}
	assert.Len(t, seen, 500)
}

func TestGenerate_InvalidLength(t *testing.T) {
	_, err := Generate(0)
	assert.Error(t, err)
}

func TestValid(t *testing.T) {
	assert.False(t, Valid("abc", DefaultLength))
	assert.False(t, Valid("abc-def_ghij", DefaultLength))
	assert.True(t, Valid("abcDEF012345", DefaultLength))
}
