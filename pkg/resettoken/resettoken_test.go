package resettoken_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ecommerce-api/pkg/resettoken"
)

func TestGenerate(t *testing.T) {
	raw, hashed, exp, err := resettoken.Generate(15 * time.Minute)
	require.NoError(t, err)

	assert.Len(t, raw, 40, "20 bytes en hex")
	assert.Len(t, hashed, 64, "sha256 en hex")
	assert.NotEqual(t, raw, hashed)
	assert.Equal(t, hashed, resettoken.Hash(raw))
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), exp, 5*time.Second)
}

func TestGenerate_TokensUnicos(t *testing.T) {
	a, _, _, err := resettoken.Generate(time.Hour)
	require.NoError(t, err)
	b, _, _, err := resettoken.Generate(time.Hour)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHash_VectorConocido(t *testing.T) {
	assert.Equal(t,
		"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		resettoken.Hash("hello"))
}
