package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateSecret(t *testing.T) {
	secret, err := GenerateSecret(SecretSize256)
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(secret)
	require.NoError(t, err)
	require.Len(t, raw, SecretSize256)

	// Two secrets should never collide.
	other, err := GenerateSecret(SecretSize256)
	require.NoError(t, err)
	require.NotEqual(t, secret, other)
}

func TestGenerateSecret_InvalidSize(t *testing.T) {
	_, err := GenerateSecret(0)
	require.Error(t, err)

	_, err = GenerateSecret(-1)
	require.Error(t, err)
}

func TestMustGenerateSecret(t *testing.T) {
	require.NotPanics(t, func() {
		secret := MustGenerateSecret(SecretSize512)
		require.NotEmpty(t, secret)
	})
}
