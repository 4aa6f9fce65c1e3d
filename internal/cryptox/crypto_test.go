package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(password, salt)
	key2 := DeriveKey(password, salt)

	assert.True(t, bytes.Equal(key1, key2))
	assert.Len(t, key1, 32)
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	password := []byte("secret-password")

	key1 := DeriveKey(password, []byte("salt-1"))
	key2 := DeriveKey(password, []byte("salt-2"))

	assert.False(t, bytes.Equal(key1, key2))
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, salt := HashPassword([]byte("hunter2"))
	require.Len(t, salt, SaltSize)

	assert.True(t, VerifyPassword([]byte("hunter2"), salt, hash))
	assert.False(t, VerifyPassword([]byte("hunter3"), salt, hash))
}

func TestHashPassword_FreshSaltEachTime(t *testing.T) {
	h1, s1 := HashPassword([]byte("same"))
	h2, s2 := HashPassword([]byte("same"))

	assert.NotEqual(t, s1, s2)
	assert.NotEqual(t, h1, h2)
}

func TestVerifyPassword_EmptyStoredValues(t *testing.T) {
	assert.False(t, VerifyPassword([]byte("x"), nil, []byte{1}))
	assert.False(t, VerifyPassword([]byte("x"), []byte{1}, nil))
}

func TestFingerprint(t *testing.T) {
	type profile struct {
		Country string `json:"country"`
		Age     int    `json:"age"`
	}

	a, err := Fingerprint(profile{Country: "India", Age: 20})
	require.NoError(t, err)
	b, err := Fingerprint(profile{Country: "India", Age: 20})
	require.NoError(t, err)
	c, err := Fingerprint(profile{Country: "India", Age: 21})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)

	_, err = Fingerprint(func() {})
	assert.Error(t, err)
}
