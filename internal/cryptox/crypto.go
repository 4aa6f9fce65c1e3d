// Package cryptox holds the password hashing and fingerprinting primitives.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"

	"github.com/dmitrijs2005/scholarmatch/internal/common"
	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of the random salt generated per password.
const SaltSize = 16

// DeriveKey stretches password with argon2id. The parameters are fixed; a
// change invalidates every stored hash.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
}

// HashPassword generates a fresh salt and returns it with the derived hash.
func HashPassword(password []byte) (hash, salt []byte) {
	salt = common.GenerateRandByteArray(SaltSize)
	return DeriveKey(password, salt), salt
}

// VerifyPassword reports whether password derives to hash under salt.
// The comparison runs in constant time.
func VerifyPassword(password, salt, hash []byte) bool {
	if len(salt) == 0 || len(hash) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(DeriveKey(password, salt), hash) == 1
}

// Fingerprint returns the hex SHA-256 of v's JSON encoding. Two values with
// the same encoding share a fingerprint.
func Fingerprint(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
