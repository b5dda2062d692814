// Package cryptox derives and checks password verifiers with argon2id.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"

	"github.com/TusharG27x/codebuddy/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	SaltSize = 16
	KeySize  = 32
)

// DeriveKey stretches password with salt using argon2id.
func DeriveKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, KeySize)
}

// MakeVerifier is the value stored instead of the derived key.
func MakeVerifier(key []byte) []byte {
	hash := sha256.Sum256(key)
	return hash[:]
}

// HashPassword returns a fresh salt and the verifier for password.
func HashPassword(password []byte) (salt, verifier []byte) {
	salt = common.GenerateRandByteArray(SaltSize)
	key := DeriveKey(password, salt)
	defer common.WipeByteArray(key)
	return salt, MakeVerifier(key)
}

// VerifyPassword reports whether password matches the stored salt and
// verifier. The comparison is constant time.
func VerifyPassword(password, salt, verifier []byte) bool {
	key := DeriveKey(password, salt)
	defer common.WipeByteArray(key)
	return subtle.ConstantTimeCompare(MakeVerifier(key), verifier) == 1
}
