// Package cryptox derives and checks the credential that guards a session.
package cryptox

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/dmitrijs2005/antara/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	scheme  = "argon2id"
	saltLen = 16
	keyLen  = 32
)

// ErrMalformedCredential is returned when a stored credential is neither a
// hashed value nor a legacy plaintext PIN.
var ErrMalformedCredential = errors.New("malformed credential")

func deriveKey(pin, salt []byte) []byte {
	return argon2.IDKey(pin, salt, 1, 64*1024, 4, keyLen)
}

// HashPIN returns an encoded credential of the form
// argon2id$<salt>$<hash> with base64 (raw std) parts.
func HashPIN(pin string) string {
	salt := common.GenerateRandByteArray(saltLen)
	key := deriveKey([]byte(pin), salt)
	defer common.WipeByteArray(key)

	enc := base64.RawStdEncoding
	return scheme + "$" + enc.EncodeToString(salt) + "$" + enc.EncodeToString(key)
}

// IsLegacy reports whether the stored credential is a plaintext PIN.
func IsLegacy(stored string) bool {
	return !strings.HasPrefix(stored, scheme+"$")
}

// VerifyPIN checks pin against the stored credential. Legacy plaintext
// credentials are compared directly.
func VerifyPIN(stored, pin string) (bool, error) {
	if IsLegacy(stored) {
		if stored == "" {
			return false, ErrMalformedCredential
		}
		return subtle.ConstantTimeCompare([]byte(stored), []byte(pin)) == 1, nil
	}

	parts := strings.Split(stored, "$")
	if len(parts) != 3 {
		return false, ErrMalformedCredential
	}

	enc := base64.RawStdEncoding
	salt, err := enc.DecodeString(parts[1])
	if err != nil || len(salt) == 0 {
		return false, ErrMalformedCredential
	}
	want, err := enc.DecodeString(parts[2])
	if err != nil || len(want) != keyLen {
		return false, ErrMalformedCredential
	}

	got := deriveKey([]byte(pin), salt)
	defer common.WipeByteArray(got)

	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
