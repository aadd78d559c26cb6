// Package cryptox derives the login verifier sent to the server in place of
// the user's password.
package cryptox

import (
	"crypto/sha256"

	"golang.org/x/crypto/argon2"
)

// MasterKeySize is the length in bytes of the argon2id master key.
const MasterKeySize = 32

// DeriveMasterKey stretches the password with argon2id using the per-user salt.
func DeriveMasterKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, MasterKeySize)
}

// MakeVerifier returns the SHA-256 of the master key. The server stores and
// compares only this value.
func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}
