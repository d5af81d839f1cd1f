// Package kdf derives the vault master key from a password with Argon2id.
package kdf

import (
	"errors"

	"golang.org/x/crypto/argon2"
)

// SaltSize is the enforced salt length in bytes.
const SaltSize = 16

// KeySize is the derived key length; ChaCha20-Poly1305 needs 32 bytes.
const KeySize = 32

// Params captures the tunable Argon2id cost factors. They are persisted in
// the container header so every unlock reproduces the identical key.
type Params struct {
	Time        uint32
	MemoryKiB   uint32
	Parallelism uint8
}

// DefaultParams returns the cost factors used for newly created containers.
func DefaultParams() Params {
	return Params{Time: 1, MemoryKiB: 64 * 1024, Parallelism: 4}
}

// Validate rejects cost factors that argon2 would panic on or that make
// derivation trivially cheap.
func (p Params) Validate() error {
	if p.Time == 0 {
		return errors.New("time cost must be positive")
	}
	if p.MemoryKiB < 8*uint32(p.Parallelism) {
		return errors.New("memory cost too small")
	}
	if p.Parallelism == 0 {
		return errors.New("parallelism must be positive")
	}
	return nil
}

// Derive computes a KeySize-byte key from password and salt. It is
// deterministic for fixed inputs and structurally infallible: whether the
// password was the right one is only learned later, when the AEAD tag is
// verified.
func Derive(password, salt []byte, p Params) []byte {
	return argon2.IDKey(password, salt, p.Time, p.MemoryKiB, p.Parallelism, KeySize)
}
