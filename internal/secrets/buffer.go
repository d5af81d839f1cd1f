// Package secrets provides scoped byte buffers for sensitive material.
//
// A Buffer owns its backing slice for the lifetime of one operation and
// zeroizes it on Wipe. The master password, the derived key and the
// decrypted store payload all travel through Buffers so that every exit
// path, including early failures, releases them wiped.
package secrets

import (
	"crypto/rand"
	"fmt"

	"github.com/awnumar/memguard"
)

// Buffer holds sensitive bytes and supports explicit zeroization.
// The zero value is an empty, already-wiped buffer.
type Buffer struct {
	data  []byte
	wiped bool
}

// New takes ownership of b. The caller must not use b afterwards.
func New(b []byte) *Buffer {
	return &Buffer{data: b}
}

// FromString copies s into a fresh buffer. The string itself cannot be
// wiped (Go strings are immutable); callers should avoid keeping secret
// strings alive longer than needed.
func FromString(s string) *Buffer {
	return &Buffer{data: []byte(s)}
}

// Random returns a buffer filled with n cryptographically random bytes.
func Random(n int) (*Buffer, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("generate random bytes: %w", err)
	}
	return &Buffer{data: b}, nil
}

// Bytes exposes the backing slice. The slice must not outlive the buffer
// and must never be copied beyond the immediate cryptographic call.
func (b *Buffer) Bytes() []byte {
	if b == nil || b.wiped {
		return nil
	}
	return b.data
}

// Len reports the current length, zero after Wipe.
func (b *Buffer) Len() int {
	if b == nil || b.wiped {
		return 0
	}
	return len(b.data)
}

// Wipe overwrites the backing memory and detaches it. Safe to call on a
// nil buffer and idempotent, so defer b.Wipe() works on every exit path.
func (b *Buffer) Wipe() {
	if b == nil || b.wiped {
		return
	}
	memguard.WipeBytes(b.data)
	b.data = nil
	b.wiped = true
}
