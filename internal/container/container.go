// Package container implements the sealed on-disk format of the vault.
//
// A container is a single binary artifact holding everything needed to
// unlock the store with nothing but the master password:
//
//	[version:1][time:4][memory_kib:4][parallelism:1][salt:16][nonce:12][ciphertext||tag]
//
// Integers are big-endian. The whole file is rewritten on every save; it
// is never patched in place.
package container

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/dmitrijs2005/passmgr/internal/common"
	"github.com/dmitrijs2005/passmgr/internal/kdf"
)

// Version is the current container format version.
const Version = 1

const (
	headerSize = 1 + 4 + 4 + 1 + kdf.SaltSize + chacha20poly1305.NonceSize
	// minSize is the smallest structurally valid container: a full header
	// plus the AEAD tag of an empty plaintext.
	minSize = headerSize + chacha20poly1305.Overhead
)

// Header carries the plaintext portion of a container: format version,
// KDF cost factors, salt and the nonce of the current ciphertext.
type Header struct {
	Version byte
	Params  kdf.Params
	Salt    []byte
	Nonce   []byte
}

// Encode serializes a header and ciphertext into container bytes.
func Encode(h Header, ciphertext []byte) []byte {
	out := make([]byte, 0, headerSize+len(ciphertext))
	out = append(out, h.Version)
	out = binary.BigEndian.AppendUint32(out, h.Params.Time)
	out = binary.BigEndian.AppendUint32(out, h.Params.MemoryKiB)
	out = append(out, h.Params.Parallelism)
	out = append(out, h.Salt...)
	out = append(out, h.Nonce...)
	out = append(out, ciphertext...)
	return out
}

// Decode parses container bytes into a header and the ciphertext.
// Anything structurally wrong (short data, unknown version, nonsensical
// KDF parameters) yields ErrMalformedContainer. Decode never touches the
// ciphertext itself, so a wrong password cannot surface here.
func Decode(raw []byte) (Header, []byte, error) {
	if len(raw) < minSize {
		return Header{}, nil, fmt.Errorf("%w: %d bytes is too short", common.ErrMalformedContainer, len(raw))
	}
	if raw[0] != Version {
		return Header{}, nil, fmt.Errorf("%w: unknown version %d", common.ErrMalformedContainer, raw[0])
	}

	h := Header{Version: raw[0]}
	h.Params.Time = binary.BigEndian.Uint32(raw[1:5])
	h.Params.MemoryKiB = binary.BigEndian.Uint32(raw[5:9])
	h.Params.Parallelism = raw[9]
	if err := h.Params.Validate(); err != nil {
		return Header{}, nil, fmt.Errorf("%w: kdf parameters: %v", common.ErrMalformedContainer, err)
	}

	off := 10
	h.Salt = append([]byte(nil), raw[off:off+kdf.SaltSize]...)
	off += kdf.SaltSize
	h.Nonce = append([]byte(nil), raw[off:off+chacha20poly1305.NonceSize]...)
	off += chacha20poly1305.NonceSize

	return h, append([]byte(nil), raw[off:]...), nil
}

// Seal encrypts and authenticates plaintext with ChaCha20-Poly1305 under
// key, generating a fresh random nonce. The nonce must accompany the
// ciphertext into the container header; it is never reused for a key.
func Seal(plaintext, key []byte) (nonce, ciphertext []byte, err error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, nil, fmt.Errorf("create aead: %w", err)
	}

	nonce = make([]byte, chacha20poly1305.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("generate nonce: %w", err)
	}

	return nonce, aead.Seal(nil, nonce, plaintext, nil), nil
}

// Open verifies and decrypts a sealed payload. Every tag mismatch — wrong
// key, flipped bit, truncated ciphertext — collapses into the single
// opaque ErrAuthenticationFailed so the caller cannot learn why.
func Open(nonce, ciphertext, key []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("create aead: %w", err)
	}
	if len(nonce) != chacha20poly1305.NonceSize {
		return nil, common.ErrAuthenticationFailed
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, common.ErrAuthenticationFailed
	}
	return plaintext, nil
}

// Load reads the container file at path. A missing or zero-length file is
// reported as ErrNoStore, which callers treat as "fresh vault", not as a
// failure.
func Load(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, common.ErrNoStore
	}
	if err != nil {
		return nil, fmt.Errorf("read container: %w", err)
	}
	if len(raw) == 0 {
		return nil, common.ErrNoStore
	}
	return raw, nil
}

// NewSalt returns kdf.SaltSize random bytes. The salt is generated once
// when a container is first created and kept for its whole lifetime.
func NewSalt() ([]byte, error) {
	salt := make([]byte, kdf.SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}
