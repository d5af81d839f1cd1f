package container

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/passmgr/internal/common"
	"github.com/dmitrijs2005/passmgr/internal/kdf"
)

func testKey(tb testing.TB, seed string) []byte {
	tb.Helper()
	key := make([]byte, kdf.KeySize)
	copy(key, seed)
	return key
}

func TestSealOpen_RoundTrip(t *testing.T) {
	key := testKey(t, "key-one")
	plaintext := []byte(`{"github":"hunter2"}`)

	nonce, ciphertext, err := Seal(plaintext, key)
	require.NoError(t, err)
	require.Len(t, nonce, 12)

	got, err := Open(nonce, ciphertext, key)
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestSeal_FreshNoncePerCall(t *testing.T) {
	key := testKey(t, "key-one")

	n1, c1, err := Seal([]byte("same plaintext"), key)
	require.NoError(t, err)
	n2, c2, err := Seal([]byte("same plaintext"), key)
	require.NoError(t, err)

	assert.NotEqual(t, n1, n2, "nonce must never repeat for a key")
	assert.NotEqual(t, c1, c2)
}

func TestSeal_CiphertextHidesPlaintext(t *testing.T) {
	key := testKey(t, "key-one")
	secret := []byte("correct horse battery staple")

	_, ciphertext, err := Seal(secret, key)
	require.NoError(t, err)

	assert.False(t, bytes.Contains(ciphertext, secret),
		"ciphertext must not contain the raw secret bytes")
}

func TestOpen_WrongKeyIsOpaque(t *testing.T) {
	nonce, ciphertext, err := Seal([]byte("payload"), testKey(t, "key-one"))
	require.NoError(t, err)

	_, err = Open(nonce, ciphertext, testKey(t, "key-two"))
	require.ErrorIs(t, err, common.ErrAuthenticationFailed)
	// No detail beyond the sentinel: wrong key and tampering must read the same.
	assert.Equal(t, common.ErrAuthenticationFailed.Error(), err.Error())
}

func TestOpen_TamperedOrTruncated(t *testing.T) {
	key := testKey(t, "key-one")
	nonce, ciphertext, err := Seal([]byte("payload"), key)
	require.NoError(t, err)

	tampered := append([]byte(nil), ciphertext...)
	tampered[0] ^= 0x01
	_, err = Open(nonce, tampered, key)
	assert.ErrorIs(t, err, common.ErrAuthenticationFailed)

	_, err = Open(nonce, ciphertext[:len(ciphertext)-1], key)
	assert.ErrorIs(t, err, common.ErrAuthenticationFailed)

	_, err = Open(nonce[:4], ciphertext, key)
	assert.ErrorIs(t, err, common.ErrAuthenticationFailed)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	salt := bytes.Repeat([]byte{0xAB}, kdf.SaltSize)
	nonce := bytes.Repeat([]byte{0xCD}, 12)
	ciphertext := bytes.Repeat([]byte{0xEF}, 40)

	hdr := Header{Version: Version, Params: kdf.DefaultParams(), Salt: salt, Nonce: nonce}
	raw := Encode(hdr, ciphertext)

	got, gotCiphertext, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, hdr, got)
	assert.Equal(t, ciphertext, gotCiphertext)
}

func TestDecode_Malformed(t *testing.T) {
	valid := Encode(Header{
		Version: Version,
		Params:  kdf.DefaultParams(),
		Salt:    make([]byte, kdf.SaltSize),
		Nonce:   make([]byte, 12),
	}, make([]byte, 16))

	unknownVersion := append([]byte(nil), valid...)
	unknownVersion[0] = 99

	badParams := append([]byte(nil), valid...)
	// zero out the time cost
	badParams[1], badParams[2], badParams[3], badParams[4] = 0, 0, 0, 0

	tests := []struct {
		name string
		raw  []byte
	}{
		{name: "empty", raw: nil},
		{name: "garbage text", raw: []byte("not a container at all")},
		{name: "truncated header", raw: valid[:10]},
		{name: "unknown version", raw: unknownVersion},
		{name: "nonsense kdf params", raw: badParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(tt.raw)
			require.ErrorIs(t, err, common.ErrMalformedContainer)
			assert.NotErrorIs(t, err, common.ErrAuthenticationFailed,
				"structural failures must stay distinct from authentication failures")
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.db"))
	assert.ErrorIs(t, err, common.ErrNoStore)

	empty := filepath.Join(dir, "empty.db")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, err = Load(empty)
	assert.ErrorIs(t, err, common.ErrNoStore, "zero-length file counts as a fresh vault")

	full := filepath.Join(dir, "full.db")
	require.NoError(t, os.WriteFile(full, []byte("data"), 0o600))
	raw, err := Load(full)
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), raw)
}

func TestNewSalt(t *testing.T) {
	s1, err := NewSalt()
	require.NoError(t, err)
	s2, err := NewSalt()
	require.NoError(t, err)

	assert.Len(t, s1, kdf.SaltSize)
	assert.NotEqual(t, s1, s2)
}
