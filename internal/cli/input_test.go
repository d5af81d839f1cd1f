package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPasswords makes readPassword return the given entries in order.
func stubPasswords(t *testing.T, entries ...string) {
	t.Helper()
	orig := readPassword
	i := 0
	readPassword = func(fd int) ([]byte, error) {
		require.Less(t, i, len(entries), "unexpected extra password prompt")
		pw := []byte(entries[i])
		i++
		return pw, nil
	}
	t.Cleanup(func() { readPassword = orig })
}

func TestReadPassword(t *testing.T) {
	stubPasswords(t, "hunter2")
	var out bytes.Buffer

	pw, err := ReadPassword(&out, "Master Password: ")
	require.NoError(t, err)
	defer pw.Wipe()

	assert.Equal(t, []byte("hunter2"), pw.Bytes())
	assert.Contains(t, out.String(), "Master Password: ")
}

func TestReadNewPassword_Match(t *testing.T) {
	stubPasswords(t, "hunter2", "hunter2")
	var out bytes.Buffer

	pw, err := ReadNewPassword(&out)
	require.NoError(t, err)
	defer pw.Wipe()

	assert.Equal(t, []byte("hunter2"), pw.Bytes())
	assert.Contains(t, out.String(), "Confirm Master Password: ")
}

func TestReadNewPassword_Mismatch(t *testing.T) {
	stubPasswords(t, "hunter2", "hunter3")
	var out bytes.Buffer

	pw, err := ReadNewPassword(&out)
	require.Error(t, err)
	assert.Nil(t, pw)
}
