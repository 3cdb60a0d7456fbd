package store

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCredentialsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials")
	fc := NewFileCredentials(path)

	_, ok := fc.Token()
	assert.False(t, ok, "no token before first login")

	require.NoError(t, fc.SetToken("abc123"))
	tok, ok := fc.Token()
	require.True(t, ok)
	assert.Equal(t, "abc123", tok)

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestFileCredentialsClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials")
	fc := NewFileCredentials(path)
	require.NoError(t, fc.SetToken("abc"))

	require.NoError(t, fc.Clear())
	_, ok := fc.Token()
	assert.False(t, ok)

	// Clearing an already-empty store is fine.
	require.NoError(t, fc.Clear())
}

func TestFileCredentialsEmptyFileMeansNoToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0o600))

	_, ok := NewFileCredentials(path).Token()
	assert.False(t, ok)
}

func TestMemCredentials(t *testing.T) {
	mc := NewMemCredentials()
	_, ok := mc.Token()
	assert.False(t, ok)

	require.NoError(t, mc.SetToken("t"))
	tok, ok := mc.Token()
	require.True(t, ok)
	assert.Equal(t, "t", tok)

	require.NoError(t, mc.Clear())
	_, ok = mc.Token()
	assert.False(t, ok)
}

func TestPaymentDataStore(t *testing.T) {
	s := NewPaymentDataStore()
	_, ok := s.Load()
	assert.False(t, ok)

	require.NoError(t, s.Save(PaymentData{OrderID: "o1", Amount: 159900, Token: "tbk"}))
	d, ok := s.Load()
	require.True(t, ok)
	assert.Equal(t, "o1", d.OrderID)
	assert.Equal(t, int64(159900), d.Amount)

	s.Clear()
	_, ok = s.Load()
	assert.False(t, ok)
}
