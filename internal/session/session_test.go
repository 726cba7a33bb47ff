package session

import (
	"billed/internal/newbill"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	want := newbill.Session{Email: "a@a", Type: "Employee", Token: "tok"}

	require.NoError(t, Save(path, want))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	require.NoError(t, Clear(path))
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrNoSession)

	assert.NoError(t, Clear(path))
}

func TestLoad_EmptyEmail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"email":"  ","type":"Employee"}`), 0o600))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLoad_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSession)
}
