package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptStorage_SaveOpenRemove(t *testing.T) {
	dir := t.TempDir()
	s, err := NewReceiptStorage(dir)
	require.NoError(t, err)
	s.now = func() time.Time { return time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC) }

	rel, err := s.Save(context.Background(), `C:\fakepath\Ticket.JPG`, strings.NewReader("image"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "2024/03/"), rel)
	assert.True(t, strings.HasSuffix(rel, ".jpg"), rel)
	assert.FileExists(t, filepath.Join(dir, filepath.FromSlash(rel)))

	f, err := s.Open(rel)
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	assert.Equal(t, "image", string(data))

	require.NoError(t, s.Remove(rel))
	assert.NoFileExists(t, filepath.Join(dir, filepath.FromSlash(rel)))
	// повторное удаление — не ошибка
	assert.NoError(t, s.Remove(rel))
}

func TestReceiptStorage_RejectsEscapingPaths(t *testing.T) {
	s, err := NewReceiptStorage(t.TempDir())
	require.NoError(t, err)

	for _, rel := range []string{"", "../secret", "2024/../../etc/passwd"} {
		_, err := s.Open(rel)
		assert.ErrorIs(t, err, ErrInvalidPath, rel)
	}
}

func TestReceiptStorage_CancelledContext(t *testing.T) {
	s, err := NewReceiptStorage(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = s.Save(ctx, "a.png", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
