package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.txt")
	content := "Q: What are your hours?\nA: 9am-5pm.\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	doc, err := NewTextLoader().Load(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, path, doc.Path)
	assert.Equal(t, content, doc.Content)
	assert.False(t, doc.ModTime.IsZero())

	lines := doc.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "Q: What are your hours?", lines[0])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewTextLoader().Load(context.Background(), filepath.Join(t.TempDir(), "absent.txt"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStat_TracksModTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "faq.txt")
	require.NoError(t, os.WriteFile(path, []byte("Q: hi?\nA: hello."), 0o644))

	l := NewTextLoader()
	first, err := l.Stat(context.Background(), path)
	require.NoError(t, err)

	later := first.Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, later, later))

	second, err := l.Stat(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, second.After(first))
}
