package filecache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates name under root, making parent directories as needed.
func writeFile(t *testing.T, root, name string, content []byte) {
	t.Helper()
	p := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, content, 0o644))
}

func TestFileServedFromCacheWithinTTL(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.html", []byte("version one"))

	c := New(root, time.Minute, false)

	data, ok := c.File("", "index.html")
	require.True(t, ok)
	assert.Equal(t, "version one", string(data))

	// A disk change must not show through while the entry is fresh.
	writeFile(t, root, "index.html", []byte("version two"))

	data, ok = c.File("", "index.html")
	require.True(t, ok)
	assert.Equal(t, "version one", string(data))
}

func TestExpiredEntryIsReloaded(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.html", []byte("version one"))

	c := New(root, 20*time.Millisecond, false)

	_, ok := c.File("", "index.html")
	require.True(t, ok)

	writeFile(t, root, "index.html", []byte("version two"))
	time.Sleep(40 * time.Millisecond)

	data, ok := c.File("", "index.html")
	require.True(t, ok)
	assert.Equal(t, "version two", string(data))
}

func TestBypassAlwaysReadsDisk(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.html", []byte("version one"))

	c := New(root, time.Minute, true)

	data, ok := c.File("", "index.html")
	require.True(t, ok)
	assert.Equal(t, "version one", string(data))

	writeFile(t, root, "index.html", []byte("version two"))

	data, ok = c.File("", "index.html")
	require.True(t, ok)
	assert.Equal(t, "version two", string(data))
}

func TestSubdirectoryLookup(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, filepath.Join("css", "style.css"), []byte("body{}"))

	c := New(root, time.Minute, false)

	data, ok := c.File("css", "style.css")
	require.True(t, ok)
	assert.Equal(t, "body{}", string(data))
}

func TestPathTraversalRejected(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "static")
	require.NoError(t, os.Mkdir(root, 0o755))
	writeFile(t, base, "secret.txt", []byte("not yours"))

	c := New(root, time.Minute, false)

	_, ok := c.File("..", "secret.txt")
	assert.False(t, ok)

	_, ok = c.File("", "../secret.txt")
	assert.False(t, ok)
}

func TestMissingAndIrregularFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "adir"), 0o755))

	c := New(root, time.Minute, false)

	_, ok := c.File("", "missing.txt")
	assert.False(t, ok)

	_, ok = c.File("", "adir")
	assert.False(t, ok, "directories should not be served")
}

func TestTextRejectsBinary(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "notes.txt", []byte("正常的文本"))
	writeFile(t, root, "blob.bin", []byte{0xff, 0xfe, 0xfd})

	c := New(root, time.Minute, false)

	text, ok := c.Text("", "notes.txt")
	require.True(t, ok)
	assert.Equal(t, "正常的文本", text)

	_, ok = c.Text("", "blob.bin")
	assert.False(t, ok, "content that is not UTF-8 should read as not found")

	// The raw bytes are still reachable through File.
	data, ok := c.File("", "blob.bin")
	require.True(t, ok)
	assert.Equal(t, []byte{0xff, 0xfe, 0xfd}, data)
}

func TestSweepEvictsExpiredEntries(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.html", []byte("content"))

	c := New(root, 20*time.Millisecond, false)

	_, ok := c.File("", "index.html")
	require.True(t, ok)
	assert.Equal(t, 1, c.entries.ItemCount())

	time.Sleep(40 * time.Millisecond)
	c.Sweep()

	assert.Equal(t, 0, c.entries.ItemCount())
}
