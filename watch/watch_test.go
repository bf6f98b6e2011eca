package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, text string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
}

func waitReload(t *testing.T, w *Watcher) string {
	t.Helper()
	select {
	case path := <-w.Reloads():
		return path
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload request")
		return ""
	}
}

func TestWatcherSignalsOnWrite(t *testing.T) {
	dir := t.TempDir()
	vert := filepath.Join(dir, "basic.vert")
	frag := filepath.Join(dir, "basic.frag")
	writeFile(t, vert, "void main() {}")
	writeFile(t, frag, "void main() {}")

	w, err := New([]string{vert, frag}, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, frag, "void main() { }")
	got := waitReload(t, w)
	assert.Equal(t, "basic.frag", filepath.Base(got))
}

func TestWatcherCoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	vert := filepath.Join(dir, "basic.vert")
	writeFile(t, vert, "a")

	w, err := New([]string{vert}, WithDebounce(200*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	for i := 0; i < 5; i++ {
		writeFile(t, vert, string(rune('a'+i)))
	}
	waitReload(t, w)

	// The burst settled into a single request.
	select {
	case <-w.Reloads():
		t.Fatal("expected a single reload request for a burst of writes")
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	vert := filepath.Join(dir, "basic.vert")
	writeFile(t, vert, "a")

	w, err := New([]string{vert}, WithDebounce(10*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, filepath.Join(dir, "notes.txt"), "unrelated")

	time.Sleep(200 * time.Millisecond)
	_, ok := w.Pending()
	assert.False(t, ok)
}

func TestWatcherSeesRenameSave(t *testing.T) {
	dir := t.TempDir()
	frag := filepath.Join(dir, "basic.frag")
	writeFile(t, frag, "old")

	w, err := New([]string{frag}, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)
	defer w.Close()

	tmp := filepath.Join(dir, ".basic.frag.swp")
	writeFile(t, tmp, "new")
	require.NoError(t, os.Rename(tmp, frag))

	got := waitReload(t, w)
	assert.Equal(t, "basic.frag", filepath.Base(got))
}

func TestWatcherMissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "nope", "basic.vert")})
	assert.Error(t, err)
}

func TestWatcherCloseTwice(t *testing.T) {
	dir := t.TempDir()
	vert := filepath.Join(dir, "basic.vert")
	writeFile(t, vert, "a")

	w, err := New([]string{vert})
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}
