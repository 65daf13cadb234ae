package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCopyFilePreservesContentAndMode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src", "config.fish")
	dst := filepath.Join(dir, "dst", "nested", "config.fish")

	require.NoError(t, os.MkdirAll(filepath.Dir(src), 0755))
	require.NoError(t, os.WriteFile(src, []byte("set -gx EDITOR nvim\n"), 0600))

	require.NoError(t, CopyFile(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	require.Equal(t, "set -gx EDITOR nvim\n", string(data))

	fi, err := os.Stat(dst)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), fi.Mode().Perm())
}

func TestFilesIdentical(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	c := filepath.Join(dir, "c")
	empty1 := filepath.Join(dir, "e1")
	empty2 := filepath.Join(dir, "e2")

	require.NoError(t, os.WriteFile(a, []byte("same contents"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("same contents"), 0644))
	require.NoError(t, os.WriteFile(c, []byte("same length.."), 0644))
	require.NoError(t, os.WriteFile(empty1, nil, 0644))
	require.NoError(t, os.WriteFile(empty2, nil, 0644))

	identical, err := FilesIdentical(a, b)
	require.NoError(t, err)
	require.True(t, identical)

	identical, err = FilesIdentical(a, c)
	require.NoError(t, err)
	require.False(t, identical)

	identical, err = FilesIdentical(empty1, empty2)
	require.NoError(t, err)
	require.True(t, identical)

	_, err = FilesIdentical(a, filepath.Join(dir, "missing"))
	require.Error(t, err)
}

func TestCopyDirRecursive(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")

	require.NoError(t, os.MkdirAll(filepath.Join(src, "functions"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "config.fish"), []byte("top"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "functions", "ll.fish"), []byte("nested"), 0644))
	require.NoError(t, os.Symlink("config.fish", filepath.Join(src, "link.fish")))

	require.NoError(t, CopyDir(src, dst))

	data, err := os.ReadFile(filepath.Join(dst, "config.fish"))
	require.NoError(t, err)
	require.Equal(t, "top", string(data))

	data, err = os.ReadFile(filepath.Join(dst, "functions", "ll.fish"))
	require.NoError(t, err)
	require.Equal(t, "nested", string(data))

	target, err := os.Readlink(filepath.Join(dst, "link.fish"))
	require.NoError(t, err)
	require.Equal(t, "config.fish", target)
}

func TestBackupExisting(t *testing.T) {
	dir := t.TempDir()

	// Missing targets are fine
	require.NoError(t, BackupExisting(filepath.Join(dir, "missing")))

	file := filepath.Join(dir, "konsolerc")
	require.NoError(t, os.WriteFile(file, []byte("old settings"), 0644))
	require.NoError(t, BackupExisting(file))

	data, err := os.ReadFile(file + ".bak")
	require.NoError(t, err)
	require.Equal(t, "old settings", string(data))

	tree := filepath.Join(dir, "profiles")
	require.NoError(t, os.MkdirAll(tree, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(tree, "Main.profile"), []byte("p"), 0644))
	require.NoError(t, BackupExisting(tree))

	data, err = os.ReadFile(filepath.Join(tree+".bak", "Main.profile"))
	require.NoError(t, err)
	require.Equal(t, "p", string(data))
}

func TestDirSize(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), []byte("12345"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b"), []byte("123"), 0644))

	size, err := DirSize(dir)
	require.NoError(t, err)
	require.Equal(t, int64(8), size)
}
