// Package fsutil provides low-level filesystem operations for staging, restore, and verification.
//
// This package implements the file plumbing shared by all extractors and restorers:
//   - Optimized single-file copying that preserves permissions and timestamps
//   - Recursive directory copying for whole-config-directory staging
//   - Byte-level file comparison used by tests and post-restore spot checks
//   - Safety backups (.bak) of files about to be overwritten during restore
//
// All copies are byte-for-byte; no file contents are ever transformed.
package fsutil

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyFile copies a single file from src to dst, creating parent directories as
// needed and preserving the source's permissions and modification time. The
// destination is overwritten if it already exists.
func CopyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	fi, err := srcFile.Stat()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	// Config files are small, but browser History databases can be hundreds of MB
	bufSize := 256 * 1024
	if fi.Size() > 10*1024*1024 {
		bufSize = 2 * 1024 * 1024
	}

	buffer := make([]byte, bufSize)
	if _, err := io.CopyBuffer(dstFile, srcFile, buffer); err != nil {
		return err
	}

	os.Chmod(dst, fi.Mode())
	os.Chtimes(dst, fi.ModTime(), fi.ModTime())

	return nil
}

// CopyDir recursively copies the directory tree rooted at src into dst,
// overwriting existing files. Symlinks are re-created pointing at their
// original targets; special files are skipped.
func CopyDir(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !srcInfo.IsDir() {
		return fmt.Errorf("source is not a directory: %s", src)
	}

	return filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			// Skip unreadable entries but keep walking - missing pieces of a
			// config tree should not abort the whole staging run
			return nil
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return nil
		}
		dstPath := filepath.Join(dst, relPath)

		if d.IsDir() {
			fi, err := os.Stat(path)
			if err != nil {
				return nil
			}
			return os.MkdirAll(dstPath, fi.Mode())
		}

		if d.Type()&os.ModeSymlink != 0 {
			target, err := os.Readlink(path)
			if err != nil {
				return nil
			}
			os.Remove(dstPath)
			os.Symlink(target, dstPath)
			return nil
		}

		if d.Type().IsRegular() {
			return CopyFile(path, dstPath)
		}

		return nil
	})
}

// FilesIdentical reports whether two files have byte-identical contents.
// It compares sizes first and only reads contents when sizes match.
func FilesIdentical(a, b string) (bool, error) {
	aInfo, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	bInfo, err := os.Stat(b)
	if err != nil {
		return false, err
	}

	if aInfo.Size() != bInfo.Size() {
		return false, nil
	}
	if aInfo.Size() == 0 {
		return true, nil
	}

	aFile, err := os.Open(a)
	if err != nil {
		return false, err
	}
	defer aFile.Close()

	bFile, err := os.Open(b)
	if err != nil {
		return false, err
	}
	defer bFile.Close()

	const chunk = 64 * 1024
	aBuf := make([]byte, chunk)
	bBuf := make([]byte, chunk)

	for {
		aN, aErr := io.ReadFull(aFile, aBuf)
		bN, bErr := io.ReadFull(bFile, bBuf)

		if aN != bN || !bytes.Equal(aBuf[:aN], bBuf[:bN]) {
			return false, nil
		}

		if aErr == io.EOF || aErr == io.ErrUnexpectedEOF {
			return bErr == io.EOF || bErr == io.ErrUnexpectedEOF, nil
		}
		if aErr != nil {
			return false, aErr
		}
		if bErr != nil {
			return false, bErr
		}
	}
}

// BackupExisting copies target aside with a .bak suffix if it exists.
// Restores call this before overwriting so a bad restore can be undone by hand.
// A missing target is not an error.
func BackupExisting(target string) error {
	fi, err := os.Stat(target)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	bakPath := target + ".bak"
	if fi.IsDir() {
		if err := os.RemoveAll(bakPath); err != nil {
			return err
		}
		return CopyDir(target, bakPath)
	}
	return CopyFile(target, bakPath)
}

// DirSize returns the total size in bytes of all regular files under path.
func DirSize(path string) (int64, error) {
	var total int64
	err := filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type().IsRegular() {
			if info, err := d.Info(); err == nil {
				total += info.Size()
			}
		}
		return nil
	})
	return total, err
}
