// Package bytestore implements the vault's on-disk write path: secure parent
// directory creation, atomic replace-via-rename, and N-deep backup rotation
// (spec §4.2).
package bytestore

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ladzaretti/kevi/vaulterrors"
)

// dirPerm and filePerm harden the vault directory and its files against
// other local users; best-effort on platforms without POSIX permission bits.
const (
	dirPerm  = 0o700
	filePerm = 0o600
)

// EnsureParentSecure creates the parent directory of path if missing and,
// on POSIX systems, restricts it to dirPerm.
func EnsureParentSecure(path string) error {
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return vaulterrors.Wrap("mkdir", err)
	}

	_ = os.Chmod(dir, dirPerm)

	return nil
}

// AtomicWrite writes data to path by writing a sibling temp file and
// renaming it into place, so a reader never observes a partially written
// file.
func AtomicWrite(path string, data []byte) error {
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, data, filePerm); err != nil {
		return vaulterrors.Wrap("write temp file", err)
	}

	_ = os.Chmod(tmp, filePerm)

	if err := os.Rename(tmp, path); err != nil {
		return vaulterrors.Wrap("rename temp file", err)
	}

	return nil
}

// backupPath returns the name of the nth rotated backup of path, e.g.
// "vault.kevi.2" for n=2.
func backupPath(path string, n int) string {
	return fmt.Sprintf("%s.%d", path, n)
}

// WriteWithBackups rotates up to keep existing backups of path, then
// atomically writes data as the new current file.
//
// Rotation runs oldest-first: path.keep is removed, path.(keep-1) becomes
// path.keep, ..., path.1 becomes path.2, and the current file (if any)
// becomes path.1. keep <= 0 disables rotation entirely; the current file is
// simply overwritten.
func WriteWithBackups(path string, data []byte, keep int) error {
	if err := EnsureParentSecure(path); err != nil {
		return err
	}

	if keep > 0 {
		oldest := backupPath(path, keep)
		_ = os.Remove(oldest)

		for i := keep - 1; i >= 1; i-- {
			src := backupPath(path, i)
			dst := backupPath(path, i+1)

			if _, err := os.Stat(src); err == nil {
				_ = os.Rename(src, dst)
				_ = os.Chmod(dst, filePerm)
			}
		}

		if _, err := os.Stat(path); err == nil {
			first := backupPath(path, 1)
			_ = os.Rename(path, first)
			_ = os.Chmod(first, filePerm)
		}
	}

	return AtomicWrite(path, data)
}

// Read returns the contents of path, or a wrapped error if it cannot be
// read. A missing file is reported as a wrapped error that satisfies
// errors.Is(err, fs.ErrNotExist), not a sentinel of its own; os.IsNotExist
// does not look through the wrapper.
func Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, vaulterrors.Wrap("read file", err)
	}

	return data, nil
}

// Exists reports whether path names an existing file.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Remove deletes path if present; a missing file is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return vaulterrors.Wrap("remove file", err)
	}

	return nil
}
