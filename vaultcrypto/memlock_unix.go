//go:build unix

package vaultcrypto

import "golang.org/x/sys/unix"

// lockKey best-effort locks the pages backing key into RAM for the
// duration of an AEAD call. Failures are silently ignored; the caller
// proceeds regardless (spec §4.9).
func lockKey(key []byte) {
	if len(key) == 0 {
		return
	}

	_ = unix.Mlock(key)
}

// unlockKey releases a lock acquired by [lockKey]. Failures are ignored.
func unlockKey(key []byte) {
	if len(key) == 0 {
		return
	}

	_ = unix.Munlock(key)
}
