//go:build !unix

package vaultcrypto

// lockKey is a no-op on platforms without page locking support.
func lockKey(_ []byte) {}

// unlockKey is a no-op on platforms without page locking support.
func unlockKey(_ []byte) {}
