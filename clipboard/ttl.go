package clipboard

import "time"

// CopyWithTTL copies s to the clipboard, then restores whatever the
// clipboard held beforehand once ttl elapses. It is how `show --clip`
// avoids leaving a password sitting in the clipboard indefinitely.
//
// Restoration is best-effort and runs on its own goroutine; CopyWithTTL
// returns as soon as the initial copy succeeds.
func CopyWithTTL(s string, ttl time.Duration) error {
	return clipboard.CopyWithTTL(s, ttl)
}

// CopyWithTTL is the [Clipboard] method backing the package-level
// [CopyWithTTL] helper.
func (c *Clipboard) CopyWithTTL(s string, ttl time.Duration) error {
	previous, _ := c.Paste()

	if err := c.Copy(s); err != nil {
		return err
	}

	if ttl <= 0 {
		return nil
	}

	go func() {
		time.Sleep(ttl)

		if previous == "" {
			_ = c.Copy("")
			return
		}

		_ = c.Copy(previous)
	}()

	return nil
}
