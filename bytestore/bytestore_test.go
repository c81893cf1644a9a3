package bytestore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ladzaretti/kevi/bytestore"
)

func TestAtomicWrite_CreatesParentAndFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "vault.kevi")

	if err := bytestore.EnsureParentSecure(path); err != nil {
		t.Fatalf("EnsureParentSecure: %v", err)
	}

	if err := bytestore.AtomicWrite(path, []byte("payload")); err != nil {
		t.Fatalf("AtomicWrite: %v", err)
	}

	got, err := bytestore.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if string(got) != "payload" {
		t.Errorf("content = %q, want %q", got, "payload")
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file was not cleaned up by rename")
	}
}

func TestWriteWithBackups_Rotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vault.kevi")

	versions := []string{"v1", "v2", "v3", "v4"}
	for _, v := range versions {
		if err := bytestore.WriteWithBackups(path, []byte(v), 2); err != nil {
			t.Fatalf("WriteWithBackups(%q): %v", v, err)
		}
	}

	current, err := bytestore.Read(path)
	if err != nil {
		t.Fatalf("Read current: %v", err)
	}

	if string(current) != "v4" {
		t.Errorf("current = %q, want v4", current)
	}

	b1, err := bytestore.Read(path + ".1")
	if err != nil {
		t.Fatalf("Read .1: %v", err)
	}

	if string(b1) != "v3" {
		t.Errorf(".1 = %q, want v3", b1)
	}

	b2, err := bytestore.Read(path + ".2")
	if err != nil {
		t.Fatalf("Read .2: %v", err)
	}

	if string(b2) != "v2" {
		t.Errorf(".2 = %q, want v2", b2)
	}

	if bytestore.Exists(path + ".3") {
		t.Error("backup depth exceeded keep=2")
	}
}

func TestWriteWithBackups_ZeroKeepOverwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vault.kevi")

	if err := bytestore.WriteWithBackups(path, []byte("v1"), 0); err != nil {
		t.Fatalf("WriteWithBackups: %v", err)
	}

	if err := bytestore.WriteWithBackups(path, []byte("v2"), 0); err != nil {
		t.Fatalf("WriteWithBackups: %v", err)
	}

	got, err := bytestore.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if string(got) != "v2" {
		t.Errorf("current = %q, want v2", got)
	}

	if bytestore.Exists(path + ".1") {
		t.Error("backup created despite keep=0")
	}
}

func TestRemove_MissingFileIsNotError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "absent")

	if err := bytestore.Remove(path); err != nil {
		t.Errorf("Remove on missing file returned error: %v", err)
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vault.kevi")

	if bytestore.Exists(path) {
		t.Error("Exists true before file created")
	}

	if err := bytestore.AtomicWrite(path, []byte("x")); err != nil {
		t.Fatalf("AtomicWrite: %v", err)
	}

	if !bytestore.Exists(path) {
		t.Error("Exists false after file created")
	}
}
