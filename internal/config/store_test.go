package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	var store PreferenceStore = NewMemoryStore()

	if _, ok := store.Get(KeyTheme); ok {
		t.Error("empty store should not have a theme")
	}

	if err := store.Set(KeyTheme, "light"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got, ok := store.Get(KeyTheme); !ok || got != "light" {
		t.Errorf("Get() = %q, %v, want light, true", got, ok)
	}
}

func TestFileStore_WriteThrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	store, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("OpenFileStore() error = %v", err)
	}
	if store.Path() != path {
		t.Errorf("Path() = %v, want %v", store.Path(), path)
	}

	if err := store.Set(KeyTheme, "dark"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	reopened, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("OpenFileStore() error = %v", err)
	}
	if got, ok := reopened.Get(KeyTheme); !ok || got != "dark" {
		t.Errorf("Get() after reopen = %q, %v, want dark, true", got, ok)
	}
}

func TestFileStore_SetFailure(t *testing.T) {
	dir := t.TempDir()
	store, err := OpenFileStore(filepath.Join(dir, "sub", "config.yaml"))
	if err != nil {
		t.Fatalf("OpenFileStore() error = %v", err)
	}

	// The parent "directory" becomes a regular file, so Save cannot succeed.
	if err := os.WriteFile(filepath.Join(dir, "sub"), []byte("x"), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if err := store.Set(KeyTheme, "dark"); err == nil {
		t.Error("Set() should report the persistence failure")
	}
	if got, _ := store.Get(KeyTheme); got != "dark" {
		t.Errorf("in-memory value = %q, want dark", got)
	}
}
