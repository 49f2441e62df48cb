package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_FileNotExist(t *testing.T) {
	f := NewTokenFile(filepath.Join(t.TempDir(), "token.json"))

	tok, err := f.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tok != "" {
		t.Errorf("expected empty token, got %q", tok)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "token.json")
	f := NewTokenFile(path)

	if err := f.Save("tok1"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("perm = %o; want 600", perm)
	}

	tok, err := NewTokenFile(path).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tok != "tok1" {
		t.Errorf("token = %q; want %q", tok, "tok1")
	}

	if err := f.Save("tok2"); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}
	if tok, _ := f.Load(); tok != "tok2" {
		t.Errorf("token = %q; want %q", tok, "tok2")
	}
}

func TestLoad_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewTokenFile(path).Load(); err == nil {
		t.Error("expected decode error")
	}
}

func TestClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	f := NewTokenFile(path)

	if err := f.Clear(); err != nil {
		t.Errorf("Clear on missing file: %v", err)
	}
	if err := f.Save("tok"); err != nil {
		t.Fatal(err)
	}
	if err := f.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("token file still present: %v", err)
	}
	if tok, _ := f.Load(); tok != "" {
		t.Errorf("token after clear = %q", tok)
	}
}
