package storage

import (
	"os"
	"path/filepath"
	"testing"
)

type record struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestFileStore_MissingFileReadsEmpty(t *testing.T) {
	store := NewFileStore[record](t.TempDir(), "records.json")

	items, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty collection, got %v", items)
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore[record](dir, "records.json")

	want := []record{{ID: 1, Name: "first"}, {ID: 2, Name: "second"}}
	if err := store.SaveAll(want); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}

	got, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestFileStore_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	store := NewFileStore[record](dir, "records.json")

	if err := store.SaveAll([]record{{ID: 1, Name: "only"}}); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "records.json")); err != nil {
		t.Errorf("expected file to exist: %v", err)
	}
}

func TestFileStore_SaveNilWritesEmptyArray(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore[record](dir, "records.json")

	if err := store.SaveAll(nil); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "records.json"))
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("expected empty JSON array, got %q", string(data))
	}
}

func TestFileStore_CorruptFileFails(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "records.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := NewFileStore[record](dir, "records.json")
	if _, err := store.LoadAll(); err == nil {
		t.Error("expected error for corrupt file")
	}
}
