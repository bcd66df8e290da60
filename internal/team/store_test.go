package team

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	fixed := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	store := NewStore(dir, WithClock(func() time.Time { return fixed }))

	tm, err := New("Trail Team")
	if err != nil {
		t.Fatalf("new team: %v", err)
	}
	if err := tm.Add(creature("pikachu", 25)); err != nil {
		t.Fatalf("add: %v", err)
	}
	path, err := store.Save(tm)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Base(path) != "trail-team.json" {
		t.Fatalf("unexpected file name: %s", path)
	}

	loaded, err := store.Load("Trail Team")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.ID != tm.ID {
		t.Fatalf("team id changed across save/load: %s vs %s", loaded.ID, tm.ID)
	}
	if len(loaded.Members) != 1 || loaded.Members[0].Name != "pikachu" {
		t.Fatalf("roster lost in round trip: %+v", loaded.Members)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("saved team is not valid json: %v", err)
	}
	meta, ok := payload["_stockroom"].(map[string]any)
	if !ok {
		t.Fatalf("saved team missing _stockroom envelope: %v", payload)
	}
	if meta["saved"] != fixed.Format(time.RFC3339) {
		t.Fatalf("unexpected saved timestamp: %v", meta["saved"])
	}
}

func TestLoadRejectsMissingEnvelope(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	if err := os.WriteFile(filepath.Join(dir, "bare.json"), []byte(`{"name":"Bare"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Load("bare"); err == nil {
		t.Fatalf("expected envelope validation error")
	}
}

func TestLoadUnknownTeam(t *testing.T) {
	store := NewStore(t.TempDir())
	if _, err := store.Load("ghost-team"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListAndDelete(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	for _, name := range []string{"Beta Squad", "Alpha Squad"} {
		tm, err := New(name)
		if err != nil {
			t.Fatalf("new team: %v", err)
		}
		if _, err := store.Save(tm); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
	}
	slugs, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(slugs) != 2 || slugs[0] != "alpha-squad" || slugs[1] != "beta-squad" {
		t.Fatalf("unexpected listing: %v", slugs)
	}
	if err := store.Delete("Alpha Squad"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete("Alpha Squad"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
	slugs, err = store.List()
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(slugs) != 1 || slugs[0] != "beta-squad" {
		t.Fatalf("unexpected listing after delete: %v", slugs)
	}
}

func TestListEmptyDirIsNil(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "never-created"))
	slugs, err := store.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if slugs != nil {
		t.Fatalf("expected nil listing, got %v", slugs)
	}
}
