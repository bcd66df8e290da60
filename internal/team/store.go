package team

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// schemaVersion tags saved team files so later formats can migrate them.
const schemaVersion = "1"

// Store manages saved team files inside a single directory.
type Store struct {
	dir string
	now func() time.Time
}

// StoreOption customizes a Store during construction.
type StoreOption func(*Store)

// WithClock overrides the clock used for the saved-at timestamp.
func WithClock(clock func() time.Time) StoreOption {
	return func(s *Store) {
		if clock != nil {
			s.now = clock
		}
	}
}

// NewStore builds a store rooted at dir.
func NewStore(dir string, opts ...StoreOption) *Store {
	s := &Store{dir: dir, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// envelope is the metadata block written alongside the roster. Files
// without a valid envelope are rejected on load rather than half-parsed.
type envelope struct {
	TeamID  string `json:"team"`
	Version string `json:"version"`
	SavedAt string `json:"saved"`
}

type teamFile struct {
	Name     string          `json:"name"`
	Members  json.RawMessage `json:"members"`
	Metadata envelope        `json:"_stockroom"`
}

// Save writes the team to <dir>/<slug>.json and returns the path.
func (s *Store) Save(t *Team) (string, error) {
	if t == nil {
		return "", fmt.Errorf("team: nothing to save")
	}
	slug := t.Slug()
	if slug == "" {
		return "", fmt.Errorf("team: name %q produces an empty slug", t.Name)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("team: ensure teams dir: %w", err)
	}
	members, err := json.Marshal(t.Members)
	if err != nil {
		return "", fmt.Errorf("team: encode members: %w", err)
	}
	payload := teamFile{
		Name:    t.Name,
		Members: members,
		Metadata: envelope{
			TeamID:  t.ID,
			Version: schemaVersion,
			SavedAt: s.now().UTC().Format(time.RFC3339),
		},
	}
	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("team: encode %s: %w", slug, err)
	}
	path := s.path(slug)
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return "", fmt.Errorf("team: write %s: %w", path, err)
	}
	return path, nil
}

// Load reads a saved team by name or slug.
func (s *Store) Load(name string) (*Team, error) {
	slug := Slugify(name)
	if slug == "" {
		return nil, fmt.Errorf("team: name is required")
	}
	data, err := os.ReadFile(s.path(slug))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, slug)
		}
		return nil, fmt.Errorf("team: read %s: %w", slug, err)
	}
	var payload teamFile
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("team: parse %s: %w", slug, err)
	}
	if payload.Metadata.TeamID == "" {
		return nil, fmt.Errorf("team: %s is missing its metadata envelope", slug)
	}
	if payload.Metadata.Version != schemaVersion {
		return nil, fmt.Errorf("team: %s uses unsupported schema version %q", slug, payload.Metadata.Version)
	}
	t := &Team{ID: payload.Metadata.TeamID, Name: payload.Name}
	if len(payload.Members) > 0 {
		if err := json.Unmarshal(payload.Members, &t.Members); err != nil {
			return nil, fmt.Errorf("team: parse members of %s: %w", slug, err)
		}
	}
	if len(t.Members) > MaxMembers {
		return nil, fmt.Errorf("team: %s has %d members, max is %d", slug, len(t.Members), MaxMembers)
	}
	return t, nil
}

// List returns the slugs of every saved team, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("team: list teams: %w", err)
	}
	var slugs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		slugs = append(slugs, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(slugs)
	return slugs, nil
}

// Delete removes a saved team file.
func (s *Store) Delete(name string) error {
	slug := Slugify(name)
	if slug == "" {
		return fmt.Errorf("team: name is required")
	}
	if err := os.Remove(s.path(slug)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, slug)
		}
		return fmt.Errorf("team: delete %s: %w", slug, err)
	}
	return nil
}

func (s *Store) path(slug string) string {
	return filepath.Join(s.dir, slug+".json")
}
