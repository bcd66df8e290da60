// Package team implements the creature team builder: a named roster of up
// to six creatures, saved as JSON files under .stockroom/teams/ so a team
// survives between sessions the way the original toy kept them in browser
// storage.
package team

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/kingrea/stockroom/internal/dex"
)

// MaxMembers caps a team at the classic six slots.
const MaxMembers = 6

var (
	// ErrTeamFull is returned when a seventh member is added.
	ErrTeamFull = errors.New("team: roster is full")
	// ErrDuplicateMember is returned when a species is already rostered.
	ErrDuplicateMember = errors.New("team: species already on the roster")
	// ErrNotFound is returned when a saved team does not exist.
	ErrNotFound = errors.New("team: not found")
)

// Team is a named roster of creatures.
type Team struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Members []dex.Creature `json:"members"`
}

// New creates an empty team with a fresh ID.
func New(name string) (*Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("team: name is required")
	}
	return &Team{ID: uuid.NewString(), Name: name}, nil
}

// Add appends a creature to the roster.
func (t *Team) Add(c dex.Creature) error {
	if len(t.Members) >= MaxMembers {
		return fmt.Errorf("%w: %d members", ErrTeamFull, MaxMembers)
	}
	species := dex.Normalize(c.Name)
	for _, m := range t.Members {
		if dex.Normalize(m.Name) == species {
			return fmt.Errorf("%w: %s", ErrDuplicateMember, c.Name)
		}
	}
	t.Members = append(t.Members, c)
	return nil
}

// RemoveMember drops a species from the roster.
func (t *Team) RemoveMember(species string) error {
	species = dex.Normalize(species)
	for i, m := range t.Members {
		if dex.Normalize(m.Name) == species {
			t.Members = append(t.Members[:i], t.Members[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("team: %s is not on the roster", species)
}

// Slug derives the filename-safe identifier used for the saved team.
func (t *Team) Slug() string {
	return Slugify(t.Name)
}

// Slugify lowercases a team name and collapses everything that is not a
// letter or digit into single dashes.
func Slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}
