// internal/dex/client.go
//
// Read-only client for a PokeAPI-compatible creature endpoint. The team
// builder is the only caller; it issues one GET per species the user asks
// for. A bloom filter seeded with the bundled species list answers "that
// name can't possibly exist" locally, so typos never cost a network round
// trip. False positives from the filter just fall through to one HTTP
// request that returns 404.

package dex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
)

// ErrUnknownCreature is returned when the species is not in the dex.
var ErrUnknownCreature = errors.New("dex: unknown creature")

const defaultTimeout = 10 * time.Second

// Creature is the subset of the upstream payload the team builder shows.
type Creature struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	BaseExperience int      `json:"base_experience"`
	Types          []string `json:"types"`
}

// Label renders a one-line description for menus and reports.
func (c Creature) Label() string {
	types := strings.Join(c.Types, "/")
	if types == "" {
		types = "unknown"
	}
	return fmt.Sprintf("#%d %s (%s) · %d base exp", c.ID, c.Name, types, c.BaseExperience)
}

// Client looks up creatures over HTTP with a local known-species gate.
type Client struct {
	baseURL string
	http    *http.Client

	mu     sync.Mutex
	filter *bloom.BloomFilter
	cache  map[string]Creature
}

// ClientOption customizes a Client during construction.
type ClientOption func(*Client)

// WithTimeout overrides the request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient swaps the underlying HTTP client (tests use this).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithKnownSpecies replaces the bundled species list used to seed the bloom
// filter. An empty list disables the local gate entirely: every lookup goes
// to the network.
func WithKnownSpecies(names []string) ClientOption {
	return func(c *Client) {
		c.filter = buildFilter(names)
	}
}

// NewClient creates a dex client for the given base URL (no trailing slash).
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: defaultTimeout},
		filter:  buildFilter(DefaultSpecies),
		cache:   map[string]Creature{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Lookup fetches one creature by species name. Names are normalized before
// matching, so "  Pikachu " and "pikachu" are the same species.
func (c *Client) Lookup(ctx context.Context, name string) (Creature, error) {
	name = Normalize(name)
	if name == "" {
		return Creature{}, fmt.Errorf("dex: species name is required")
	}

	c.mu.Lock()
	if cached, ok := c.cache[name]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	if c.filter != nil && !c.filter.TestString(name) {
		c.mu.Unlock()
		return Creature{}, fmt.Errorf("%w: %s", ErrUnknownCreature, name)
	}
	c.mu.Unlock()

	creature, err := c.fetch(ctx, name)
	if err != nil {
		return Creature{}, err
	}

	c.mu.Lock()
	c.cache[name] = creature
	if c.filter != nil {
		c.filter.AddString(name)
	}
	c.mu.Unlock()
	return creature, nil
}

func (c *Client) fetch(ctx context.Context, name string) (Creature, error) {
	url := fmt.Sprintf("%s/pokemon/%s", c.baseURL, name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Creature{}, fmt.Errorf("dex: build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Creature{}, fmt.Errorf("dex: lookup %s: %w", name, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusNotFound:
		return Creature{}, fmt.Errorf("%w: %s", ErrUnknownCreature, name)
	default:
		io.Copy(io.Discard, resp.Body)
		return Creature{}, fmt.Errorf("dex: lookup %s: unexpected status %d", name, resp.StatusCode)
	}

	var payload struct {
		ID             int    `json:"id"`
		Name           string `json:"name"`
		BaseExperience int    `json:"base_experience"`
		Types          []struct {
			Type struct {
				Name string `json:"name"`
			} `json:"type"`
		} `json:"types"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Creature{}, fmt.Errorf("dex: decode %s: %w", name, err)
	}
	creature := Creature{
		ID:             payload.ID,
		Name:           payload.Name,
		BaseExperience: payload.BaseExperience,
	}
	for _, t := range payload.Types {
		if t.Type.Name != "" {
			creature.Types = append(creature.Types, t.Type.Name)
		}
	}
	if creature.Name == "" {
		creature.Name = name
	}
	return creature, nil
}

// Normalize lowercases and trims a species name the way the upstream API
// expects it.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func buildFilter(names []string) *bloom.BloomFilter {
	if len(names) == 0 {
		return nil
	}
	filter := bloom.NewWithEstimates(uint(len(names))*4, 0.001)
	for _, n := range names {
		if n = Normalize(n); n != "" {
			filter.AddString(n)
		}
	}
	return filter
}
