// Package catalog loads the list of practice items with their titles,
// difficulties and categories.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/algoviz/practice/internal/model"
)

// ErrDuplicateItem is returned when two entries share an id.
var ErrDuplicateItem = errors.New("duplicate item id")

// Item is one practice problem in the catalog.
type Item struct {
	ID         string           `yaml:"id" json:"id"`
	Title      string           `yaml:"title" json:"title"`
	Difficulty model.Difficulty `yaml:"difficulty" json:"difficulty"`
	Category   string           `yaml:"category" json:"category"`
}

// Catalog is an immutable, indexed set of items.
type Catalog struct {
	items []Item
	byID  map[string]int
}

// Load reads and parses a catalog file.
func Load(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a YAML list of items. Every problem found is reported in one
// joined error.
func Parse(b []byte) (*Catalog, error) {
	var raw []struct {
		ID         string `yaml:"id"`
		Title      string `yaml:"title"`
		Difficulty string `yaml:"difficulty"`
		Category   string `yaml:"category"`
	}
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &Catalog{
		items: make([]Item, 0, len(raw)),
		byID:  make(map[string]int, len(raw)),
	}
	var errs []error
	for i, r := range raw {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			errs = append(errs, fmt.Errorf("entry %d: id is required", i))
			continue
		}
		if _, dup := c.byID[id]; dup {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateItem, id))
			continue
		}
		d, err := model.ParseDifficulty(r.Difficulty)
		if err != nil {
			errs = append(errs, fmt.Errorf("item %q: %w", id, err))
			continue
		}
		c.byID[id] = len(c.items)
		c.items = append(c.items, Item{
			ID:         id,
			Title:      strings.TrimSpace(r.Title),
			Difficulty: d,
			Category:   strings.TrimSpace(r.Category),
		})
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid catalog: %w", errors.Join(errs...))
	}
	return c, nil
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// Items returns the items in file order.
func (c *Catalog) Items() []Item {
	if c == nil {
		return nil
	}
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Lookup returns the item with the given id.
func (c *Catalog) Lookup(id string) (Item, bool) {
	if c == nil {
		return Item{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Categories maps item id to category. Items without a category are omitted.
func (c *Catalog) Categories() map[string]string {
	out := make(map[string]string)
	if c == nil {
		return out
	}
	for _, it := range c.items {
		if it.Category != "" {
			out[it.ID] = it.Category
		}
	}
	return out
}

// CategoryNames returns the distinct category names, sorted.
func (c *Catalog) CategoryNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, cat := range c.Categories() {
		if !seen[cat] {
			seen[cat] = true
			names = append(names, cat)
		}
	}
	sort.Strings(names)
	return names
}
