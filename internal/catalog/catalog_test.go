package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algoviz/practice/internal/model"
)

const sample = `
- id: two-sum
  title: Two Sum
  difficulty: easy
  category: Arrays
- id: 3sum
  title: 3Sum
  difficulty: Medium
  category: Arrays
- id: lru-cache
  title: LRU Cache
  difficulty: HARD
  category: Design
- id: warmup
  title: Warm-up
  difficulty: Easy
`

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sample))
	require.NoError(t, err)
	assert.Equal(t, 4, c.Len())

	it, ok := c.Lookup("lru-cache")
	require.True(t, ok)
	assert.Equal(t, "LRU Cache", it.Title)
	assert.Equal(t, model.Hard, it.Difficulty)

	first, _ := c.Lookup("two-sum")
	assert.Equal(t, model.Easy, first.Difficulty)

	_, ok = c.Lookup("missing")
	assert.False(t, ok)

	assert.Equal(t, "two-sum", c.Items()[0].ID)
}

func TestCategories(t *testing.T) {
	c, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"two-sum":   "Arrays",
		"3sum":      "Arrays",
		"lru-cache": "Design",
	}, c.Categories())
	assert.Equal(t, []string{"Arrays", "Design"}, c.CategoryNames())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		is    error
	}{
		{
			name:  "duplicate id",
			input: "- {id: a, difficulty: Easy}\n- {id: a, difficulty: Hard}\n",
			is:    ErrDuplicateItem,
		},
		{
			name:  "unknown difficulty",
			input: "- {id: a, difficulty: Brutal}\n",
			is:    model.ErrUnknownDifficulty,
		},
		{
			name:  "missing id",
			input: "- {title: nameless, difficulty: Easy}\n",
		},
		{
			name:  "not a list",
			input: "id: a\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestParseReportsAllProblems(t *testing.T) {
	_, err := Parse([]byte("- {id: a, difficulty: Easy}\n- {id: a, difficulty: Easy}\n- {id: b, difficulty: Nope}\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateItem)
	assert.ErrorIs(t, err, model.ErrUnknownDifficulty)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, c.Len())

	_, err = Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNilCatalog(t *testing.T) {
	var c *Catalog
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Categories())
	_, ok := c.Lookup("x")
	assert.False(t, ok)
}
