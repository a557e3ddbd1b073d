// Package model defines the core practice progress data types.
package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Difficulty is the informational difficulty label of a practice item.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// DefaultDifficulty is recorded when no valid label is known for an item.
const DefaultDifficulty = Medium

// ErrUnknownDifficulty is returned when a difficulty label is not recognised.
var ErrUnknownDifficulty = errors.New("unknown difficulty")

// ValidDifficulties are the allowed difficulty labels.
var ValidDifficulties = map[Difficulty]bool{
	Easy:   true,
	Medium: true,
	Hard:   true,
}

// Difficulties lists the labels in display order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// ParseDifficulty maps a case-insensitive label to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	for _, d := range Difficulties {
		if strings.EqualFold(strings.TrimSpace(s), string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q (valid: Easy, Medium, Hard)", ErrUnknownDifficulty, s)
}

// NormalizeDifficulty returns the canonical label for s, or
// DefaultDifficulty when s is empty or unknown.
func NormalizeDifficulty(s string) Difficulty {
	if d, err := ParseDifficulty(s); err == nil {
		return d
	}
	return DefaultDifficulty
}

// ProblemProgress is the practice history of a single item.
type ProblemProgress struct {
	ItemID       string      `json:"item_id"`
	SolvedAt     []time.Time `json:"solved_at"`
	Difficulty   Difficulty  `json:"difficulty"`
	TimeSpent    *int        `json:"time_spent,omitempty"` // seconds
	Confidence   int         `json:"confidence"`
	NextReviewAt time.Time   `json:"next_review_at"`
	ReviewCount  int         `json:"review_count"`
}

// IsDue reports whether the item is due at now (at or past NextReviewAt).
func (p ProblemProgress) IsDue(now time.Time) bool {
	return !now.Before(p.NextReviewAt)
}

// LastSolvedAt returns the most recent solve time, or the zero time.
func (p ProblemProgress) LastSolvedAt() time.Time {
	if len(p.SolvedAt) == 0 {
		return time.Time{}
	}
	return p.SolvedAt[len(p.SolvedAt)-1]
}

// Clone returns a copy that shares no mutable memory with p.
func (p ProblemProgress) Clone() ProblemProgress {
	c := p
	c.SolvedAt = append([]time.Time(nil), p.SolvedAt...)
	if p.TimeSpent != nil {
		ts := *p.TimeSpent
		c.TimeSpent = &ts
	}
	return c
}

// ProgressState is the whole durable practice state.
type ProgressState struct {
	Items            map[string]ProblemProgress `json:"items"`
	LastActivityDate string                     `json:"last_activity_date"` // YYYY-MM-DD
	StreakCount      int                        `json:"streak_count"`
}

// NewProgressState returns an empty state.
func NewProgressState() *ProgressState {
	return &ProgressState{Items: make(map[string]ProblemProgress)}
}

// Clone returns a deep copy of s.
func (s *ProgressState) Clone() *ProgressState {
	c := &ProgressState{
		Items:            make(map[string]ProblemProgress, len(s.Items)),
		LastActivityDate: s.LastActivityDate,
		StreakCount:      s.StreakCount,
	}
	for id, p := range s.Items {
		c.Items[id] = p.Clone()
	}
	return c
}

// SortedIDs returns the item identifiers in lexical order.
func (s *ProgressState) SortedIDs() []string {
	ids := make([]string, 0, len(s.Items))
	for id := range s.Items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ActivityEvent is one solve of one item.
type ActivityEvent struct {
	ItemID     string     `json:"item_id"`
	Difficulty Difficulty `json:"difficulty"`
	At         time.Time  `json:"at"`
}

// CategoryCount holds solved/total counts for a catalog category.
type CategoryCount struct {
	Solved int `json:"solved"`
	Total  int `json:"total"`
}

// Summary aggregates the state for dashboards.
type Summary struct {
	TotalSolved      int                `json:"total_solved"`
	TotalReviews     int                `json:"total_reviews"`
	DueNow           int                `json:"due_now"`
	Streak           int                `json:"streak"`
	LastActivityDate string             `json:"last_activity_date,omitempty"`
	ByDifficulty     map[Difficulty]int `json:"by_difficulty"`
}
