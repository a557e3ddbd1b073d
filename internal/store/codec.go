package store

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/algoviz/practice/internal/model"
)

// wireItem is the persisted shape of one record. Numbers are decoded as
// float64 because older writers stored fractional milliseconds.
type wireItem struct {
	ItemID       string    `json:"itemId"`
	SolvedAt     []float64 `json:"solvedAt"`
	Difficulty   string    `json:"difficulty"`
	TimeSpent    *float64  `json:"timeSpent,omitempty"`
	Confidence   float64   `json:"confidence"`
	NextReviewAt float64   `json:"nextReviewAt"`
	ReviewCount  float64   `json:"reviewCount"`
}

type wireState struct {
	Items            map[string]wireItem `json:"items"`
	LastActivityDate string              `json:"lastActivityDate"`
	StreakCount      float64             `json:"streakCount"`
}

// Encode serializes s into the persisted JSON layout.
func Encode(s *model.ProgressState) ([]byte, error) {
	if s == nil {
		s = model.NewProgressState()
	}
	w := wireState{
		Items:            make(map[string]wireItem, len(s.Items)),
		LastActivityDate: s.LastActivityDate,
		StreakCount:      float64(s.StreakCount),
	}
	for id, p := range s.Items {
		it := wireItem{
			ItemID:       id,
			SolvedAt:     make([]float64, len(p.SolvedAt)),
			Difficulty:   string(p.Difficulty),
			Confidence:   float64(p.Confidence),
			NextReviewAt: float64(p.NextReviewAt.UnixMilli()),
			ReviewCount:  float64(p.ReviewCount),
		}
		for i, t := range p.SolvedAt {
			it.SolvedAt[i] = float64(t.UnixMilli())
		}
		if p.TimeSpent != nil {
			ts := float64(*p.TimeSpent)
			it.TimeSpent = &ts
		}
		w.Items[id] = it
	}
	b, err := json.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("encode progress: %w", err)
	}
	return b, nil
}

// Decode validates and parses a persisted blob. Any failure wraps ErrCorrupt.
// Shape problems the schema allows are normalized rather than rejected.
func Decode(data []byte) (*model.ProgressState, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrCorrupt, err)
	}
	if err := validateState(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var w wireState
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return normalize(w), nil
}

func normalize(w wireState) *model.ProgressState {
	s := model.NewProgressState()
	s.LastActivityDate = w.LastActivityDate
	s.StreakCount = int(math.Max(0, math.Round(w.StreakCount)))

	for key, it := range w.Items {
		if len(it.SolvedAt) == 0 {
			continue
		}
		p := model.ProblemProgress{
			ItemID:       key,
			SolvedAt:     make([]time.Time, len(it.SolvedAt)),
			Difficulty:   model.NormalizeDifficulty(it.Difficulty),
			Confidence:   int(math.Round(it.Confidence)),
			NextReviewAt: fromMillis(it.NextReviewAt),
		}
		for i, ms := range it.SolvedAt {
			p.SolvedAt[i] = fromMillis(ms)
		}
		sort.SliceStable(p.SolvedAt, func(i, j int) bool {
			return p.SolvedAt[i].Before(p.SolvedAt[j])
		})
		p.ReviewCount = len(p.SolvedAt)
		if it.TimeSpent != nil && *it.TimeSpent >= 0 {
			ts := int(math.Round(*it.TimeSpent))
			p.TimeSpent = &ts
		}
		s.Items[key] = p
	}
	return s
}

func fromMillis(ms float64) time.Time {
	return time.UnixMilli(int64(math.Round(ms))).UTC()
}
