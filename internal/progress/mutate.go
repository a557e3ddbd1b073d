package progress

import (
	"context"
	"fmt"

	"github.com/algoviz/practice/internal/model"
	"github.com/algoviz/practice/internal/notify"
	"github.com/algoviz/practice/internal/schedule"
	"github.com/algoviz/practice/internal/store"
)

// SolveParams holds parameters for recording a solve.
type SolveParams struct {
	ItemID     string
	Difficulty model.Difficulty // empty or unknown keeps the previous value, or DefaultDifficulty
	Confidence int              // 1..5; other values use the fallback ease
	TimeSpent  *int             // seconds; nil keeps the previous value
}

// fork returns a copy of cur whose Items map can be modified. Records are
// shared with cur and must be cloned before their slices are appended to.
func fork(cur *model.ProgressState) *model.ProgressState {
	next := &model.ProgressState{
		Items:            make(map[string]model.ProblemProgress, len(cur.Items)+1),
		LastActivityDate: cur.LastActivityDate,
		StreakCount:      cur.StreakCount,
	}
	for id, p := range cur.Items {
		next.Items[id] = p
	}
	return next
}

// MarkSolved records one solve of an item, reschedules it, advances the
// daily streak, saves the state and notifies subscribers exactly once.
func (s *Scheduler) MarkSolved(ctx context.Context, p SolveParams) model.ProblemProgress {
	now := s.clock()
	if !schedule.ValidConfidence(p.Confidence) {
		s.logger.Debug("confidence outside 1..5, using fallback ease",
			"item", p.ItemID, "confidence", p.Confidence, "ease", schedule.FallbackEase)
	}

	s.mu.Lock()
	cur := s.current()
	next := fork(cur)

	rec, ok := next.Items[p.ItemID]
	if ok {
		rec = rec.Clone()
	} else {
		rec = model.ProblemProgress{ItemID: p.ItemID}
	}

	rec.ReviewCount++
	rec.SolvedAt = append(rec.SolvedAt, now)
	rec.NextReviewAt = schedule.NextReview(rec.ReviewCount, p.Confidence, now)
	rec.Confidence = p.Confidence
	if p.Difficulty != "" {
		if d, err := model.ParseDifficulty(string(p.Difficulty)); err == nil {
			rec.Difficulty = d
		} else {
			s.logger.Debug("unknown difficulty ignored", "item", p.ItemID, "difficulty", p.Difficulty)
		}
	}
	if rec.Difficulty == "" {
		rec.Difficulty = model.DefaultDifficulty
	}
	if p.TimeSpent != nil {
		ts := *p.TimeSpent
		rec.TimeSpent = &ts
	}
	next.Items[p.ItemID] = rec
	next.LastActivityDate, next.StreakCount = schedule.AdvanceStreak(cur.LastActivityDate, cur.StreakCount, now, s.loc)

	e := notify.Event{Kind: notify.KindSolved, ItemID: p.ItemID, At: now}
	s.commit(ctx, next, e)
	s.mu.Unlock()

	s.logger.Info("item solved",
		"item", p.ItemID, "review_count", rec.ReviewCount, "confidence", rec.Confidence,
		"next_review_at", rec.NextReviewAt, "streak", next.StreakCount)
	s.hub.Publish(e)
	return rec.Clone()
}

// ResetAll clears every record and the streak in one mutation.
func (s *Scheduler) ResetAll(ctx context.Context) {
	now := s.clock()

	s.mu.Lock()
	e := notify.Event{Kind: notify.KindReset, At: now}
	s.commit(ctx, model.NewProgressState(), e)
	s.mu.Unlock()

	s.logger.Info("progress reset")
	s.hub.Publish(e)
}

// Export returns the current state in its persisted JSON layout.
func (s *Scheduler) Export() ([]byte, error) {
	return store.Encode(s.current())
}

// Import replaces the whole state with a previously exported blob.
// Unlike startup loading, invalid input is reported to the caller and the
// current state is left untouched.
func (s *Scheduler) Import(ctx context.Context, data []byte) error {
	imported, err := store.Decode(data)
	if err != nil {
		return fmt.Errorf("import progress: %w", err)
	}

	s.mu.Lock()
	e := notify.Event{Kind: notify.KindImported, At: s.clock()}
	s.commit(ctx, imported, e)
	s.mu.Unlock()

	s.logger.Info("progress imported", "items", len(imported.Items))
	s.hub.Publish(e)
	return nil
}
