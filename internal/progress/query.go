package progress

import (
	"sort"

	"github.com/algoviz/practice/internal/model"
	"github.com/algoviz/practice/internal/schedule"
)

// GetProgress returns the record for itemID, or false if it was never solved.
func (s *Scheduler) GetProgress(itemID string) (model.ProblemProgress, bool) {
	p, ok := s.current().Items[itemID]
	if !ok {
		return model.ProblemProgress{}, false
	}
	return p.Clone(), true
}

// GetSolvedItems returns every record, ordered by item id.
func (s *Scheduler) GetSolvedItems() []model.ProblemProgress {
	cur := s.current()
	out := make([]model.ProblemProgress, 0, len(cur.Items))
	for _, id := range cur.SortedIDs() {
		out = append(out, cur.Items[id].Clone())
	}
	return out
}

// GetDueForReview returns records with NextReviewAt at or before now,
// soonest due first.
func (s *Scheduler) GetDueForReview() []model.ProblemProgress {
	now := s.clock()
	var due []model.ProblemProgress
	for _, p := range s.current().Items {
		if p.IsDue(now) {
			due = append(due, p.Clone())
		}
	}

	sort.Slice(due, func(i, j int) bool {
		if !due[i].NextReviewAt.Equal(due[j].NextReviewAt) {
			return due[i].NextReviewAt.Before(due[j].NextReviewAt)
		}
		return due[i].ItemID < due[j].ItemID
	})
	return due
}

// GetStreak returns the live streak: the stored count if there was activity
// today or yesterday, otherwise 0. Stored state is not modified.
func (s *Scheduler) GetStreak() int {
	cur := s.current()
	return schedule.LiveStreak(cur.LastActivityDate, cur.StreakCount, s.clock(), s.loc)
}

// GetRecentActivity returns the newest limit solve events across all items.
func (s *Scheduler) GetRecentActivity(limit int) []model.ActivityEvent {
	if limit <= 0 {
		return nil
	}
	var events []model.ActivityEvent
	for _, p := range s.current().Items {
		for _, at := range p.SolvedAt {
			events = append(events, model.ActivityEvent{ItemID: p.ItemID, Difficulty: p.Difficulty, At: at})
		}
	}

	sort.Slice(events, func(i, j int) bool {
		if !events[i].At.Equal(events[j].At) {
			return events[i].At.After(events[j].At)
		}
		return events[i].ItemID < events[j].ItemID
	})
	if len(events) > limit {
		events = events[:limit]
	}
	return events
}

// GetCountsByDifficulty counts solved items per difficulty. Every known
// difficulty is present in the result.
func (s *Scheduler) GetCountsByDifficulty() map[model.Difficulty]int {
	return countByDifficulty(s.current())
}

func countByDifficulty(st *model.ProgressState) map[model.Difficulty]int {
	counts := make(map[model.Difficulty]int, len(model.Difficulties))
	for _, d := range model.Difficulties {
		counts[d] = 0
	}
	for _, p := range st.Items {
		if model.ValidDifficulties[p.Difficulty] {
			counts[p.Difficulty]++
		}
	}
	return counts
}

// GetCountsByCategory aggregates solved/total counts per category using a
// caller-supplied item id -> category mapping. Solved items missing from the
// mapping are not counted.
func (s *Scheduler) GetCountsByCategory(categories map[string]string) map[string]model.CategoryCount {
	cur := s.current()
	out := make(map[string]model.CategoryCount)
	for id, cat := range categories {
		c := out[cat]
		c.Total++
		if _, ok := cur.Items[id]; ok {
			c.Solved++
		}
		out[cat] = c
	}
	return out
}

// Summary aggregates the current state.
func (s *Scheduler) Summary() model.Summary {
	cur := s.current()
	now := s.clock()
	sum := model.Summary{
		TotalSolved:      len(cur.Items),
		Streak:           schedule.LiveStreak(cur.LastActivityDate, cur.StreakCount, now, s.loc),
		LastActivityDate: cur.LastActivityDate,
		ByDifficulty:     countByDifficulty(cur),
	}
	for _, p := range cur.Items {
		sum.TotalReviews += p.ReviewCount
		if p.IsDue(now) {
			sum.DueNow++
		}
	}
	return sum
}
