package store

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/algoviz/practice/internal/model"
)

func isCorrupt(err error) bool {
	return errors.Is(err, ErrCorrupt)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	spent := 420
	base := time.UnixMilli(1735718400123).UTC()
	st := model.NewProgressState()
	st.Items["two-sum"] = model.ProblemProgress{
		ItemID:       "two-sum",
		SolvedAt:     []time.Time{base, base.Add(50 * time.Hour)},
		Difficulty:   model.Easy,
		TimeSpent:    &spent,
		Confidence:   5,
		NextReviewAt: base.Add(110 * time.Hour),
		ReviewCount:  2,
	}
	st.Items["lru-cache"] = model.ProblemProgress{
		ItemID:       "lru-cache",
		SolvedAt:     []time.Time{base},
		Difficulty:   model.Medium,
		Confidence:   2,
		NextReviewAt: base.Add(24 * time.Hour),
		ReviewCount:  1,
	}
	st.LastActivityDate = "2025-01-03"
	st.StreakCount = 2

	b, err := Encode(st)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(b)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(st, got) {
		t.Errorf("round trip mismatch:\nwant %+v\ngot  %+v", st, got)
	}
}

func TestEncodeEmpty(t *testing.T) {
	b, err := Encode(model.NewProgressState())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `{"items":{},"lastActivityDate":"","streakCount":0}`
	if string(b) != want {
		t.Errorf("got %s, want %s", b, want)
	}
}

func TestDecodeWireLayout(t *testing.T) {
	raw := `{
		"items": {
			"two-sum": {
				"itemId": "two-sum",
				"solvedAt": [1735718400000],
				"difficulty": "Easy",
				"timeSpent": 300,
				"confidence": 5,
				"nextReviewAt": 1735804800000,
				"reviewCount": 1
			}
		},
		"lastActivityDate": "2025-01-01",
		"streakCount": 1
	}`
	got, err := Decode([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	p := got.Items["two-sum"]
	if p.NextReviewAt.Sub(p.SolvedAt[0]) != 24*time.Hour {
		t.Errorf("unexpected interval %v", p.NextReviewAt.Sub(p.SolvedAt[0]))
	}
	if p.TimeSpent == nil || *p.TimeSpent != 300 {
		t.Errorf("expected timeSpent 300, got %v", p.TimeSpent)
	}
}

func TestDecodeNormalizes(t *testing.T) {
	raw := `{
		"items": {
			"a": {"itemId": "wrong", "solvedAt": [3000, 1000, 2000], "difficulty": "hard",
			      "confidence": 3, "nextReviewAt": 90000.6, "reviewCount": 7},
			"empty": {"solvedAt": [], "confidence": 3, "nextReviewAt": 0},
			"neg": {"solvedAt": [5], "confidence": 2, "nextReviewAt": 10, "timeSpent": -4}
		},
		"streakCount": -2
	}`
	got, err := Decode([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := got.Items["empty"]; ok {
		t.Error("expected record with no solves to be dropped")
	}
	a := got.Items["a"]
	if a.ItemID != "a" {
		t.Errorf("expected itemId from map key, got %q", a.ItemID)
	}
	if a.ReviewCount != 3 {
		t.Errorf("expected reviewCount reconciled to 3, got %d", a.ReviewCount)
	}
	if a.Difficulty != model.Hard {
		t.Errorf("expected canonical difficulty, got %q", a.Difficulty)
	}
	if !a.SolvedAt[0].Before(a.SolvedAt[1]) || !a.SolvedAt[1].Before(a.SolvedAt[2]) {
		t.Errorf("expected chronological solves, got %v", a.SolvedAt)
	}
	if a.NextReviewAt.UnixMilli() != 90001 {
		t.Errorf("expected rounded millis, got %d", a.NextReviewAt.UnixMilli())
	}
	if got.Items["neg"].TimeSpent != nil {
		t.Error("expected negative timeSpent to be dropped")
	}
	if got.StreakCount != 0 {
		t.Errorf("expected negative streak clamped to 0, got %d", got.StreakCount)
	}
}

func TestDecodeUnknownDifficulty(t *testing.T) {
	raw := `{
		"items": {
			"expert": {"solvedAt": [1000], "difficulty": "Expert", "confidence": 3, "nextReviewAt": 2000},
			"missing": {"solvedAt": [1000], "confidence": 3, "nextReviewAt": 2000}
		}
	}`
	got, err := Decode([]byte(raw))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	for id, p := range got.Items {
		if p.Difficulty != model.DefaultDifficulty {
			t.Errorf("%s: expected difficulty %q, got %q", id, model.DefaultDifficulty, p.Difficulty)
		}
	}
}

func TestDecodeRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{"items":`},
		{"array root", `[]`},
		{"missing items", `{"streakCount": 1}`},
		{"items not object", `{"items": []}`},
		{"solvedAt strings", `{"items": {"a": {"solvedAt": ["yesterday"], "confidence": 3, "nextReviewAt": 1}}}`},
		{"missing nextReviewAt", `{"items": {"a": {"solvedAt": [1], "confidence": 3}}}`},
		{"streak string", `{"items": {}, "streakCount": "3"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.raw))
			if !isCorrupt(err) {
				t.Errorf("expected ErrCorrupt, got %v", err)
			}
		})
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	got, err := m.Load(ctx)
	if err != nil || got != nil {
		t.Fatalf("expected absent state, got %v %v", got, err)
	}

	if err := m.Save(ctx, sampleState(1)); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err = m.Load(ctx)
	if err != nil || got.Items["two-sum"].ReviewCount != 1 {
		t.Fatalf("unexpected load: %+v %v", got, err)
	}

	boom := errors.New("disk full")
	m.FailSaves(boom)
	if err := m.Save(ctx, sampleState(2)); !errors.Is(err, boom) {
		t.Errorf("expected injected error, got %v", err)
	}
	if m.Saves() != 2 {
		t.Errorf("expected 2 save attempts, got %d", m.Saves())
	}

	m.SetRaw([]byte("garbage"))
	if _, err := m.Load(ctx); !isCorrupt(err) {
		t.Errorf("expected ErrCorrupt, got %v", err)
	}
}
