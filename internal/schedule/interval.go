// Package schedule implements review interval and daily streak arithmetic.
//
// Intervals grow as ease^(reviewCount-1) days, an absolute function of the
// review count. No previous interval is stored, so two items with the same
// review count and confidence always get the same interval.
package schedule

import (
	"math"
	"time"
)

const (
	// MinConfidence and MaxConfidence bound the self-rating scale.
	MinConfidence = 1
	MaxConfidence = 5

	// FallbackEase applies to any confidence without an entry in easeByConfidence.
	FallbackEase = 1.5

	// MaxIntervalDays caps how far into the future an item can be scheduled.
	MaxIntervalDays = 180.0

	// DayMillis is one day in milliseconds.
	DayMillis = 86_400_000
)

var easeByConfidence = map[int]float64{
	5: 2.5,
	4: 2.0,
	3: 1.5,
	2: 1.2,
}

// ValidConfidence reports whether c is on the 1..5 scale.
func ValidConfidence(c int) bool {
	return c >= MinConfidence && c <= MaxConfidence
}

// EaseFactor returns the growth multiplier for a confidence rating.
func EaseFactor(confidence int) float64 {
	if e, ok := easeByConfidence[confidence]; ok {
		return e
	}
	return FallbackEase
}

// IntervalDays returns the number of days until the next review.
// reviewCount is the count after recording the triggering solve.
func IntervalDays(reviewCount, confidence int) float64 {
	// Forgetting always collapses to daily review.
	if confidence == MinConfidence {
		return 1
	}
	if reviewCount <= 1 {
		return 1
	}
	days := math.Pow(EaseFactor(confidence), float64(reviewCount-1))
	return math.Min(days, MaxIntervalDays)
}

// NextReview returns the due time for an item solved at anchor.
func NextReview(reviewCount, confidence int, anchor time.Time) time.Time {
	ms := int64(math.Round(IntervalDays(reviewCount, confidence) * DayMillis))
	return anchor.Add(time.Duration(ms) * time.Millisecond)
}
