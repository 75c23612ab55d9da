package domain

import (
	"math"
	"time"
)

// Review is one reader review for a book. Reviews are append-only: they are
// never edited or removed once submitted.
type Review struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Stars       int       `json:"stars"`
	Text        string    `json:"text"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// MeanRating computes the average star rating over a full review list,
// rounded to one decimal. Returns 0 for an empty list.
//
// The derived rating in BookMeta is always recomputed from the complete list,
// never adjusted incrementally.
func MeanRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}

	var sum int
	for _, r := range reviews {
		sum += r.Stars
	}

	mean := float64(sum) / float64(len(reviews))
	return Round1(mean)
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
