package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5
)

// Rating is the single score a user gives a store. At most one exists per
// (UserID, StoreID); a later submission replaces Value.
type Rating struct {
	UserID    string    `json:"userId"`
	StoreID   string    `json:"storeId"`
	Value     int       `json:"rating"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ValidateRatingValue rejects anything outside [MinRating, MaxRating].
func ValidateRatingValue(v int) error {
	if v < MinRating || v > MaxRating {
		return Invalid("rating must be between %d and %d, got %d", MinRating, MaxRating, v)
	}
	return nil
}

// Average is the mean of a set of ratings. A zero Count means there is no
// data and Value is nil; it is never reported as 0.
type Average struct {
	Value *float64 `json:"value"`
	Count int64    `json:"count"`
}

// NewAverage builds an Average from a mean and the number of ratings behind it.
func NewAverage(mean float64, count int64) Average {
	if count <= 0 {
		return Average{}
	}
	return Average{Value: &mean, Count: count}
}

// HasData reports whether at least one rating contributed to the average.
func (a Average) HasData() bool {
	return a.Count > 0 && a.Value != nil
}
