package entities

import "time"

// Rating bounds
const (
	MinRating = 1
	MaxRating = 5
)

// Review is a peer review left by a user
type Review struct {
	ID      string    `json:"id" bson:"_id"`
	UserID  string    `json:"user" bson:"user"`
	Rating  int       `json:"rating" bson:"rating"`
	Comment string    `json:"comment,omitempty" bson:"comment,omitempty"`
	Date    time.Time `json:"date" bson:"date"`
}

// Validate checks the stored shape of a review.
func (r *Review) Validate() error {
	if r.Rating < MinRating || r.Rating > MaxRating {
		return &ValidationError{Entity: "review", Field: "rating", Failure: FailureOutOfRange,
			Detail: "must be between 1 and 5"}
	}
	return nil
}
