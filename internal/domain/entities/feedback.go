package entities

import "time"

// Mood classifies a feedback submission
type Mood string

// Mood values
const (
	MoodFine     Mood = "Fine"
	MoodTired    Mood = "Tired"
	MoodStressed Mood = "Stressed"
)

// Moods lists every accepted mood in display order.
var Moods = []Mood{MoodFine, MoodTired, MoodStressed}

// Valid reports whether m is one of the accepted moods.
func (m Mood) Valid() bool {
	for _, known := range Moods {
		if m == known {
			return true
		}
	}
	return false
}

// Role is the classification of the submitter, captured when feedback is filed
type Role string

// Role values
const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// Feedback is a single mood check-in
type Feedback struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user" bson:"user"`
	Role      Role      `json:"role" bson:"role"`
	Mood      Mood      `json:"mood" bson:"mood"`
	Note      string    `json:"note,omitempty" bson:"note,omitempty"`
	Date      time.Time `json:"date" bson:"date"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Validate checks the stored shape of a feedback record.
func (f *Feedback) Validate() error {
	if f.Mood == "" {
		return missing("feedback", "mood")
	}
	if !f.Mood.Valid() {
		return &ValidationError{Entity: "feedback", Field: "mood", Failure: FailureInvalidEnum,
			Detail: "must be one of Fine, Tired, Stressed"}
	}
	if f.Role != RoleStudent && f.Role != RoleTeacher {
		return &ValidationError{Entity: "feedback", Field: "role", Failure: FailureInvalidEnum,
			Detail: "must be student or teacher"}
	}
	return nil
}
