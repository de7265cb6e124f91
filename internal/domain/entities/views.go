package entities

import "time"

// UserProjection selects which user attributes an expanded reference carries.
type UserProjection uint8

// Projection fields; the id is always included.
const (
	ProjectName UserProjection = 1 << iota
	ProjectEmail
	ProjectSchool
)

// UserSummary is an expanded user reference in a read response
type UserSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	School string `json:"school,omitempty"`
}

// Summarize projects u onto the requested fields. A nil user stays nil so an
// unresolved reference renders as null.
func Summarize(u *User, p UserProjection) *UserSummary {
	if u == nil {
		return nil
	}
	s := &UserSummary{ID: u.ID}
	if p&ProjectName != 0 {
		s.Name = u.Name
	}
	if p&ProjectEmail != 0 {
		s.Email = u.Email
	}
	if p&ProjectSchool != 0 {
		s.School = u.School
	}
	return s
}

// FeedbackEntry is a feedback record with its submitter expanded
type FeedbackEntry struct {
	ID        string       `json:"id"`
	User      *UserSummary `json:"user"`
	Role      Role         `json:"role"`
	Mood      Mood         `json:"mood"`
	Note      string       `json:"note,omitempty"`
	Date      time.Time    `json:"date"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// ReviewEntry is a review with its author expanded
type ReviewEntry struct {
	ID      string       `json:"id"`
	User    *UserSummary `json:"user"`
	Rating  int          `json:"rating"`
	Comment string       `json:"comment,omitempty"`
	Date    time.Time    `json:"date"`
}

// MessageEntry is a message with both parties expanded
type MessageEntry struct {
	ID   string       `json:"id"`
	From *UserSummary `json:"from"`
	To   *UserSummary `json:"to"`
	Text string       `json:"text"`
	Date time.Time    `json:"date"`
	Read bool         `json:"read"`
}
