package entities

import (
	"strings"
	"time"
)

// User represents a registered student or teacher
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password"`
	School       string    `json:"school,omitempty" bson:"school,omitempty"`
	IsTeacher    bool      `json:"isTeacher" bson:"isTeacher"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Role returns the role a feedback submission made by this user is filed under.
func (u *User) Role() Role {
	if u.IsTeacher {
		return RoleTeacher
	}
	return RoleStudent
}

// Validate checks the stored shape of a user.
func (u *User) Validate() error {
	switch {
	case strings.TrimSpace(u.Name) == "":
		return missing("user", "name")
	case strings.TrimSpace(u.Email) == "":
		return missing("user", "email")
	case u.PasswordHash == "":
		return missing("user", "password")
	}
	return nil
}
