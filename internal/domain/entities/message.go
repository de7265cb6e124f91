package entities

import (
	"strings"
	"time"
)

// Message is a direct message between two users
type Message struct {
	ID     string    `json:"id" bson:"_id"`
	FromID string    `json:"from" bson:"from"`
	ToID   string    `json:"to" bson:"to"`
	Text   string    `json:"text" bson:"text"`
	Date   time.Time `json:"date" bson:"date"`
	Read   bool      `json:"read" bson:"read"`
}

// Validate checks the stored shape of a message. Sender and recipient are
// not required to reference existing users.
func (m *Message) Validate() error {
	switch {
	case m.FromID == "":
		return missing("message", "from")
	case m.ToID == "":
		return missing("message", "to")
	case strings.TrimSpace(m.Text) == "":
		return missing("message", "text")
	}
	return nil
}
