// AngelaMos | 2026
// entity.go

package message

import (
	"time"
)

type Message struct {
	ID            string    `db:"id"             json:"id"`
	SenderID      string    `db:"sender_id"      json:"sender_id"`
	ReceiverID    string    `db:"receiver_id"    json:"receiver_id"`
	ApplicationID *string   `db:"application_id" json:"application_id,omitempty"`
	Subject       string    `db:"subject"        json:"subject"`
	Content       string    `db:"content"        json:"content"`
	IsRead        bool      `db:"is_read"        json:"is_read"`
	CreatedAt     time.Time `db:"created_at"     json:"created_at"`
}
