package inbox

import "time"

// Message is doctor-to-doctor mail. A nil sender means the system wrote it.
// Once created, only the read flag mutates.
type Message struct {
	ID         int64     `db:"id" json:"id"`
	SenderID   *int64    `db:"sender_id" json:"sender_id,omitempty"`
	ReceiverID *int64    `db:"receiver_id" json:"receiver_id,omitempty"`
	Subject    *string   `db:"subject" json:"subject,omitempty"`
	Content    string    `db:"content" json:"content"`
	IsRead     bool      `db:"is_read" json:"is_read"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Mailbox partitions a doctor's messages; each side is independently ordered
// by creation time descending.
type Mailbox struct {
	Sent     []*Message `json:"sent"`
	Received []*Message `json:"received"`
}
