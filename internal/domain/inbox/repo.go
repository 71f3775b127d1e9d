package inbox

import "context"

type Repository interface {
	Create(ctx context.Context, m *Message) error
	GetByID(ctx context.Context, id int64) (*Message, error)
	ListSent(ctx context.Context, doctorID int64) ([]*Message, error)
	ListReceived(ctx context.Context, doctorID int64) ([]*Message, error)
	MarkRead(ctx context.Context, id int64) error
}

// DoctorDirectory checks that a receiver exists before a message is stored.
type DoctorDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}
