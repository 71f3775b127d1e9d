package inbox

import (
	"context"

	"github.com/hms/hms/internal/platform/apperror"
)

type Service struct {
	messages Repository
	doctors  DoctorDirectory
}

func NewService(messages Repository, doctors DoctorDirectory) *Service {
	return &Service{messages: messages, doctors: doctors}
}

// Send stores a message from the authenticated doctor. The sender is taken
// from the session identity, never from the request body.
func (s *Service) Send(ctx context.Context, senderID, receiverID int64, subject, content string) (*Message, error) {
	if senderID == 0 {
		return nil, apperror.Unauthorized("no sender identity")
	}
	if content == "" {
		return nil, apperror.Validation("content is required")
	}
	ok, err := s.doctors.Exists(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.Constraint("receiver %d does not exist", receiverID)
	}
	m := &Message{SenderID: &senderID, ReceiverID: &receiverID, Content: content}
	if subject != "" {
		m.Subject = &subject
	}
	if err := s.messages.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Mailbox returns the doctor's sent and received messages as two lists, each
// ordered newest first.
func (s *Service) Mailbox(ctx context.Context, doctorID int64) (*Mailbox, error) {
	sent, err := s.messages.ListSent(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	received, err := s.messages.ListReceived(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	return &Mailbox{Sent: sent, Received: received}, nil
}

// MarkRead flips the read flag. Only the receiver may do so.
func (s *Service) MarkRead(ctx context.Context, doctorID, messageID int64) error {
	m, err := s.messages.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if m.ReceiverID == nil || *m.ReceiverID != doctorID {
		return apperror.Unauthorized("message %d is not addressed to doctor %d", messageID, doctorID)
	}
	return s.messages.MarkRead(ctx, messageID)
}
