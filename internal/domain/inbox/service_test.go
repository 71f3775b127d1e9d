package inbox

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/hms/hms/internal/platform/apperror"
)

type mockRepo struct {
	messages map[int64]*Message
	nextID   int64
	now      time.Time
}

func newMockRepo() *mockRepo {
	return &mockRepo{messages: make(map[int64]*Message), nextID: 1, now: time.Now()}
}

func (m *mockRepo) Create(_ context.Context, msg *Message) error {
	msg.ID = m.nextID
	m.nextID++
	// Strictly increasing timestamps so descending order is deterministic.
	m.now = m.now.Add(time.Second)
	msg.CreatedAt = m.now
	cp := *msg
	m.messages[msg.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*Message, error) {
	msg, ok := m.messages[id]
	if !ok {
		return nil, apperror.NotFound("message %d", id)
	}
	cp := *msg
	return &cp, nil
}

func (m *mockRepo) ListSent(_ context.Context, doctorID int64) ([]*Message, error) {
	return m.filter(func(msg *Message) bool {
		return msg.SenderID != nil && *msg.SenderID == doctorID
	}), nil
}

func (m *mockRepo) ListReceived(_ context.Context, doctorID int64) ([]*Message, error) {
	return m.filter(func(msg *Message) bool {
		return msg.ReceiverID != nil && *msg.ReceiverID == doctorID
	}), nil
}

func (m *mockRepo) filter(keep func(*Message) bool) []*Message {
	var items []*Message
	for _, msg := range m.messages {
		if keep(msg) {
			items = append(items, msg)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items
}

func (m *mockRepo) MarkRead(_ context.Context, id int64) error {
	msg, ok := m.messages[id]
	if !ok {
		return apperror.NotFound("message %d", id)
	}
	msg.IsRead = true
	return nil
}

type staticDirectory map[int64]bool

func (d staticDirectory) Exists(_ context.Context, id int64) (bool, error) {
	return d[id], nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	svc := NewService(repo, staticDirectory{1: true, 2: true, 3: true})
	return svc, repo
}

func TestSend(t *testing.T) {
	svc, repo := newTestService()
	m, err := svc.Send(context.Background(), 1, 2, "Shift swap", "Can you cover Tuesday?")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if m.SenderID == nil || *m.SenderID != 1 {
		t.Fatalf("wrong sender: %v", m.SenderID)
	}
	if m.IsRead {
		t.Fatal("new message must start unread")
	}
	if len(repo.messages) != 1 {
		t.Fatalf("expected one stored message, got %d", len(repo.messages))
	}
}

func TestSend_NoIdentity(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Send(context.Background(), 0, 2, "", "hello")
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestSend_UnknownReceiver(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Send(context.Background(), 1, 42, "", "hello")
	if !errors.Is(err, apperror.ErrConstraint) {
		t.Fatalf("expected constraint violation, got %v", err)
	}
}

func TestSend_EmptyContent(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Send(context.Background(), 1, 2, "subject only", "")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMailbox_Partitioning(t *testing.T) {
	svc, _ := newTestService()
	// Doctor 1 sends one to 2 and receives one from 3.
	if _, err := svc.Send(context.Background(), 1, 2, "", "outbound"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := svc.Send(context.Background(), 3, 1, "", "inbound"); err != nil {
		t.Fatalf("send: %v", err)
	}
	box, err := svc.Mailbox(context.Background(), 1)
	if err != nil {
		t.Fatalf("mailbox: %v", err)
	}
	if len(box.Sent) != 1 || box.Sent[0].Content != "outbound" {
		t.Fatalf("wrong sent list: %+v", box.Sent)
	}
	if len(box.Received) != 1 || box.Received[0].Content != "inbound" {
		t.Fatalf("wrong received list: %+v", box.Received)
	}
}

func TestMailbox_DescendingOrder(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Send(context.Background(), 2, 1, "", "older"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := svc.Send(context.Background(), 3, 1, "", "newer"); err != nil {
		t.Fatalf("send: %v", err)
	}
	box, err := svc.Mailbox(context.Background(), 1)
	if err != nil {
		t.Fatalf("mailbox: %v", err)
	}
	if len(box.Received) != 2 {
		t.Fatalf("expected 2 received, got %d", len(box.Received))
	}
	if box.Received[0].Content != "newer" {
		t.Fatalf("expected newest first, got %q", box.Received[0].Content)
	}
}

func TestMarkRead(t *testing.T) {
	svc, repo := newTestService()
	m, err := svc.Send(context.Background(), 1, 2, "", "read me")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := svc.MarkRead(context.Background(), 2, m.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if !repo.messages[m.ID].IsRead {
		t.Fatal("message not marked read")
	}
}

func TestMarkRead_NotReceiver(t *testing.T) {
	svc, _ := newTestService()
	m, err := svc.Send(context.Background(), 1, 2, "", "private")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	err = svc.MarkRead(context.Background(), 3, m.ID)
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
