package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hms/hms/internal/platform/apperror"
)

type mockRepo struct {
	rows   []*Income
	nextID int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{nextID: 1}
}

func (m *mockRepo) Create(_ context.Context, in *Income) error {
	in.ID = m.nextID
	m.nextID++
	in.EarnedAt = time.Now()
	cp := *in
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Income, int, error) {
	return m.rows, len(m.rows), nil
}

func (m *mockRepo) Total(_ context.Context) (float64, error) {
	var sum float64
	for _, in := range m.rows {
		sum += in.Amount
	}
	return sum, nil
}

type staticDirectory map[int64]bool

func (d staticDirectory) Exists(_ context.Context, id int64) (bool, error) {
	return d[id], nil
}

func newTestService(repo *mockRepo) *Service {
	return NewService(repo, staticDirectory{1: true}, staticDirectory{1: true})
}

func TestRecord(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	src := "Appointment"
	in := &Income{Amount: 150, Source: &src}
	if err := svc.Record(context.Background(), in); err != nil {
		t.Fatalf("record: %v", err)
	}
	if in.ID == 0 {
		t.Fatal("expected assigned id")
	}
}

func TestRecord_MissingAmount(t *testing.T) {
	svc := newTestService(newMockRepo())
	err := svc.Record(context.Background(), &Income{})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRecord_UnknownReferencesRejected(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	patientID := int64(9999)
	doctorID := int64(8888)

	err := svc.Record(context.Background(), &Income{Amount: 150, PatientID: &patientID})
	if !errors.Is(err, apperror.ErrConstraint) {
		t.Fatalf("expected constraint error for unknown patient, got %v", err)
	}
	err = svc.Record(context.Background(), &Income{Amount: 150, DoctorID: &doctorID})
	if !errors.Is(err, apperror.ErrConstraint) {
		t.Fatalf("expected constraint error for unknown doctor, got %v", err)
	}
	if len(repo.rows) != 0 {
		t.Fatal("no row may reference an absent patient or doctor")
	}
}

func TestRecord_KnownReferencesAccepted(t *testing.T) {
	svc := newTestService(newMockRepo())
	patientID := int64(1)
	doctorID := int64(1)
	in := &Income{Amount: 150, PatientID: &patientID, DoctorID: &doctorID}
	if err := svc.Record(context.Background(), in); err != nil {
		t.Fatalf("record: %v", err)
	}
	if in.ID == 0 {
		t.Fatal("expected assigned id")
	}
}

func TestTotal_EmptyLedgerIsZero(t *testing.T) {
	svc := newTestService(newMockRepo())
	sum, err := svc.Total(context.Background())
	if err != nil {
		t.Fatalf("total over empty ledger must not fail: %v", err)
	}
	if sum != 0 {
		t.Fatalf("expected 0, got %f", sum)
	}
}

func TestTotal_Sums(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	for _, amount := range []float64{150, 200, 5000, 120, 150} {
		if err := svc.Record(context.Background(), &Income{Amount: amount}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	sum, err := svc.Total(context.Background())
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if sum != 5620 {
		t.Fatalf("expected 5620, got %f", sum)
	}
}
