package patient

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hms/hms/internal/platform/apperror"
	"github.com/hms/hms/internal/platform/blobstore"
)

type mockRepo struct {
	patients map[int64]*Patient
	nextID   int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{patients: make(map[int64]*Patient), nextID: 1}
}

func (m *mockRepo) Create(_ context.Context, p *Patient) error {
	p.ID = m.nextID
	m.nextID++
	cp := *p
	m.patients[p.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*Patient, error) {
	p, ok := m.patients[id]
	if !ok {
		return nil, apperror.NotFound("patient %d", id)
	}
	cp := *p
	return &cp, nil
}

func (m *mockRepo) Update(_ context.Context, p *Patient) error {
	if _, ok := m.patients[p.ID]; !ok {
		return apperror.NotFound("patient %d", p.ID)
	}
	cp := *p
	m.patients[p.ID] = &cp
	return nil
}

func (m *mockRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.patients[id]; !ok {
		return apperror.NotFound("patient %d", id)
	}
	delete(m.patients, id)
	return nil
}

func (m *mockRepo) List(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	var items []*Patient
	for _, p := range m.patients {
		items = append(items, p)
	}
	return items, len(m.patients), nil
}

func (m *mockRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := m.patients[id]
	return ok, nil
}

type mockRecordRepo struct {
	records map[int64]*MedicalRecord
	nextID  int64
}

func newMockRecordRepo() *mockRecordRepo {
	return &mockRecordRepo{records: make(map[int64]*MedicalRecord), nextID: 1}
}

func (m *mockRecordRepo) Create(_ context.Context, r *MedicalRecord) error {
	r.ID = m.nextID
	m.nextID++
	cp := *r
	m.records[r.ID] = &cp
	return nil
}

func (m *mockRecordRepo) GetByID(_ context.Context, id int64) (*MedicalRecord, error) {
	r, ok := m.records[id]
	if !ok {
		return nil, apperror.NotFound("medical record %d", id)
	}
	cp := *r
	return &cp, nil
}

func (m *mockRecordRepo) ListByPatient(_ context.Context, patientID int64) ([]*MedicalRecord, error) {
	var items []*MedicalRecord
	for _, r := range m.records {
		if r.PatientID == patientID {
			items = append(items, r)
		}
	}
	return items, nil
}

type emptyVisits struct{}

func (emptyVisits) VisitsByPatient(context.Context, int64) ([]ProfileAppointment, []ProfilePrescription, error) {
	return nil, nil, nil
}

func newTestService() (*Service, *mockRepo, *mockRecordRepo) {
	repo := newMockRepo()
	records := newMockRecordRepo()
	svc := NewService(repo, records, emptyVisits{}, blobstore.NewMemStore())
	return svc, repo, records
}

func TestRegister(t *testing.T) {
	svc, repo, _ := newTestService()
	age := 45
	p := &Patient{Name: "Daniel Smith", Age: &age}
	if err := svc.Register(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if repo.patients[p.ID].Status != StatusActive {
		t.Fatalf("expected default status Active, got %s", repo.patients[p.ID].Status)
	}
}

func TestRegister_MissingName(t *testing.T) {
	svc, _, _ := newTestService()
	err := svc.Register(context.Background(), &Patient{})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdate_InvalidStatus(t *testing.T) {
	svc, _, _ := newTestService()
	p := &Patient{Name: "Dora Herrera"}
	if err := svc.Register(context.Background(), p); err != nil {
		t.Fatalf("register: %v", err)
	}
	p.Status = "Discharged"
	err := svc.Update(context.Background(), p)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdate_StatusTransition(t *testing.T) {
	svc, repo, _ := newTestService()
	p := &Patient{Name: "Albert Diaz"}
	if err := svc.Register(context.Background(), p); err != nil {
		t.Fatalf("register: %v", err)
	}
	p.Status = StatusRecovered
	if err := svc.Update(context.Background(), p); err != nil {
		t.Fatalf("update: %v", err)
	}
	if repo.patients[p.ID].Status != StatusRecovered {
		t.Fatalf("status not persisted: %s", repo.patients[p.ID].Status)
	}
}

func TestDelete_NotFound(t *testing.T) {
	svc, _, _ := newTestService()
	err := svc.Delete(context.Background(), 99)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUploadRecord(t *testing.T) {
	svc, _, records := newTestService()
	p := &Patient{Name: "Edith Lyons"}
	if err := svc.Register(context.Background(), p); err != nil {
		t.Fatalf("register: %v", err)
	}
	rec, err := svc.UploadRecord(context.Background(), p.ID, "scan.pdf", strings.NewReader("pdf bytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if rec.PatientID != p.ID {
		t.Fatalf("record bound to wrong patient: %d", rec.PatientID)
	}
	if rec.Filename == "scan.pdf" {
		t.Fatal("stored name should be generated, not the original")
	}
	if len(records.records) != 1 {
		t.Fatalf("expected one record row, got %d", len(records.records))
	}
}

func TestUploadRecord_UnknownPatient(t *testing.T) {
	svc, _, _ := newTestService()
	_, err := svc.UploadRecord(context.Background(), 42, "scan.pdf", strings.NewReader("x"))
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUploadRecord_DisallowedExtension(t *testing.T) {
	svc, _, _ := newTestService()
	p := &Patient{Name: "Martha Fletcher"}
	if err := svc.Register(context.Background(), p); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := svc.UploadRecord(context.Background(), p.ID, "payload.exe", strings.NewReader("x"))
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDownloadRecord_RoundTrip(t *testing.T) {
	svc, _, _ := newTestService()
	p := &Patient{Name: "Glenn Stanley"}
	if err := svc.Register(context.Background(), p); err != nil {
		t.Fatalf("register: %v", err)
	}
	rec, err := svc.UploadRecord(context.Background(), p.ID, "notes.txt", strings.NewReader("visit notes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	got, rc, err := svc.DownloadRecord(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	defer rc.Close()
	if got.Filename != rec.Filename {
		t.Fatalf("filename mismatch: %s vs %s", got.Filename, rec.Filename)
	}
	buf := make([]byte, 32)
	n, _ := rc.Read(buf)
	if string(buf[:n]) != "visit notes" {
		t.Fatalf("unexpected content: %q", string(buf[:n]))
	}
}

func TestProfile(t *testing.T) {
	svc, _, records := newTestService()
	p := &Patient{Name: "Johanna Blake"}
	if err := svc.Register(context.Background(), p); err != nil {
		t.Fatalf("register: %v", err)
	}
	records.records[1] = &MedicalRecord{ID: 1, Filename: "x.pdf", PatientID: p.ID}
	prof, err := svc.Profile(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if prof.Patient.ID != p.ID {
		t.Fatalf("wrong patient in profile: %d", prof.Patient.ID)
	}
	if len(prof.Records) != 1 {
		t.Fatalf("expected one record, got %d", len(prof.Records))
	}
}
