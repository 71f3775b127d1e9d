package patient

import (
	"context"
	"io"

	"github.com/hms/hms/internal/platform/apperror"
	"github.com/hms/hms/internal/platform/blobstore"
)

type Service struct {
	patients Repository
	records  RecordRepository
	visits   VisitSource
	blobs    blobstore.Store
}

func NewService(patients Repository, records RecordRepository, visits VisitSource, blobs blobstore.Store) *Service {
	return &Service{patients: patients, records: records, visits: visits, blobs: blobs}
}

func (s *Service) Register(ctx context.Context, p *Patient) error {
	if p.Name == "" {
		return apperror.Validation("name is required")
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	if !ValidStatus(p.Status) {
		return apperror.Validation("invalid status: %s", p.Status)
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) Get(ctx context.Context, id int64) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, p *Patient) error {
	if p.Name == "" {
		return apperror.Validation("name is required")
	}
	if !ValidStatus(p.Status) {
		return apperror.Validation("invalid status: %s", p.Status)
	}
	return s.patients.Update(ctx, p)
}

// Delete removes the patient and everything it owns. The cascade is one
// statement at the store, so no partial cascade can survive a failure.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.patients.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	return s.patients.List(ctx, limit, offset)
}

// Profile assembles the patient with its appointments, the flattened
// prescription union and its medical records.
func (s *Service) Profile(ctx context.Context, id int64) (*Profile, error) {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	appts, scripts, err := s.visits.VisitsByPatient(ctx, id)
	if err != nil {
		return nil, err
	}
	recs, err := s.records.ListByPatient(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Profile{Patient: p, Appointments: appts, Prescriptions: scripts, Records: recs}, nil
}

// UploadRecord stores the file before the metadata row commits: a failure can
// orphan a blob but never leave a record pointing at nothing.
func (s *Service) UploadRecord(ctx context.Context, patientID int64, originalName string, content io.Reader) (*MedicalRecord, error) {
	ok, err := s.patients.Exists(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NotFound("patient %d", patientID)
	}
	if !blobstore.AllowedFile(originalName) {
		return nil, apperror.Validation("file type not allowed: %s", originalName)
	}
	name := blobstore.GenerateName(originalName)
	if _, err := s.blobs.Put(ctx, name, content); err != nil {
		return nil, err
	}
	rec := &MedicalRecord{Filename: name, PatientID: patientID}
	if err := s.records.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// DownloadRecord returns the record and its content. The caller closes the
// reader.
func (s *Service) DownloadRecord(ctx context.Context, id int64) (*MedicalRecord, io.ReadCloser, error) {
	rec, err := s.records.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.blobs.Get(ctx, rec.Filename)
	if err != nil {
		return nil, nil, err
	}
	return rec, rc, nil
}
