package surgery

import (
	"context"

	"github.com/hms/hms/internal/platform/apperror"
)

type Service struct {
	operations Repository
	patients   PatientDirectory
	doctors    DoctorDirectory
}

func NewService(operations Repository, patients PatientDirectory, doctors DoctorDirectory) *Service {
	return &Service{operations: operations, patients: patients, doctors: doctors}
}

func (s *Service) Schedule(ctx context.Context, op *Operation) error {
	if op.Name == "" {
		return apperror.Validation("name is required")
	}
	if op.PerformedAt.IsZero() {
		return apperror.Validation("performed_at is required")
	}
	if op.Status == "" {
		op.Status = StatusScheduled
	}
	if !ValidStatus(op.Status) {
		return apperror.Validation("invalid status: %s", op.Status)
	}
	ok, err := s.patients.Exists(ctx, op.PatientID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.Constraint("patient %d does not exist", op.PatientID)
	}
	ok, err = s.doctors.Exists(ctx, op.DoctorID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.Constraint("doctor %d does not exist", op.DoctorID)
	}
	return s.operations.Create(ctx, op)
}

func (s *Service) Get(ctx context.Context, id int64) (*Operation, error) {
	return s.operations.GetByID(ctx, id)
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	if !ValidStatus(status) {
		return apperror.Validation("invalid status: %s", status)
	}
	return s.operations.UpdateStatus(ctx, id, status)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Operation, int, error) {
	return s.operations.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*Operation, error) {
	return s.operations.ListByPatient(ctx, patientID)
}
