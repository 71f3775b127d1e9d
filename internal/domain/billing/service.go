package billing

import (
	"context"

	"github.com/hms/hms/internal/platform/apperror"
)

type Service struct {
	ledger   Repository
	patients PatientDirectory
	doctors  DoctorDirectory
}

func NewService(ledger Repository, patients PatientDirectory, doctors DoctorDirectory) *Service {
	return &Service{ledger: ledger, patients: patients, doctors: doctors}
}

func (s *Service) Record(ctx context.Context, in *Income) error {
	if in.Amount == 0 {
		return apperror.Validation("amount is required")
	}
	if in.Amount < 0 {
		return apperror.Validation("amount must be positive")
	}
	if in.PatientID != nil {
		ok, err := s.patients.Exists(ctx, *in.PatientID)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.Constraint("patient %d does not exist", *in.PatientID)
		}
	}
	if in.DoctorID != nil {
		ok, err := s.doctors.Exists(ctx, *in.DoctorID)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.Constraint("doctor %d does not exist", *in.DoctorID)
		}
	}
	return s.ledger.Create(ctx, in)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Income, int, error) {
	return s.ledger.List(ctx, limit, offset)
}

func (s *Service) Total(ctx context.Context) (float64, error) {
	return s.ledger.Total(ctx)
}
