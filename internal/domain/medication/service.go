package medication

import (
	"context"

	"github.com/hms/hms/internal/platform/apperror"
)

type Service struct {
	meds Repository
}

func NewService(meds Repository) *Service {
	return &Service{meds: meds}
}

func (s *Service) Add(ctx context.Context, m *Medication) error {
	if m.Name == "" {
		return apperror.Validation("name is required")
	}
	if m.StockQuantity < 0 {
		return apperror.Validation("stock_quantity must not be negative")
	}
	return s.meds.Create(ctx, m)
}

func (s *Service) Get(ctx context.Context, id int64) (*Medication, error) {
	return s.meds.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, m *Medication) error {
	if m.Name == "" {
		return apperror.Validation("name is required")
	}
	if m.StockQuantity < 0 {
		return apperror.Validation("stock_quantity must not be negative")
	}
	return s.meds.Update(ctx, m)
}

// SetStock writes an absolute quantity. Negative values are rejected here and
// again by the store's check constraint.
func (s *Service) SetStock(ctx context.Context, id int64, quantity int) error {
	if quantity < 0 {
		return apperror.Validation("stock_quantity must not be negative")
	}
	return s.meds.UpdateStock(ctx, id, quantity)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.meds.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Medication, int, error) {
	return s.meds.List(ctx, limit, offset)
}
