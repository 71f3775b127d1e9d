package dashboard

import (
	"context"
	"time"
)

const recentLimit = 5

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	var (
		sum Summary
		err error
	)
	if sum.TotalPatients, err = s.repo.CountPatients(ctx); err != nil {
		return nil, err
	}
	if sum.TotalDoctors, err = s.repo.CountDoctors(ctx); err != nil {
		return nil, err
	}
	if sum.TotalOperations, err = s.repo.CountOperations(ctx); err != nil {
		return nil, err
	}
	if sum.TotalIncome, err = s.repo.TotalIncome(ctx); err != nil {
		return nil, err
	}
	if sum.RecoveredPatients, err = s.repo.CountPatientsByStatus(ctx, "Recovered"); err != nil {
		return nil, err
	}
	if sum.DeceasedPatients, err = s.repo.CountPatientsByStatus(ctx, "Deceased"); err != nil {
		return nil, err
	}
	if sum.RecentPatients, err = s.repo.RecentPatients(ctx, recentLimit); err != nil {
		return nil, err
	}
	if sum.PendingAppointments, err = s.repo.RecentPendingAppointments(ctx, recentLimit); err != nil {
		return nil, err
	}
	if sum.TopDoctor, err = s.repo.TopReviewedDoctor(ctx); err != nil {
		return nil, err
	}
	if sum.PatientStatusData, err = s.statusSeries(ctx); err != nil {
		return nil, err
	}
	return &sum, nil
}

// statusSeries builds the twelve-bucket chart series, Jan through Dec, with
// zeros for months that saw no registrations.
func (s *Service) statusSeries(ctx context.Context) ([]MonthlyStatus, error) {
	recovered, err := s.repo.StatusCountsByMonth(ctx, "Recovered")
	if err != nil {
		return nil, err
	}
	deceased, err := s.repo.StatusCountsByMonth(ctx, "Deceased")
	if err != nil {
		return nil, err
	}
	series := make([]MonthlyStatus, 12)
	for i := 0; i < 12; i++ {
		series[i] = MonthlyStatus{
			Month:     time.Month(i + 1).String()[:3],
			Recovered: recovered[i+1],
			Deaths:    deceased[i+1],
		}
	}
	return series, nil
}
