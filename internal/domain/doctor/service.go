package doctor

import (
	"context"
	"sort"
	"time"

	"github.com/hms/hms/internal/platform/apperror"
	"github.com/hms/hms/internal/platform/auth"
)

type Service struct {
	doctors      Repository
	availability AvailabilityRepository
	visits       VisitSource
	tokens       *auth.TokenIssuer
}

func NewService(doctors Repository, availability AvailabilityRepository, visits VisitSource, tokens *auth.TokenIssuer) *Service {
	return &Service{doctors: doctors, availability: availability, visits: visits, tokens: tokens}
}

// Weekday converts a calendar date to the Monday=0 .. Sunday=6 index used by
// the availability set.
func Weekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func (s *Service) Register(ctx context.Context, d *Doctor, password string) error {
	if d.Email == "" {
		return apperror.Validation("email is required")
	}
	if d.Name == "" {
		return apperror.Validation("name is required")
	}
	if password == "" {
		return apperror.Validation("password is required")
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	d.PasswordHash = hash
	return s.doctors.Create(ctx, d)
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (*Doctor, string, error) {
	d, err := s.doctors.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", apperror.Unauthorized("invalid credentials")
	}
	if !auth.VerifyPassword(password, d.PasswordHash) {
		return nil, "", apperror.Unauthorized("invalid credentials")
	}
	token, err := s.tokens.Issue(d.ID, d.Email)
	if err != nil {
		return nil, "", err
	}
	return d, token, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) Update(ctx context.Context, d *Doctor) error {
	if d.Email == "" {
		return apperror.Validation("email is required")
	}
	if d.Name == "" {
		return apperror.Validation("name is required")
	}
	return s.doctors.Update(ctx, d)
}

// Delete removes the doctor and its availability. Historical appointments
// keep their doctor_id and dangle.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.doctors.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.List(ctx, limit, offset)
}

// ReplaceAvailability swaps the doctor's whole set of weekdays atomically.
// Input is deduplicated; order does not matter.
func (s *Service) ReplaceAvailability(ctx context.Context, doctorID int64, days []int) error {
	ok, err := s.doctors.Exists(ctx, doctorID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NotFound("doctor %d", doctorID)
	}
	seen := make(map[int]bool, len(days))
	var deduped []int
	for _, day := range days {
		if day < 0 || day > 6 {
			return apperror.Validation("day_of_week out of range: %d", day)
		}
		if seen[day] {
			continue
		}
		seen[day] = true
		deduped = append(deduped, day)
	}
	sort.Ints(deduped)
	return s.availability.Replace(ctx, doctorID, deduped)
}

func (s *Service) Availability(ctx context.Context, doctorID int64) ([]int, error) {
	ok, err := s.doctors.Exists(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NotFound("doctor %d", doctorID)
	}
	return s.availability.DaysFor(ctx, doctorID)
}

// AvailableOn returns every doctor whose availability set contains the
// weekday of the given date.
func (s *Service) AvailableOn(ctx context.Context, date time.Time) ([]*Doctor, error) {
	return s.doctors.ListAvailableOn(ctx, Weekday(date))
}

func (s *Service) Profile(ctx context.Context, id int64) (*Profile, error) {
	d, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	days, err := s.availability.DaysFor(ctx, id)
	if err != nil {
		return nil, err
	}
	appts, err := s.visits.VisitsByDoctor(ctx, id)
	if err != nil {
		return nil, err
	}
	return &Profile{Doctor: d, Days: days, Appointments: appts}, nil
}
