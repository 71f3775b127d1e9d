package appointment

import (
	"context"

	"github.com/hms/hms/internal/platform/apperror"
)

type Service struct {
	appointments  Repository
	prescriptions PrescriptionRepository
	patients      PatientDirectory
	doctors       DoctorDirectory
}

func NewService(appointments Repository, prescriptions PrescriptionRepository, patients PatientDirectory, doctors DoctorDirectory) *Service {
	return &Service{
		appointments:  appointments,
		prescriptions: prescriptions,
		patients:      patients,
		doctors:       doctors,
	}
}

// Book creates the appointment with status Pending no matter what the caller
// supplied, after checking that both referenced parties exist.
func (s *Service) Book(ctx context.Context, a *Appointment) error {
	if a.VisitDate.IsZero() {
		return apperror.Validation("visit_date is required")
	}
	if a.VisitTime == "" {
		return apperror.Validation("visit_time is required")
	}
	ok, err := s.patients.Exists(ctx, a.PatientID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.Constraint("patient %d does not exist", a.PatientID)
	}
	ok, err = s.doctors.Exists(ctx, a.DoctorID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.Constraint("doctor %d does not exist", a.DoctorID)
	}
	a.Status = StatusPending
	return s.appointments.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, id int64) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

// UpdateStatus accepts any member of the closed enum; there is no transition
// graph, so moving backward is allowed.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) error {
	if !ValidStatus(status) {
		return apperror.Validation("invalid status: %s", status)
	}
	return s.appointments.UpdateStatus(ctx, id, status)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*Appointment, error) {
	return s.appointments.ListByPatient(ctx, patientID)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID int64) ([]*Appointment, error) {
	return s.appointments.ListByDoctor(ctx, doctorID)
}

func (s *Service) Prescribe(ctx context.Context, p *Prescription) error {
	if p.Medication == "" {
		return apperror.Validation("medication is required")
	}
	if p.Dosage == "" {
		return apperror.Validation("dosage is required")
	}
	ok, err := s.appointments.Exists(ctx, p.AppointmentID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.Constraint("appointment %d does not exist", p.AppointmentID)
	}
	return s.prescriptions.Create(ctx, p)
}

func (s *Service) Prescriptions(ctx context.Context, appointmentID int64) ([]*Prescription, error) {
	return s.prescriptions.ListByAppointment(ctx, appointmentID)
}

// PatientHistory returns the patient's appointments plus the flattened union
// of prescriptions across them, for profile assembly.
func (s *Service) PatientHistory(ctx context.Context, patientID int64) ([]*Appointment, []*Prescription, error) {
	appts, err := s.appointments.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, nil, err
	}
	scripts, err := s.prescriptions.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, nil, err
	}
	return appts, scripts, nil
}
