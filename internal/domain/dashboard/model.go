package dashboard

import "time"

// Summary is the administrator landing view: counts, the income total, the
// freshest activity and the most reviewed doctor.
type Summary struct {
	TotalPatients       int                  `json:"total_patients"`
	TotalDoctors        int                  `json:"total_doctors"`
	TotalOperations     int                  `json:"total_operations"`
	TotalIncome         float64              `json:"total_income"`
	RecoveredPatients   int                  `json:"recovered_patients"`
	DeceasedPatients    int                  `json:"deceased_patients"`
	RecentPatients      []RecentPatient      `json:"recent_patients"`
	PendingAppointments []PendingAppointment `json:"pending_appointments"`
	TopDoctor           *TopDoctor           `json:"top_doctor,omitempty"`
	PatientStatusData   []MonthlyStatus      `json:"patient_status_data"`
}

// MonthlyStatus is one chart bucket: how many patients registered in that
// calendar month are now recovered or deceased. Always twelve buckets,
// Jan through Dec, zeros included.
type MonthlyStatus struct {
	Month     string `json:"month"`
	Recovered int    `json:"recovered"`
	Deaths    int    `json:"deaths"`
}

type RecentPatient struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Disease      *string   `json:"disease,omitempty"`
	Status       string    `json:"status"`
	RegisteredAt time.Time `json:"registered_at"`
}

type PendingAppointment struct {
	ID        int64     `json:"id"`
	VisitDate time.Time `json:"visit_date"`
	VisitTime string    `json:"visit_time"`
	PatientID int64     `json:"patient_id"`
	DoctorID  int64     `json:"doctor_id"`
	CreatedAt time.Time `json:"created_at"`
}

type TopDoctor struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	TotalReviews int    `json:"total_reviews"`
}
