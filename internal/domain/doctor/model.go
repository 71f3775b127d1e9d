package doctor

// Doctor is the authenticated identity of the system. The password hash never
// leaves the server.
type Doctor struct {
	ID              int64   `db:"id" json:"id"`
	Email           string  `db:"email" json:"email"`
	PasswordHash    string  `db:"password_hash" json:"-"`
	Name            string  `db:"name" json:"name"`
	Specialization  *string `db:"specialization" json:"specialization,omitempty"`
	Phone           *string `db:"phone" json:"phone,omitempty"`
	Hospital        *string `db:"hospital" json:"hospital,omitempty"`
	ExperienceYears int     `db:"experience_years" json:"experience_years"`
	TotalPatients   int     `db:"total_patients" json:"total_patients"`
	TotalReviews    int     `db:"total_reviews" json:"total_reviews"`
	Bio             *string `db:"bio" json:"bio,omitempty"`
}

// Weekdays use the Monday=0 .. Sunday=6 convention throughout; Weekday
// converts from the standard library's Sunday-first numbering.

// ProfileAppointment is the visit shape embedded in a doctor profile, filled
// by an adapter over the appointment domain.
type ProfileAppointment struct {
	ID        int64   `json:"id"`
	VisitDate string  `json:"visit_date"`
	VisitTime string  `json:"visit_time"`
	Diagnosis *string `json:"diagnosis,omitempty"`
	Status    string  `json:"status"`
	PatientID int64   `json:"patient_id"`
}

// Profile assembles a doctor with its availability set and appointments.
type Profile struct {
	Doctor       *Doctor              `json:"doctor"`
	Days         []int                `json:"availability"`
	Appointments []ProfileAppointment `json:"appointments"`
}
