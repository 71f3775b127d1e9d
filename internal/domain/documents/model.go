package documents

import "time"

// Document is metadata for a stored blob. Filename is the generated storage
// name; OriginalFilename is what the uploader called it. Party references are
// optional and unconstrained so the row survives its subjects.
type Document struct {
	ID               int64     `db:"id" json:"id"`
	Filename         string    `db:"filename" json:"filename"`
	OriginalFilename string    `db:"original_filename" json:"original_filename"`
	FileType         *string   `db:"file_type" json:"file_type,omitempty"`
	FileSize         int64     `db:"file_size" json:"file_size"`
	PatientID        *int64    `db:"patient_id" json:"patient_id,omitempty"`
	DoctorID         *int64    `db:"doctor_id" json:"doctor_id,omitempty"`
	Description      *string   `db:"description" json:"description,omitempty"`
	UploadedAt       time.Time `db:"uploaded_at" json:"uploaded_at"`
}
