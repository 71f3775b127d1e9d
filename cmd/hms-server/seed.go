package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/hms/hms/internal/config"
	"github.com/hms/hms/internal/domain/appointment"
	"github.com/hms/hms/internal/domain/billing"
	"github.com/hms/hms/internal/domain/doctor"
	"github.com/hms/hms/internal/domain/medication"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/platform/apperror"
	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/internal/platform/db"
)

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load sample data into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			return seed(ctx, pool)
		},
	}
}

func strp(s string) *string     { return &s }
func intp(i int) *int           { return &i }
func floatp(f float64) *float64 { return &f }
func idp(id int64) *int64       { return &id }

// seed loads the sample dataset. It is idempotent: if any doctor already
// exists the database is considered populated and nothing is written.
func seed(ctx context.Context, pool *pgxpool.Pool) error {
	doctors := doctor.NewRepoPG(pool)
	patients := patient.NewRepoPG(pool)
	appointments := appointment.NewRepoPG(pool)
	ledger := billing.NewRepoPG(pool)
	medications := medication.NewRepoPG(pool)

	if _, err := doctors.GetByEmail(ctx, "admin@hospital.com"); err == nil {
		fmt.Println("Database already seeded, nothing to do.")
		return nil
	} else if !errors.Is(err, apperror.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword("password")
	if err != nil {
		return err
	}

	admin := &doctor.Doctor{
		Email:           "admin@hospital.com",
		PasswordHash:    hash,
		Name:            "Dr. Antonio Murray",
		Specialization:  strp("System Admin"),
		Phone:           strp("+255-123-456-789"),
		Hospital:        strp("Mbezi Beach Hospital"),
		ExperienceYears: 10,
		TotalPatients:   1500,
		TotalReviews:    850,
	}
	specialist := &doctor.Doctor{
		Email:           "jackline@hospital.com",
		PasswordHash:    hash,
		Name:            "Dr. Jackline Swai",
		Specialization:  strp("Endocrinologist"),
		Phone:           strp("+255-987-654-321"),
		Hospital:        strp("Mbezi Beach Hospital"),
		ExperienceYears: 8,
		TotalPatients:   2598,
		TotalReviews:    1537,
	}
	for _, d := range []*doctor.Doctor{admin, specialist} {
		if err := doctors.Create(ctx, d); err != nil {
			return fmt.Errorf("seed doctor %s: %w", d.Email, err)
		}
	}

	samplePatients := []*patient.Patient{
		{Name: "Daniel Smith", Age: intp(45), Gender: strp("Male"), Phone: strp("152-660-5591"), Weight: floatp(75), Disease: strp("Diabetes"), Status: patient.StatusActive},
		{Name: "Dora Herrera", Age: intp(32), Gender: strp("Female"), Phone: strp("152-660-5592"), Weight: floatp(54), Disease: strp("Flu"), Status: patient.StatusActive},
		{Name: "Albert Diaz", Age: intp(67), Gender: strp("Male"), Phone: strp("152-660-5593"), Weight: floatp(82), Disease: strp("Cancer"), Status: patient.StatusActive},
		{Name: "Edith Lyons", Age: intp(29), Gender: strp("Female"), Phone: strp("152-660-5594"), Weight: floatp(49), Disease: strp("Liver Disease"), Status: patient.StatusActive},
		{Name: "Martha Fletcher", Age: intp(55), Gender: strp("Female"), Phone: strp("152-660-5595"), Weight: floatp(68), Disease: strp("Lung Disease"), Status: patient.StatusActive},
		{Name: "Glenn Stanley", Age: intp(41), Gender: strp("Male"), Phone: strp("152-660-5596"), Weight: floatp(75), Disease: strp("Cancer"), Status: patient.StatusActive},
		{Name: "Johanna Blake", Age: intp(38), Gender: strp("Female"), Phone: strp("152-660-5597"), Weight: floatp(54), Disease: strp("Diabetes"), Status: patient.StatusActive},
		{Name: "Dustin Ramsey", Age: intp(26), Gender: strp("Male"), Phone: strp("152-660-5598"), Weight: floatp(49), Disease: strp("Liver Disease"), Status: patient.StatusActive},
		{Name: "Evelyn Thomas", Age: intp(63), Gender: strp("Female"), Phone: strp("152-660-5599"), Weight: floatp(71), Disease: strp("Stroke"), Status: patient.StatusActive},
		{Name: "Mamie Mack", Age: intp(52), Gender: strp("Female"), Phone: strp("152-660-5600"), Weight: floatp(65), Disease: strp("Hypertension"), Status: patient.StatusActive},
	}
	for _, p := range samplePatients {
		if err := patients.Create(ctx, p); err != nil {
			return fmt.Errorf("seed patient %s: %w", p.Name, err)
		}
	}

	day := func(d int) time.Time { return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC) }
	docID := []int64{admin.ID, specialist.ID}
	sampleAppointments := []*appointment.Appointment{
		{PatientID: samplePatients[0].ID, DoctorID: docID[0], VisitDate: day(4), VisitTime: "10:00", Diagnosis: strp("Routine checkup"), Status: appointment.StatusAccepted},
		{PatientID: samplePatients[1].ID, DoctorID: docID[1], VisitDate: day(5), VisitTime: "14:30", Diagnosis: strp("Flu symptoms"), Status: appointment.StatusPending},
		{PatientID: samplePatients[2].ID, DoctorID: docID[0], VisitDate: day(6), VisitTime: "09:15", Diagnosis: strp("Cancer treatment"), Status: appointment.StatusPending},
		{PatientID: samplePatients[3].ID, DoctorID: docID[1], VisitDate: day(7), VisitTime: "11:45", Diagnosis: strp("Liver function test"), Status: appointment.StatusPending},
		{PatientID: samplePatients[4].ID, DoctorID: docID[0], VisitDate: day(8), VisitTime: "16:20", Diagnosis: strp("Respiratory issues"), Status: appointment.StatusPending},
	}
	for _, a := range sampleAppointments {
		if err := appointments.Create(ctx, a); err != nil {
			return fmt.Errorf("seed appointment for patient %d: %w", a.PatientID, err)
		}
	}

	sampleIncome := []*billing.Income{
		{Amount: 150.0, Source: strp("Appointment"), PatientID: idp(samplePatients[0].ID), DoctorID: idp(docID[0]), Description: strp("Consultation fee")},
		{Amount: 200.0, Source: strp("Appointment"), PatientID: idp(samplePatients[1].ID), DoctorID: idp(docID[1]), Description: strp("Specialist consultation")},
		{Amount: 5000.0, Source: strp("Operation"), PatientID: idp(samplePatients[2].ID), DoctorID: idp(docID[0]), Description: strp("Surgery procedure")},
		{Amount: 120.0, Source: strp("Appointment"), PatientID: idp(samplePatients[3].ID), DoctorID: idp(docID[1]), Description: strp("Follow-up visit")},
		{Amount: 150.0, Source: strp("Appointment"), PatientID: idp(samplePatients[4].ID), DoctorID: idp(docID[0]), Description: strp("Diagnostic consultation")},
	}
	for _, in := range sampleIncome {
		if err := ledger.Create(ctx, in); err != nil {
			return fmt.Errorf("seed income: %w", err)
		}
	}

	sampleMedications := []*medication.Medication{
		{Name: "Metformin", Dosage: strp("500mg"), Description: strp("Diabetes medication"), StockQuantity: 100, UnitPrice: 15.50},
		{Name: "Amoxicillin", Dosage: strp("250mg"), Description: strp("Antibiotic"), StockQuantity: 75, UnitPrice: 8.25},
		{Name: "Lisinopril", Dosage: strp("10mg"), Description: strp("Blood pressure medication"), StockQuantity: 50, UnitPrice: 12.75},
		{Name: "Paracetamol", Dosage: strp("500mg"), Description: strp("Pain reliever"), StockQuantity: 200, UnitPrice: 3.50},
	}
	for _, m := range sampleMedications {
		if err := medications.Create(ctx, m); err != nil {
			return fmt.Errorf("seed medication %s: %w", m.Name, err)
		}
	}

	fmt.Println("Database seeded with sample data.")
	fmt.Println("Default admin account: admin@hospital.com / password")
	return nil
}
