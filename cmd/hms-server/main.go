package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hms/hms/internal/config"
	"github.com/hms/hms/internal/domain/appointment"
	"github.com/hms/hms/internal/domain/billing"
	"github.com/hms/hms/internal/domain/dashboard"
	"github.com/hms/hms/internal/domain/doctor"
	"github.com/hms/hms/internal/domain/documents"
	"github.com/hms/hms/internal/domain/inbox"
	"github.com/hms/hms/internal/domain/medication"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/domain/surgery"
	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/internal/platform/blobstore"
	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/platform/middleware"
)

// visitSourceAdapter exposes the appointment domain's visit history to the
// patient and doctor packages without either importing the other.
type visitSourceAdapter struct {
	appointments *appointment.Service
}

func (a *visitSourceAdapter) VisitsByPatient(ctx context.Context, patientID int64) ([]patient.ProfileAppointment, []patient.ProfilePrescription, error) {
	appts, scripts, err := a.appointments.PatientHistory(ctx, patientID)
	if err != nil {
		return nil, nil, err
	}

	visits := make([]patient.ProfileAppointment, 0, len(appts))
	for _, ap := range appts {
		visits = append(visits, patient.ProfileAppointment{
			ID:        ap.ID,
			VisitDate: ap.VisitDate.Format("2006-01-02"),
			VisitTime: ap.VisitTime,
			Diagnosis: ap.Diagnosis,
			Status:    ap.Status,
			DoctorID:  ap.DoctorID,
		})
	}

	meds := make([]patient.ProfilePrescription, 0, len(scripts))
	for _, p := range scripts {
		meds = append(meds, patient.ProfilePrescription{
			ID:            p.ID,
			Medication:    p.Medication,
			Dosage:        p.Dosage,
			Notes:         p.Notes,
			AppointmentID: p.AppointmentID,
		})
	}
	return visits, meds, nil
}

func (a *visitSourceAdapter) VisitsByDoctor(ctx context.Context, doctorID int64) ([]doctor.ProfileAppointment, error) {
	appts, err := a.appointments.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	visits := make([]doctor.ProfileAppointment, 0, len(appts))
	for _, ap := range appts {
		visits = append(visits, doctor.ProfileAppointment{
			ID:        ap.ID,
			VisitDate: ap.VisitDate.Format("2006-01-02"),
			VisitTime: ap.VisitTime,
			Diagnosis: ap.Diagnosis,
			Status:    ap.Status,
			PatientID: ap.PatientID,
		})
	}
	return visits, nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "hms-server",
		Short: "Hospital administration API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

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

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

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

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// File storage for medical records and administrative documents.
	blobs, err := blobstore.NewFSStore(cfg.UploadDir)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.UploadDir).Msg("failed to open upload dir")
	}

	issuer := auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.TokenTTLMin)*time.Minute)

	// Repositories
	patientRepo := patient.NewRepoPG(pool)
	recordRepo := patient.NewRecordRepoPG(pool)
	doctorRepo := doctor.NewRepoPG(pool)
	availabilityRepo := doctor.NewAvailabilityRepoPG(pool)
	apptRepo := appointment.NewRepoPG(pool)
	prescriptionRepo := appointment.NewPrescriptionRepoPG(pool)
	medicationRepo := medication.NewRepoPG(pool)
	inboxRepo := inbox.NewRepoPG(pool)
	billingRepo := billing.NewRepoPG(pool)
	surgeryRepo := surgery.NewRepoPG(pool)
	documentRepo := documents.NewRepoPG(pool)
	dashboardRepo := dashboard.NewRepoPG(pool)

	// Services. The appointment service is built first so the visit adapter
	// can feed patient and doctor profiles.
	apptSvc := appointment.NewService(apptRepo, prescriptionRepo, patientRepo, doctorRepo)
	visits := &visitSourceAdapter{appointments: apptSvc}

	patientSvc := patient.NewService(patientRepo, recordRepo, visits, blobs)
	doctorSvc := doctor.NewService(doctorRepo, availabilityRepo, visits, issuer)
	medicationSvc := medication.NewService(medicationRepo)
	inboxSvc := inbox.NewService(inboxRepo, doctorRepo)
	billingSvc := billing.NewService(billingRepo, patientRepo, doctorRepo)
	surgerySvc := surgery.NewService(surgeryRepo, patientRepo, doctorRepo)
	documentSvc := documents.NewService(documentRepo, patientRepo, doctorRepo, blobs, logger)
	dashboardSvc := dashboard.NewService(dashboardRepo)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	e.GET("/health", db.HealthHandler(pool))

	// Login stays outside the auth wall; everything else requires a token.
	public := e.Group("/api/v1")
	doctor.NewHandler(doctorSvc).RegisterPublicRoutes(public)

	api := e.Group("/api/v1")
	api.Use(auth.RequireAuth(issuer))

	patient.NewHandler(patientSvc).RegisterRoutes(api)
	doctor.NewHandler(doctorSvc).RegisterRoutes(api)
	appointment.NewHandler(apptSvc).RegisterRoutes(api)
	medication.NewHandler(medicationSvc).RegisterRoutes(api)
	inbox.NewHandler(inboxSvc).RegisterRoutes(api)
	billing.NewHandler(billingSvc).RegisterRoutes(api)
	surgery.NewHandler(surgerySvc).RegisterRoutes(api)
	documents.NewHandler(documentSvc).RegisterRoutes(api)
	dashboard.NewHandler(dashboardSvc).RegisterRoutes(api)

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
