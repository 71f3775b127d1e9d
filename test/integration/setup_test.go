package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/domain/doctor"
	"github.com/hms/hms/internal/domain/patient"
	"github.com/hms/hms/internal/platform/db"
)

// globalPool is the package-level test database, initialized once in TestMain.
// It stays nil when TEST_DATABASE_URL is unset and every test skips.
var globalPool *pgxpool.Pool

func TestMain(m *testing.M) {
	connStr := os.Getenv("TEST_DATABASE_URL")
	if connStr == "" {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect to test database: %v\n", err)
		os.Exit(1)
	}
	if err := pool.Ping(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "ping test database: %v\n", err)
		os.Exit(1)
	}

	migrator := db.NewMigrator(pool, findMigrationsDir())
	if _, err := migrator.Up(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "run migrations: %v\n", err)
		os.Exit(1)
	}

	globalPool = pool
	code := m.Run()
	pool.Close()
	os.Exit(code)
}

// findMigrationsDir locates the migrations directory relative to this file.
func findMigrationsDir() string {
	_, filename, _, _ := runtime.Caller(0)
	// test/integration -> module root
	return filepath.Join(filepath.Dir(filename), "..", "..", "migrations")
}

// requireDB skips the test when no database is configured and wipes all
// tables so every test starts from an empty schema.
func requireDB(t *testing.T) context.Context {
	t.Helper()
	if globalPool == nil {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	_, err := globalPool.Exec(ctx, `
		TRUNCATE patient, doctor, appointment, prescription, medical_record,
			doctor_availability, operation, income, message, medication,
			document RESTART IDENTITY CASCADE`)
	if err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return ctx
}

func createTestDoctor(t *testing.T, ctx context.Context, email string) *doctor.Doctor {
	t.Helper()
	d := &doctor.Doctor{Email: email, PasswordHash: "x", Name: "Dr. Test"}
	if err := doctor.NewRepoPG(globalPool).Create(ctx, d); err != nil {
		t.Fatalf("create doctor: %v", err)
	}
	return d
}

func createTestPatient(t *testing.T, ctx context.Context, name string) *patient.Patient {
	t.Helper()
	p := &patient.Patient{Name: name, Status: patient.StatusActive}
	if err := patient.NewRepoPG(globalPool).Create(ctx, p); err != nil {
		t.Fatalf("create patient: %v", err)
	}
	return p
}
