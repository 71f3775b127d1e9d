package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestHashAndVerifyPassword(t *testing.T) {
	digest, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if digest == "s3cret" {
		t.Error("digest must not equal plaintext")
	}
	if !VerifyPassword("s3cret", digest) {
		t.Error("expected matching password to verify")
	}
	if VerifyPassword("wrong", digest) {
		t.Error("expected mismatched password to fail")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	tok, err := issuer.Issue(42, "doc@hospital.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	id, err := issuer.Verify(tok)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Errorf("expected doctor id 42, got %d", id)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret-a", time.Hour)
	other := NewTokenIssuer("secret-b", time.Hour)

	tok, _ := issuer.Issue(1, "")
	if _, err := other.Verify(tok); err == nil {
		t.Error("expected verification failure with wrong secret")
	}
}

func TestVerify_Expired(t *testing.T) {
	issuer := NewTokenIssuer("secret", -time.Minute)
	tok, _ := issuer.Issue(1, "")
	if _, err := issuer.Verify(tok); err == nil {
		t.Error("expected verification failure for expired token")
	}
}

func TestRequireAuth(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	e := echo.New()
	var gotID int64
	handler := RequireAuth(issuer)(func(c echo.Context) error {
		gotID = DoctorIDFromContext(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})

	// Missing header
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	if err := handler(e.NewContext(req, rec)); err == nil {
		t.Error("expected error for missing authorization header")
	}

	// Malformed header
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic abc")
	rec = httptest.NewRecorder()
	if err := handler(e.NewContext(req, rec)); err == nil {
		t.Error("expected error for non-bearer header")
	}

	// Valid token
	tok, _ := issuer.Issue(7, "doc@hospital.com")
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	if err := handler(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotID != 7 {
		t.Errorf("expected doctor id 7 in context, got %d", gotID)
	}
}

func TestDoctorIDFromContext_Absent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if id := DoctorIDFromContext(req.Context()); id != 0 {
		t.Errorf("expected 0 for anonymous context, got %d", id)
	}
}
