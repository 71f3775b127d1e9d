package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestSummaryHandler(t *testing.T) {
	repo := &mockRepo{
		patients: 4,
		byStatus: map[string]int{},
		doctors:  2,
		income:   150,
	}
	h := NewHandler(NewService(repo))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.Summary(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var sum Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &sum); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sum.TotalPatients != 4 || sum.TotalDoctors != 2 || sum.TotalIncome != 150 {
		t.Fatalf("wrong summary: %+v", sum)
	}
}
