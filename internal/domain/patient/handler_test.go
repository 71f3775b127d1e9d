package patient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/blobstore"
)

func newTestHandler() (*Handler, *mockRepo) {
	repo := newMockRepo()
	svc := NewService(repo, newMockRecordRepo(), emptyVisits{}, blobstore.NewMemStore())
	return NewHandler(svc), repo
}

func doRequest(h echo.HandlerFunc, req *http.Request, pathParams map[string]string) *httptest.ResponseRecorder {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for k, v := range pathParams {
		c.SetParamNames(k)
		c.SetParamValues(v)
	}
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestRegisterHandler_EmptyAgeStoredNull(t *testing.T) {
	h, repo := newTestHandler()
	body := `{"name":"Jane Doe","age":""}`
	req := httptest.NewRequest(http.MethodPost, "/patients", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := doRequest(h.Register, req, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var got Patient
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Age != nil {
		t.Fatalf("empty age must store null, got %v", *got.Age)
	}
	if repo.patients[got.ID].Age != nil {
		t.Fatal("persisted age must be null")
	}
}

func TestRegisterHandler_MalformedAge(t *testing.T) {
	h, _ := newTestHandler()
	body := `{"name":"Jane Doe","age":"forty"}`
	req := httptest.NewRequest(http.MethodPost, "/patients", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := doRequest(h.Register, req, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetHandler_NotFound(t *testing.T) {
	h, _ := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/patients/7", nil)
	rec := doRequest(h.Get, req, map[string]string{"id": "7"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetHandler_BadID(t *testing.T) {
	h, _ := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/patients/abc", nil)
	rec := doRequest(h.Get, req, map[string]string{"id": "abc"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestDeleteHandler(t *testing.T) {
	h, repo := newTestHandler()
	repo.patients[3] = &Patient{ID: 3, Name: "Dustin Ramsey", Status: StatusActive}
	req := httptest.NewRequest(http.MethodDelete, "/patients/3", nil)
	rec := doRequest(h.Delete, req, map[string]string{"id": "3"})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if _, ok := repo.patients[3]; ok {
		t.Fatal("patient not deleted")
	}
}

func TestUpdateHandler_InvalidStatus(t *testing.T) {
	h, repo := newTestHandler()
	repo.patients[1] = &Patient{ID: 1, Name: "Evelyn Thomas", Status: StatusActive}
	body := `{"name":"Evelyn Thomas","status":"Gone"}`
	req := httptest.NewRequest(http.MethodPut, "/patients/1", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := doRequest(h.Update, req, map[string]string{"id": "1"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
