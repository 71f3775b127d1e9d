package inbox

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/platform/auth"
)

func newTestHandler() (*Handler, *mockRepo) {
	repo := newMockRepo()
	svc := NewService(repo, staticDirectory{1: true, 2: true, 3: true})
	return NewHandler(svc), repo
}

func doRequestAs(h echo.HandlerFunc, req *http.Request, doctorID int64, pathParams map[string]string) *httptest.ResponseRecorder {
	e := echo.New()
	rec := httptest.NewRecorder()
	if doctorID != 0 {
		ctx := context.WithValue(req.Context(), auth.DoctorIDKey, doctorID)
		req = req.WithContext(ctx)
	}
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

func TestSendHandler_SenderFromIdentity(t *testing.T) {
	h, _ := newTestHandler()
	body := `{"receiver_id":2,"subject":"Rounds","content":"Switching rounds tomorrow","sender_id":99}`
	req := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := doRequestAs(h.Send, req, 1, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var got Message
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.SenderID == nil || *got.SenderID != 1 {
		t.Fatalf("sender must come from identity, got %v", got.SenderID)
	}
}

func TestSendHandler_NoIdentity(t *testing.T) {
	h, _ := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/messages",
		strings.NewReader(`{"receiver_id":2,"content":"hi"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := doRequestAs(h.Send, req, 0, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestMailboxHandler(t *testing.T) {
	h, _ := newTestHandler()
	send := httptest.NewRequest(http.MethodPost, "/messages",
		strings.NewReader(`{"receiver_id":1,"content":"inbound"}`))
	send.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if rec := doRequestAs(h.Send, send, 3, nil); rec.Code != http.StatusCreated {
		t.Fatalf("send: expected 201, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/messages", nil)
	rec := doRequestAs(h.Mailbox, req, 1, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var box Mailbox
	if err := json.Unmarshal(rec.Body.Bytes(), &box); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(box.Received) != 1 || len(box.Sent) != 0 {
		t.Fatalf("wrong mailbox shape: sent=%d received=%d", len(box.Sent), len(box.Received))
	}
}

func TestMarkReadHandler(t *testing.T) {
	h, repo := newTestHandler()
	send := httptest.NewRequest(http.MethodPost, "/messages",
		strings.NewReader(`{"receiver_id":2,"content":"read me"}`))
	send.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if rec := doRequestAs(h.Send, send, 1, nil); rec.Code != http.StatusCreated {
		t.Fatalf("send: expected 201, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPut, "/messages/1/read", nil)
	rec := doRequestAs(h.MarkRead, req, 2, map[string]string{"id": "1"})
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}
	if !repo.messages[1].IsRead {
		t.Fatal("message not marked read")
	}
}
