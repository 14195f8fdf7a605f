package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/backoffice/internal/core/domain"
)

func TestAuditHandler_List(t *testing.T) {
	at := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	var gotLimit int
	stub := &stubAuditService{recentFn: func(_ context.Context, limit int) ([]domain.SessionEvent, error) {
		gotLimit = limit
		return []domain.SessionEvent{{ContextID: "c1", UserID: "u2", Username: "ed", Kind: domain.SessionLogin, At: at}}, nil
	}}
	tr := get(t, newMemStorage(), adminUser(), "/api/audit?limit=10")

	if err := NewAuditHandler(stub).List(tr.c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotLimit != 10 {
		t.Fatalf("expected limit 10, got %d", gotLimit)
	}

	var resp auditResponse
	if err := json.Unmarshal(tr.rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Events) != 1 || resp.Events[0].Kind != "login" || !resp.Events[0].At.Equal(at) {
		t.Fatalf("unexpected events: %+v", resp.Events)
	}
}

func TestAuditHandler_BadLimit(t *testing.T) {
	stub := &stubAuditService{recentFn: func(context.Context, int) ([]domain.SessionEvent, error) {
		t.Fatalf("service must not be called")
		return nil, nil
	}}
	tr := get(t, newMemStorage(), adminUser(), "/api/audit?limit=abc")

	err := NewAuditHandler(stub).List(tr.c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuditHandler_ServiceError(t *testing.T) {
	boom := errors.New("mongo down")
	stub := &stubAuditService{recentFn: func(context.Context, int) ([]domain.SessionEvent, error) {
		return nil, boom
	}}
	tr := get(t, newMemStorage(), adminUser(), "/api/audit")

	if err := NewAuditHandler(stub).List(tr.c); !errors.Is(err, boom) {
		t.Fatalf("expected service error, got %v", err)
	}
}
