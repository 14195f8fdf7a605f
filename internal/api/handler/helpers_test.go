package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
	"github.com/99minutos/backoffice/internal/core/session"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type memStorage struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemStorage() *memStorage { return &memStorage{data: map[string][]byte{}} }

func (m *memStorage) Get(_ context.Context, contextID, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[contextID+"/"+key]
	if !ok {
		return nil, ports.ErrStorageMiss
	}
	return v, nil
}

func (m *memStorage) Set(_ context.Context, contextID, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[contextID+"/"+key] = value
	return nil
}

func (m *memStorage) Delete(_ context.Context, contextID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, contextID+"/"+key)
	return nil
}

type stubAuthService struct {
	registerFn func(ctx context.Context, username, password, email, role string) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, password, email, role string) (*domain.User, error) {
	return s.registerFn(ctx, username, password, email, role)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	return s.loginFn(ctx, email, password)
}

type stubAuditService struct {
	recentFn func(ctx context.Context, limit int) ([]domain.SessionEvent, error)
}

func (s *stubAuditService) Record(context.Context, domain.SessionEvent) error { return nil }

func (s *stubAuditService) Recent(ctx context.Context, limit int) ([]domain.SessionEvent, error) {
	return s.recentFn(ctx, limit)
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

func adminUser() *domain.User {
	return &domain.User{ID: "u1", Username: "root", Email: "root@99minutos.com", Role: domain.RoleAdmin}
}

func editorUser() *domain.User {
	return &domain.User{ID: "u2", Username: "ed", Email: "ed@99minutos.com", Role: domain.RoleEditor}
}

// testRequest bundles what a handler test needs: an echo context whose
// request carries a session store for contextID in storage.
type testRequest struct {
	c     echo.Context
	rec   *httptest.ResponseRecorder
	store *session.Store
}

func newTestRequest(t *testing.T, storage *memStorage, user *domain.User, method, target string, body io.Reader, contentType string) testRequest {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	store := session.NewStore(storage, "ctx-1", zerolog.Nop())
	if user != nil {
		if err := store.Save(req.Context(), user); err != nil {
			t.Fatalf("seed session: %v", err)
		}
	}
	c.SetRequest(req.WithContext(session.WithStore(req.Context(), store)))
	return testRequest{c: c, rec: rec, store: store}
}

func get(t *testing.T, storage *memStorage, user *domain.User, target string) testRequest {
	t.Helper()
	return newTestRequest(t, storage, user, "GET", target, nil, "")
}

func postJSON(t *testing.T, storage *memStorage, user *domain.User, target, body string) testRequest {
	t.Helper()
	return newTestRequest(t, storage, user, "POST", target, strings.NewReader(body), echo.MIMEApplicationJSON)
}

func postForm(t *testing.T, storage *memStorage, user *domain.User, target, body string) testRequest {
	t.Helper()
	return newTestRequest(t, storage, user, "POST", target, strings.NewReader(body), echo.MIMEApplicationForm)
}
