package middleware

import (
	"context"
	"errors"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
	"github.com/99minutos/backoffice/internal/core/session"
)

type memStorage struct {
	mu     sync.Mutex
	data   map[string][]byte
	getErr error
	setErr error
	sets   int
}

func newMemStorage() *memStorage { return &memStorage{data: map[string][]byte{}} }

func (m *memStorage) Get(_ context.Context, contextID, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[contextID+"/"+key]
	if !ok {
		return nil, ports.ErrStorageMiss
	}
	return v, nil
}

func (m *memStorage) Set(_ context.Context, contextID, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.sets++
	m.data[contextID+"/"+key] = value
	return nil
}

func (m *memStorage) Delete(_ context.Context, contextID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, contextID+"/"+key)
	return nil
}

var errStorageDown = errors.New("storage down")

// contextWithUser returns an echo context whose request carries a session
// store holding user (nil for an anonymous session).
func contextWithUser(t *testing.T, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	store := session.NewStore(newMemStorage(), "ctx-1", zerolog.Nop())
	if user != nil {
		if err := store.Save(req.Context(), user); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	c.SetRequest(req.WithContext(session.WithStore(req.Context(), store)))
	return c, rec
}

func contextUser() *domain.User {
	return &domain.User{ID: "u1", Username: "alice", Email: "alice@99minutos.com", Role: domain.RoleAdmin}
}
