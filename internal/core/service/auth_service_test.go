package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/99minutos/backoffice/internal/core/domain"
)

type stubAuthRepo struct {
	users   map[string]*domain.User
	findErr error
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = user.Username
	}
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func newAuthSvc(repo *stubAuthRepo) *AuthService {
	return NewAuthService(repo, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo())

	user, err := svc.Register(context.Background(), "alice", "pass123", " Alice@99minutos.com ", domain.RoleEditor)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Email != "alice@99minutos.com" {
		t.Fatalf("expected normalised email, got %q", user.Email)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo())

	if _, err := svc.Register(context.Background(), "", "pass", "x@y.z", domain.RoleEditor); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob", "pass", "bob@y.z", "client"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for bad role, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo())

	_, _ = svc.Register(context.Background(), "bob", "pass", "bob@99minutos.com", domain.RoleEditor)
	if _, err := svc.Register(context.Background(), "bob2", "pass2", "bob@99minutos.com", domain.RoleEditor); err != domain.ErrUserExists {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo())
	if _, err := svc.Register(context.Background(), "carol", "s3cret", "carol@99minutos.com", domain.RoleAdmin); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	user, err := svc.Login(context.Background(), "CAROL@99minutos.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Username != "carol" || !user.IsAdmin() {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo())
	_, _ = svc.Register(context.Background(), "dave", "goodpass", "dave@99minutos.com", domain.RoleEditor)

	if _, err := svc.Login(context.Background(), "dave@99minutos.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailLooksLikeBadPassword(t *testing.T) {
	svc := newAuthSvc(newStubAuthRepo())

	if _, err := svc.Login(context.Background(), "ghost@99minutos.com", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_RepoFailure(t *testing.T) {
	repo := newStubAuthRepo()
	repo.findErr = errors.New("mongo down")
	svc := newAuthSvc(repo)

	if _, err := svc.Login(context.Background(), "x@99minutos.com", "pass"); err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected infrastructure error, got %v", err)
	}
}
