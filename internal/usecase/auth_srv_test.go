package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"servilink/internal/authz"
	"servilink/internal/dto/request"
	"servilink/internal/usecase"
	"servilink/pkg/apperr"
	"servilink/pkg/token"

	"go.uber.org/zap"
)

func newAuthService(t *testing.T) (usecase.AuthService, *fakeUserRepo) {
	t.Helper()
	repo, users, _, _, _ := newTestRepo()
	tokens := token.NewService("test-secret", time.Hour)
	return usecase.NewAuthService(repo, tokens, zap.NewNop()), users
}

func registerRequest(email, role string) *request.RegisterRequest {
	return &request.RegisterRequest{
		Name:     "Marie Dupont",
		Email:    email,
		Password: "s3cret-pass",
		Role:     role,
	}
}

func TestRegisterThenLogin(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, registerRequest("marie@example.com", "prestataire"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if registered.Token == "" {
		t.Error("register should issue a token")
	}
	if registered.Role != authz.RoleProvider {
		t.Errorf("role = %q, want prestataire", registered.Role)
	}

	logged, err := svc.Login(ctx, &request.LoginRequest{
		Email:    "marie@example.com",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if logged.Token == "" {
		t.Error("login should issue a token")
	}
	if logged.UserID != registered.UserID {
		t.Errorf("login user id = %s, want %s", logged.UserID, registered.UserID)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerRequest("taken@example.com", "client")); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(ctx, registerRequest("taken@example.com", "client"))
	if !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("duplicate email: got %v, want ErrConflict", err)
	}
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Register(context.Background(), registerRequest("root@example.com", "admin"))
	if !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("admin registration: got %v, want ErrValidation", err)
	}
}

func TestLoginWrongCredentials(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerRequest("marie@example.com", "client")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Unknown email and wrong password fail identically.
	_, err := svc.Login(ctx, &request.LoginRequest{Email: "nobody@example.com", Password: "s3cret-pass"})
	if !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("unknown email: got %v, want ErrUnauthenticated", err)
	}

	_, err = svc.Login(ctx, &request.LoginRequest{Email: "marie@example.com", Password: "wrong-pass"})
	if !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("wrong password: got %v, want ErrUnauthenticated", err)
	}
}

func TestLoginDisabledAccount(t *testing.T) {
	svc, users := newAuthService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, registerRequest("marie@example.com", "client"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	users.mu.Lock()
	for _, u := range users.users {
		if u.ID.String() == registered.UserID {
			u.IsActive = false
		}
	}
	users.mu.Unlock()

	_, err = svc.Login(ctx, &request.LoginRequest{Email: "marie@example.com", Password: "s3cret-pass"})
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("disabled account: got %v, want ErrForbidden", err)
	}
}
