package usecase

import (
	"errors"
	"testing"

	"parking-booking/internal/data/repository"
	"parking-booking/internal/dto/request"
	"parking-booking/pkg/utils"

	"go.uber.org/zap"
)

func newAuthService(env *testEnv) AuthService {
	config := &utils.Config{
		Session: utils.SessionConfig{ExpiryHours: 24},
	}
	return NewAuthService(env.repo, config, zap.NewNop())
}

func registerReq(email string) *request.RegisterRequest {
	return &request.RegisterRequest{
		Email:    email,
		Password: "correct-horse",
		FullName: "Test Driver",
		Pincode:  "56001",
		Address:  "3 Park Lane",
	}
}

func TestAuthService_Register_IssuesSession(t *testing.T) {
	env := newTestEnv()
	svc := newAuthService(env)

	auth, err := svc.Register(ctx(), registerReq("new@example.com"))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if auth.Token == "" {
		t.Error("expected a session token")
	}
	if auth.User.IsAdmin {
		t.Error("self-registered users must not be admins")
	}

	session, err := env.repo.Session.FindValidByToken(ctx(), auth.Token)
	if err != nil || session == nil {
		t.Fatalf("issued token not valid: session=%v err=%v", session, err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	env := newTestEnv()
	svc := newAuthService(env)

	if _, err := svc.Register(ctx(), registerReq("dup@example.com")); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	_, err := svc.Register(ctx(), registerReq("dup@example.com"))
	if !errors.Is(err, repository.ErrAlreadyExists) {
		t.Fatalf("second Register error = %v, want ErrAlreadyExists", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	env := newTestEnv()
	svc := newAuthService(env)

	if _, err := svc.Register(ctx(), registerReq("driver@example.com")); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	auth, err := svc.Login(ctx(), &request.LoginRequest{
		Email:    "driver@example.com",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if auth.Token == "" {
		t.Error("expected a session token")
	}

	_, err = svc.Login(ctx(), &request.LoginRequest{
		Email:    "driver@example.com",
		Password: "wrong-password",
	})
	if err == nil {
		t.Fatal("Login with wrong password succeeded")
	}
}

func TestAuthService_Logout_InvalidatesSession(t *testing.T) {
	env := newTestEnv()
	svc := newAuthService(env)

	auth, err := svc.Register(ctx(), registerReq("driver@example.com"))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if err := svc.Logout(ctx(), auth.Token); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	session, err := env.repo.Session.FindValidByToken(ctx(), auth.Token)
	if err != nil {
		t.Fatalf("FindValidByToken failed: %v", err)
	}
	if session != nil {
		t.Error("session still valid after logout")
	}
}
