package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/inkwell-journal/inkwell/internal/apperror"
	"github.com/inkwell-journal/inkwell/internal/passhash"
)

// --- Mock Repository ---

// mockUserRepo implements UserRepository for testing.
type mockUserRepo struct {
	createFn          func(ctx context.Context, user *User) error
	findByIDFn        func(ctx context.Context, id string) (*User, error)
	findByEmailFn     func(ctx context.Context, email string) (*User, error)
	emailExistsFn     func(ctx context.Context, email string) (bool, error)
	updateLastLoginFn func(ctx context.Context, id string) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, apperror.NewNotFound("user not found")
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, apperror.NewNotFound("user not found")
}

func (m *mockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	if m.emailExistsFn != nil {
		return m.emailExistsFn(ctx, email)
	}
	return false, nil
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id string) error {
	if m.updateLastLoginFn != nil {
		return m.updateLastLoginFn(ctx, id)
	}
	return nil
}

// --- Test Helpers ---

// newTestRedis spins up an in-process Redis and returns a client bound to it.
func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

// newTestAuthService creates an authService with a mock repo and an
// in-process Redis.
func newTestAuthService(t *testing.T, repo *mockUserRepo) *authService {
	t.Helper()
	return &authService{
		repo:       repo,
		redis:      newTestRedis(t),
		sessionTTL: 24 * time.Hour,
	}
}

// assertAppError checks that err is an *apperror.AppError with the expected code.
func assertAppError(t *testing.T, err error, expectedCode int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", expectedCode)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected status %d, got %d (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// --- Register Tests ---

func TestRegister_Success(t *testing.T) {
	repo := &mockUserRepo{
		emailExistsFn: func(ctx context.Context, email string) (bool, error) {
			return false, nil
		},
		createFn: func(ctx context.Context, user *User) error {
			if user.Email != "alice@example.com" {
				t.Errorf("expected email alice@example.com, got %s", user.Email)
			}
			if user.DisplayName != "Alice" {
				t.Errorf("expected display name Alice, got %s", user.DisplayName)
			}
			if user.PasswordHash == "" {
				t.Error("expected password hash to be set")
			}
			if user.PasswordHash == "secure-password-123" {
				t.Error("password must not be stored in plaintext")
			}
			return nil
		},
	}

	svc := newTestAuthService(t, repo)
	user, err := svc.Register(context.Background(), RegisterInput{
		Email:       "Alice@Example.com",
		DisplayName: "Alice",
		Password:    "secure-password-123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user == nil {
		t.Fatal("expected user, got nil")
	}
	if user.ID == "" {
		t.Error("expected user ID to be generated")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{
		emailExistsFn: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		},
	}

	svc := newTestAuthService(t, repo)
	_, err := svc.Register(context.Background(), RegisterInput{
		Email:       "taken@example.com",
		DisplayName: "Test",
		Password:    "secure-password-123",
	})
	assertAppError(t, err, 409)
}

func TestRegister_CreateError(t *testing.T) {
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, user *User) error {
			return errors.New("db write error")
		},
	}

	svc := newTestAuthService(t, repo)
	_, err := svc.Register(context.Background(), RegisterInput{
		Email:       "test@example.com",
		DisplayName: "Test",
		Password:    "secure-password-123",
	})
	assertAppError(t, err, 500)
}

func TestRegister_EmailNormalization(t *testing.T) {
	var capturedEmail string
	repo := &mockUserRepo{
		createFn: func(ctx context.Context, user *User) error {
			capturedEmail = user.Email
			return nil
		},
	}

	svc := newTestAuthService(t, repo)
	_, err := svc.Register(context.Background(), RegisterInput{
		Email:       "  Alice@EXAMPLE.com  ",
		DisplayName: "Alice",
		Password:    "secure-password-123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if capturedEmail != "alice@example.com" {
		t.Errorf("expected normalized email alice@example.com, got %s", capturedEmail)
	}
}

// --- Login Tests ---

// testUser builds a user with a real argon2id hash of the given password.
func testUser(t *testing.T, password string) *User {
	t.Helper()
	hash, err := passhash.Hash(password)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	return &User{
		ID:           "user-1",
		Email:        "alice@example.com",
		DisplayName:  "Alice",
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestLogin_Success(t *testing.T) {
	user := testUser(t, "secure-password-123")
	repo := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return user, nil
		},
	}

	svc := newTestAuthService(t, repo)
	token, got, err := svc.Login(context.Background(), LoginInput{
		Email:    "alice@example.com",
		Password: "secure-password-123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token == "" {
		t.Error("expected session token")
	}
	if got.ID != user.ID {
		t.Errorf("expected user %s, got %s", user.ID, got.ID)
	}

	// The token must resolve to a live session.
	session, err := svc.ValidateSession(context.Background(), token)
	if err != nil {
		t.Fatalf("validating fresh session: %v", err)
	}
	if session.UserID != user.ID {
		t.Errorf("expected session for %s, got %s", user.ID, session.UserID)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	user := testUser(t, "secure-password-123")
	repo := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return user, nil
		},
	}

	svc := newTestAuthService(t, repo)
	_, _, err := svc.Login(context.Background(), LoginInput{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	assertAppError(t, err, 401)
}

func TestLogin_UnknownEmail(t *testing.T) {
	// Unknown email gets the same 401 as a wrong password so login
	// responses don't reveal which emails are registered.
	repo := &mockUserRepo{}

	svc := newTestAuthService(t, repo)
	_, _, err := svc.Login(context.Background(), LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever-password",
	})
	assertAppError(t, err, 401)
}

// --- Session Tests ---

func TestValidateSession_InvalidToken(t *testing.T) {
	svc := newTestAuthService(t, &mockUserRepo{})
	_, err := svc.ValidateSession(context.Background(), "no-such-token")
	assertAppError(t, err, 401)
}

func TestDestroySession(t *testing.T) {
	user := testUser(t, "secure-password-123")
	repo := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*User, error) {
			return user, nil
		},
	}

	svc := newTestAuthService(t, repo)
	token, _, err := svc.Login(context.Background(), LoginInput{
		Email:    "alice@example.com",
		Password: "secure-password-123",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.DestroySession(context.Background(), token); err != nil {
		t.Fatalf("destroying session: %v", err)
	}

	_, err = svc.ValidateSession(context.Background(), token)
	assertAppError(t, err, 401)
}
