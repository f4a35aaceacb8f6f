package auth_test

import (
	"context"
	"testing"

	"Petfolio/internal/domain/auth"
	"Petfolio/internal/domain/user"
	appErrors "Petfolio/internal/errors"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepository struct {
	createFn     func(ctx context.Context, u *user.User) error
	getByEmailFn func(ctx context.Context, email string) (*user.User, error)
}

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error { return nil }
func (f *fakeUserRepository) Delete(ctx context.Context, id ulid.ULID) error { return nil }
func (f *fakeUserRepository) GetById(ctx context.Context, id ulid.ULID) (*user.User, error) {
	return nil, appErrors.ErrUserNotFound
}

func (f *fakeUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.getByEmailFn != nil {
		return f.getByEmailFn(ctx, email)
	}
	return nil, appErrors.ErrUserNotFound
}

func newAuthService(repo user.Repository) *auth.Service {
	return auth.NewService(repo, user.NewService(repo), "")
}

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("Sup3r@secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	stored := &user.User{Email: "alice@example.com", Password: string(hash)}

	repo := &fakeUserRepository{
		getByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
			if email == stored.Email {
				return stored, nil
			}
			return nil, appErrors.ErrUserNotFound
		},
	}
	svc := newAuthService(repo)

	entity, err := svc.Login(context.Background(), auth.Login{Email: "alice@example.com", Password: "Sup3r@secret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if entity.Email != stored.Email {
		t.Errorf("logged in as %s, want %s", entity.Email, stored.Email)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("Sup3r@secret"), bcrypt.MinCost)
	repo := &fakeUserRepository{
		getByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
			return &user.User{Email: email, Password: string(hash)}, nil
		},
	}
	svc := newAuthService(repo)

	_, err := svc.Login(context.Background(), auth.Login{Email: "alice@example.com", Password: "wrong"})
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != appErrors.ErrInvalidCredentials.Code {
		t.Fatalf("err = %v, want INVALID_CREDENTIALS", err)
	}
}

func TestLogin_UnknownEmailHidesExistence(t *testing.T) {
	svc := newAuthService(&fakeUserRepository{})

	_, err := svc.Login(context.Background(), auth.Login{Email: "ghost@example.com", Password: "whatever"})
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != appErrors.ErrInvalidCredentials.Code {
		t.Fatalf("err = %v, want INVALID_CREDENTIALS rather than a not-found leak", err)
	}
}

func TestRegister(t *testing.T) {
	var created *user.User
	repo := &fakeUserRepository{
		createFn: func(ctx context.Context, u *user.User) error {
			created = u
			return nil
		},
	}
	svc := newAuthService(repo)

	entity := &user.User{Name: "Alice", Email: "alice@example.com", Password: "Sup3r@secret"}
	if err := svc.Register(context.Background(), entity); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if created == nil {
		t.Fatal("expected Create to be called")
	}
	if created.Password == "Sup3r@secret" {
		t.Error("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("Sup3r@secret")); err != nil {
		t.Error("stored hash does not match the original password")
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	repo := &fakeUserRepository{
		getByEmailFn: func(ctx context.Context, email string) (*user.User, error) {
			return &user.User{Email: email}, nil
		},
	}
	svc := newAuthService(repo)

	err := svc.Register(context.Background(), &user.User{Name: "Alice", Email: "alice@example.com", Password: "Sup3r@secret"})
	appErr, ok := appErrors.AsAppError(err)
	if !ok || appErr.Code != appErrors.ErrEmailAlreadyExists.Code {
		t.Fatalf("err = %v, want EMAIL_ALREADY_EXISTS", err)
	}
}

func TestPasswordRequirements(t *testing.T) {
	cases := []struct {
		password string
		valid    bool
	}{
		{"Sup3r@secret", true},
		{"short@A", false},
		{"alllowercase@1", false},
		{"NoSpecialChar1", false},
	}
	for _, tc := range cases {
		err := auth.PasswordRequirements(tc.password)
		if tc.valid && err != nil {
			t.Errorf("%q rejected: %v", tc.password, err)
		}
		if !tc.valid && err == nil {
			t.Errorf("%q accepted, want rejection", tc.password)
		}
	}
}
