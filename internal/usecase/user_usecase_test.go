package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/iho/studentledger/internal/domain"
	"github.com/iho/studentledger/internal/usecase"
	"github.com/iho/studentledger/internal/usecase/gomocks"
	"github.com/iho/studentledger/internal/usecase/mocks"
)

type stubUserRepo struct {
	createFn     func(ctx context.Context, user *domain.User) error
	getByIDFn    func(ctx context.Context, id string) (*domain.User, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
}

func (s *stubUserRepo) Create(ctx context.Context, user *domain.User) error {
	if s.createFn != nil {
		return s.createFn(ctx, user)
	}
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if s.getByIDFn != nil {
		return s.getByIDFn(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.getByEmailFn != nil {
		return s.getByEmailFn(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

func TestUserUseCase_Register_Success(t *testing.T) {
	t.Parallel()

	var stored *domain.User
	repo := &stubUserRepo{
		createFn: func(_ context.Context, user *domain.User) error {
			if user.HashedPassword == "" {
				t.Fatal("expected user to be persisted with hashed password")
			}
			copied := *user
			stored = &copied
			return nil
		},
	}

	uc := usecase.NewUserUseCase(repo, mocks.NewMockIDGenerator())

	user, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email:    "  Student@Example.com ",
		Name:     "Sam",
		Password: "StrongPass1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.Email != "student@example.com" {
		t.Fatalf("expected normalized email, got %s", user.Email)
	}
	if user.ID != "mock-id-1" {
		t.Fatalf("expected generated id, got %s", user.ID)
	}
	if !user.Active {
		t.Fatal("expected new user to be active")
	}
	if user.HashedPassword != "" {
		t.Fatal("expected returned user to hide hashed password")
	}
	if stored == nil {
		t.Fatal("expected user to be stored")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.HashedPassword), []byte("StrongPass1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestUserUseCase_Register_ValidationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   usecase.RegisterInput
		wantErr error
	}{
		{"bad email", usecase.RegisterInput{Email: "not-an-email", Password: "StrongPass1"}, domain.ErrInvalidEmail},
		{"short password", usecase.RegisterInput{Email: "a@example.com", Password: "Ab1"}, domain.ErrPasswordTooWeak},
		{"no digits", usecase.RegisterInput{Email: "a@example.com", Password: "StrongPassword"}, domain.ErrPasswordTooWeak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &stubUserRepo{
				createFn: func(context.Context, *domain.User) error {
					t.Fatal("create must not be called for invalid input")
					return nil
				},
			}
			uc := usecase.NewUserUseCase(repo, mocks.NewMockIDGenerator())

			_, err := uc.Register(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestUserUseCase_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := gomocks.NewMockUserRepository(ctrl)
	repo.EXPECT().GetByEmail(gomock.Any(), "taken@example.com").Return(&domain.User{ID: "existing"}, nil)

	uc := usecase.NewUserUseCase(repo, mocks.NewMockIDGenerator())

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email:    "taken@example.com",
		Password: "StrongPass1",
	})
	if !errors.Is(err, domain.ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestUserUseCase_Register_LookupFailure(t *testing.T) {
	t.Parallel()

	lookupErr := errors.New("connection refused")
	repo := &stubUserRepo{
		getByEmailFn: func(context.Context, string) (*domain.User, error) {
			return nil, lookupErr
		},
	}

	uc := usecase.NewUserUseCase(repo, mocks.NewMockIDGenerator())

	_, err := uc.Register(context.Background(), usecase.RegisterInput{
		Email:    "a@example.com",
		Password: "StrongPass1",
	})
	if !errors.Is(err, lookupErr) {
		t.Fatalf("expected lookup error, got %v", err)
	}
}

func TestUserUseCase_Authenticate(t *testing.T) {
	t.Parallel()

	hashed, err := bcrypt.GenerateFromPassword([]byte("StrongPass1"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	activeUser := &domain.User{
		ID:             "user-1",
		Email:          "user@example.com",
		HashedPassword: string(hashed),
		Active:         true,
	}

	repo := &stubUserRepo{
		getByEmailFn: func(_ context.Context, email string) (*domain.User, error) {
			if email != "user@example.com" {
				return nil, domain.ErrUserNotFound
			}
			copied := *activeUser
			return &copied, nil
		},
	}

	uc := usecase.NewUserUseCase(repo, mocks.NewMockIDGenerator())

	user, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
		Email:    "USER@example.com",
		Password: "StrongPass1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.ID != activeUser.ID {
		t.Fatalf("expected user ID %s, got %s", activeUser.ID, user.ID)
	}
	if user.HashedPassword != "" {
		t.Fatal("expected returned user to hide hashed password")
	}
}

func TestUserUseCase_AuthenticateErrors(t *testing.T) {
	t.Parallel()

	hashed, err := bcrypt.GenerateFromPassword([]byte("StrongPass1"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	inactiveUser := &domain.User{
		Email:          "user@example.com",
		HashedPassword: string(hashed),
		Active:         false,
	}

	repo := &stubUserRepo{
		getByEmailFn: func(context.Context, string) (*domain.User, error) {
			copied := *inactiveUser
			return &copied, nil
		},
	}

	uc := usecase.NewUserUseCase(repo, mocks.NewMockIDGenerator())

	_, err = uc.Authenticate(context.Background(), usecase.AuthenticateInput{
		Email:    "user@example.com",
		Password: "StrongPass1",
	})
	if !errors.Is(err, domain.ErrUserInactive) {
		t.Fatalf("expected ErrUserInactive, got %v", err)
	}

	repo.getByEmailFn = func(context.Context, string) (*domain.User, error) {
		copied := *inactiveUser
		copied.Active = true
		return &copied, nil
	}

	_, err = uc.Authenticate(context.Background(), usecase.AuthenticateInput{
		Email:    "user@example.com",
		Password: "WrongPass1",
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	repo.getByEmailFn = nil

	_, err = uc.Authenticate(context.Background(), usecase.AuthenticateInput{
		Email:    "missing@example.com",
		Password: "StrongPass1",
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for missing user, got %v", err)
	}
}

func TestUserUseCase_GetUser(t *testing.T) {
	t.Parallel()

	repo := &stubUserRepo{
		getByIDFn: func(_ context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Email: "user@example.com", HashedPassword: "secret"}, nil
		},
	}

	uc := usecase.NewUserUseCase(repo, mocks.NewMockIDGenerator())

	user, err := uc.GetUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "user-1" {
		t.Fatalf("expected user-1, got %s", user.ID)
	}
	if user.HashedPassword != "" {
		t.Fatal("expected hashed password to be cleared")
	}

	repo.getByIDFn = nil
	if _, err := uc.GetUser(context.Background(), "missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
