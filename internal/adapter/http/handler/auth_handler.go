package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/iho/studentledger/internal/adapter/http/dto"
	"github.com/iho/studentledger/internal/domain"
	"github.com/iho/studentledger/internal/infrastructure/metrics"
	"github.com/iho/studentledger/internal/usecase"
)

// UserService is the subset of UserUseCase the auth handler depends on.
type UserService interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error)
	Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Generate(user *domain.User) (string, time.Time, error)
}

// AuthHandler handles registration and login
type AuthHandler struct {
	users   UserService
	tokens  TokenIssuer
	metrics *metrics.Metrics
}

// NewAuthHandler creates a new auth handler. m may be nil.
func NewAuthHandler(users UserService, tokens TokenIssuer, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{
		users:   users,
		tokens:  tokens,
		metrics: m,
	}
}

// Register creates a principal
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.users.Register(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to register", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.UserFromDomain(user))
}

// Login verifies credentials and issues a token
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.ToUseCaseInput())
	if err != nil {
		h.recordAttempt("failure")
		writeError(w, mapDomainError(err), "invalid credentials", "")
		return
	}

	token, expiresAt, err := h.tokens.Generate(user)
	if err != nil {
		h.recordAttempt("error")
		writeError(w, http.StatusInternalServerError, "failed to generate token", err.Error())
		return
	}

	h.recordAttempt("success")
	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.UserFromDomain(user),
	})
}

// Me returns the principal named by the bearer token.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	user, err := h.users.GetUser(r.Context(), owner)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get user", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.UserFromDomain(user))
}

func (h *AuthHandler) recordAttempt(status string) {
	if h.metrics != nil {
		h.metrics.AuthAttempts.WithLabelValues(status).Inc()
	}
}
