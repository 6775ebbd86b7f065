package service

import (
	"context"
	"errors"

	"followup_backend/internal/auth/password"
	"followup_backend/internal/auth/repository"
	"followup_backend/internal/auth/token"
	"followup_backend/internal/auth/transport"
	"followup_backend/internal/events"
	"followup_backend/platform/apperr"
	"followup_backend/platform/config"
	"followup_backend/platform/logger"
	"followup_backend/platform/sanitize"

	"github.com/google/uuid"
)

const msgInvalidCredentials = "invalid email or password"

type Service struct {
	repo     repository.AuthRepository
	tokens   *token.Issuer
	eventBus events.Bus
	log      *logger.Logger
}

func New(repo repository.AuthRepository, cfg config.AuthServiceConfig, eventBus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		tokens:   token.NewIssuer(cfg.GetJWTAccessSecret(), cfg.GetAccessTokenTTL()),
		eventBus: eventBus,
		log:      log,
	}
}

func (s *Service) SignUp(ctx context.Context, req transport.SignUpRequest) (transport.ProfileResponse, error) {
	email := sanitize.Email(req.Email)
	hash, err := password.Hash(req.Password)
	if err != nil {
		return transport.ProfileResponse{}, err
	}

	user, err := s.repo.CreateUser(ctx, sanitize.Line(req.Name), email, hash)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			s.log.AuthEvent("sign_up", email, false, "email taken")
			return transport.ProfileResponse{}, apperr.Conflict("email already registered")
		}
		return transport.ProfileResponse{}, err
	}

	s.eventBus.Publish(ctx, events.StaffSignedUp{
		BaseEvent: events.NewBaseEvent(),
		StaffID:   user.ID,
		Email:     user.Email,
	})
	s.log.AuthEvent("sign_up", email, true, "")
	return toProfile(user), nil
}

// SignIn checks credentials and issues an access token. Unknown emails and
// wrong passwords produce the same error.
func (s *Service) SignIn(ctx context.Context, req transport.SignInRequest) (transport.SignInResponse, error) {
	email := sanitize.Email(req.Email)
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.AuthEvent("sign_in", email, false, "unknown email")
			return transport.SignInResponse{}, apperr.Unauthorized(msgInvalidCredentials)
		}
		return transport.SignInResponse{}, err
	}

	if err := password.Compare(user.PasswordHash, req.Password); err != nil {
		s.log.AuthEvent("sign_in", email, false, "wrong password")
		return transport.SignInResponse{}, apperr.Unauthorized(msgInvalidCredentials)
	}

	signed, expiresAt, err := s.tokens.Issue(token.Subject{ID: user.ID, Name: user.Name, Email: user.Email})
	if err != nil {
		return transport.SignInResponse{}, err
	}

	s.log.AuthEvent("sign_in", email, true, "")
	return transport.SignInResponse{
		Name:      user.Name,
		Email:     user.Email,
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}

// SignOut is an acknowledgement only; access tokens are stateless and the
// client discards its copy.
func (s *Service) SignOut(ctx context.Context, staffID uuid.UUID) {
	s.log.WithContext(ctx).Info("staff signed out", "staffId", staffID)
}

func (s *Service) GetMe(ctx context.Context, staffID uuid.UUID) (transport.ProfileResponse, error) {
	user, err := s.repo.GetUserByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.ProfileResponse{}, apperr.NotFound("user not found")
		}
		return transport.ProfileResponse{}, err
	}
	return toProfile(user), nil
}

func toProfile(user repository.User) transport.ProfileResponse {
	return transport.ProfileResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
