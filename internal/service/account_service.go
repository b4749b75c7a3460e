package service

import (
	"context"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// accountService implements AccountService.
type accountService struct {
	userRepo repository.UserRepository
	verifier CredentialVerifier
	logger   zerolog.Logger
}

// NewAccountService creates a new account service.
func NewAccountService(userRepo repository.UserRepository, verifier CredentialVerifier, logger zerolog.Logger) AccountService {
	return &accountService{
		userRepo: userRepo,
		verifier: verifier,
		logger:   logger.With().Str("service", "account").Logger(),
	}
}

// Register creates a new account. Email uniqueness is enforced at
// persistence time; a duplicate surfaces as model.ErrEmailExists.
func (s *accountService) Register(ctx context.Context, req *model.AuthRequest) (*model.User, error) {
	if req.Email == "" {
		return nil, model.NewDomainError(model.ErrCodeInvalidInput, "email is required")
	}
	if req.Password == "" {
		return nil, model.NewDomainError(model.ErrCodeInvalidInput, "password is required")
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if err != model.ErrEmailExists {
			s.logger.Error().Err(err).Str("email", req.Email).Msg("failed to register user")
		}
		return nil, err
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user registered")
	return user, nil
}

// Login authenticates by exact email and password match. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *accountService) Login(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Str("email", email).Msg("failed to look up user for login")
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user == nil || !s.verifier.Verify(user.Password, password) {
		s.logger.Warn().Str("email", email).Msg("login rejected")
		return nil, model.ErrInvalidCredentials
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user logged in")
	return user, nil
}

// AddAddress attaches an address to an existing user.
func (s *accountService) AddAddress(ctx context.Context, userID int64, addr *model.Address) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to look up user for address")
		return fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return model.ErrUserNotFound
	}

	addr.UserID = user.ID
	if err := s.userRepo.CreateAddress(ctx, addr); err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to add address")
		return fmt.Errorf("failed to add address: %w", err)
	}

	s.logger.Info().
		Int64("user_id", userID).
		Int64("address_id", addr.ID).
		Msg("address added")

	return nil
}
