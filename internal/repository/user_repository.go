package repository

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// userRepository implements the UserRepository interface using PostgreSQL.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

// Create inserts a new user. Email uniqueness is enforced by the database;
// a violation surfaces as model.ErrEmailExists.
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO app_users (name, email, phone, password)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query, u.Name, u.Email, u.Phone, u.Password).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err, "") {
			r.logger.Warn().Str("email", u.Email).Msg("email already registered")
			return model.ErrEmailExists
		}
		r.logger.Error().Err(err).Str("email", u.Email).Msg("failed to create user")
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Debug().Int64("user_id", u.ID).Msg("user created")
	return nil
}

// GetByID retrieves a user by ID.
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT id, name, email, phone, password FROM app_users WHERE id = $1`

	var u model.User
	err := r.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Password)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("user_id", id).Msg("user not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("user_id", id).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &u, nil
}

// GetByEmail retrieves a user by email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, name, email, phone, password FROM app_users WHERE email = $1`

	var u model.User
	err := r.pool.QueryRow(ctx, query, email).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Password)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("email", email).Msg("user not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("email", email).Msg("failed to query user by email")
		return nil, fmt.Errorf("failed to query user by email: %w", err)
	}

	return &u, nil
}

// CreateAddress inserts a new address for an existing user.
func (r *userRepository) CreateAddress(ctx context.Context, a *model.Address) error {
	query := `
		INSERT INTO addresses (street, city, zip_code, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query, a.Street, a.City, a.ZipCode, a.UserID).Scan(&a.ID)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", a.UserID).Msg("failed to create address")
		return fmt.Errorf("failed to create address: %w", err)
	}

	r.logger.Debug().
		Int64("address_id", a.ID).
		Int64("user_id", a.UserID).
		Msg("address created")

	return nil
}

// GetAddressByID retrieves an address by ID.
func (r *userRepository) GetAddressByID(ctx context.Context, id int64) (*model.Address, error) {
	query := `SELECT id, street, city, zip_code, user_id FROM addresses WHERE id = $1`

	var a model.Address
	err := r.pool.QueryRow(ctx, query, id).Scan(&a.ID, &a.Street, &a.City, &a.ZipCode, &a.UserID)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("address_id", id).Msg("address not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("address_id", id).Msg("failed to query address")
		return nil, fmt.Errorf("failed to query address: %w", err)
	}

	return &a, nil
}

// Delete removes a user. The addresses table cascades on user deletion, so
// the owned rows go in the same statement.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM app_users WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", id).Msg("failed to delete user")
		return fmt.Errorf("failed to delete user: %w", err)
	}

	r.logger.Debug().Int64("user_id", id).Msg("user deleted")
	return nil
}
