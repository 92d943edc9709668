package postgresql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/procat-rse/procatsrv/internal/db/dberror"
	"github.com/procat-rse/procatsrv/internal/db/models"
	"github.com/rs/zerolog/log"
)

func scanUser(row pgx.Row, user *models.User) error {
	return row.Scan(&user.UserID, &user.Username, &user.Email, &user.FullName, &user.IsAdmin)
}

// CreateUser inserts a new user and fills in its generated ID.
func (p *proCatDb) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, full_name, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING user_id;
	`
	err := p.conn.QueryRow(ctx, query, user.Username, user.Email, user.FullName, user.IsAdmin).
		Scan(&user.UserID)
	if err != nil {
		log.Ctx(ctx).Info().Str("username", user.Username).Msg("failed to insert user")
		return dberror.Map(err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (p *proCatDb) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	query := `
		SELECT user_id, username, email, full_name, is_admin
		FROM users
		WHERE user_id = $1;
	`
	var user models.User
	err := scanUser(p.conn.QueryRow(ctx, query, userID), &user)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dberror.ErrNotFound.Msg("user not found")
		}
		return nil, dberror.ErrDatabase.Err(err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (p *proCatDb) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT user_id, username, email, full_name, is_admin
		FROM users
		WHERE username = $1;
	`
	var user models.User
	err := scanUser(p.conn.QueryRow(ctx, query, username), &user)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dberror.ErrNotFound.Msg("user not found")
		}
		return nil, dberror.ErrDatabase.Err(err)
	}
	return &user, nil
}

// ListUsers returns all users ordered by username.
func (p *proCatDb) ListUsers(ctx context.Context) ([]models.User, error) {
	query := `
		SELECT user_id, username, email, full_name, is_admin
		FROM users
		ORDER BY username;
	`
	rows, err := p.conn.Query(ctx, query)
	if err != nil {
		return nil, dberror.ErrDatabase.Err(err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.UserID, &user.Username, &user.Email, &user.FullName, &user.IsAdmin); err != nil {
			return nil, dberror.ErrDatabase.Err(err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// DeleteUser deletes a user. Deleting a user that does not exist is not
// an error.
func (p *proCatDb) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	query := `
		DELETE FROM users
		WHERE user_id = $1;
	`
	_, err := p.conn.Exec(ctx, query, userID)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("user_id", userID.String()).Msg("failed to delete user")
		return dberror.Map(err)
	}
	return nil
}

// GetAdminUser returns the first admin user, used as the recipient of
// operational notifications.
func (p *proCatDb) GetAdminUser(ctx context.Context) (*models.User, error) {
	query := `
		SELECT user_id, username, email, full_name, is_admin
		FROM users
		WHERE is_admin
		ORDER BY username
		LIMIT 1;
	`
	var user models.User
	err := scanUser(p.conn.QueryRow(ctx, query), &user)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, dberror.ErrNotFound.Msg("no admin user")
		}
		return nil, dberror.ErrDatabase.Err(err)
	}
	return &user, nil
}
