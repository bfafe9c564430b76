// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth (Postgres) implements identity storage on users.account.

# Error Mapping

Storage-specific errors (pgx.ErrNoRows, unique violations) are mapped to
[apperr.AppError] types through dberr so storage details never leak.
*/
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/vidtube/internal/platform/apperr"
	"github.com/taibuivan/vidtube/internal/platform/database/schema"
	"github.com/taibuivan/vidtube/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the [UserRepository].
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

var userColumns = fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
	schema.UserAccount.ID,
	schema.UserAccount.Username,
	schema.UserAccount.Email,
	schema.UserAccount.FullName,
	schema.UserAccount.AvatarURL,
	schema.UserAccount.CoverURL,
	schema.UserAccount.Password,
	schema.UserAccount.RefreshTokenHash,
	schema.UserAccount.CreatedAt,
	schema.UserAccount.UpdatedAt,
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	user := &User{}
	var refresh *string
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FullName,
		&user.AvatarURL,
		&user.CoverURL,
		&user.PasswordHash,
		&refresh,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if refresh != nil {
		user.RefreshTokenHash = *refresh
	}
	return user, nil
}

func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

/*
FindByID retrieves an account by primary key.
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		userColumns, schema.UserAccount.Table, schema.UserAccount.ID)

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

/*
FindByIdentifier retrieves an account by username or email.
*/
func (repository *PostgresUserRepository) FindByIdentifier(context context.Context, identifier string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 OR %s = $1 LIMIT 1`,
		userColumns, schema.UserAccount.Table, schema.UserAccount.Username, schema.UserAccount.Email)

	user, err := scanUser(repository.pool.QueryRow(context, query, identifier))
	if err != nil {
		return nil, dberr.Wrap(err, "User")
	}
	return user, nil
}

// ExistsByUsernameOrEmail reports whether either handle is already registered.
func (repository *PostgresUserRepository) ExistsByUsernameOrEmail(context context.Context, username, email string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 OR %s = $2)`,
		schema.UserAccount.Table, schema.UserAccount.Username, schema.UserAccount.Email)

	var exists bool
	if err := repository.pool.QueryRow(context, query, username, email).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "User")
	}
	return exists, nil
}

/*
Create persists a new account.

Description: The unique indexes on username and email are the final arbiter
when two registrations race past the existence check.
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		schema.UserAccount.Table, userColumns)

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.FullName,
		user.AvatarURL,
		user.CoverURL,
		user.PasswordHash,
		nullable(user.RefreshTokenHash),
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err) {
			return apperr.Conflict("User with email or username already exists")
		}
		return dberr.Wrap(err, "User")
	}
	return nil
}

// UpdatePassword replaces the password hash.
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	return repository.setColumn(context, userID, schema.UserAccount.Password, &newHash)
}

// SetRefreshTokenHash overwrites the refresh-token slot.
func (repository *PostgresUserRepository) SetRefreshTokenHash(context context.Context, userID, tokenHash string) error {
	return repository.setColumn(context, userID, schema.UserAccount.RefreshTokenHash, nullable(tokenHash))
}

// ClearRefreshTokenHash sets the refresh-token slot to NULL.
func (repository *PostgresUserRepository) ClearRefreshTokenHash(context context.Context, userID string) error {
	return repository.setColumn(context, userID, schema.UserAccount.RefreshTokenHash, nil)
}

/*
RotateRefreshTokenHash performs the compare-and-swap on the refresh-token slot.

Description: The WHERE clause carries the expected old digest, so of two
concurrent refreshes presenting the same token only one row update lands.
*/
func (repository *PostgresUserRepository) RotateRefreshTokenHash(context context.Context, userID, oldHash, newHash string) (bool, error) {
	query := fmt.Sprintf(`UPDATE %s SET %s = $3, %s = NOW() WHERE %s = $1 AND %s = $2`,
		schema.UserAccount.Table,
		schema.UserAccount.RefreshTokenHash,
		schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
		schema.UserAccount.RefreshTokenHash,
	)

	tag, err := repository.pool.Exec(context, query, userID, oldHash, newHash)
	if err != nil {
		return false, dberr.Wrap(err, "User")
	}
	return tag.RowsAffected() == 1, nil
}

func (repository *PostgresUserRepository) setColumn(context context.Context, userID, column string, value *string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = NOW() WHERE %s = $1`,
		schema.UserAccount.Table, column, schema.UserAccount.UpdatedAt, schema.UserAccount.ID)

	tag, err := repository.pool.Exec(context, query, userID, value)
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}
