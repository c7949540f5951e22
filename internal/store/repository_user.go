// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/globalmart/auth-service/models"
)

var userColumns = []string{
	"id",
	"email",
	"full_name",
	"phone",
	"password_hash",
	"role",
	"status",
	"created_at",
	"updated_at",
	"last_login_at",
}

// UserRepositorySQL implements [UserRepository] on top of a relational
// database. All queries go through the shared squirrel builder, so the same
// code runs against PostgreSQL and SQLite.
type UserRepositorySQL struct {
	db *DB
}

// NewUserRepositorySQL constructs a [UserRepositorySQL] bound to db.
func NewUserRepositorySQL(db *DB) *UserRepositorySQL {
	return &UserRepositorySQL{db: db}
}

// CreateUser implements [UserRepository]. Email uniqueness is enforced by the
// users_email_lower_idx unique index, so two concurrent inserts with the same
// email race safely: the database commits one and the other comes back here
// as a unique violation, reported as [ErrEmailAlreadyExists].
func (r *UserRepositorySQL) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	query, args, err := r.db.builder.
		Insert(user.TableName()).
		Columns(userColumns...).
		Values(
			user.ID,
			user.Email,
			user.FullName,
			user.Phone,
			user.PasswordHash,
			user.Role,
			user.Status,
			user.CreatedAt,
			user.UpdatedAt,
			user.LastLoginAt,
		).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if r.db.errorClassificator.IsUniqueViolation(err) {
			return models.User{}, ErrEmailAlreadyExists
		}
		return models.User{}, r.db.wrapDriverError(fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}

	return user, nil
}

// FindUserByEmail implements [UserRepository]. The comparison is
// case-insensitive, matching the unique index on lower(email).
func (r *UserRepositorySQL) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findUser(ctx, squirrel.Expr("lower(email) = lower(?)", email))
}

// FindUserByID implements [UserRepository].
func (r *UserRepositorySQL) FindUserByID(ctx context.Context, id string) (models.User, error) {
	return r.findUser(ctx, squirrel.Eq{"id": id})
}

func (r *UserRepositorySQL) findUser(ctx context.Context, where squirrel.Sqlizer) (models.User, error) {
	query, args, err := r.db.builder.
		Select(userColumns...).
		From(models.User{}.TableName()).
		Where(where).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var user models.User
	row := r.db.QueryRowContext(ctx, query, args...)
	err = row.Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.Phone,
		&user.PasswordHash,
		&user.Role,
		&user.Status,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.LastLoginAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, r.db.wrapDriverError(fmt.Errorf("%w: %w", ErrScanningRow, err))
	}

	return user, nil
}

// UpdateLastLogin implements [UserRepository].
func (r *UserRepositorySQL) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	query, args, err := r.db.builder.
		Update(models.User{}.TableName()).
		Set("last_login_at", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execExpectingMatch(ctx, query, args)
}

// UpdateProfile implements [UserRepository]. Only the fields set in update
// are written; nil fields keep their stored values. The updated record is
// read back so callers see exactly what was persisted.
func (r *UserRepositorySQL) UpdateProfile(ctx context.Context, id string, update models.ProfileUpdate, at time.Time) (models.User, error) {
	stmt := r.db.builder.
		Update(models.User{}.TableName()).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id})

	if update.FullName != nil {
		stmt = stmt.Set("full_name", *update.FullName)
	}
	if update.Phone != nil {
		stmt = stmt.Set("phone", *update.Phone)
	}

	query, args, err := stmt.ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.execExpectingMatch(ctx, query, args); err != nil {
		return models.User{}, err
	}

	return r.FindUserByID(ctx, id)
}

// UpdateStatus implements [UserRepository].
func (r *UserRepositorySQL) UpdateStatus(ctx context.Context, id string, status models.Status, at time.Time) error {
	query, args, err := r.db.builder.
		Update(models.User{}.TableName()).
		Set("status", status).
		Set("updated_at", at).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.execExpectingMatch(ctx, query, args)
}

// execExpectingMatch runs a statement that must touch exactly one user row
// and converts a zero-row result into [ErrUserNotFound].
func (r *UserRepositorySQL) execExpectingMatch(ctx context.Context, query string, args []interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return r.db.wrapDriverError(fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}
