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

var sessionColumns = []string{
	"token",
	"user_id",
	"issued_at",
	"expires_at",
}

// SessionRepositorySQL implements [SessionRepository] on top of a relational
// database. Revocation is a hard delete: once a row is gone the token is
// indistinguishable from one that never existed.
type SessionRepositorySQL struct {
	db *DB
}

// NewSessionRepositorySQL constructs a [SessionRepositorySQL] bound to db.
func NewSessionRepositorySQL(db *DB) *SessionRepositorySQL {
	return &SessionRepositorySQL{db: db}
}

// CreateSession implements [SessionRepository].
func (r *SessionRepositorySQL) CreateSession(ctx context.Context, session models.Session) error {
	query, args, err := r.db.builder.
		Insert(session.TableName()).
		Columns(sessionColumns...).
		Values(session.Token, session.UserID, session.IssuedAt, session.ExpiresAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return r.db.wrapDriverError(fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}

	return nil
}

// FindSessionByToken implements [SessionRepository].
func (r *SessionRepositorySQL) FindSessionByToken(ctx context.Context, token string) (models.Session, error) {
	query, args, err := r.db.builder.
		Select(sessionColumns...).
		From(models.Session{}.TableName()).
		Where(squirrel.Eq{"token": token}).
		ToSql()
	if err != nil {
		return models.Session{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var session models.Session
	row := r.db.QueryRowContext(ctx, query, args...)
	err = row.Scan(&session.Token, &session.UserID, &session.IssuedAt, &session.ExpiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return models.Session{}, r.db.wrapDriverError(fmt.Errorf("%w: %w", ErrScanningRow, err))
	}

	return session, nil
}

// DeleteSession implements [SessionRepository]. Deleting a token that does
// not exist succeeds, so repeated logouts are harmless.
func (r *SessionRepositorySQL) DeleteSession(ctx context.Context, token string) error {
	query, args, err := r.db.builder.
		Delete(models.Session{}.TableName()).
		Where(squirrel.Eq{"token": token}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return r.db.wrapDriverError(fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}

	return nil
}

// DeleteExpiredSessions implements [SessionRepository]. A session is expired
// at its expires_at instant, so the comparison is inclusive.
func (r *SessionRepositorySQL) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	query, args, err := r.db.builder.
		Delete(models.Session{}.TableName()).
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, r.db.wrapDriverError(fmt.Errorf("%w: %w", ErrExecutingStatement, err))
	}

	return result.RowsAffected()
}
