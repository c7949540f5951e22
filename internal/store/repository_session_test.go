package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/globalmart/auth-service/models"
	"github.com/jackc/pgerrcode"
)

func testSession() models.Session {
	issued := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return models.Session{
		Token:     "dGVzdC1zZXNzaW9uLXRva2Vu",
		UserID:    "0195f3c2-1111-7000-8000-000000000001",
		IssuedAt:  issued,
		ExpiresAt: issued.Add(12 * time.Hour),
	}
}

func TestCreateSession_Success(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSessionRepositorySQL(db)

	session := testSession()

	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(session.Token, session.UserID, session.IssuedAt, session.ExpiresAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.CreateSession(context.Background(), session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreateSession_RetryableDriverError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSessionRepositorySQL(db)

	mock.ExpectExec("INSERT INTO sessions").
		WillReturnError(pgError(pgerrcode.DeadlockDetected))

	err := repo.CreateSession(context.Background(), testSession())
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestFindSessionByToken_Success(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSessionRepositorySQL(db)

	session := testSession()

	rows := sqlmock.
		NewRows(sessionColumns).
		AddRow(session.Token, session.UserID, session.IssuedAt, session.ExpiresAt)

	mock.ExpectQuery("SELECT (.+) FROM sessions WHERE token = \\$1").
		WithArgs(session.Token).
		WillReturnRows(rows)

	found, err := repo.FindSessionByToken(context.Background(), session.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.UserID != session.UserID {
		t.Errorf("expected user id %s, got %s", session.UserID, found.UserID)
	}
}

func TestFindSessionByToken_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSessionRepositorySQL(db)

	mock.ExpectQuery("SELECT (.+) FROM sessions").
		WithArgs("revoked-or-unknown").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindSessionByToken(context.Background(), "revoked-or-unknown")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestDeleteSession_Idempotent(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSessionRepositorySQL(db)

	// absent token deletes zero rows and still succeeds
	mock.ExpectExec("DELETE FROM sessions WHERE token = \\$1").
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.DeleteSession(context.Background(), "gone"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteExpiredSessions(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewSessionRepositorySQL(db)

	now := time.Now()

	mock.ExpectExec("DELETE FROM sessions WHERE expires_at <= \\$1").
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	removed, err := repo.DeleteExpiredSessions(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed != 3 {
		t.Errorf("expected 3 removed sessions, got %d", removed)
	}
}
