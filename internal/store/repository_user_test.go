package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Masterminds/squirrel"
	"github.com/globalmart/auth-service/internal/logger"
	"github.com/globalmart/auth-service/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func newTestDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	db := &DB{
		DB:                 conn,
		logger:             logger.Nop(),
		dialect:            "pgx",
		errorClassificator: NewPostgresErrorClassifier(),
		builder:            squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
	return db, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func testUser() models.User {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return models.User{
		ID:           "0195f3c2-1111-7000-8000-000000000001",
		Email:        "shopper@example.com",
		FullName:     "Sam Shopper",
		Phone:        "+15550100",
		PasswordHash: "$argon2id$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA",
		Role:         models.RoleMember,
		Status:       models.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestCreateUser_Success(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepositorySQL(db)

	user := testUser()

	mock.ExpectExec("INSERT INTO users").
		WithArgs(user.ID, user.Email, user.FullName, user.Phone, user.PasswordHash,
			user.Role, user.Status, user.CreatedAt, user.UpdatedAt, user.LastLoginAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.CreateUser(context.Background(), user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Email != user.Email {
		t.Errorf("expected email %s, got %s", user.Email, created.Email)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepositorySQL(db)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(context.Background(), testUser())
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
}

func TestCreateUser_RetryableDriverError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepositorySQL(db)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(pgError(pgerrcode.ConnectionFailure))

	_, err := repo.CreateUser(context.Background(), testUser())
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestCreateUser_NonRetryableDriverError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepositorySQL(db)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("db network error"))

	_, err := repo.CreateUser(context.Background(), testUser())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("unclassified error must not be reported as transient: %v", err)
	}
	if !errors.Is(err, ErrExecutingStatement) {
		t.Fatalf("expected ErrExecutingStatement, got %v", err)
	}
}

func userRows(user models.User) *sqlmock.Rows {
	return sqlmock.
		NewRows(userColumns).
		AddRow(user.ID, user.Email, user.FullName, user.Phone, user.PasswordHash,
			user.Role, user.Status, user.CreatedAt, user.UpdatedAt, user.LastLoginAt)
}

func TestFindUserByEmail_Success(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepositorySQL(db)

	user := testUser()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE lower\\(email\\) = lower\\(\\$1\\)").
		WithArgs("Shopper@Example.COM").
		WillReturnRows(userRows(user))

	found, err := repo.FindUserByEmail(context.Background(), "Shopper@Example.COM")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != user.ID {
		t.Errorf("expected id %s, got %s", user.ID, found.ID)
	}
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepositorySQL(db)

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("nobody@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindUserByEmail(context.Background(), "nobody@example.com")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestFindUserByID_Success(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepositorySQL(db)

	user := testUser()

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
		WithArgs(user.ID).
		WillReturnRows(userRows(user))

	found, err := repo.FindUserByID(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.Email != user.Email {
		t.Errorf("expected email %s, got %s", user.Email, found.Email)
	}
}

func TestFindUserByID_ScanError(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepositorySQL(db)

	rows := sqlmock.NewRows([]string{"id"}).AddRow("u1") // wrong shape

	mock.ExpectQuery("SELECT (.+) FROM users").
		WillReturnRows(rows)

	_, err := repo.FindUserByID(context.Background(), "u1")
	if !errors.Is(err, ErrScanningRow) {
		t.Fatalf("expected ErrScanningRow, got %v", err)
	}
}

func TestUpdateLastLogin_Success(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepositorySQL(db)

	at := time.Now()

	mock.ExpectExec("UPDATE users SET last_login_at = \\$1 WHERE id = \\$2").
		WithArgs(at, "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateLastLogin(context.Background(), "u1", at); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateLastLogin_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepositorySQL(db)

	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateLastLogin(context.Background(), "missing", time.Now())
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUpdateProfile_PartialUpdate(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepositorySQL(db)

	user := testUser()
	newName := "Sam S. Shopper"
	at := time.Now()

	// only full_name set → phone must not appear in the statement
	mock.ExpectExec("UPDATE users SET updated_at = \\$1, full_name = \\$2 WHERE id = \\$3").
		WithArgs(at, newName, user.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user.FullName = newName
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
		WithArgs(user.ID).
		WillReturnRows(userRows(user))

	updated, err := repo.UpdateProfile(context.Background(), user.ID, models.ProfileUpdate{FullName: &newName}, at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.FullName != newName {
		t.Errorf("expected full name %q, got %q", newName, updated.FullName)
	}
	if updated.Phone != user.Phone {
		t.Errorf("phone must be untouched, got %q", updated.Phone)
	}
}

func TestUpdateStatus_Success(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepositorySQL(db)

	at := time.Now()

	mock.ExpectExec("UPDATE users SET status = \\$1, updated_at = \\$2 WHERE id = \\$3").
		WithArgs(models.StatusInactive, at, "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdateStatus(context.Background(), "u1", models.StatusInactive, at); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateStatus_NotFound(t *testing.T) {
	db, mock := newTestDB(t)
	repo := NewUserRepositorySQL(db)

	mock.ExpectExec("UPDATE users").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "missing", models.StatusInactive, time.Now())
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
