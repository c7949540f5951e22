package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/globalmart/auth-service/internal/config"
	"github.com/globalmart/auth-service/internal/logger"
	"github.com/globalmart/auth-service/internal/service"
	"github.com/globalmart/auth-service/internal/store"
	"github.com/globalmart/auth-service/models"
)

// activeUserRepository answers every lookup with an active account; the purge
// tests only need session owners to resolve.
type activeUserRepository struct{}

func (activeUserRepository) CreateUser(_ context.Context, user models.User) (models.User, error) {
	return user, nil
}

func (activeUserRepository) FindUserByEmail(_ context.Context, _ string) (models.User, error) {
	return models.User{}, store.ErrUserNotFound
}

func (activeUserRepository) FindUserByID(_ context.Context, id string) (models.User, error) {
	return models.User{ID: id, Status: models.StatusActive}, nil
}

func (activeUserRepository) UpdateLastLogin(_ context.Context, _ string, _ time.Time) error {
	return nil
}

func (activeUserRepository) UpdateProfile(_ context.Context, _ string, _ models.ProfileUpdate, _ time.Time) (models.User, error) {
	return models.User{}, store.ErrUserNotFound
}

func (activeUserRepository) UpdateStatus(_ context.Context, _ string, _ models.Status, _ time.Time) error {
	return nil
}

type countingWorker struct {
	runs int
}

func (w *countingWorker) Run(_ context.Context) {
	w.runs++
}

func TestWorkers_RunAll(t *testing.T) {
	first := &countingWorker{}
	second := &countingWorker{}

	NewWorkers(first, second).Run(context.Background())

	if first.runs != 1 || second.runs != 1 {
		t.Fatalf("expected each worker to run once, got %d and %d", first.runs, second.runs)
	}
}

type purgeCountingSessions struct {
	service.SessionService
	calls atomic.Int64
}

func (s *purgeCountingSessions) PurgeExpired(_ context.Context) (int64, error) {
	s.calls.Add(1)
	return 0, nil
}

func TestSessionPurgeWorker_PurgesUntilCancelled(t *testing.T) {
	sessions := &purgeCountingSessions{}
	w := NewSessionPurgeWorker(sessions, 5*time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	w.Run(ctx)

	deadline := time.After(time.Second)
	for sessions.calls.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("worker never purged")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	time.Sleep(20 * time.Millisecond)
	settled := sessions.calls.Load()
	time.Sleep(20 * time.Millisecond)
	if sessions.calls.Load() > settled+1 {
		t.Fatal("worker kept purging after cancellation")
	}
}

func TestSessionPurgeWorker_RemovesExpiredSessions(t *testing.T) {
	repo := store.NewSessionRepositoryMemory()
	sessions := service.NewSessionService(repo, activeUserRepository{}, config.Auth{SessionTTL: time.Millisecond, RememberMeTTL: time.Millisecond}, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session, err := sessions.Issue(ctx, "user-2", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w := NewSessionPurgeWorker(sessions, 5*time.Millisecond, logger.Nop())
	w.Run(ctx)

	deadline := time.After(time.Second)
	for {
		if _, err = repo.FindSessionByToken(ctx, session.Token); err != nil {
			return // swept
		}
		select {
		case <-deadline:
			t.Fatal("expired session was never purged")
		case <-time.After(time.Millisecond):
		}
	}
}
