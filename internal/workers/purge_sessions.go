// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/globalmart/auth-service/internal/logger"
	"github.com/globalmart/auth-service/internal/service"
)

// defaultPurgeInterval is used when no interval is configured. Expired
// sessions are already rejected on validation, so the sweep only reclaims
// storage and can afford to be infrequent.
const defaultPurgeInterval = time.Hour

// SessionPurgeWorker periodically removes expired sessions from the store.
type SessionPurgeWorker struct {
	sessions service.SessionService
	interval time.Duration
	logger   *logger.Logger
}

// NewSessionPurgeWorker constructs a purge worker. A non-positive interval
// falls back to defaultPurgeInterval.
func NewSessionPurgeWorker(sessions service.SessionService, interval time.Duration, log *logger.Logger) *SessionPurgeWorker {
	if interval <= 0 {
		interval = defaultPurgeInterval
	}

	return &SessionPurgeWorker{
		sessions: sessions,
		interval: interval,
		logger:   log,
	}
}

// Run starts the purge loop in its own goroutine. The loop stops when ctx is
// cancelled.
func (w *SessionPurgeWorker) Run(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				w.logger.Info().Msg("session purge worker stopped")
				return
			case <-ticker.C:
				w.purge(ctx)
			}
		}
	}()
}

func (w *SessionPurgeWorker) purge(ctx context.Context) {
	removed, err := w.sessions.PurgeExpired(ctx)
	if err != nil {
		w.logger.Err(err).Msg("expired session purge failed")
		return
	}

	if removed > 0 {
		w.logger.Info().Int64("removed", removed).Msg("purged expired sessions")
	}
}
