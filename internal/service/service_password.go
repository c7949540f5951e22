// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/globalmart/auth-service/internal/config"
	"github.com/globalmart/auth-service/internal/logger"
	"golang.org/x/crypto/argon2"
	"golang.org/x/sync/semaphore"
)

const saltLength = 16

// ErrMalformedHash is returned by Verify when the stored hash cannot be
// decoded. It signals data corruption, not a wrong password.
var ErrMalformedHash = errors.New("malformed password hash")

// argon2Hasher implements PasswordHasher with Argon2id. Each derivation costs
// tens of milliseconds of CPU and a fixed memory block, so concurrent
// derivations are bounded by a weighted semaphore instead of running one per
// request goroutine.
type argon2Hasher struct {
	time      uint32
	memory    uint32
	threads   uint8
	keyLength uint32

	// minPasswordLength is enforced before any derivation work, so the
	// hasher rejects weak passwords even when called directly.
	minPasswordLength int

	sem    *semaphore.Weighted
	logger *logger.Logger
}

// NewPasswordHasher constructs an Argon2id PasswordHasher tuned by cfg.
// Zero-valued tuning fields fall back to the configuration defaults, and a
// zero concurrency bound falls back to GOMAXPROCS.
func NewPasswordHasher(cfg config.Auth, logger *logger.Logger) PasswordHasher {
	concurrency := cfg.HashConcurrency
	if concurrency <= 0 {
		concurrency = int64(runtime.GOMAXPROCS(0))
	}

	return &argon2Hasher{
		time:              cfg.Argon.Time,
		memory:            cfg.Argon.Memory,
		threads:           cfg.Argon.Threads,
		keyLength:         cfg.Argon.KeyLength,
		minPasswordLength: cfg.PasswordMinLength,
		sem:               semaphore.NewWeighted(concurrency),
		logger:            logger,
	}
}

// Hash derives an Argon2id hash of password under a fresh random salt and
// encodes it in the standard $argon2id$... form, so the parameters travel
// with the hash and can be raised later without invalidating stored ones.
// Passwords shorter than the minimum length are rejected with
// ErrPasswordTooShort before any derivation work.
func (h *argon2Hasher) Hash(ctx context.Context, password string) (string, error) {
	if len(password) < h.minPasswordLength {
		return "", ErrPasswordTooShort
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("error generating salt: %w", err)
	}

	key, err := h.deriveKey(ctx, password, salt)
	if err != nil {
		return "", err
	}

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.memory,
		h.time,
		h.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)

	return encoded, nil
}

// Verify re-derives the key from password using the salt and parameters
// recorded in encodedHash and compares the results in constant time.
func (h *argon2Hasher) Verify(ctx context.Context, password, encodedHash string) (bool, error) {
	params, salt, expectedKey, err := decodeHash(encodedHash)
	if err != nil {
		return false, err
	}

	if err = h.sem.Acquire(ctx, 1); err != nil {
		return false, fmt.Errorf("error acquiring hashing slot: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, params.time, params.memory, params.threads, uint32(len(expectedKey)))
	h.sem.Release(1)

	return subtle.ConstantTimeCompare(key, expectedKey) == 1, nil
}

// deriveKey runs the Argon2id KDF under the concurrency bound. Acquire
// respects ctx, so a caller that gives up while queued does not burn CPU.
func (h *argon2Hasher) deriveKey(ctx context.Context, password string, salt []byte) ([]byte, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("error acquiring hashing slot: %w", err)
	}
	defer h.sem.Release(1)

	return argon2.IDKey([]byte(password), salt, h.time, h.memory, h.threads, h.keyLength), nil
}

type argonParams struct {
	time    uint32
	memory  uint32
	threads uint8
}

// decodeHash splits a $argon2id$v=19$m=...,t=...,p=...$salt$key string into
// its parts.
func decodeHash(encodedHash string) (argonParams, []byte, []byte, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return argonParams{}, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return argonParams{}, nil, nil, ErrMalformedHash
	}
	if version != argon2.Version {
		return argonParams{}, nil, nil, fmt.Errorf("%w: unsupported version %d", ErrMalformedHash, version)
	}

	var params argonParams
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.memory, &params.time, &params.threads); err != nil {
		return argonParams{}, nil, nil, ErrMalformedHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return argonParams{}, nil, nil, ErrMalformedHash
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return argonParams{}, nil, nil, ErrMalformedHash
	}

	return params, salt, key, nil
}
