// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store contains the persistence layer: repository contracts, their
// SQL and in-memory implementations, and the driver-specific error
// classifiers that translate raw driver failures into the store's sentinel
// errors.
package store

// Repositories bundles the repository implementations handed to the service
// layer.
type Repositories struct {
	Users    UserRepository
	Sessions SessionRepository
}

// NewRepositories wires the SQL-backed repositories over db.
func NewRepositories(db *DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepositorySQL(db),
		Sessions: NewSessionRepositorySQL(db),
	}
}
