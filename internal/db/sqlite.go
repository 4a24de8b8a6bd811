// Copyright (c) 2026 Quillbox Team
// Confstore - profile-scoped configuration store
// This source code is licensed under the MIT license found in the LICENSE file.

// package db provides the data access layer for Confstore.
// This file contains the SQLite implementation of the storage interface.
package db // import "github.com/quillbox/confstore/internal/db"

import (
	"github.com/quillbox/confstore/internal/model"
	"github.com/uptrace/bun"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SqliteStore is the SQLite implementation of the Store interface.
type SqliteStore struct {
	bun *bun.DB
}

// GetConfig retrieves a single entry of a profile, or nil if absent.
func (s *SqliteStore) GetConfig(profileID, name string) (*model.ConfigEntry, error) {
	return GetConfigBun(s.bun, profileID, name)
}

// GetAllConfigs retrieves all entries of a profile.
func (s *SqliteStore) GetAllConfigs(profileID string) ([]model.ConfigEntry, error) {
	return GetAllConfigsBun(s.bun, profileID)
}

// GetDefaultValue returns the built-in default entry for a name.
func (s *SqliteStore) GetDefaultValue(name string) (*model.ConfigEntry, error) {
	return defaultValueFor(name)
}

// SaveConfig upserts an entry on (profile, name).
func (s *SqliteStore) SaveConfig(entry *model.ConfigEntry) error {
	return SaveConfigBun(s.bun, entry)
}

// ReassignOwner moves an entry to a new profile.
func (s *SqliteStore) ReassignOwner(entry *model.ConfigEntry, newProfileID string) error {
	return ReassignOwnerBun(s.bun, entry, newProfileID)
}

// CreateProfile provisions a new isolated namespace.
func (s *SqliteStore) CreateProfile(name string) error {
	return CreateProfileBun(s.bun, name)
}

// RemoveProfile deletes a namespace and all its entries.
func (s *SqliteStore) RemoveProfile(name string) error {
	return RemoveProfileBun(s.bun, name)
}

// ListProfiles returns all known profile names.
func (s *SqliteStore) ListProfiles() ([]string, error) {
	return ListProfilesBun(s.bun)
}

// HasLegacyState reports whether pre-profile rows exist.
func (s *SqliteStore) HasLegacyState() (bool, error) {
	return HasLegacyStateBun(s.bun)
}

// GetLegacyConfigs returns the pre-profile rows pending import.
func (s *SqliteStore) GetLegacyConfigs() ([]model.ConfigEntry, error) {
	return GetAllConfigsBun(s.bun, "")
}

// defaultValueFor resolves a built-in default entry shared by all backends.
// The returned entry carries no profile; the caller binds it.
func defaultValueFor(name string) (*model.ConfigEntry, error) {
	e, ok := model.DefaultEntry("", name)
	if !ok {
		return nil, ErrUnknownDefault
	}
	return &e, nil
}
