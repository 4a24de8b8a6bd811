// Copyright (c) 2026 Quillbox Team
// Confstore - profile-scoped configuration store
// This source code is licensed under the MIT license found in the LICENSE file.

// This file contains the PostgreSQL implementation of the storage interface.
package db

import (
	"github.com/quillbox/confstore/internal/model"
	"github.com/uptrace/bun"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
)

// PostgresStore is the PostgreSQL implementation of the Store interface.
type PostgresStore struct {
	bun *bun.DB
}

func (s *PostgresStore) GetConfig(profileID, name string) (*model.ConfigEntry, error) {
	return GetConfigBun(s.bun, profileID, name)
}

func (s *PostgresStore) GetAllConfigs(profileID string) ([]model.ConfigEntry, error) {
	return GetAllConfigsBun(s.bun, profileID)
}

func (s *PostgresStore) GetDefaultValue(name string) (*model.ConfigEntry, error) {
	return defaultValueFor(name)
}

func (s *PostgresStore) SaveConfig(entry *model.ConfigEntry) error {
	return SaveConfigBun(s.bun, entry)
}

func (s *PostgresStore) ReassignOwner(entry *model.ConfigEntry, newProfileID string) error {
	return ReassignOwnerBun(s.bun, entry, newProfileID)
}

func (s *PostgresStore) CreateProfile(name string) error {
	return CreateProfileBun(s.bun, name)
}

func (s *PostgresStore) RemoveProfile(name string) error {
	return RemoveProfileBun(s.bun, name)
}

func (s *PostgresStore) ListProfiles() ([]string, error) {
	return ListProfilesBun(s.bun)
}

func (s *PostgresStore) HasLegacyState() (bool, error) {
	return HasLegacyStateBun(s.bun)
}

func (s *PostgresStore) GetLegacyConfigs() ([]model.ConfigEntry, error) {
	return GetAllConfigsBun(s.bun, "")
}
