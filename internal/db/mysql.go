// Copyright (c) 2026 Quillbox Team
// Confstore - profile-scoped configuration store
// This source code is licensed under the MIT license found in the LICENSE file.

// This file contains the MySQL implementation of the storage interface.
package db

import (
	"github.com/quillbox/confstore/internal/model"
	"github.com/uptrace/bun"
	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

// MySQLStore is the MySQL implementation of the Store interface.
type MySQLStore struct {
	bun *bun.DB
}

func (s *MySQLStore) GetConfig(profileID, name string) (*model.ConfigEntry, error) {
	return GetConfigBun(s.bun, profileID, name)
}

func (s *MySQLStore) GetAllConfigs(profileID string) ([]model.ConfigEntry, error) {
	return GetAllConfigsBun(s.bun, profileID)
}

func (s *MySQLStore) GetDefaultValue(name string) (*model.ConfigEntry, error) {
	return defaultValueFor(name)
}

// SaveConfig uses MySQL's upsert syntax; the shared ON CONFLICT form is not portable.
func (s *MySQLStore) SaveConfig(entry *model.ConfigEntry) error {
	return SaveConfigMySQLBun(s.bun, entry)
}

func (s *MySQLStore) ReassignOwner(entry *model.ConfigEntry, newProfileID string) error {
	return ReassignOwnerBun(s.bun, entry, newProfileID)
}

func (s *MySQLStore) CreateProfile(name string) error {
	return CreateProfileBun(s.bun, name)
}

func (s *MySQLStore) RemoveProfile(name string) error {
	return RemoveProfileBun(s.bun, name)
}

func (s *MySQLStore) ListProfiles() ([]string, error) {
	return ListProfilesBun(s.bun)
}

func (s *MySQLStore) HasLegacyState() (bool, error) {
	return HasLegacyStateBun(s.bun)
}

func (s *MySQLStore) GetLegacyConfigs() ([]model.ConfigEntry, error) {
	return GetAllConfigsBun(s.bun, "")
}
