// Copyright (c) 2026 Quillbox Team
// Confstore - profile-scoped configuration store
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"github.com/quillbox/confstore/internal/model"
)

// Store defines the interface for all storage operations in Confstore.
// This allows for multiple database backends to be implemented.
type Store interface {
	// Config entry methods
	GetConfig(profileID, name string) (*model.ConfigEntry, error)
	GetAllConfigs(profileID string) ([]model.ConfigEntry, error)
	GetDefaultValue(name string) (*model.ConfigEntry, error)
	SaveConfig(entry *model.ConfigEntry) error
	ReassignOwner(entry *model.ConfigEntry, newProfileID string) error

	// Profile namespace methods
	CreateProfile(name string) error
	RemoveProfile(name string) error
	ListProfiles() ([]string, error)

	// Legacy (pre-profile) state methods
	HasLegacyState() (bool, error)
	GetLegacyConfigs() ([]model.ConfigEntry, error)
}
