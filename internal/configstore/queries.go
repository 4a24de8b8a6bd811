// Copyright (c) 2026 Quillbox Team
// Confstore - profile-scoped configuration store
// This source code is licensed under the MIT license found in the LICENSE file.

package configstore

import (
	"github.com/quillbox/confstore/internal/model"
	"github.com/quillbox/confstore/util/mapst"
)

// GetConfig returns the resolved value for name, or fallback if absent.
// The inheritance flag and the encryption backup are always read from the
// requested profile, never from the redirect target.
func (s *Service) GetConfig(name, fallback string) string {
	s.ensureLoaded()

	if name == model.NameUseDefaultConfigs || name == model.NameEncryptBackup {
		entry, err := s.store.GetConfig(s.profileID, name)
		if err == nil && entry != nil {
			return entry.Value
		}
		return fallback
	}

	if entry, ok := s.entries[name]; ok {
		return entry.Value
	}
	return fallback
}

// GetObject returns the full resolved configuration as a name-to-value
// mapping. The result is a copy; mutating it does not affect the store.
func (s *Service) GetObject() map[string]string {
	s.ensureLoaded()

	return mapst.Map(s.entries, func(_ string, entry model.ConfigEntry) string {
		return entry.Value
	})
}
