// Copyright (c) 2026 Quillbox Team
// Confstore - profile-scoped configuration store
// This source code is licensed under the MIT license found in the LICENSE file.
package configstore

import (
	"errors"
	"fmt"

	"github.com/quillbox/confstore/internal/db"
	"github.com/quillbox/confstore/internal/model"
	"github.com/quillbox/confstore/util/slicest"
)

// Export dumps every profile and entry of the store into a portable
// snapshot. The default profile is always included, even when it was never
// registered as a named profile; legacy entries keep their empty profile id.
func (s *Service) Export() (*model.BackupData, error) {
	profiles, err := s.store.ListProfiles()
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}

	owners := make([]string, 0, len(profiles)+1)
	seen := map[string]bool{}
	for _, p := range append([]string{s.defaultProfile}, profiles...) {
		if !seen[p] {
			owners = append(owners, p)
			seen[p] = true
		}
	}

	data := &model.BackupData{Version: 1, Profiles: profiles}
	for _, owner := range owners {
		entries, err := s.store.GetAllConfigs(owner)
		if err != nil {
			return nil, fmt.Errorf("reading entries of %q: %w", owner, err)
		}
		data.Entries = append(data.Entries, slicest.Map(entries, func(e model.ConfigEntry) model.BackupEntry {
			return model.BackupEntry{ProfileID: e.ProfileID, Name: e.Name, Value: e.Value}
		})...)
	}

	legacy, err := s.store.GetLegacyConfigs()
	if err != nil {
		return nil, fmt.Errorf("reading legacy entries: %w", err)
	}
	for _, e := range legacy {
		data.Entries = append(data.Entries, model.BackupEntry{
			Name: e.Name, Value: e.Value,
		})
	}

	return data, nil
}

// Import integrates a snapshot into the store. It is non-destructive:
// profiles that already exist are kept, and entries that already exist in
// the target store keep their current value.
func (s *Service) Import(data *model.BackupData) error {
	if data == nil {
		return errors.New("nothing to import")
	}

	for _, name := range data.Profiles {
		if err := s.store.CreateProfile(name); err != nil && !errors.Is(err, db.ErrDuplicate) {
			return fmt.Errorf("creating profile %q: %w", name, err)
		}
	}

	for _, e := range data.Entries {
		existing, err := s.store.GetConfig(e.ProfileID, e.Name)
		if err != nil {
			return fmt.Errorf("checking entry %s/%s: %w", e.ProfileID, e.Name, err)
		}
		if existing != nil {
			continue
		}
		entry := &model.ConfigEntry{ProfileID: e.ProfileID, Name: e.Name, Value: e.Value}
		if err := s.store.SaveConfig(entry); err != nil {
			return fmt.Errorf("importing entry %s/%s: %w", e.ProfileID, e.Name, err)
		}
	}

	s.invalidate()
	return nil
}
