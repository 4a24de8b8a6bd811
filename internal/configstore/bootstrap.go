// Copyright (c) 2026 Quillbox Team
// Confstore - profile-scoped configuration store
// This source code is licensed under the MIT license found in the LICENSE file.

package configstore

import (
	"github.com/quillbox/confstore/internal/bus"
	"github.com/quillbox/confstore/internal/logging"
	"github.com/quillbox/confstore/internal/model"
)

// ensureDefaults bootstraps a profile: it imports legacy pre-profile
// settings, provisions every known entry with its built-in default and
// signals collection:empty for freshly provisioned profiles. Idempotent;
// a profile that already has entries is left untouched.
//
// Bootstrap runs implicitly on every read path, so failures are logged
// and swallowed rather than surfaced to the caller.
func (s *Service) ensureDefaults(profileID string) {
	entries, err := s.store.GetAllConfigs(profileID)
	if err != nil {
		logging.Errorf("configstore: bootstrap read for %q failed: %v", profileID, err)
		return
	}
	if len(entries) > 0 {
		return
	}

	s.importLegacy(profileID)

	// Recount after the import so a legacy-populated profile is not
	// announced as freshly provisioned.
	entries, err = s.store.GetAllConfigs(profileID)
	if err != nil {
		logging.Errorf("configstore: bootstrap recount for %q failed: %v", profileID, err)
		return
	}
	wasEmpty := len(entries) == 0

	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		present[e.Name] = true
	}

	for _, name := range model.KnownNames() {
		if present[name] {
			continue
		}
		// appProfiles lives in the default profile only; the inheritance
		// flag only exists in non-default profiles.
		if name == model.NameAppProfiles && profileID != s.defaultProfile {
			continue
		}
		if name == model.NameUseDefaultConfigs && profileID == s.defaultProfile {
			continue
		}

		def, err := s.store.GetDefaultValue(name)
		if err != nil {
			logging.Warnf("configstore: no default for %q: %v", name, err)
			continue
		}
		def.ProfileID = profileID
		if name == model.NameAppProfiles {
			if value, err := model.EncodeProfileList([]string{s.defaultProfile}); err == nil {
				def.Value = value
			}
		}
		if err := s.store.SaveConfig(def); err != nil {
			logging.Errorf("configstore: provisioning %s failed: %v", def, err)
		}
	}

	if wasEmpty {
		s.events.Publish(bus.Event{Kind: bus.CollectionEmpty, Profile: profileID})
	}
}

// importLegacy moves settings stored outside the profile system into the
// given profile. One-time and best effort; a failed import is logged and
// the affected entry keeps its legacy row.
func (s *Service) importLegacy(profileID string) {
	has, err := s.store.HasLegacyState()
	if err != nil {
		logging.Warnf("configstore: legacy state check failed: %v", err)
		return
	}
	if !has {
		return
	}

	legacy, err := s.store.GetLegacyConfigs()
	if err != nil {
		logging.Warnf("configstore: reading legacy settings failed: %v", err)
		return
	}
	for i := range legacy {
		if err := s.store.ReassignOwner(&legacy[i], profileID); err != nil {
			logging.Warnf("configstore: legacy import of %q failed: %v", legacy[i].Name, err)
		}
	}
	logging.Infof("configstore: imported %d legacy settings into %q", len(legacy), profileID)
}
