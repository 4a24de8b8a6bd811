// Copyright (c) 2026 Quillbox Team
// Confstore - profile-scoped configuration store
// This source code is licensed under the MIT license found in the LICENSE file.

package configstore

import (
	"fmt"

	"github.com/quillbox/confstore/internal/bus"
	"github.com/quillbox/confstore/internal/logging"
	"github.com/quillbox/confstore/internal/model"
	"github.com/quillbox/confstore/util/slicest"
)

// CreateProfile provisions a new isolated namespace and registers it in
// the default profile's appProfiles list. Returns the profile identifier
// as its handle.
func (s *Service) CreateProfile(name string) (string, error) {
	if err := s.store.CreateProfile(name); err != nil {
		return "", fmt.Errorf("failed to create profile %q: %w", name, err)
	}
	if err := s.addToAppProfiles(name); err != nil {
		// The namespace exists; a stale appProfiles list is recoverable.
		logging.Warnf("configstore: registering %q in appProfiles failed: %v", name, err)
	}
	s.invalidate()
	return name, nil
}

// RemoveProfile deletes a profile's namespace wholesale. The
// removed:profile event fires only after the storage removal succeeded.
func (s *Service) RemoveProfile(name string) error {
	if err := s.store.RemoveProfile(name); err != nil {
		return fmt.Errorf("failed to remove profile %q: %w", name, err)
	}
	if err := s.removeFromAppProfiles(name); err != nil {
		logging.Warnf("configstore: unregistering %q from appProfiles failed: %v", name, err)
	}
	s.invalidate()
	s.events.Publish(bus.Event{Kind: bus.RemovedProfile, Profile: name})
	return nil
}

// GetProfiles lists the profiles sharing the default configuration. A
// profile holding isolated state (a non-default current profile, or a
// backup whose custody left the default profile) is reported alone.
func (s *Service) GetProfiles() ([]string, error) {
	s.ensureLoaded()

	backupProfile := s.defaultProfile
	if s.backup != nil {
		backupProfile = s.backup.ProfileID
	}
	if s.profileID != s.defaultProfile || backupProfile != s.defaultProfile {
		return []string{backupProfile}, nil
	}

	listed, err := model.DecodeProfileList(s.GetConfig(model.NameAppProfiles, ""))
	if err != nil {
		return nil, err
	}

	var profiles []string
	for _, p := range listed {
		if p == s.defaultProfile {
			profiles = append(profiles, p)
			continue
		}
		flag, err := s.store.GetConfig(p, model.NameUseDefaultConfigs)
		if err != nil {
			return nil, err
		}
		if flag != nil && flag.IsTruthy() {
			profiles = append(profiles, p)
		}
	}
	return profiles, nil
}

// addToAppProfiles appends a profile to the default profile's list if not
// already present.
func (s *Service) addToAppProfiles(name string) error {
	listed, err := s.appProfiles()
	if err != nil {
		return err
	}
	if slicest.Contains(listed, name) {
		return nil
	}
	return s.saveAppProfiles(append(listed, name))
}

// removeFromAppProfiles drops a profile from the default profile's list.
func (s *Service) removeFromAppProfiles(name string) error {
	listed, err := s.appProfiles()
	if err != nil {
		return err
	}
	kept := slicest.Filter(listed, func(p string) bool { return p != name })
	if len(kept) == len(listed) {
		return nil
	}
	return s.saveAppProfiles(kept)
}

func (s *Service) appProfiles() ([]string, error) {
	entry, err := s.store.GetConfig(s.defaultProfile, model.NameAppProfiles)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return []string{s.defaultProfile}, nil
	}
	return model.DecodeProfileList(entry.Value)
}

func (s *Service) saveAppProfiles(profiles []string) error {
	value, err := model.EncodeProfileList(profiles)
	if err != nil {
		return err
	}
	return s.store.SaveConfig(&model.ConfigEntry{
		ProfileID: s.defaultProfile,
		Name:      model.NameAppProfiles,
		Value:     value,
	})
}
