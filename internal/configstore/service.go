// Copyright (c) 2026 Quillbox Team
// Confstore - profile-scoped configuration store
// This source code is licensed under the MIT license found in the LICENSE file.

// Package configstore owns the business logic of the configuration store:
// profile resolution and inheritance, default-configuration bootstrap,
// encryption backup preservation and batched saves. Storage, hashing and
// event delivery are collaborators passed in at construction.
package configstore

import (
	"github.com/quillbox/confstore/internal/bus"
	"github.com/quillbox/confstore/internal/crypto"
	"github.com/quillbox/confstore/internal/db"
	"github.com/quillbox/confstore/internal/logging"
	"github.com/quillbox/confstore/internal/model"
)

// Service is a process-scoped configuration store bound to one requested
// profile. It is constructed explicitly and passed by reference; there is
// no ambient singleton.
//
// The service is not safe for concurrent writers: callers are expected to
// serialize saves targeting the same profile.
type Service struct {
	store  db.Store
	hasher crypto.Hasher
	events *bus.Bus

	defaultProfile string
	profileID      string

	loaded    bool
	effective string
	entries   map[string]model.ConfigEntry
	backup    *model.ConfigEntry
}

// New builds a Service for the given profile. defaultProfile is the
// profile others may inherit from; it is fixed for the process lifetime.
func New(store db.Store, hasher crypto.Hasher, events *bus.Bus, defaultProfile, profileID string) *Service {
	if events == nil {
		events = bus.New()
	}
	return &Service{
		store:          store,
		hasher:         hasher,
		events:         events,
		defaultProfile: defaultProfile,
		profileID:      profileID,
	}
}

// Events returns the bus the service announces state changes on.
func (s *Service) Events() *bus.Bus {
	return s.events
}

// ProfileID returns the requested (not necessarily effective) profile.
func (s *Service) ProfileID() string {
	return s.profileID
}

// DefaultProfile returns the designated default profile.
func (s *Service) DefaultProfile() string {
	return s.defaultProfile
}

// ResolveProfile maps a requested profile to the profile reads are served
// from. A non-default profile whose useDefaultConfigs flag is present and
// truthy is redirected to the default profile.
func (s *Service) ResolveProfile(requested string) (string, error) {
	if requested == s.defaultProfile {
		return requested, nil
	}
	flag, err := s.store.GetConfig(requested, model.NameUseDefaultConfigs)
	if err != nil {
		return "", err
	}
	if flag == nil || !flag.IsTruthy() {
		return requested, nil
	}
	return s.defaultProfile, nil
}

// load runs the strictly ordered read path: resolve profile, check the
// encryption backup, bootstrap defaults, then resolve again so callers
// observe the fully provisioned set. It never fails outward; read paths
// are designed to always succeed by falling back to defaults.
func (s *Service) load() {
	effective, err := s.ResolveProfile(s.profileID)
	if err != nil {
		logging.Errorf("configstore: profile resolution for %q failed: %v", s.profileID, err)
		effective = s.profileID
	}

	if err := s.checkBackup(s.profileID); err != nil {
		logging.Errorf("configstore: backup check for %q failed: %v", s.profileID, err)
	}

	s.ensureDefaults(effective)

	// Bootstrap may have provisioned the inheritance flag; resolve again
	// and bootstrap the redirect target, which the first pass never saw.
	if resolved, err := s.ResolveProfile(s.profileID); err == nil && resolved != effective {
		effective = resolved
		s.ensureDefaults(effective)
	}

	entries, err := s.store.GetAllConfigs(effective)
	if err != nil {
		logging.Errorf("configstore: loading entries of %q failed: %v", effective, err)
		entries = nil
	}

	s.entries = make(map[string]model.ConfigEntry, len(entries))
	for _, e := range entries {
		s.entries[e.Name] = e
	}
	s.effective = effective
	s.loaded = true
}

// ensureLoaded lazily runs load once per mutation epoch.
func (s *Service) ensureLoaded() {
	if !s.loaded {
		s.load()
	}
}

// invalidate forces the next read to reload from storage.
func (s *Service) invalidate() {
	s.loaded = false
}

// effectiveProfile returns the profile reads are currently served from.
func (s *Service) effectiveProfile() string {
	s.ensureLoaded()
	return s.effective
}
