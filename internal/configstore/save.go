// Copyright (c) 2026 Quillbox Team
// Confstore - profile-scoped configuration store
// This source code is licensed under the MIT license found in the LICENSE file.

package configstore

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/quillbox/confstore/internal/bus"
	"github.com/quillbox/confstore/internal/model"
	"github.com/quillbox/confstore/util/mapst"
)

// SaveObjects persists a batch of entries keyed by name. Password entries
// are hashed before persistence, an updated encryption backup is injected
// when the batch touches the encryption set, and all per-entry saves run
// concurrently. A single changed event carrying the normalized batch is
// emitted once every entry is durably saved; any individual failure fails
// the whole batch.
//
// flagProfileID names the profile whose store receives the
// useDefaultConfigs entry. Changing that flag must always write to the
// caller-specified profile rather than wherever resolution currently
// points.
func (s *Service) SaveObjects(batch map[string]string, flagProfileID string) error {
	s.ensureLoaded()

	normalized := mapst.Clone(batch)

	if value, ok := normalized[model.NameEncryptPass]; ok {
		hashed, err := s.hasher.Digest(value)
		if err != nil {
			return fmt.Errorf("failed to hash password entry: %w", err)
		}
		normalized[model.NameEncryptPass] = hashed
	}

	// Opting out of inheritance preserves the profile's current
	// encryption parameters before the switch takes effect.
	if flag, ok := normalized[model.NameUseDefaultConfigs]; ok && s.profileID != s.defaultProfile {
		e := model.ConfigEntry{Name: model.NameUseDefaultConfigs, Value: flag}
		if !e.IsTruthy() {
			if err := s.backupForProfileSwitch(); err != nil {
				return fmt.Errorf("failed to back up encryption entries before profile switch: %w", err)
			}
		}
	}

	if err := s.backupOnSave(normalized); err != nil {
		return fmt.Errorf("failed to compute encryption backup: %w", err)
	}

	var g errgroup.Group
	for name, value := range normalized {
		entry := model.ConfigEntry{
			ProfileID: s.targetProfile(name, flagProfileID),
			Name:      name,
			Value:     value,
		}
		g.Go(func() error {
			return s.store.SaveConfig(&entry)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s.invalidate()
	s.events.Publish(bus.Event{Kind: bus.Changed, Entries: normalized})
	return nil
}

// SaveList normalizes an ordered sequence of entries into a batch keyed
// by name and saves it. Later entries win on duplicate names.
func (s *Service) SaveList(entries []model.ConfigEntry, flagProfileID string) error {
	batch := make(map[string]string, len(entries))
	for _, e := range entries {
		batch[e.Name] = e.Value
	}
	return s.SaveObjects(batch, flagProfileID)
}

// targetProfile resolves the profile an entry is written to. The
// inheritance flag is routed to the caller-supplied profile; everything
// else follows profile resolution.
func (s *Service) targetProfile(name, flagProfileID string) string {
	if name == model.NameUseDefaultConfigs {
		return flagProfileID
	}
	return s.effectiveProfile()
}
