// Copyright (c) 2026 Quillbox Team
// Confstore - profile-scoped configuration store
// This source code is licensed under the MIT license found in the LICENSE file.

package configstore

import (
	"fmt"

	"github.com/quillbox/confstore/internal/model"
	"github.com/quillbox/confstore/util/mapst"
	"github.com/quillbox/confstore/util/slicest"
)

// checkBackup runs on every top-level load. When a non-default profile
// holds the only non-empty encryption backup, the default profile's
// backup entry takes over its value and is reassigned to that profile,
// so the profile that actually needs decryption keeps custody.
func (s *Service) checkBackup(profileID string) error {
	defBackup, err := s.store.GetConfig(s.defaultProfile, model.NameEncryptBackup)
	if err != nil {
		return err
	}

	if profileID == s.defaultProfile {
		s.backup = defBackup
		return nil
	}
	if defBackup != nil {
		val, err := model.DecodeBackup(defBackup.Value)
		if err != nil {
			return err
		}
		if !val.IsEmpty() {
			s.backup = defBackup
			return nil
		}
	}

	own, err := s.store.GetConfig(profileID, model.NameEncryptBackup)
	if err != nil {
		return err
	}
	if own == nil {
		s.backup = defBackup
		return nil
	}
	ownVal, err := model.DecodeBackup(own.Value)
	if err != nil {
		return err
	}
	if ownVal.IsEmpty() {
		s.backup = defBackup
		return nil
	}

	// Claim: the default profile's backup entry takes the value, then
	// moves to the profile that needs it.
	claimed := &model.ConfigEntry{ProfileID: s.defaultProfile, Name: model.NameEncryptBackup, Value: own.Value}
	if err := s.store.SaveConfig(claimed); err != nil {
		return fmt.Errorf("failed to stage backup claim: %w", err)
	}
	claimed, err = s.store.GetConfig(s.defaultProfile, model.NameEncryptBackup)
	if err != nil {
		return err
	}
	if claimed == nil {
		return fmt.Errorf("staged backup claim vanished for profile %q", profileID)
	}
	if err := s.store.ReassignOwner(claimed, profileID); err != nil {
		return fmt.Errorf("failed to move backup custody to %q: %w", profileID, err)
	}

	s.backup = claimed
	return nil
}

// backupOnSave inspects an incoming batch for encryption entries and, if
// any are present, injects an updated encryptBackup entry into the batch.
// The injected value merges a snapshot of the current persisted values
// with the existing backup; fields the backup already captured keep their
// old value, so the backup only ever retains the oldest known parameters.
func (s *Service) backupOnSave(batch map[string]string) error {
	names := slicest.Filter(mapst.Keys(batch), model.IsEncryptionName)
	if len(names) == 0 {
		return nil
	}

	effective := s.effectiveProfile()

	snapshot := model.Backup{}
	for _, name := range names {
		cur, err := s.store.GetConfig(effective, name)
		if err != nil {
			return err
		}
		var curVal string
		if cur != nil {
			curVal = cur.Value
		}
		// Re-saving the same password is not a real change; don't churn
		// the backup for it.
		if name == model.NameEncryptPass && batch[name] == curVal {
			continue
		}
		snapshot[name] = curVal
	}

	merged, err := s.mergeWithExistingBackup(effective, snapshot)
	if err != nil {
		return err
	}
	value, err := merged.Encode()
	if err != nil {
		return err
	}
	batch[model.NameEncryptBackup] = value
	return nil
}

// backupForProfileSwitch preserves the encryption entries a profile
// currently observes into that profile's own backup. It runs when the
// profile opts out of default-config inheritance, before the switch
// takes effect.
func (s *Service) backupForProfileSwitch() error {
	effective := s.effectiveProfile()

	snapshot := model.Backup{}
	for _, name := range model.EncryptionNames {
		cur, err := s.store.GetConfig(effective, name)
		if err != nil {
			return err
		}
		var curVal string
		if cur != nil {
			curVal = cur.Value
		}
		snapshot[name] = curVal
	}

	merged, err := s.mergeWithExistingBackup(s.profileID, snapshot)
	if err != nil {
		return err
	}
	value, err := merged.Encode()
	if err != nil {
		return err
	}
	return s.store.SaveConfig(&model.ConfigEntry{
		ProfileID: s.profileID,
		Name:      model.NameEncryptBackup,
		Value:     value,
	})
}

// mergeWithExistingBackup folds snapshot under the backup currently
// stored for profileID. Existing non-empty fields always win.
func (s *Service) mergeWithExistingBackup(profileID string, snapshot model.Backup) (model.Backup, error) {
	existing := model.Backup{}
	if entry, err := s.store.GetConfig(profileID, model.NameEncryptBackup); err != nil {
		return nil, err
	} else if entry != nil {
		existing, err = model.DecodeBackup(entry.Value)
		if err != nil {
			return nil, err
		}
	}
	return existing.Merge(snapshot), nil
}

// ResetEncrypt discards the current profile's encryption backup. This is
// a deliberate bypass of the oldest-wins merge rule.
func (s *Service) ResetEncrypt() error {
	err := s.store.SaveConfig(&model.ConfigEntry{
		ProfileID: s.profileID,
		Name:      model.NameEncryptBackup,
		Value:     "{}",
	})
	if err != nil {
		return fmt.Errorf("failed to reset encryption backup: %w", err)
	}
	s.invalidate()
	return nil
}
