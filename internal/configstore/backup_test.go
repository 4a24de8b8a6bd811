// Copyright (c) 2026 Quillbox Team
// Confstore - profile-scoped configuration store
// This source code is licensed under the MIT license found in the LICENSE file.
package configstore

import (
	"testing"

	"github.com/quillbox/confstore/internal/model"
)

func decodeStoredBackup(t *testing.T, svc *Service, profileID string) model.Backup {
	t.Helper()
	entry, err := svc.store.GetConfig(profileID, model.NameEncryptBackup)
	if err != nil {
		t.Fatalf("fetching backup of %q failed: %v", profileID, err)
	}
	if entry == nil {
		t.Fatalf("profile %q has no backup entry", profileID)
	}
	backup, err := model.DecodeBackup(entry.Value)
	if err != nil {
		t.Fatalf("decoding backup failed: %v", err)
	}
	return backup
}

func TestFirstEncrypt_BackupHoldsPreChangeValues(t *testing.T) {
	_, service := newTestEnv(t)
	svc := service("default")
	svc.GetObject() // bootstrap

	batch := map[string]string{"encrypt": "1", model.NameEncryptPass: "secret"}
	if err := svc.SaveObjects(batch, "default"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	backup := decodeStoredBackup(t, svc, "default")
	if backup["encrypt"] != "0" {
		t.Fatalf("backup must hold the pre-change encrypt value, got %q", backup["encrypt"])
	}
	if backup[model.NameEncryptPass] != "" {
		t.Fatalf("backup must hold the pre-change (empty) password, got %q", backup[model.NameEncryptPass])
	}
}

func TestBackupMerge_OldestValuesWin(t *testing.T) {
	_, service := newTestEnv(t)
	svc := service("default")
	svc.GetObject()

	// First change captures salt "" (pre-change).
	if err := svc.SaveObjects(map[string]string{"encryptSalt": "salt-one"}, "default"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	// Second change must not replace the captured field, only fold in
	// fields the backup has not seen.
	if err := svc.SaveObjects(map[string]string{"encryptSalt": "salt-two", "encryptIter": "2000"}, "default"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	backup := decodeStoredBackup(t, svc, "default")
	// The first capture was the empty pre-change salt; empty fields may
	// still be filled, so the oldest non-empty value ("salt-one") sticks.
	if backup["encryptSalt"] != "salt-one" {
		t.Fatalf("expected oldest non-empty salt, got %q", backup["encryptSalt"])
	}
	if backup["encryptIter"] != "10000" {
		t.Fatalf("expected pre-change iteration count, got %q", backup["encryptIter"])
	}

	// A third change must not touch the captured salt again.
	if err := svc.SaveObjects(map[string]string{"encryptSalt": "salt-three"}, "default"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	backup = decodeStoredBackup(t, svc, "default")
	if backup["encryptSalt"] != "salt-one" {
		t.Fatalf("captured field regressed: %q", backup["encryptSalt"])
	}
}

func TestSameCiphertextPassword_DoesNotChurnBackup(t *testing.T) {
	_, service := newTestEnv(t)
	svc := service("default")
	svc.GetObject()

	if err := svc.SaveObjects(map[string]string{model.NameEncryptPass: "secret"}, "default"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	before := decodeStoredBackup(t, svc, "default")

	// Re-saving the same password together with another encryption change
	// must not capture the password digest into the backup.
	if err := svc.SaveObjects(map[string]string{model.NameEncryptPass: "secret", "encryptTag": "128"}, "default"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	after := decodeStoredBackup(t, svc, "default")

	if after[model.NameEncryptPass] != before[model.NameEncryptPass] {
		t.Fatalf("unchanged password churned the backup: %q -> %q",
			before[model.NameEncryptPass], after[model.NameEncryptPass])
	}
	if after["encryptTag"] != "64" {
		t.Fatalf("expected pre-change tag size in backup, got %q", after["encryptTag"])
	}
}

func TestNonEncryptionBatch_LeavesBackupAlone(t *testing.T) {
	_, service := newTestEnv(t)
	svc := service("default")
	svc.GetObject()

	if err := svc.SaveObjects(map[string]string{"theme": "dark"}, "default"); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	backup := decodeStoredBackup(t, svc, "default")
	if len(backup) != 0 {
		t.Fatalf("backup must stay empty for non-encryption batches, got %v", backup)
	}
}

func TestCheckBackup_ClaimsCustodyForIsolatedProfile(t *testing.T) {
	store, service := newTestEnv(t)

	// The default profile holds an empty backup; work holds the only
	// non-empty one (it encrypted content before the profile system
	// tracked custody).
	if err := store.SaveConfig(&model.ConfigEntry{ProfileID: "default", Name: model.NameEncryptBackup, Value: "{}"}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := store.SaveConfig(&model.ConfigEntry{ProfileID: "work", Name: model.NameEncryptBackup, Value: `{"encryptSalt":"s1"}`}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	svc := service("work")
	svc.GetObject() // triggers the load-time check

	got := decodeStoredBackup(t, svc, "work")
	if got["encryptSalt"] != "s1" {
		t.Fatalf("work lost its backup value: %v", got)
	}

	// Custody left the default profile entirely.
	defEntry, err := store.GetConfig("default", model.NameEncryptBackup)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if defEntry != nil {
		t.Fatalf("default profile still owns a backup entry: %+v", defEntry)
	}

	profiles, err := svc.GetProfiles()
	if err != nil {
		t.Fatalf("GetProfiles failed: %v", err)
	}
	if len(profiles) != 1 || profiles[0] != "work" {
		t.Fatalf("isolated profile must be reported alone, got %v", profiles)
	}
}

func TestCheckBackup_NoopWhenDefaultBackupNonEmpty(t *testing.T) {
	store, service := newTestEnv(t)

	if err := store.SaveConfig(&model.ConfigEntry{ProfileID: "default", Name: model.NameEncryptBackup, Value: `{"encryptSalt":"kept"}`}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := store.SaveConfig(&model.ConfigEntry{ProfileID: "work", Name: model.NameEncryptBackup, Value: `{"encryptSalt":"other"}`}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	svc := service("work")
	svc.GetObject()

	backup := decodeStoredBackup(t, svc, "default")
	if backup["encryptSalt"] != "kept" {
		t.Fatalf("a non-empty default backup must not be replaced, got %v", backup)
	}
}

func TestOptOut_BacksUpObservedEncryptionEntries(t *testing.T) {
	_, service := newTestEnv(t)

	defSvc := service("default")
	if err := defSvc.SaveObjects(map[string]string{"encryptSalt": "shared-salt"}, "default"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	workSvc := service("work")
	workSvc.GetObject() // bootstrap, inheriting

	if err := workSvc.SaveObjects(map[string]string{model.NameUseDefaultConfigs: "0"}, "work"); err != nil {
		t.Fatalf("opt-out failed: %v", err)
	}

	backup := decodeStoredBackup(t, workSvc, "work")
	if backup["encryptSalt"] != "shared-salt" {
		t.Fatalf("opt-out must preserve the observed salt, got %v", backup)
	}
}

func TestResetEncrypt_DiscardsBackup(t *testing.T) {
	_, service := newTestEnv(t)
	svc := service("default")
	svc.GetObject()

	if err := svc.SaveObjects(map[string]string{"encryptSalt": "salt-one"}, "default"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if backup := decodeStoredBackup(t, svc, "default"); len(backup) == 0 {
		t.Fatal("precondition: backup should have captured a field")
	}

	if err := svc.ResetEncrypt(); err != nil {
		t.Fatalf("ResetEncrypt failed: %v", err)
	}
	if backup := decodeStoredBackup(t, svc, "default"); len(backup) != 0 {
		t.Fatalf("reset must discard the backup, got %v", backup)
	}
}
