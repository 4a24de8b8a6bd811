package db

import (
	"errors"
	"testing"

	"github.com/quillbox/confstore/internal/model"
)

func TestSaveAndGetConfig(t *testing.T) {
	s := newTestStore(t)

	e := &model.ConfigEntry{ProfileID: "default", Name: "theme", Value: "dark"}
	if err := s.SaveConfig(e); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	got, err := s.GetConfig("default", "theme")
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if got == nil || got.Value != "dark" {
		t.Fatalf("unexpected entry: %+v", got)
	}

	// Upsert: same (profile, name) must overwrite, not duplicate.
	e2 := &model.ConfigEntry{ProfileID: "default", Name: "theme", Value: "light"}
	if err := s.SaveConfig(e2); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	all, err := s.GetAllConfigs("default")
	if err != nil {
		t.Fatalf("GetAllConfigs failed: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected one row after upsert, got %d", len(all))
	}
	if all[0].Value != "light" {
		t.Fatalf("upsert did not overwrite value: %+v", all[0])
	}
}

func TestGetConfig_AbsentIsNilNil(t *testing.T) {
	s := newTestStore(t)

	got, err := s.GetConfig("default", "missing")
	if err != nil {
		t.Fatalf("absent entry must not error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for absent entry, got %+v", got)
	}
}

func TestGetDefaultValue(t *testing.T) {
	s := newTestStore(t)

	e, err := s.GetDefaultValue("encryptIter")
	if err != nil {
		t.Fatalf("GetDefaultValue failed: %v", err)
	}
	if e.Value != "10000" {
		t.Fatalf("unexpected default: %+v", e)
	}

	if _, err := s.GetDefaultValue("bogus"); !errors.Is(err, ErrUnknownDefault) {
		t.Fatalf("expected ErrUnknownDefault, got %v", err)
	}
}

func TestCreateProfile_Duplicate(t *testing.T) {
	s := newTestStore(t)

	if err := s.CreateProfile("work"); err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}
	if err := s.CreateProfile("work"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate on second create, got %v", err)
	}
}

func TestRemoveProfile_DeletesEntries(t *testing.T) {
	s := newTestStore(t)

	if err := s.CreateProfile("work"); err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}
	if err := s.SaveConfig(&model.ConfigEntry{ProfileID: "work", Name: "theme", Value: "dark"}); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	if err := s.RemoveProfile("work"); err != nil {
		t.Fatalf("RemoveProfile failed: %v", err)
	}

	profiles, err := s.ListProfiles()
	if err != nil {
		t.Fatalf("ListProfiles failed: %v", err)
	}
	for _, p := range profiles {
		if p == "work" {
			t.Fatal("profile still listed after removal")
		}
	}

	entries, err := s.GetAllConfigs("work")
	if err != nil {
		t.Fatalf("GetAllConfigs failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("entries survived profile removal: %v", entries)
	}
}

func TestReassignOwner_SupersedesCollision(t *testing.T) {
	s := newTestStore(t)

	src := &model.ConfigEntry{ProfileID: "default", Name: "encryptBackup", Value: `{"encryptSalt":"abc"}`}
	if err := s.SaveConfig(src); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}
	// The target profile already holds its own backup entry.
	if err := s.SaveConfig(&model.ConfigEntry{ProfileID: "work", Name: "encryptBackup", Value: "{}"}); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	stored, err := s.GetConfig("default", "encryptBackup")
	if err != nil || stored == nil {
		t.Fatalf("fetch failed: %v %v", stored, err)
	}

	if err := s.ReassignOwner(stored, "work"); err != nil {
		t.Fatalf("ReassignOwner failed: %v", err)
	}
	if stored.ProfileID != "work" {
		t.Fatalf("entry not rebound in memory: %+v", stored)
	}

	moved, err := s.GetConfig("work", "encryptBackup")
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if moved == nil || moved.Value != `{"encryptSalt":"abc"}` {
		t.Fatalf("moved entry lost its value: %+v", moved)
	}

	orig, err := s.GetConfig("default", "encryptBackup")
	if err != nil {
		t.Fatalf("GetConfig failed: %v", err)
	}
	if orig != nil {
		t.Fatalf("source profile still owns the entry: %+v", orig)
	}
}

func TestLegacyState(t *testing.T) {
	s := newTestStore(t)

	has, err := s.HasLegacyState()
	if err != nil {
		t.Fatalf("HasLegacyState failed: %v", err)
	}
	if has {
		t.Fatal("fresh store must not report legacy state")
	}

	// Legacy rows carry an empty profile id.
	if err := s.SaveConfig(&model.ConfigEntry{ProfileID: "", Name: "theme", Value: "classic"}); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	has, err = s.HasLegacyState()
	if err != nil {
		t.Fatalf("HasLegacyState failed: %v", err)
	}
	if !has {
		t.Fatal("expected legacy state after inserting a pre-profile row")
	}

	legacy, err := s.GetLegacyConfigs()
	if err != nil {
		t.Fatalf("GetLegacyConfigs failed: %v", err)
	}
	if len(legacy) != 1 || legacy[0].Name != "theme" {
		t.Fatalf("unexpected legacy rows: %v", legacy)
	}
}
