// Copyright (c) 2026 Quillbox Team
// Confstore - profile-scoped configuration store
// This source code is licensed under the MIT license found in the LICENSE file.
package configstore

import (
	"errors"
	"testing"

	"github.com/quillbox/confstore/internal/bus"
	"github.com/quillbox/confstore/internal/crypto"
	"github.com/quillbox/confstore/internal/db"
	"github.com/quillbox/confstore/internal/model"
)

func TestCreateProfile_RegistersInAppProfiles(t *testing.T) {
	_, service := newTestEnv(t)
	svc := service("default")
	svc.GetObject()

	handle, err := svc.CreateProfile("work")
	if err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}
	if handle != "work" {
		t.Fatalf("unexpected handle: %q", handle)
	}

	listed, err := model.DecodeProfileList(svc.GetConfig(model.NameAppProfiles, ""))
	if err != nil {
		t.Fatalf("decoding appProfiles failed: %v", err)
	}
	found := false
	for _, p := range listed {
		if p == "work" {
			found = true
		}
	}
	if !found {
		t.Fatalf("created profile missing from appProfiles: %v", listed)
	}
}

func TestRemoveProfile_EmitsEventAfterSuccess(t *testing.T) {
	_, service := newTestEnv(t)
	svc := service("default")
	svc.GetObject()

	if _, err := svc.CreateProfile("work"); err != nil {
		t.Fatalf("CreateProfile failed: %v", err)
	}

	var removed []string
	svc.Events().Subscribe(func(e bus.Event) {
		if e.Kind == bus.RemovedProfile {
			removed = append(removed, e.Profile)
		}
	})

	if err := svc.RemoveProfile("work"); err != nil {
		t.Fatalf("RemoveProfile failed: %v", err)
	}
	if len(removed) != 1 || removed[0] != "work" {
		t.Fatalf("expected removed:profile with payload \"work\", got %v", removed)
	}
}

// failingStore forces removal errors while delegating everything else.
type failingStore struct {
	db.Store
}

func (f *failingStore) RemoveProfile(name string) error {
	return errors.New("storage unavailable")
}

func TestRemoveProfile_NoEventOnFailure(t *testing.T) {
	store, _ := newTestEnv(t)
	svc := New(&failingStore{Store: store}, crypto.NewPBKDF2Hasher("s", "1000", "128"), bus.New(), "default", "default")

	var events []bus.Event
	svc.Events().Subscribe(func(e bus.Event) {
		if e.Kind == bus.RemovedProfile {
			events = append(events, e)
		}
	})

	if err := svc.RemoveProfile("work"); err == nil {
		t.Fatal("expected removal to fail")
	}
	if len(events) != 0 {
		t.Fatalf("no event may fire when removal fails, got %v", events)
	}
}

func TestGetProfiles_ListsInheritingProfiles(t *testing.T) {
	store, service := newTestEnv(t)
	svc := service("default")
	svc.GetObject()

	for _, name := range []string{"work", "island"} {
		if _, err := svc.CreateProfile(name); err != nil {
			t.Fatalf("CreateProfile failed: %v", err)
		}
	}
	// work inherits; island keeps its own settings.
	if err := store.SaveConfig(&model.ConfigEntry{ProfileID: "work", Name: model.NameUseDefaultConfigs, Value: "1"}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := store.SaveConfig(&model.ConfigEntry{ProfileID: "island", Name: model.NameUseDefaultConfigs, Value: "0"}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	profiles, err := svc.GetProfiles()
	if err != nil {
		t.Fatalf("GetProfiles failed: %v", err)
	}

	got := map[string]bool{}
	for _, p := range profiles {
		got[p] = true
	}
	if !got["default"] || !got["work"] {
		t.Fatalf("expected default and work, got %v", profiles)
	}
	if got["island"] {
		t.Fatalf("opted-out profile must not be listed, got %v", profiles)
	}
}

func TestGetProfiles_IsolatedCurrentProfile(t *testing.T) {
	_, service := newTestEnv(t)

	service("default").GetObject() // bootstrap default

	workSvc := service("work")
	workSvc.GetObject()

	profiles, err := workSvc.GetProfiles()
	if err != nil {
		t.Fatalf("GetProfiles failed: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("a non-default current profile must be reported alone, got %v", profiles)
	}
}
