// Copyright (c) 2026 Quillbox Team
// Confstore - profile-scoped configuration store
// This source code is licensed under the MIT license found in the LICENSE file.
package cli

import (
	"path/filepath"
	"testing"

	"github.com/quillbox/confstore/internal/model"
)

func TestCompressedBackup_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json.zst")

	data := &model.BackupData{
		Version:  1,
		Profiles: []string{"work"},
		Entries: []model.BackupEntry{
			{ProfileID: "default", Name: "theme", Value: "solar"},
			{Name: "appLang", Value: "en"}, // legacy entry, no profile
		},
	}

	if err := writeCompressedBackup(path, data); err != nil {
		t.Fatalf("writeCompressedBackup failed: %v", err)
	}

	got, err := readCompressedBackup(path)
	if err != nil {
		t.Fatalf("readCompressedBackup failed: %v", err)
	}
	if got.Version != 1 || len(got.Profiles) != 1 || len(got.Entries) != 2 {
		t.Fatalf("round trip lost data: %+v", got)
	}
	if got.Entries[0].Value != "solar" || got.Entries[1].ProfileID != "" {
		t.Fatalf("round trip corrupted entries: %+v", got.Entries)
	}
}

func TestReadCompressedBackup_MissingFile(t *testing.T) {
	if _, err := readCompressedBackup(filepath.Join(t.TempDir(), "nope.zst")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}
