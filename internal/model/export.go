// Copyright (c) 2026 Quillbox Team
// Confstore - profile-scoped configuration store
// This source code is licensed under the MIT license found in the LICENSE file.
package model

// BackupEntry is one exported setting. Entry IDs are storage-local and are
// deliberately not part of the export format.
type BackupEntry struct {
	ProfileID string `json:"profile_id"`
	Name      string `json:"name"`
	Value     string `json:"value"`
}

// BackupData is the portable dump of the whole store, used by the backup
// and restore commands and for migrating between database backends.
type BackupData struct {
	Version  int           `json:"version"`
	Profiles []string      `json:"profiles"`
	Entries  []BackupEntry `json:"entries"`
}
