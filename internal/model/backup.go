// Copyright (c) 2026 Quillbox Team
// Confstore - profile-scoped configuration store
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"encoding/json"
	"fmt"
)

// Backup is the preserved snapshot of encryption entry values. It is
// stored JSON-encoded in the encryptBackup entry.
type Backup map[string]string

// DecodeBackup parses the JSON value of an encryptBackup entry. An empty
// or absent value decodes to an empty, non-nil map.
func DecodeBackup(value string) (Backup, error) {
	if value == "" {
		return Backup{}, nil
	}
	var b Backup
	if err := json.Unmarshal([]byte(value), &b); err != nil {
		return nil, fmt.Errorf("failed to decode encryption backup: %w", err)
	}
	if b == nil {
		b = Backup{}
	}
	return b, nil
}

// Encode renders the backup for storage.
func (b Backup) Encode() (string, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("failed to encode encryption backup: %w", err)
	}
	return string(data), nil
}

// IsEmpty reports whether the backup captured no non-empty field.
func (b Backup) IsEmpty() bool {
	for _, v := range b {
		if v != "" {
			return false
		}
	}
	return true
}

// Merge folds the fields of snapshot into the backup without replacing
// fields that are already non-empty. The backup only ever retains the
// oldest known value for a field it has captured.
func (b Backup) Merge(snapshot Backup) Backup {
	merged := Backup{}
	for k, v := range snapshot {
		merged[k] = v
	}
	for k, v := range b {
		if v != "" {
			merged[k] = v
		}
	}
	return merged
}

// DecodeProfileList parses the JSON value of an appProfiles entry.
func DecodeProfileList(value string) ([]string, error) {
	if value == "" {
		return nil, nil
	}
	var profiles []string
	if err := json.Unmarshal([]byte(value), &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profile list: %w", err)
	}
	return profiles, nil
}

// EncodeProfileList renders a profile list for storage.
func EncodeProfileList(profiles []string) (string, error) {
	data, err := json.Marshal(profiles)
	if err != nil {
		return "", fmt.Errorf("failed to encode profile list: %w", err)
	}
	return string(data), nil
}
