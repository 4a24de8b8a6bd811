// Copyright (c) 2026 Quillbox Team
// Confstore - profile-scoped configuration store
// This source code is licensed under the MIT license found in the LICENSE file.

// Package model defines the data types shared between the configuration
// store core and the storage layer.
package model

import (
	"fmt"

	"github.com/quillbox/confstore/util/slicest"
)

// Well-known configuration entry names with special routing or lifecycle
// rules. Everything else is an ordinary per-profile setting.
const (
	// NameUseDefaultConfigs is the per-profile inheritance flag. A truthy
	// value redirects reads to the default profile.
	NameUseDefaultConfigs = "useDefaultConfigs"

	// NameAppProfiles lists the profiles that may opt into inheritance.
	// It lives in the default profile only.
	NameAppProfiles = "appProfiles"

	// NameEncryptBackup holds the preserved snapshot of the encryption
	// entry set. Its owning profile can be reassigned.
	NameEncryptBackup = "encryptBackup"

	// NameEncryptPass is the password entry. It is hashed before it is
	// persisted and never stored in clear text.
	NameEncryptPass = "encryptPass"
)

// EncryptionNames is the fixed set of entries that parameterize content
// encryption. Changing any of them without a prior backup risks making
// already-encrypted content undecryptable.
var EncryptionNames = []string{
	"encrypt",
	"encryptPass",
	"encryptSalt",
	"encryptIter",
	"encryptTag",
	"encryptKeySize",
}

// IsEncryptionName reports whether name belongs to the encryption entry set.
func IsEncryptionName(name string) bool {
	return slicest.Contains(EncryptionNames, name)
}

// ConfigEntry is a single named setting belonging to exactly one profile.
// Values are stored as text; structured values (appProfiles, encryptBackup)
// are JSON-encoded.
type ConfigEntry struct {
	ID        int
	ProfileID string
	Name      string
	Value     string
}

// String returns the profile-qualified name of the entry.
func (e ConfigEntry) String() string {
	return fmt.Sprintf("%s/%s", e.ProfileID, e.Name)
}

// IsTruthy interprets the entry value as a boolean-as-number flag.
// Empty, "0" and "false" are falsy; everything else is truthy.
func (e ConfigEntry) IsTruthy() bool {
	switch e.Value {
	case "", "0", "false":
		return false
	}
	return true
}
