// Copyright (c) 2026 Quillbox Team
// Confstore - profile-scoped configuration store
// This source code is licensed under the MIT license found in the LICENSE file.

package model

// defaultValues holds the built-in default for every known entry name.
// Bootstrap provisions a fresh profile from this table.
var defaultValues = map[string]string{
	"appLang":           "",
	"appProfiles":       `["default"]`,
	"editMode":          "preview",
	"encrypt":           "0",
	"encryptBackup":     "{}",
	"encryptIter":       "10000",
	"encryptKeySize":    "128",
	"encryptPass":       "",
	"encryptSalt":       "",
	"encryptTag":        "64",
	"pagination":        "10",
	"sortNotes":         "created",
	"theme":             "default",
	"useDefaultConfigs": "1",
}

// KnownNames returns the names of all entries that bootstrap provisions.
// The result is a fresh slice; callers may reorder it.
func KnownNames() []string {
	names := make([]string, 0, len(defaultValues))
	for name := range defaultValues {
		names = append(names, name)
	}
	return names
}

// DefaultEntry returns the built-in default entry for name, bound to the
// given profile. ok is false for unknown names.
func DefaultEntry(profileID, name string) (ConfigEntry, bool) {
	value, ok := defaultValues[name]
	if !ok {
		return ConfigEntry{}, false
	}
	return ConfigEntry{ProfileID: profileID, Name: name, Value: value}, true
}
