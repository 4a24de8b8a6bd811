// Copyright (c) 2026 Quillbox Team
// Confstore - profile-scoped configuration store
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/quillbox/confstore/internal/model"
	"github.com/uptrace/bun"
)

// ConfigEntryModel maps the `config_entries` table for Bun queries.
type ConfigEntryModel struct {
	bun.BaseModel `bun:"table:config_entries"`
	ID            int    `bun:"id,pk,autoincrement"`
	ProfileID     string `bun:"profile_id"`
	Name          string `bun:"name"`
	Value         string `bun:"value"`
}

// ProfileModel maps the `profiles` table.
type ProfileModel struct {
	bun.BaseModel `bun:"table:profiles"`
	Name          string `bun:"name,pk"`
}

// --- Mapping helpers (centralized conversions) ---

func configEntryModelToModel(m ConfigEntryModel) model.ConfigEntry {
	return model.ConfigEntry{
		ID:        m.ID,
		ProfileID: m.ProfileID,
		Name:      m.Name,
		Value:     m.Value,
	}
}

func configEntryToBunModel(e *model.ConfigEntry) ConfigEntryModel {
	return ConfigEntryModel{
		ID:        e.ID,
		ProfileID: e.ProfileID,
		Name:      e.Name,
		Value:     e.Value,
	}
}

// GetConfigBun returns the entry with the given name in the given profile,
// or (nil, nil) when the entry does not exist.
func GetConfigBun(bdb *bun.DB, profileID, name string) (*model.ConfigEntry, error) {
	ctx := context.Background()

	var cem ConfigEntryModel
	err := bdb.NewSelect().Model(&cem).
		Where("profile_id = ?", profileID).
		Where("name = ?", name).
		Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	e := configEntryModelToModel(cem)
	return &e, nil
}

// GetAllConfigsBun returns all entries of a profile ordered by name.
// An empty profileID selects legacy (pre-profile) rows.
func GetAllConfigsBun(bdb *bun.DB, profileID string) ([]model.ConfigEntry, error) {
	ctx := context.Background()

	var cems []ConfigEntryModel
	err := bdb.NewSelect().Model(&cems).
		Where("profile_id = ?", profileID).
		Order("name ASC").
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	entries := make([]model.ConfigEntry, 0, len(cems))
	for _, cem := range cems {
		entries = append(entries, configEntryModelToModel(cem))
	}
	return entries, nil
}

// SaveConfigBun upserts an entry on (profile_id, name) using ON CONFLICT.
// Works for SQLite and Postgres; MySQL uses SaveConfigMySQLBun.
func SaveConfigBun(bdb *bun.DB, entry *model.ConfigEntry) error {
	ctx := context.Background()

	cem := configEntryToBunModel(entry)
	cem.ID = 0
	_, err := bdb.NewInsert().Model(&cem).
		On("CONFLICT (profile_id, name) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save config entry %s: %w", entry, err)
	}
	return nil
}

// SaveConfigMySQLBun upserts an entry using MySQL's ON DUPLICATE KEY syntax.
func SaveConfigMySQLBun(bdb *bun.DB, entry *model.ConfigEntry) error {
	ctx := context.Background()

	cem := configEntryToBunModel(entry)
	cem.ID = 0
	_, err := bdb.NewInsert().Model(&cem).
		On("DUPLICATE KEY UPDATE").
		Set("value = VALUES(value)").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save config entry %s: %w", entry, err)
	}
	return nil
}

// ReassignOwnerBun moves an entry to a new profile within a single
// transaction. Any existing entry with the same name in the target profile
// is superseded; the moved entry takes its place.
func ReassignOwnerBun(bdb *bun.DB, entry *model.ConfigEntry, newProfileID string) error {
	ctx := context.Background()

	tx, err := bdb.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Drop the colliding row first so the UNIQUE(profile_id, name)
	// constraint cannot reject the move.
	if _, err := ExecRaw(ctx, tx,
		"DELETE FROM config_entries WHERE profile_id = ? AND name = ? AND id <> ?",
		newProfileID, entry.Name, entry.ID); err != nil {
		return fmt.Errorf("failed to supersede entry %s in profile %s: %w", entry.Name, newProfileID, err)
	}

	if _, err := ExecRaw(ctx, tx,
		"UPDATE config_entries SET profile_id = ? WHERE id = ?",
		newProfileID, entry.ID); err != nil {
		return fmt.Errorf("failed to reassign entry %s to profile %s: %w", entry.Name, newProfileID, err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	entry.ProfileID = newProfileID
	return nil
}

// CreateProfileBun inserts a new profile namespace row.
func CreateProfileBun(bdb *bun.DB, name string) error {
	ctx := context.Background()

	pm := ProfileModel{Name: name}
	_, err := bdb.NewInsert().Model(&pm).Exec(ctx)
	return MapDBError(err)
}

// RemoveProfileBun deletes a profile and all of its entries in one transaction.
func RemoveProfileBun(bdb *bun.DB, name string) error {
	ctx := context.Background()

	tx, err := bdb.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := ExecRaw(ctx, tx, "DELETE FROM config_entries WHERE profile_id = ?", name); err != nil {
		return fmt.Errorf("failed to delete entries of profile %s: %w", name, err)
	}
	if _, err := ExecRaw(ctx, tx, "DELETE FROM profiles WHERE name = ?", name); err != nil {
		return fmt.Errorf("failed to delete profile %s: %w", name, err)
	}

	return tx.Commit()
}

// ListProfilesBun returns all known profile names ordered alphabetically.
func ListProfilesBun(bdb *bun.DB) ([]string, error) {
	ctx := context.Background()

	var pms []ProfileModel
	err := bdb.NewSelect().Model(&pms).Order("name ASC").Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	names := make([]string, 0, len(pms))
	for _, pm := range pms {
		names = append(names, pm.Name)
	}
	return names, nil
}

// HasLegacyStateBun reports whether any pre-profile rows (empty profile_id)
// exist in the entries table.
func HasLegacyStateBun(bdb *bun.DB) (bool, error) {
	ctx := context.Background()

	count, err := bdb.NewSelect().Model((*ConfigEntryModel)(nil)).
		Where("profile_id = ''").
		Count(ctx)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
