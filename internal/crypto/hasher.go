// Copyright (c) 2026 Quillbox Team
// Confstore - profile-scoped configuration store
// This source code is licensed under the MIT license found in the LICENSE file.

// Package crypto provides the one-way digest used for password-type
// configuration entries. The store never persists a password in clear
// text; it persists this digest.
package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"golang.org/x/crypto/pbkdf2"
)

// Hasher computes a one-way digest of a value.
type Hasher interface {
	Digest(value string) (string, error)
}

// PBKDF2Hasher derives a hex-encoded PBKDF2-SHA256 digest. Salt,
// iteration count and key size mirror the encryption entry defaults so a
// stored digest stays reproducible for a given configuration.
type PBKDF2Hasher struct {
	Salt    string
	Iter    int
	KeySize int // bits
}

// NewPBKDF2Hasher builds a hasher from the textual encryption parameters
// as they appear in the configuration (iterations and key size are
// numbers stored as strings like every other entry value).
func NewPBKDF2Hasher(salt, iter, keySize string) *PBKDF2Hasher {
	h := &PBKDF2Hasher{Salt: salt, Iter: 10000, KeySize: 128}
	if n, err := strconv.Atoi(iter); err == nil && n > 0 {
		h.Iter = n
	}
	if n, err := strconv.Atoi(keySize); err == nil && n > 0 {
		h.KeySize = n
	}
	return h
}

// Digest returns the hex-encoded derived key for value. Empty values
// digest to the empty string so unset passwords stay unset.
func (h *PBKDF2Hasher) Digest(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	key := pbkdf2.Key([]byte(value), []byte(h.Salt), h.Iter, h.KeySize/8, sha256.New)
	return hex.EncodeToString(key), nil
}
