// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest computes the content digests poolkit uses to compare
// pool files, name backups, and fingerprint characters.
//
// Digests are BLAKE3 in keyed mode. Each kind of input has its own
// domain key, so the bytes of a whole pool file and the bytes of one
// character never hash to the same value.
package digest

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Hash is a 32-byte BLAKE3 digest.
type Hash [32]byte

// domainKey is a 32-byte BLAKE3 key: the ASCII domain name, zero-padded.
type domainKey [32]byte

// Changing a key invalidates every stored digest in its domain,
// including backup file names.
var (
	poolDomainKey = domainKey{
		'p', 'o', 'o', 'l', 'k', 'i', 't', '.', 'p', 'o', 'o', 'l', 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}

	characterDomainKey = domainKey{
		'p', 'o', 'o', 'l', 'k', 'i', 't', '.', 'c', 'h', 'a', 'r', 'a', 'c', 't', 'e',
		'r', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	}
)

// Pool returns the digest of a complete pool file.
func Pool(data []byte) Hash {
	return keyedHash(poolDomainKey, data)
}

// Character returns the digest of one character's encoded properties.
func Character(data []byte) Hash {
	return keyedHash(characterDomainKey, data)
}

// String returns the hex form of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Short returns the first 12 hex characters, used in backup file names
// and listings.
func (h Hash) Short() string {
	return hex.EncodeToString(h[:6])
}

// IsZero reports whether h is the zero hash.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// MarshalText implements encoding.TextMarshaler.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// Parse parses a 64-character hex string.
func Parse(hexString string) (Hash, error) {
	var hash Hash
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return hash, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != len(hash) {
		return hash, fmt.Errorf("digest is %d bytes, want %d", len(decoded), len(hash))
	}
	copy(hash[:], decoded)
	return hash, nil
}

func keyedHash(key domainKey, data []byte) Hash {
	// NewKeyed only fails for keys that are not 32 bytes.
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		panic("digest: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var hash Hash
	copy(hash[:], hasher.Sum(nil))
	return hash
}
