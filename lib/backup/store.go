// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package backup

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bureau-foundation/poolkit/lib/atomicfile"
	"github.com/bureau-foundation/poolkit/lib/clock"
	"github.com/bureau-foundation/poolkit/lib/codec"
	"github.com/bureau-foundation/poolkit/lib/digest"
)

// ManifestName is the manifest file inside a store directory.
const ManifestName = "manifest.cbor"

// ErrNotFound is returned by [Store.Find] when no record matches.
var ErrNotFound = errors.New("backup not found")

// Record describes one backup.
type Record struct {
	// Source is the absolute path of the file that was backed up.
	Source string `json:"source"`

	// File is the backup file name inside the store directory.
	File string `json:"file"`

	// Digest is the [digest.Pool] hash of the uncompressed content.
	Digest digest.Hash `json:"digest"`

	Compression Compression `json:"compression"`

	// Size is the uncompressed length in bytes.
	Size int64 `json:"size"`

	Created time.Time `json:"created"`
}

// Store is a backup directory.
type Store struct {
	Dir         string
	Compression Compression

	// Clock stamps new records. Nil means the real clock.
	Clock clock.Clock
}

// Save backs up the file at sourcePath. When a backup with the same
// content already exists its record is returned and nothing is
// written.
func (s *Store) Save(sourcePath string) (Record, error) {
	source, err := filepath.Abs(sourcePath)
	if err != nil {
		return Record{}, fmt.Errorf("resolving %s: %w", sourcePath, err)
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return Record{}, fmt.Errorf("reading %s for backup: %w", source, err)
	}
	hash := digest.Pool(data)

	existing, err := s.List()
	if err != nil {
		return Record{}, err
	}
	for _, record := range existing {
		if record.Digest == hash {
			if _, err := os.Stat(filepath.Join(s.Dir, record.File)); err == nil {
				return record, nil
			}
		}
	}

	compressed, err := compress(data, s.Compression)
	if err != nil {
		return Record{}, fmt.Errorf("compressing %s: %w", source, err)
	}

	record := Record{
		Source:      source,
		File:        backupFileName(source, hash, s.Compression),
		Digest:      hash,
		Compression: s.Compression,
		Size:        int64(len(data)),
		Created:     s.now().UTC(),
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return Record{}, fmt.Errorf("creating backup directory: %w", err)
	}
	if err := atomicfile.WriteFile(filepath.Join(s.Dir, record.File), compressed, 0o644); err != nil {
		return Record{}, err
	}
	if err := s.appendManifest(record); err != nil {
		return Record{}, err
	}
	return record, nil
}

// List returns every record in the manifest, newest first. A store
// that has never been written to has no records.
func (s *Store) List() ([]Record, error) {
	file, err := os.Open(filepath.Join(s.Dir, ManifestName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening backup manifest: %w", err)
	}
	defer file.Close()

	records, err := codec.DecodeSequence[Record](file)
	if err != nil {
		return nil, fmt.Errorf("reading backup manifest %s: %w", file.Name(), err)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Created.After(records[j].Created)
	})
	return records, nil
}

// Find returns the newest record whose backup file name or digest
// starts with prefix.
func (s *Store) Find(prefix string) (Record, error) {
	if prefix == "" {
		return Record{}, fmt.Errorf("%w: empty backup id", ErrNotFound)
	}
	records, err := s.List()
	if err != nil {
		return Record{}, err
	}
	for _, record := range records {
		if strings.HasPrefix(record.File, prefix) || strings.HasPrefix(record.Digest.String(), prefix) {
			return record, nil
		}
	}
	return Record{}, fmt.Errorf("%w: %q", ErrNotFound, prefix)
}

// Load returns the uncompressed content of a backup after checking it
// against the record.
func (s *Store) Load(record Record) ([]byte, error) {
	compressed, err := os.ReadFile(filepath.Join(s.Dir, record.File))
	if err != nil {
		return nil, fmt.Errorf("reading backup: %w", err)
	}
	data, err := decompress(compressed, record.Compression, record.Size)
	if err != nil {
		return nil, fmt.Errorf("backup %s: %w", record.File, err)
	}
	if got := digest.Pool(data); got != record.Digest {
		return nil, fmt.Errorf("backup %s: digest %s does not match record %s", record.File, got.Short(), record.Digest.Short())
	}
	return data, nil
}

// Restore writes the backed-up content to destination, replacing it
// atomically.
func (s *Store) Restore(record Record, destination string) error {
	data, err := s.Load(record)
	if err != nil {
		return err
	}
	return atomicfile.WriteFile(destination, data, 0o644)
}

func (s *Store) now() time.Time {
	if s.Clock == nil {
		return clock.Real().Now()
	}
	return s.Clock.Now()
}

func (s *Store) appendManifest(record Record) error {
	data, err := codec.Marshal(record)
	if err != nil {
		return fmt.Errorf("encoding backup record: %w", err)
	}
	file, err := os.OpenFile(filepath.Join(s.Dir, ManifestName), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening backup manifest: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return fmt.Errorf("appending backup record: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return fmt.Errorf("syncing backup manifest: %w", err)
	}
	return file.Close()
}

// backupFileName returns "<stem>-<digest12>.bin[.ext]".
func backupFileName(source string, hash digest.Hash, compression Compression) string {
	stem := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	return stem + "-" + hash.Short() + ".bin" + compression.extension()
}
