// Reelrank - Hybrid Movie Recommendation Service
// Copyright 2026 Reelrank contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/reelrank/reelrank

// Package storage persists trained model state between process restarts.
//
// A saved model is keyed by a caller-supplied fingerprint (a hash of the
// dataset files and the engine configuration). Load refuses a snapshot
// whose fingerprint does not match, so a changed dataset or config always
// forces retraining. Payloads are gob-encoded, gzip-compressed, and
// checksummed with SHA-256; writes go through a temp file plus rename so a
// crash mid-save never leaves a truncated model behind.
package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// ErrFingerprintMismatch means a stored model exists but was trained
// against a different dataset or configuration.
var ErrFingerprintMismatch = errors.New("model fingerprint mismatch")

// Metadata describes a stored model.
type Metadata struct {
	// Name is the model name, e.g. "nmf".
	Name string

	// Fingerprint identifies the dataset and configuration the model was
	// trained against.
	Fingerprint string

	// SavedAt is when the model was written.
	SavedAt time.Time

	// Checksum is the SHA-256 of the uncompressed payload.
	Checksum string

	// SizeBytes is the compressed payload size.
	SizeBytes int64
}

// storedFile is the on-disk format.
type storedFile struct {
	Metadata       Metadata
	CompressedData []byte
}

// Store persists models under a base directory, one file per model name.
type Store struct {
	baseDir string
	mu      sync.Mutex
}

// NewStore creates a model store at baseDir, creating the directory if
// needed.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("create model directory: %w", err)
	}
	return &Store{baseDir: baseDir}, nil
}

// Save persists payload under name with the given fingerprint, replacing
// any previous snapshot of the same name.
func (s *Store) Save(ctx context.Context, name, fingerprint string, payload interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var raw bytes.Buffer
	if err := gob.NewEncoder(&raw).Encode(payload); err != nil {
		return fmt.Errorf("encode model: %w", err)
	}

	hash := sha256.Sum256(raw.Bytes())

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw.Bytes()); err != nil {
		return fmt.Errorf("compress model: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return fmt.Errorf("finalize compression: %w", err)
	}

	sf := storedFile{
		Metadata: Metadata{
			Name:        name,
			Fingerprint: fingerprint,
			SavedAt:     time.Now(),
			Checksum:    hex.EncodeToString(hash[:]),
			SizeBytes:   int64(compressed.Len()),
		},
		CompressedData: compressed.Bytes(),
	}

	tmp, err := os.CreateTemp(s.baseDir, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp model file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(sf); err != nil {
		tmp.Close()
		return fmt.Errorf("write model file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close model file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.modelPath(name)); err != nil {
		return fmt.Errorf("install model file: %w", err)
	}
	return nil
}

// Load reads the model stored under name into target, which must be a
// pointer to the payload type used at Save. It fails with
// ErrFingerprintMismatch (wrapped) when the stored fingerprint differs
// from the expected one, and with an error on any corruption detected by
// the checksum.
func (s *Store) Load(ctx context.Context, name, fingerprint string, target interface{}) (*Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.modelPath(name))
	if err != nil {
		return nil, fmt.Errorf("open model file: %w", err)
	}
	defer f.Close()

	var sf storedFile
	if err := gob.NewDecoder(f).Decode(&sf); err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}

	if sf.Metadata.Fingerprint != fingerprint {
		return nil, fmt.Errorf("model %s: %w", name, ErrFingerprintMismatch)
	}

	gzr, err := gzip.NewReader(bytes.NewReader(sf.CompressedData))
	if err != nil {
		return nil, fmt.Errorf("decompress model: %w", err)
	}
	raw, err := io.ReadAll(gzr)
	if err != nil {
		return nil, fmt.Errorf("decompress model: %w", err)
	}
	if err := gzr.Close(); err != nil {
		return nil, fmt.Errorf("decompress model: %w", err)
	}

	hash := sha256.Sum256(raw)
	if hex.EncodeToString(hash[:]) != sf.Metadata.Checksum {
		return nil, fmt.Errorf("model %s: checksum mismatch", name)
	}

	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(target); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}

	meta := sf.Metadata
	return &meta, nil
}

// Remove deletes the stored model for name, if any.
func (s *Store) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.modelPath(name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove model file: %w", err)
	}
	return nil
}

func (s *Store) modelPath(name string) string {
	return filepath.Join(s.baseDir, name+".gob.gz")
}
