// Curricula - Skill-Aware Course Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curricula

package storage

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// ModelMetadata contains information about a stored model artifact.
type ModelMetadata struct {
	// Name is the model name (e.g. "latent").
	Name string `json:"name"`

	// Version is the artifact version (monotonically increasing).
	Version int `json:"version"`

	// TrainedAt is when the model was trained.
	TrainedAt time.Time `json:"trained_at"`

	// SavedAt is when the artifact was written.
	SavedAt time.Time `json:"saved_at"`

	// CourseCount is the number of courses the model was trained on.
	CourseCount int `json:"course_count"`

	// SkillCount is the number of skills the model was trained on.
	SkillCount int `json:"skill_count"`

	// Factors is the latent factor count.
	Factors int `json:"factors"`

	// Seed is the training seed, kept so a run can be reproduced.
	Seed int64 `json:"seed"`

	// SkillChecksum identifies the catalog skill set the model was
	// trained against. Loading skips artifacts whose checksum does not
	// match the current catalog.
	SkillChecksum string `json:"skill_checksum"`

	// Checksum is the SHA-256 checksum of the serialized model state.
	Checksum string `json:"checksum"`

	// SizeBytes is the compressed artifact size in bytes.
	SizeBytes int64 `json:"size_bytes"`

	// TrainingDurationMS is how long training took.
	TrainingDurationMS int64 `json:"training_duration_ms"`
}

// Store manages model artifact persistence.
//
// Artifacts are gob-encoded, gzip-compressed, and wrapped in a small
// container holding the metadata and a checksum of the uncompressed
// payload. Next to each artifact the store writes a JSON metadata
// sidecar so operators can inspect what is on disk without decoding
// gob; the sidecar is advisory and never read back.
type Store struct {
	baseDir string
	mu      sync.RWMutex

	// Latest version per model name.
	versions map[string]int
}

// NewStore creates a model store at the given directory, creating it if
// needed and scanning it for existing artifacts.
func NewStore(baseDir string) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0o750); err != nil { //nolint:gosec // 0750 is acceptable for model storage
		return nil, fmt.Errorf("create storage directory: %w", err)
	}

	s := &Store{
		baseDir:  baseDir,
		versions: make(map[string]int),
	}
	if err := s.scanModels(); err != nil {
		return nil, fmt.Errorf("scan existing models: %w", err)
	}
	return s, nil
}

// scanModels scans the storage directory for existing artifact files.
func (s *Store) scanModels() error {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		base, ok := strings.CutSuffix(entry.Name(), ".gob.gz")
		if !ok {
			continue
		}
		name, version := parseModelFilename(base)
		if name == "" {
			continue
		}
		if current, ok := s.versions[name]; !ok || version > current {
			s.versions[name] = version
		}
	}
	return nil
}

// parseModelFilename splits a base name like "latent_v3" into its model
// name and version.
func parseModelFilename(base string) (name string, version int) {
	idx := strings.LastIndex(base, "_v")
	if idx < 0 {
		return "", 0
	}
	if _, err := fmt.Sscanf(base[idx+2:], "%d", &version); err != nil || version < 1 {
		return "", 0
	}
	return base[:idx], version
}

// storedFile is the on-disk format for artifact files.
type storedFile struct {
	Metadata       ModelMetadata
	CompressedData []byte
}

// Save stores a model state under the given name and version. The
// checksum, size, save time, name, and version fields of the metadata
// are filled in here; everything else is the caller's.
func (s *Store) Save(ctx context.Context, name string, version int, data any, meta ModelMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(data); err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	rawData := buf.Bytes()

	hash := sha256.Sum256(rawData)
	meta.Checksum = hex.EncodeToString(hash[:])

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(rawData); err != nil {
		return fmt.Errorf("compress model: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return fmt.Errorf("finalize compression: %w", err)
	}

	meta.SizeBytes = int64(compressed.Len())
	meta.SavedAt = time.Now().UTC()
	meta.Name = name
	meta.Version = version

	f, err := os.Create(s.modelPath(name, version)) //nolint:gosec // path is constructed from trusted name parameter
	if err != nil {
		return fmt.Errorf("create model file: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // error on close after write surfaces via Encode

	sf := storedFile{
		Metadata:       meta,
		CompressedData: compressed.Bytes(),
	}
	if err := gob.NewEncoder(f).Encode(sf); err != nil {
		return fmt.Errorf("write model file: %w", err)
	}

	// Advisory sidecar; a failure here never fails the save.
	if out, err := json.MarshalIndent(meta, "", "  "); err == nil {
		_ = os.WriteFile(s.metaPath(name, version), out, 0o640) //nolint:errcheck,gosec // best-effort debugging aid
	}

	if current, ok := s.versions[name]; !ok || version > current {
		s.versions[name] = version
	}
	return nil
}

// Load loads a model state by name and version into target, which must
// be a pointer to the same concrete type that was saved. A version of 0
// loads the latest version. The payload checksum is verified before
// decoding.
func (s *Store) Load(ctx context.Context, name string, version int, target any) (*ModelMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if version == 0 {
		var ok bool
		version, ok = s.versions[name]
		if !ok {
			return nil, fmt.Errorf("no model found for %s", name)
		}
	}

	f, err := os.Open(s.modelPath(name, version)) //nolint:gosec // path is constructed from trusted name parameter
	if err != nil {
		return nil, fmt.Errorf("open model file: %w", err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // error on close after read is not actionable

	var sf storedFile
	if err := gob.NewDecoder(f).Decode(&sf); err != nil {
		return nil, fmt.Errorf("read model file: %w", err)
	}

	gzr, err := gzip.NewReader(bytes.NewReader(sf.CompressedData))
	if err != nil {
		return nil, fmt.Errorf("decompress model: %w", err)
	}
	defer func() { _ = gzr.Close() }() //nolint:errcheck // error on gzip close after read is not actionable

	rawData, err := io.ReadAll(gzr)
	if err != nil {
		return nil, fmt.Errorf("read decompressed data: %w", err)
	}

	hash := sha256.Sum256(rawData)
	if checksum := hex.EncodeToString(hash[:]); checksum != sf.Metadata.Checksum {
		return nil, fmt.Errorf("checksum mismatch: expected %s, got %s", sf.Metadata.Checksum, checksum)
	}

	if err := gob.NewDecoder(bytes.NewReader(rawData)).Decode(target); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	return &sf.Metadata, nil
}

// GetLatestVersion returns the latest stored version for a model name.
func (s *Store) GetLatestVersion(name string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	version, ok := s.versions[name]
	return version, ok
}

// ListModels returns metadata for every stored artifact of the given
// name, newest first. Unreadable files are skipped.
func (s *Store) ListModels(ctx context.Context, name string) ([]ModelMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []ModelMetadata
	for _, version := range s.versionsOf(name) {
		f, err := os.Open(s.modelPath(name, version)) //nolint:gosec // path is constructed from trusted name parameter
		if err != nil {
			continue
		}
		var sf storedFile
		err = gob.NewDecoder(f).Decode(&sf)
		_ = f.Close() //nolint:errcheck // error on close after read is not actionable
		if err != nil {
			continue
		}
		out = append(out, sf.Metadata)
	}
	return out, nil
}

// Delete removes a specific artifact version and its sidecar.
func (s *Store) Delete(ctx context.Context, name string, version int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.modelPath(name, version)); err != nil {
		return fmt.Errorf("delete model: %w", err)
	}
	_ = os.Remove(s.metaPath(name, version)) //nolint:errcheck // sidecar may not exist

	if s.versions[name] == version {
		delete(s.versions, name)
		if remaining := s.versionsOf(name); len(remaining) > 0 {
			s.versions[name] = remaining[0]
		}
	}
	return nil
}

// Prune removes old artifact versions of the given name, keeping the
// newest keepVersions of them.
func (s *Store) Prune(ctx context.Context, name string, keepVersions int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keepVersions < 1 {
		keepVersions = 1
	}
	versions := s.versionsOf(name)
	for _, v := range versions[min(keepVersions, len(versions)):] {
		_ = os.Remove(s.modelPath(name, v)) //nolint:errcheck // best-effort cleanup of old versions
		_ = os.Remove(s.metaPath(name, v))  //nolint:errcheck // sidecar may not exist
	}
	return nil
}

// versionsOf lists the on-disk versions of a model name, descending.
// Callers must hold at least the read lock.
func (s *Store) versionsOf(name string) []int {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil
	}

	var versions []int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		base, ok := strings.CutSuffix(entry.Name(), ".gob.gz")
		if !ok {
			continue
		}
		entryName, v := parseModelFilename(base)
		if entryName != name {
			continue
		}
		versions = append(versions, v)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(versions)))
	return versions
}

// modelPath returns the artifact path for a model name and version.
func (s *Store) modelPath(name string, version int) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("%s_v%d.gob.gz", name, version))
}

// metaPath returns the sidecar path for a model name and version.
func (s *Store) metaPath(name string, version int) string {
	return filepath.Join(s.baseDir, fmt.Sprintf("%s_v%d.meta.json", name, version))
}

//nolint:gochecknoinits // gob.Register must be called in init for type registration
func init() {
	gob.Register(ModelMetadata{})
	gob.Register(storedFile{})
}
