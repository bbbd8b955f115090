package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"NewsPipeline/internal/coverage"
	"NewsPipeline/internal/domain"
	"NewsPipeline/internal/ports"
	"NewsPipeline/internal/records"
)

const (
	manifestFile = "manifest.json"
	rawFile      = "raw.jsonl"
	cleanFile    = "clean.jsonl"
)

// Repository persists per-topic datasets under data/<topic>/. Every write
// goes to a temp file in the target directory followed by a rename, so a
// reader sees either the prior file or the fully written one, never a
// partial state.
type Repository struct {
	dir string
}

var _ ports.DatasetRepository = (*Repository)(nil)

// NewRepository roots the repository at the given data directory.
func NewRepository(dir string) *Repository {
	return &Repository{dir: dir}
}

func (r *Repository) topicDir(topic string) string {
	return filepath.Join(r.dir, topic)
}

// LoadManifest returns nil without error when no manifest exists yet.
func (r *Repository) LoadManifest(topic string) (*coverage.Manifest, error) {
	raw, err := os.ReadFile(filepath.Join(r.topicDir(topic), manifestFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m coverage.Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// SaveManifest writes the manifest atomically as indented JSON so the file
// stays human-inspectable.
func (r *Repository) SaveManifest(topic string, m *coverage.Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return r.writeAtomic(topic, manifestFile, append(data, '\n'))
}

// LoadRaw returns the stored raw dataset, or an empty set if none exists.
func (r *Repository) LoadRaw(topic string) ([]domain.ArticleRecord, error) {
	f, err := os.Open(filepath.Join(r.topicDir(topic), rawFile))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open raw dataset: %w", err)
	}
	defer f.Close()

	recs, _, err := records.DecodeJSONL(f)
	if err != nil {
		return nil, fmt.Errorf("read raw dataset: %w", err)
	}
	return recs, nil
}

// SaveRaw replaces the raw dataset atomically.
func (r *Repository) SaveRaw(topic string, recs []domain.ArticleRecord) error {
	return r.saveRecords(topic, rawFile, recs)
}

// SaveClean replaces the clean dataset atomically.
func (r *Repository) SaveClean(topic string, recs []domain.ArticleRecord) error {
	return r.saveRecords(topic, cleanFile, recs)
}

func (r *Repository) saveRecords(topic, name string, recs []domain.ArticleRecord) error {
	data, err := records.EncodeJSONL(recs)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return r.writeAtomic(topic, name, data)
}

func (r *Repository) writeAtomic(topic, name string, data []byte) error {
	dir := r.topicDir(topic)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create topic dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
