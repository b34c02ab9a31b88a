package campaign

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrNotFound means no config file exists for the campaign ID.
	ErrNotFound = errors.New("campaign config not found")
	// ErrInvalidID rejects campaign IDs that could escape the config dir.
	ErrInvalidID = errors.New("invalid campaign id")
	// ErrMissingFields rejects configs without the required identity
	// fields.
	ErrMissingFields = errors.New("config missing required fields")
)

// FileStore persists one JSON config file per campaign under a base
// directory. There is no database in this system; this file is the only
// durable state the engine owns.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Load reads the config for the given campaign ID.
func (s *FileStore) Load(campaignID string) (Config, error) {
	path, err := s.path(campaignID)
	if err != nil {
		return Config{}, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, ErrNotFound
		}
		return Config{}, fmt.Errorf("read campaign config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode campaign config: %w", err)
	}
	return cfg, nil
}

// Save validates and writes the config for the given campaign ID, creating
// the directory on first use.
func (s *FileStore) Save(campaignID string, cfg Config) error {
	if cfg.Name == "" || cfg.FullName == "" {
		return ErrMissingFields
	}

	path, err := s.path(campaignID)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	encoded, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode campaign config: %w", err)
	}

	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return fmt.Errorf("write campaign config: %w", err)
	}
	return nil
}

func (s *FileStore) path(campaignID string) (string, error) {
	if campaignID == "" ||
		strings.ContainsAny(campaignID, `/\`) ||
		strings.Contains(campaignID, "..") {
		return "", ErrInvalidID
	}
	return filepath.Join(s.dir, campaignID+".json"), nil
}
