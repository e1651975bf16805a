package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const lockTimeout = 3 * time.Second

// Store serializes config writes across processes. Updates read the latest
// on-disk state under an advisory lock, so concurrent writers never clobber
// each other's fields.
type Store struct {
	path string
}

// NewStore creates a store for the given config path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultStore returns a store bound to the default config location.
func DefaultStore() (*Store, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return NewStore(path), nil
}

// Path returns the config file path the store writes to.
func (s *Store) Path() string {
	return s.path
}

// Load reads the current configuration, falling back to defaults when the
// file does not exist.
func (s *Store) Load() (*Config, error) {
	return Load(s.path)
}

// Update applies mutate to the freshest on-disk configuration and writes
// the result back, all under a file lock.
func (s *Store) Update(mutate func(*Config) error) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	lock := flock.New(s.path + ".lock")
	locked, err := lock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to lock config: %w", err)
	}
	if !locked {
		return fmt.Errorf("config is locked by another process")
	}
	defer lock.Unlock()

	cfg, err := Load(s.path)
	if err != nil {
		return err
	}

	if err := mutate(cfg); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration after update: %w", err)
	}

	return Save(cfg, s.path)
}
