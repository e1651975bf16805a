package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
)

func TestStoreUpdateCreatesAndMutates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	store := NewStore(path)

	err := store.Update(func(cfg *Config) error {
		cfg.MinAgeDays = 90
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.MinAgeDays != 90 {
		t.Errorf("MinAgeDays = %d, want 90", loaded.MinAgeDays)
	}
	// Untouched fields keep their defaults.
	if loaded.MinSize != GetDefault().MinSize {
		t.Errorf("MinSize = %q, want default", loaded.MinSize)
	}
}

func TestStoreUpdateRejectsInvalidResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	store := NewStore(path)

	err := store.Update(func(cfg *Config) error {
		cfg.MinAgeDays = -5
		return nil
	})
	if err == nil {
		t.Fatal("expected validation error")
	}

	// Nothing was written.
	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.MinAgeDays < 0 {
		t.Error("invalid update was persisted")
	}
}

func TestStoreUpdatePropagatesMutateError(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "config.yaml"))

	wantErr := fmt.Errorf("boom")
	err := store.Update(func(cfg *Config) error { return wantErr })
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestStoreConcurrentUpdates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	store := NewStore(path)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Update(func(cfg *Config) error {
				cfg.MinAgeDays++
				return nil
			})
		}()
	}
	wg.Wait()

	loaded, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := GetDefault().MinAgeDays + 5
	if loaded.MinAgeDays != want {
		t.Errorf("MinAgeDays = %d, want %d", loaded.MinAgeDays, want)
	}
}
