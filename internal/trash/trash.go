// Package trash moves files to the user's trash instead of unlinking them,
// and opens Finder affordances for inspecting items before removal.
package trash

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/stalefind/stalefind/internal/platform"
)

// Result summarizes one batch of trash operations.
type Result struct {
	Trashed  []string
	Failed   map[string]error
	Freed    int64
}

// Mover sends files to the trash. On macOS it asks Finder so items are
// restorable through the normal UI; elsewhere it falls back to renaming
// into the user's trash directory.
type Mover struct {
	trashDir string
}

// NewMover creates a Mover using the platform trash location.
func NewMover() (*Mover, error) {
	info, err := platform.GetInfo()
	if err != nil {
		return nil, err
	}
	return &Mover{trashDir: info.TrashDir}, nil
}

// NewMoverAt creates a Mover with an explicit trash directory.
func NewMoverAt(trashDir string) *Mover {
	return &Mover{trashDir: trashDir}
}

// Move sends the given paths to the trash one at a time. Per-path failures
// are recorded, not fatal.
func (m *Mover) Move(paths []string) Result {
	res := Result{Failed: make(map[string]error)}
	for _, path := range paths {
		info, statErr := os.Stat(path)
		if err := m.moveOne(path); err != nil {
			res.Failed[path] = err
			continue
		}
		res.Trashed = append(res.Trashed, path)
		if statErr == nil {
			res.Freed += info.Size()
		}
	}
	return res
}

func (m *Mover) moveOne(path string) error {
	if runtime.GOOS == "darwin" {
		if err := finderTrash(path); err == nil {
			return nil
		}
	}
	return m.renameToTrash(path)
}

// finderTrash asks Finder to delete the file, which places it in the
// trash with put-back metadata.
func finderTrash(path string) error {
	script := fmt.Sprintf("tell application \"Finder\" to delete POSIX file %q", path)
	cmd := exec.Command("osascript", "-e", script)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("osascript: %v: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// renameToTrash moves the file into the trash directory, suffixing the name
// on collision.
func (m *Mover) renameToTrash(path string) error {
	if m.trashDir == "" {
		return fmt.Errorf("no trash directory available")
	}
	if err := os.MkdirAll(m.trashDir, 0700); err != nil {
		return fmt.Errorf("failed to create trash directory: %w", err)
	}

	target := filepath.Join(m.trashDir, filepath.Base(path))
	if _, err := os.Lstat(target); err == nil {
		stamp := time.Now().Format("20060102-150405")
		target = filepath.Join(m.trashDir, fmt.Sprintf("%s.%s", filepath.Base(path), stamp))
	}

	if err := os.Rename(path, target); err != nil {
		return fmt.Errorf("failed to move to trash: %w", err)
	}
	return nil
}

// Reveal shows the file in Finder. No-op error on other platforms.
func Reveal(path string) error {
	if runtime.GOOS != "darwin" {
		return fmt.Errorf("reveal is only supported on macOS")
	}
	return exec.Command("open", "-R", path).Run()
}

// QuickLook opens the QuickLook preview panel for the file.
func QuickLook(path string) error {
	if runtime.GOOS != "darwin" {
		return fmt.Errorf("quick look is only supported on macOS")
	}
	return exec.Command("qlmanage", "-p", path).Start()
}

// OpenTrash opens the trash folder in the file manager.
func OpenTrash() error {
	info, err := platform.GetInfo()
	if err != nil {
		return err
	}
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", info.TrashDir).Run()
	case "linux":
		return exec.Command("xdg-open", info.TrashDir).Run()
	default:
		return fmt.Errorf("unsupported platform")
	}
}
