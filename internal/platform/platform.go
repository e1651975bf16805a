package platform

import (
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"runtime"
)

// Platform represents the operating system platform
type Platform string

const (
	MacOS   Platform = "darwin"
	Linux   Platform = "linux"
	Unknown Platform = "unknown"
)

// Info contains platform-specific information and paths
type Info struct {
	OS           Platform
	HomeDir      string
	Username     string
	ConfigDir    string
	LogDir       string
	TrashDir     string
	DefaultRoots []string
}

// Detect returns the current platform
func Detect() Platform {
	switch runtime.GOOS {
	case "darwin":
		return MacOS
	case "linux":
		return Linux
	default:
		return Unknown
	}
}

// GetInfo returns platform-specific information
func GetInfo() (*Info, error) {
	platform := Detect()

	currentUser, err := user.Current()
	if err != nil {
		return nil, err
	}

	homeDir := currentUser.HomeDir
	username := currentUser.Username

	switch platform {
	case MacOS:
		return getMacOSInfo(homeDir, username), nil
	case Linux:
		return getLinuxInfo(homeDir, username), nil
	default:
		return nil, ErrUnsupportedPlatform
	}
}

// GetUserConfigDir returns the user's config directory for the app
func GetUserConfigDir() (string, error) {
	switch Detect() {
	case MacOS:
		currentUser, err := user.Current()
		if err != nil {
			return "", err
		}
		return filepath.Join(currentUser.HomeDir, "Library", "Application Support", "stalefind"), nil
	case Linux:
		if configDir := os.Getenv("XDG_CONFIG_HOME"); configDir != "" {
			return filepath.Join(configDir, "stalefind"), nil
		}
		currentUser, err := user.Current()
		if err != nil {
			return "", err
		}
		return filepath.Join(currentUser.HomeDir, ".config", "stalefind"), nil
	default:
		return "", ErrUnsupportedPlatform
	}
}

// HasSpotlight reports whether the Spotlight query tools are on PATH.
// When false, discovery falls back to a directory walk and metadata
// resolution to plain stat calls.
func HasSpotlight() bool {
	if Detect() != MacOS {
		return false
	}
	if _, err := exec.LookPath("mdfind"); err != nil {
		return false
	}
	if _, err := exec.LookPath("mdls"); err != nil {
		return false
	}
	return true
}

// Errors
var (
	ErrUnsupportedPlatform = &PlatformError{"unsupported platform"}
)

// PlatformError represents a platform-related error
type PlatformError struct {
	Message string
}

func (e *PlatformError) Error() string {
	return e.Message
}
