package platform

import (
	"runtime"
	"strings"
	"testing"
)

func TestDetect(t *testing.T) {
	p := Detect()
	switch runtime.GOOS {
	case "darwin":
		if p != MacOS {
			t.Errorf("Detect() = %v, want MacOS", p)
		}
	case "linux":
		if p != Linux {
			t.Errorf("Detect() = %v, want Linux", p)
		}
	default:
		if p != Unknown {
			t.Errorf("Detect() = %v, want Unknown", p)
		}
	}
}

func TestGetInfo(t *testing.T) {
	if Detect() == Unknown {
		t.Skip("unsupported platform")
	}

	info, err := GetInfo()
	if err != nil {
		t.Fatalf("GetInfo: %v", err)
	}

	if info.HomeDir == "" {
		t.Error("HomeDir is empty")
	}
	if info.ConfigDir == "" || info.LogDir == "" || info.TrashDir == "" {
		t.Errorf("incomplete info: %+v", info)
	}
	if len(info.DefaultRoots) == 0 {
		t.Error("no default roots")
	}
}

func TestGetUserConfigDir(t *testing.T) {
	if Detect() == Unknown {
		t.Skip("unsupported platform")
	}

	dir, err := GetUserConfigDir()
	if err != nil {
		t.Fatalf("GetUserConfigDir: %v", err)
	}
	if !strings.Contains(dir, "stalefind") {
		t.Errorf("config dir %q does not contain app name", dir)
	}
}

func TestHasSpotlightOffMac(t *testing.T) {
	if runtime.GOOS == "darwin" {
		t.Skip("darwin may have Spotlight")
	}
	if HasSpotlight() {
		t.Error("HasSpotlight() should be false off macOS")
	}
}
