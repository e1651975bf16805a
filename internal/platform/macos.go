package platform

import "path/filepath"

// getMacOSInfo returns platform-specific information for macOS
func getMacOSInfo(homeDir, username string) *Info {
	return &Info{
		OS:        MacOS,
		HomeDir:   homeDir,
		Username:  username,
		ConfigDir: filepath.Join(homeDir, "Library", "Application Support", "stalefind"),
		LogDir:    filepath.Join(homeDir, "Library", "Logs", "stalefind"),
		TrashDir:  filepath.Join(homeDir, ".Trash"),
		DefaultRoots: []string{
			filepath.Join(homeDir, "Downloads"),
			filepath.Join(homeDir, "Documents"),
			filepath.Join(homeDir, "Desktop"),
		},
	}
}
