package platform

import "path/filepath"

// getLinuxInfo returns platform-specific information for Linux
func getLinuxInfo(homeDir, username string) *Info {
	return &Info{
		OS:        Linux,
		HomeDir:   homeDir,
		Username:  username,
		ConfigDir: filepath.Join(homeDir, ".config", "stalefind"),
		LogDir:    filepath.Join(homeDir, ".local", "state", "stalefind"),
		TrashDir:  filepath.Join(homeDir, ".local", "share", "Trash", "files"),
		DefaultRoots: []string{
			filepath.Join(homeDir, "Downloads"),
			filepath.Join(homeDir, "Documents"),
		},
	}
}
