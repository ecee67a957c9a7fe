package filesystem

import (
	"os"
	"path/filepath"
	"strings"
)

// UserHomeDir returns the current user's home directory.
// If the home directory cannot be determined, it returns "." as a fallback.
func UserHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

// AppDir returns ~/.<name>.
func AppDir(name string) string {
	return filepath.Join(UserHomeDir(), "."+name)
}

// ExpandHome resolves a leading "~/" and cleans the result.
func ExpandHome(path string) string {
	if path == "~" {
		return UserHomeDir()
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(UserHomeDir(), rest)
	}
	return filepath.Clean(path)
}
