// Package paths provides filesystem path helpers and the default config
// search roots for the monover CLI.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the application name used for config file naming.
const AppName = "monover"

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used.
// This function is idempotent; it returns nil if the directory already exists.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory.
// Note: It returns an empty string on error.
// Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
// On Linux: ~/.config
// On macOS: ~/Library/Application Support
// On Windows: %LOCALAPPDATA%
func ConfigHome() string {
	return xdg.ConfigHome
}

// DefaultConfigPaths returns the default config search roots, highest
// priority first: the current directory, then the XDG config directory.
// Candidates carry no extension; discovery appends the recognized ones.
func DefaultConfigPaths() []string {
	return []string{
		filepath.Join(".", "."+AppName),
		filepath.Join(ConfigHome(), AppName, AppName),
	}
}

// ExpandHome replaces a leading "~" with the user's home directory.
// Paths without the prefix are returned unchanged.
func ExpandHome(path string) string {
	if path == "~" {
		return Home()
	}
	if strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return filepath.Join(Home(), path[2:])
	}
	return path
}

// Normalize expands "~", makes the path absolute and cleans it.
// Relative paths are resolved against the current working directory.
func Normalize(path string) string {
	p := ExpandHome(path)
	abs, err := filepath.Abs(p)
	if err != nil {
		return filepath.Clean(p)
	}
	return abs
}

// Ext returns the path's extension like filepath.Ext, except that a
// dotfile name with no further dot (".monover") counts as extensionless
// rather than as one big extension.
func Ext(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		return ""
	}
	return ext
}

// EnsureFileExt appends ext to path unless the path already ends with it.
// The comparison is case-insensitive; ext must include the leading dot.
func EnsureFileExt(path, ext string) string {
	if strings.EqualFold(Ext(path), ext) {
		return path
	}
	return path + ext
}

// StripKnownExt removes the path's extension when it is one of exts
// (case-insensitive). Other extensions are left in place.
func StripKnownExt(path string, exts []string) string {
	got := Ext(path)
	for _, ext := range exts {
		if strings.EqualFold(got, ext) {
			return strings.TrimSuffix(path, got)
		}
	}
	return path
}

// HasAnyExt reports whether the path ends with one of exts (case-insensitive).
func HasAnyExt(path string, exts []string) bool {
	got := Ext(path)
	for _, ext := range exts {
		if strings.EqualFold(got, ext) {
			return true
		}
	}
	return false
}
