package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName names the application's directories.
const AppName = "flatlint"

// ConfigFileName is the application config file looked up in ConfigDir.
const ConfigFileName = "config.yaml"

// overrideFileNames lists override file names in lookup order. Within one
// directory the first match wins.
var overrideFileNames = []string{
	"flatlint.config.yaml",
	"flatlint.config.yml",
	"flatlint.config.json",
	"flatlint.config.toml",
	".flatlintrc.yaml",
	".flatlintrc.yml",
	".flatlintrc.json",
	".flatlintrc.toml",
}

// formatterFileNames lists formatter option files in lookup order.
var formatterFileNames = []string{
	".prettierrc",
	".prettierrc.json",
	".prettierrc.yaml",
	".prettierrc.yml",
}

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrNoMatch indicates no candidate file exists in the searched directories.
	ErrNoMatch = errors.New("no matching file")
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

// ConfigDir returns the application's config directory.
// Returns: <ConfigHome>/flatlint/
func ConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// ConfigFile returns the default application config file path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), ConfigFileName)
}

// PresetsDir returns the directory user-supplied preset templates are read
// from when enabled in the app config.
// Returns: <ConfigHome>/flatlint/presets/
func PresetsDir() string {
	return filepath.Join(ConfigDir(), "presets")
}

// OverrideFileNames returns the override file names in lookup order.
func OverrideFileNames() []string {
	return append([]string(nil), overrideFileNames...)
}

// FormatterFileNames returns the formatter option file names in lookup order.
func FormatterFileNames() []string {
	return append([]string(nil), formatterFileNames...)
}

// FindUp searches dir and then each of its parents for the first of names
// that exists as a regular file. It returns ErrNoMatch when the filesystem
// root is reached without a match.
func FindUp(dir string, names []string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s", dir)
	}
	for {
		if p, ok := findIn(dir, names); ok {
			return p, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.Wrapf(ErrNoMatch, "searching for %v", names)
		}
		dir = parent
	}
}

func findIn(dir string, names []string) (string, bool) {
	for _, name := range names {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}
