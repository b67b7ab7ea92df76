// Package paths resolves the file locations flatlint reads from.
//
// # XDG Base Directory Compliance
//
// The application's own config lives under the XDG config home, resolved
// through github.com/adrg/xdg:
//
//	paths.ConfigDir()  // ~/.config/flatlint/
//	paths.ConfigFile() // ~/.config/flatlint/config.yaml
//	paths.PresetsDir() // ~/.config/flatlint/presets/
//
// # Project Files
//
// Override lists and formatter options are found next to the code being
// linted. [FindUp] walks from a directory towards the filesystem root and
// returns the first candidate that exists:
//
//	p, err := paths.FindUp(".", paths.OverrideFileNames())
//	if errors.Is(err, paths.ErrNoMatch) {
//	    // no override file; merge the base configuration alone
//	}
package paths
