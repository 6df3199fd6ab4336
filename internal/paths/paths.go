// Package paths centralizes the on-disk layout the supervisor uses:
// a single data directory holding the config file and the instance lock.
package paths

import "path/filepath"

// DataDir is the directory the spec mandates for all runtime files.
const DataDir = "./wifu-data"

var configOverride string

// SetConfigPath overrides the path returned by ConfigPath, used by the
// CLI's --config flag. An empty path clears the override.
func SetConfigPath(p string) { configOverride = p }

// ConfigPath returns the path to the JSON configuration document: the
// --config override if one was set, otherwise DataDir/cfg.json.
func ConfigPath() string {
	if configOverride != "" {
		return configOverride
	}
	return filepath.Join(DataDir, "cfg.json")
}

// LockPath returns the path to the single-instance lock file.
func LockPath() string { return filepath.Join(DataDir, "wifu.lock") }
