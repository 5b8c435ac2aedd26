// Package config provides paths and settings for loadout.
//
// # Paths
//
// Paths describes every location the tool touches:
//
//	type Paths struct {
//	    TargetRoot string // ~/.claude, where managed assets live
//	    ConfigDir  string // ~/.config/loadout
//	    ConfigFile string // ~/.config/loadout/config.toml
//	    AuditLog   string // ~/.config/loadout/audit.log
//	}
//
// The target root honors $XDG_CONFIG_HOME only for the tool's own state;
// the managed tree itself is the host application's well-known directory
// under $HOME.
//
// # Settings
//
// An optional TOML file can pin the target and source directories:
//
//	target = "/home/u/.claude"
//	source = "/home/u/src/loadout-assets"
//
// A missing file is not an error. Resolution precedence for both values is
// flag > environment (LOADOUT_TARGET / LOADOUT_SOURCE) > config file >
// built-in default.
//
// # Snapshot Names
//
// Backup snapshot directories are named with a fixed prefix and a
// one-second-resolution timestamp, e.g. "backup_20240131_153045". A
// snapshot taken within the same second as an earlier one carries a
// single-digit ordinal suffix ("backup_20240131_153045-2").
// BackupDirName and ParseBackupName convert between names and times.
//
// # Path Safety
//
// SafeChild joins untrusted names (snapshot directory names, asset-relative
// paths) under a base directory without allowing traversal outside it.
package config
