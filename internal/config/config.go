package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
	securejoin "github.com/cyphar/filepath-securejoin"
)

const (
	// AppName is the directory name used for the tool's own configuration.
	AppName = "loadout"

	// TargetDirName is the well-known destination directory under $HOME.
	TargetDirName = ".claude"

	// BackupPrefix is prepended to snapshot directory names.
	BackupPrefix = "backup"

	// BackupTimeFormat is the timestamp layout in snapshot names
	// (one-second resolution).
	BackupTimeFormat = "20060102_150405"

	// EnvTarget overrides the target root.
	EnvTarget = "LOADOUT_TARGET"

	// EnvSource overrides the asset source directory.
	EnvSource = "LOADOUT_SOURCE"
)

// backupNameRegex matches snapshot directory names such as
// "backup_20240131_153045". A snapshot taken within the same second as
// an earlier one carries a single-digit ordinal: "backup_20240131_153045-2".
var backupNameRegex = regexp.MustCompile(`^` + BackupPrefix + `_(\d{8}_\d{6})(?:-[2-9])?$`)

// BackupDirName returns the snapshot directory name for a creation time.
func BackupDirName(t time.Time) string {
	return BackupPrefix + "_" + t.Format(BackupTimeFormat)
}

// ParseBackupName extracts the creation time from a snapshot directory name.
// The second return is false for names that are not snapshots.
func ParseBackupName(name string) (time.Time, bool) {
	m := backupNameRegex.FindStringSubmatch(name)
	if m == nil {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(BackupTimeFormat, m[1], time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// SafeChild joins name under baseDir, guaranteeing the result cannot escape
// baseDir. Names like "../../../etc" resolve to a path still rooted at
// baseDir rather than traversing out of it.
func SafeChild(baseDir, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("name cannot be empty")
	}
	path, err := securejoin.SecureJoin(baseDir, name)
	if err != nil {
		return "", fmt.Errorf("invalid name %q: %w", name, err)
	}
	return path, nil
}

// Settings is the optional tool configuration from config.toml.
type Settings struct {
	// Target overrides the destination directory for managed assets.
	Target string `toml:"target"`

	// Source overrides the asset source directory.
	Source string `toml:"source"`
}

// Validate checks that the Settings are usable.
func (s *Settings) Validate() error {
	if s.Target != "" && !filepath.IsAbs(s.Target) {
		return fmt.Errorf("target must be an absolute path (got %q)", s.Target)
	}
	if s.Source != "" && !filepath.IsAbs(s.Source) {
		return fmt.Errorf("source must be an absolute path (got %q)", s.Source)
	}
	return nil
}

// Paths holds the configured paths
type Paths struct {
	// TargetRoot is where managed assets are installed (~/.claude).
	TargetRoot string

	// ConfigDir holds the tool's own state (~/.config/loadout).
	ConfigDir string

	// ConfigFile is the optional TOML settings file inside ConfigDir.
	ConfigFile string

	// AuditLog is the append-only operation log inside ConfigDir.
	AuditLog string
}

// DefaultPaths returns the default path configuration
func DefaultPaths() *Paths {
	home, err := os.UserHomeDir()
	if err != nil {
		// Degrade to relative paths; commands surface the real failure
		// when they first touch the filesystem.
		home = "."
	}

	configBase := os.Getenv("XDG_CONFIG_HOME")
	if configBase == "" || !filepath.IsAbs(configBase) {
		configBase = filepath.Join(home, ".config")
	}
	configDir := filepath.Join(configBase, AppName)

	return &Paths{
		TargetRoot: filepath.Join(home, TargetDirName),
		ConfigDir:  configDir,
		ConfigFile: filepath.Join(configDir, "config.toml"),
		AuditLog:   filepath.Join(configDir, "audit.log"),
	}
}

// LoadSettings reads the optional config file. A missing file yields empty
// settings and no error; a present-but-broken file is a configuration error.
func LoadSettings(path string) (*Settings, error) {
	var settings Settings
	if _, err := toml.DecodeFile(path, &settings); err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return &settings, nil
}

// ResolveTarget picks the target root with precedence:
// flag > environment > config file > default.
func ResolveTarget(flagValue string, settings *Settings, paths *Paths) (string, error) {
	target := paths.TargetRoot
	if settings != nil && settings.Target != "" {
		target = settings.Target
	}
	if env := os.Getenv(EnvTarget); env != "" {
		target = env
	}
	if flagValue != "" {
		target = flagValue
	}

	if !filepath.IsAbs(target) {
		return "", fmt.Errorf("target must be an absolute path (got %q)", target)
	}
	return filepath.Clean(target), nil
}

// ResolveSource picks an explicit source directory with the same precedence
// as ResolveTarget. Empty means "no explicit source"; the assets package
// then falls back to checkout detection and the embedded payload.
func ResolveSource(flagValue string, settings *Settings) string {
	source := ""
	if settings != nil && settings.Source != "" {
		source = settings.Source
	}
	if env := os.Getenv(EnvSource); env != "" {
		source = env
	}
	if flagValue != "" {
		source = flagValue
	}
	return source
}
