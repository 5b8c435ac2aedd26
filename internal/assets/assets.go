package assets

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/loadstone/loadout/internal/errors"
	"github.com/loadstone/loadout/internal/logging"
)

// Canonical names of the managed tree. The set is fixed; install, backup,
// and uninstall all enumerate it rather than globbing the target root.
const (
	AgentsDir   = "agents"
	SkillsDir   = "skills"
	CommandsDir = "commands"
	HooksDir    = "hooks"

	PreferencesFile = "CLAUDE.md"
	UsageFile       = "USAGE.md"
	SettingsFile    = "settings.json"

	// SkillFile is the canonical entry document inside each skill subdirectory.
	SkillFile = "SKILL.md"
)

// Directories returns the managed asset directories in install order.
func Directories() []string {
	return []string{AgentsDir, SkillsDir, CommandsDir, HooksDir}
}

// ManagedRootFiles returns the root files that install overwrites
// unconditionally. The settings file is excluded; it has its own
// prompt-before-overwrite handling.
func ManagedRootFiles() []string {
	return []string{PreferencesFile, UsageFile}
}

// AllEntries returns every managed name under the target root, settings
// included. Backup and uninstall operate over this set.
func AllEntries() []string {
	entries := Directories()
	entries = append(entries, ManagedRootFiles()...)
	entries = append(entries, SettingsFile)
	return entries
}

// Source is a resolved asset payload: either a directory on disk (usually a
// git checkout of the asset repository) or the tree embedded in the binary.
type Source struct {
	dir  string
	fsys fs.FS
}

// Embedded returns the payload compiled into the binary.
func Embedded() *Source {
	return &Source{fsys: embeddedTree()}
}

// FromDir returns a Source backed by dir, verifying dir looks like an asset
// tree first.
func FromDir(dir string) (*Source, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, errors.SourceNotFound(dir)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.SourceNotFound(abs)
	}
	if !info.IsDir() {
		return nil, errors.SourceInvalid(abs, "not a directory")
	}
	if !looksLikeAssetTree(abs) {
		return nil, errors.SourceInvalid(abs, "missing asset directories (expected agents/ and hooks/)")
	}

	return &Source{dir: abs, fsys: os.DirFS(abs)}, nil
}

// Resolve picks the asset source. An explicit directory (flag, environment,
// or config file) must be valid or resolution fails; otherwise the current
// directory and the directory next to the binary are tried as checkouts,
// and the embedded payload is the fallback.
func Resolve(explicit string) (*Source, error) {
	if explicit != "" {
		return FromDir(explicit)
	}

	if cwd, err := os.Getwd(); err == nil && looksLikeAssetTree(cwd) {
		logging.Debug("using asset checkout from working directory", "dir", cwd)
		return FromDir(cwd)
	}

	if exe, err := os.Executable(); err == nil {
		for _, candidate := range []string{filepath.Dir(exe), filepath.Join(filepath.Dir(exe), "..")} {
			if looksLikeAssetTree(candidate) {
				logging.Debug("using asset checkout next to binary", "dir", candidate)
				return FromDir(candidate)
			}
		}
	}

	logging.Debug("no asset checkout found, using embedded payload")
	return Embedded(), nil
}

// FS exposes the payload for copying.
func (s *Source) FS() fs.FS {
	return s.fsys
}

// Dir returns the on-disk location, or "" for the embedded payload.
func (s *Source) Dir() string {
	return s.dir
}

// IsEmbedded reports whether the payload is the one compiled into the binary.
func (s *Source) IsEmbedded() bool {
	return s.dir == ""
}

// Description names the source in user-facing output.
func (s *Source) Description() string {
	if s.IsEmbedded() {
		return "embedded payload"
	}
	return s.dir
}

// GitDir returns the source's .git directory when the source is a git
// checkout, or "" when it is not (embedded payload included). Update only
// attempts a sync when this is non-empty.
func (s *Source) GitDir() string {
	if s.dir == "" {
		return ""
	}
	gitDir := filepath.Join(s.dir, ".git")
	if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
		return gitDir
	}
	return ""
}

// looksLikeAssetTree reports whether dir plausibly holds the asset payload.
func looksLikeAssetTree(dir string) bool {
	for _, sub := range []string{AgentsDir, HooksDir} {
		info, err := os.Stat(filepath.Join(dir, sub))
		if err != nil || !info.IsDir() {
			return false
		}
	}
	return true
}
