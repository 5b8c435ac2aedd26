package lifecycle

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/loadstone/loadout/internal/audit"
	"github.com/loadstone/loadout/internal/config"
	"github.com/loadstone/loadout/internal/errors"
	"github.com/loadstone/loadout/internal/logging"
)

// manifestName is the metadata file written into every snapshot.
const manifestName = "backup-manifest.yaml"

// Manifest records what a snapshot contains and which run produced it.
type Manifest struct {
	CreatedAt time.Time `yaml:"created_at"`
	Operation string    `yaml:"operation"`
	RunID     string    `yaml:"run_id,omitempty"`
	Items     []string  `yaml:"items"`
}

// Snapshot is one backup directory under the target root.
type Snapshot struct {
	Name  string
	Path  string
	Time  time.Time
	Items []string
}

// snapshot copies the given entries into a new backup directory and
// verifies every copied file before returning. The live tree is not
// touched until this succeeds; any failure aborts the whole operation.
func (m *Manager) snapshot(operation audit.EventType, entries []string) (string, error) {
	base := config.BackupDirName(m.now())
	name := base
	dir, err := config.SafeChild(m.target, name)
	if err != nil {
		return "", err
	}
	// One-second name resolution; a rerun within the same second takes
	// the next ordinal rather than mixing two snapshots into one
	// directory. The naming scheme caps ordinals at 9.
	for n := 2; m.fs.Exists(dir); n++ {
		if n > 9 {
			return "", fmt.Errorf("snapshot %s already exists", name)
		}
		name = fmt.Sprintf("%s-%d", base, n)
		if dir, err = config.SafeChild(m.target, name); err != nil {
			return "", err
		}
	}
	if err := m.fs.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	for _, entry := range entries {
		live := m.entryPath(entry)
		if !m.fs.Exists(live) {
			continue
		}
		copied, err := m.copyTree(live, filepath.Join(dir, entry))
		if err != nil {
			return "", fmt.Errorf("failed to back up %s: %w", entry, err)
		}
		for _, path := range copied {
			if !m.fs.Exists(path) {
				return "", errors.BackupVerifyFailed(entry, fmt.Errorf("copied file missing: %s", path))
			}
		}
		logging.Debug("entry backed up", "entry", entry, "files", len(copied), "snapshot", name)
	}

	runID := ""
	if m.audit != nil {
		runID = m.audit.RunID()
	}
	manifest := Manifest{
		CreatedAt: m.now(),
		Operation: string(operation),
		RunID:     runID,
		Items:     entries,
	}
	data, err := yaml.Marshal(manifest)
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot manifest: %w", err)
	}
	if err := m.fs.WriteFile(filepath.Join(dir, manifestName), data, 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot manifest: %w", err)
	}

	return name, nil
}

// ListSnapshots returns the snapshots under the target root, newest
// first. Directories that do not match the backup naming scheme are
// ignored.
func (m *Manager) ListSnapshots() ([]Snapshot, error) {
	if !m.fs.Exists(m.target) {
		return nil, nil
	}
	dirEntries, err := m.fs.ReadDir(m.target)
	if err != nil {
		return nil, fmt.Errorf("failed to read target root: %w", err)
	}

	var snapshots []Snapshot
	for _, entry := range dirEntries {
		if !entry.IsDir() {
			continue
		}
		ts, ok := config.ParseBackupName(entry.Name())
		if !ok {
			continue
		}
		snap := Snapshot{
			Name: entry.Name(),
			Path: filepath.Join(m.target, entry.Name()),
			Time: ts,
		}
		snap.Items = m.snapshotItems(snap.Path)
		snapshots = append(snapshots, snap)
	}

	sort.Slice(snapshots, func(i, j int) bool {
		if !snapshots[i].Time.Equal(snapshots[j].Time) {
			return snapshots[i].Time.After(snapshots[j].Time)
		}
		// Same second: the single-digit ordinal suffix sorts the later
		// snapshot first.
		return snapshots[i].Name > snapshots[j].Name
	})
	return snapshots, nil
}

// snapshotItems prefers the manifest's item list; without one it falls
// back to the snapshot's top-level entries.
func (m *Manager) snapshotItems(path string) []string {
	data, err := m.fs.ReadFile(filepath.Join(path, manifestName))
	if err == nil {
		var manifest Manifest
		if err := yaml.Unmarshal(data, &manifest); err == nil && len(manifest.Items) > 0 {
			return manifest.Items
		}
	}

	entries, err := m.fs.ReadDir(path)
	if err != nil {
		return nil
	}
	var items []string
	for _, entry := range entries {
		if entry.Name() == manifestName {
			continue
		}
		items = append(items, entry.Name())
	}
	return items
}

// FindSnapshot resolves a snapshot by name. The name is user input, so
// it is validated against the naming scheme and contained to the target
// root before any filesystem access.
func (m *Manager) FindSnapshot(name string) (Snapshot, error) {
	if _, ok := config.ParseBackupName(name); !ok {
		return Snapshot{}, errors.ValidationError(fmt.Sprintf("not a snapshot name: %s", name))
	}
	path, err := config.SafeChild(m.target, name)
	if err != nil {
		return Snapshot{}, err
	}
	if !m.fs.IsDir(path) {
		return Snapshot{}, errors.New(errors.ExitGeneralError, fmt.Sprintf("snapshot not found: %s", name))
	}

	ts, _ := config.ParseBackupName(name)
	return Snapshot{Name: name, Path: path, Time: ts, Items: m.snapshotItems(path)}, nil
}

// SnapshotFiles lists every file inside a snapshot, relative to the
// snapshot directory, sorted.
func (m *Manager) SnapshotFiles(snap Snapshot) ([]string, error) {
	var files []string

	var walk func(dir, rel string) error
	walk = func(dir, rel string) error {
		entries, err := m.fs.ReadDir(dir)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			entryRel := filepath.Join(rel, entry.Name())
			if entry.IsDir() {
				if err := walk(filepath.Join(dir, entry.Name()), entryRel); err != nil {
					return err
				}
				continue
			}
			files = append(files, entryRel)
		}
		return nil
	}

	if err := walk(snap.Path, ""); err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", snap.Name, err)
	}
	sort.Strings(files)
	return files, nil
}

// Age renders how long ago the snapshot was taken, coarsely.
func (s Snapshot) Age(now time.Time) string {
	d := now.Sub(s.Time)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// Describe renders the snapshot's item list for display.
func (s Snapshot) Describe() string {
	if len(s.Items) == 0 {
		return "empty"
	}
	return strings.Join(s.Items, ", ")
}
