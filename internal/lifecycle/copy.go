package lifecycle

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/loadstone/loadout/internal/assets"
	"github.com/loadstone/loadout/internal/logging"
)

// entryPath returns the destination path of a managed entry. Entry names
// are package constants, never user input.
func (m *Manager) entryPath(name string) string {
	return filepath.Join(m.target, name)
}

// copyFromSource copies one managed entry from the asset source into the
// target root, replacing whatever is there. fs.ErrNotExist means the
// entry is absent in the source; callers treat that as a skip.
func (m *Manager) copyFromSource(name string) error {
	info, err := fs.Stat(m.source.FS(), name)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return m.copyDirFromSource(name)
	}
	return m.copyFileFromSource(name)
}

// copyDirFromSource replaces the target directory with a verbatim copy of
// the source directory. The stale tree is removed first so deleted source
// files do not linger at the destination.
func (m *Manager) copyDirFromSource(name string) error {
	dst := m.entryPath(name)
	if err := m.fs.RemoveAll(dst); err != nil {
		return fmt.Errorf("failed to clear %s: %w", name, err)
	}

	return fs.WalkDir(m.source.FS(), name, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		dstPath := filepath.Join(m.target, path)
		if d.IsDir() {
			return m.fs.MkdirAll(dstPath, 0755)
		}
		data, err := fs.ReadFile(m.source.FS(), path)
		if err != nil {
			return fmt.Errorf("failed to read source %s: %w", path, err)
		}
		if err := m.fs.WriteFile(dstPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		return nil
	})
}

// copyFileFromSource copies one root file from the asset source.
func (m *Manager) copyFileFromSource(name string) error {
	data, err := fs.ReadFile(m.source.FS(), name)
	if err != nil {
		return err
	}
	return m.fs.WriteFile(m.entryPath(name), data, 0644)
}

// makeHooksExecutable sets owner-exec on every file under the hooks
// directory. Hooks the host cannot execute are a correctness bug, so a
// chmod failure is an error, not a warning.
func (m *Manager) makeHooksExecutable() error {
	return m.walkTarget(assets.HooksDir, func(path string, isDir bool) error {
		if isDir {
			return nil
		}
		if err := m.fs.Chmod(path, 0755); err != nil {
			return fmt.Errorf("failed to make %s executable: %w", filepath.Base(path), err)
		}
		logging.Debug("hook marked executable", "path", path)
		return nil
	})
}

// walkTarget walks a managed entry under the target root through the
// filesystem seam, depth-first, parents before children.
func (m *Manager) walkTarget(name string, fn func(path string, isDir bool) error) error {
	root := m.entryPath(name)
	if !m.fs.Exists(root) {
		return nil
	}

	var walk func(path string, isDir bool) error
	walk = func(path string, isDir bool) error {
		if err := fn(path, isDir); err != nil {
			return err
		}
		if !isDir {
			return nil
		}
		entries, err := m.fs.ReadDir(path)
		if err != nil {
			return err
		}
		for _, entry := range entries {
			if err := walk(filepath.Join(path, entry.Name()), entry.IsDir()); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(root, m.fs.IsDir(root))
}

// copyTree copies a live entry into a snapshot directory, returning the
// absolute destination paths of every copied file for verification.
func (m *Manager) copyTree(src, dst string) ([]string, error) {
	if !m.fs.IsDir(src) {
		if err := m.fs.CopyFile(src, dst); err != nil {
			return nil, err
		}
		return []string{dst}, nil
	}

	if err := m.fs.MkdirAll(dst, 0755); err != nil {
		return nil, err
	}

	var copied []string
	entries, err := m.fs.ReadDir(src)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())
		if entry.IsDir() {
			sub, err := m.copyTree(srcPath, dstPath)
			if err != nil {
				return nil, err
			}
			copied = append(copied, sub...)
			continue
		}
		if err := m.fs.CopyFile(srcPath, dstPath); err != nil {
			return nil, err
		}
		copied = append(copied, dstPath)
	}
	return copied, nil
}
