// Package testutil provides test utilities for integration tests
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/loadstone/loadout/internal/app"
	"github.com/loadstone/loadout/internal/audit"
	"github.com/loadstone/loadout/internal/config"
)

// TestEnv holds the test environment
type TestEnv struct {
	T       *testing.T
	TmpDir  string
	Paths   *config.Paths
	App     *app.App
	cleanup func()
}

// NewTestEnv creates a test environment rooted in a temp directory and
// installs it as the process-wide app default. Callers must call Cleanup.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	tmpDir := t.TempDir()

	configDir := filepath.Join(tmpDir, "config", config.AppName)
	paths := &config.Paths{
		TargetRoot: filepath.Join(tmpDir, "claude"),
		ConfigDir:  configDir,
		ConfigFile: filepath.Join(configDir, "config.toml"),
		AuditLog:   filepath.Join(configDir, "audit.log"),
	}

	if err := os.MkdirAll(paths.ConfigDir, 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}

	testApp := app.New(app.WithPaths(paths))

	// Save original default and set test app
	originalDefault := app.Default
	app.SetDefault(testApp)

	env := &TestEnv{
		T:      t,
		TmpDir: tmpDir,
		Paths:  paths,
		App:    testApp,
		cleanup: func() {
			app.SetDefault(originalDefault)
		},
	}

	return env
}

// Cleanup restores the original app default
func (e *TestEnv) Cleanup() {
	if e.cleanup != nil {
		e.cleanup()
	}
}

// SeedSource writes a small valid asset tree under the temp directory and
// returns its path. The tree passes source validation (agents/ and hooks/
// present) and covers every managed entry.
func (e *TestEnv) SeedSource() string {
	e.T.Helper()

	dir := filepath.Join(e.TmpDir, "source")
	files := map[string]string{
		"agents/code-reviewer.md":       "# Code Reviewer\n\nReview diffs for correctness and style.\n",
		"agents/test-writer.md":         "# Test Writer\n\nWrite table-driven tests.\n",
		"skills/commit-helper/SKILL.md": "# Commit Helper\n\nDraft commit messages from staged changes.\n",
		"commands/review.md":            "Review the staged changes and list concerns.\n",
		"hooks/pre-exec.sh":             "#!/usr/bin/env bash\nexec loadout hook pre-exec\n",
		"hooks/post-write.sh":           "#!/usr/bin/env bash\nloadout hook post-write\nexit 0\n",
		"CLAUDE.md":                     "# Working Preferences\n\nKeep changes small.\n",
		"USAGE.md":                      "# Usage\n\nManaged by loadout.\n",
		"settings.json":                 "{\"hooks\": {\"PreToolUse\": []}}\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			e.T.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			e.T.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return dir
}

// WriteConfig writes the tool's TOML configuration file.
func (e *TestEnv) WriteConfig(content string) {
	e.T.Helper()

	if err := os.WriteFile(e.Paths.ConfigFile, []byte(content), 0644); err != nil {
		e.T.Fatalf("Failed to write config: %v", err)
	}
}

// TargetPath joins rel under the target root.
func (e *TestEnv) TargetPath(rel string) string {
	return filepath.Join(e.Paths.TargetRoot, filepath.FromSlash(rel))
}

// TargetExists reports whether rel exists under the target root.
func (e *TestEnv) TargetExists(rel string) bool {
	_, err := os.Stat(e.TargetPath(rel))
	return err == nil
}

// ReadTarget reads a file under the target root.
func (e *TestEnv) ReadTarget(rel string) string {
	e.T.Helper()

	data, err := os.ReadFile(e.TargetPath(rel))
	if err != nil {
		e.T.Fatalf("Failed to read %s: %v", rel, err)
	}
	return string(data)
}

// AuditEvents reads back every event the environment's audit log holds.
func (e *TestEnv) AuditEvents() []audit.Event {
	e.T.Helper()

	events, err := audit.NewLogger(e.Paths.AuditLog).Events()
	if err != nil {
		e.T.Fatalf("Failed to read audit log: %v", err)
	}
	return events
}
