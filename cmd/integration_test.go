package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/loadstone/loadout/internal/audit"
	loaderr "github.com/loadstone/loadout/internal/errors"
)

// These tests drive the real commands end to end against a temp-dir
// environment: real filesystem, seeded source tree, isolated audit log.

func TestInstallCommand_Fresh(t *testing.T) {
	env := setupTestEnv(t)
	source := env.SeedSource()

	_, _, err := executeCommand("install", "--yes", "--source", source)
	if err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	for _, rel := range []string{
		"agents/code-reviewer.md",
		"skills/commit-helper/SKILL.md",
		"commands/review.md",
		"hooks/pre-exec.sh",
		"CLAUDE.md",
		"USAGE.md",
		"settings.json",
	} {
		if !env.TargetExists(rel) {
			t.Errorf("%s should exist after install", rel)
		}
	}

	info, err := os.Stat(env.TargetPath("hooks/pre-exec.sh"))
	if err != nil {
		t.Fatalf("Failed to stat hook: %v", err)
	}
	if info.Mode()&0o111 == 0 {
		t.Error("Installed hooks should be executable")
	}

	// Fresh install backs nothing up.
	entries, err := os.ReadDir(env.Paths.TargetRoot)
	if err != nil {
		t.Fatalf("Failed to read target root: %v", err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), "backup_") {
			t.Errorf("Fresh install should not create snapshots, found %s", entry.Name())
		}
	}
}

func TestInstallCommand_SecondRunSnapshots(t *testing.T) {
	env := setupTestEnv(t)
	source := env.SeedSource()

	if _, _, err := executeCommand("install", "--yes", "--source", source); err != nil {
		t.Fatalf("First install failed: %v", err)
	}
	if _, _, err := executeCommand("install", "--yes", "--source", source); err != nil {
		t.Fatalf("Second install failed: %v", err)
	}

	names := snapshotNames(t, env.Paths.TargetRoot)
	if len(names) != 1 {
		t.Fatalf("Expected exactly one snapshot, got %v", names)
	}

	// The snapshot preserves the prior managed tree.
	backed := filepath.Join(env.Paths.TargetRoot, names[0], "agents", "code-reviewer.md")
	if _, err := os.Stat(backed); err != nil {
		t.Errorf("Snapshot should contain prior agents: %v", err)
	}
}

func TestInstallCommand_DryRunMutatesNothing(t *testing.T) {
	env := setupTestEnv(t)
	source := env.SeedSource()

	stdout, _, err := executeCommand("install", "--dry-run", "--source", source)
	if err != nil {
		t.Fatalf("Dry run failed: %v", err)
	}

	if !strings.Contains(stdout, "dry run") {
		t.Error("Dry run output should say so")
	}
	if !strings.Contains(stdout, "copy") {
		t.Error("Dry run should list planned copies")
	}

	if _, err := os.Stat(env.Paths.TargetRoot); !os.IsNotExist(err) {
		t.Error("Dry run must not create the target root")
	}
	if len(env.AuditEvents()) != 0 {
		t.Error("Dry run must not log audit events")
	}
}

func TestInstallCommand_KeepsSettingsByDefault(t *testing.T) {
	env := setupTestEnv(t)
	source := env.SeedSource()

	custom := `{"custom": "CUSTOM_MARKER"}`
	if err := os.MkdirAll(env.Paths.TargetRoot, 0755); err != nil {
		t.Fatalf("Failed to create target: %v", err)
	}
	if err := os.WriteFile(env.TargetPath("settings.json"), []byte(custom), 0644); err != nil {
		t.Fatalf("Failed to seed settings: %v", err)
	}

	// Non-interactive ask degrades to keep.
	if _, _, err := executeCommand("install", "--yes", "--source", source); err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	if got := env.ReadTarget("settings.json"); got != custom {
		t.Errorf("settings.json = %q, want untouched %q", got, custom)
	}
}

func TestInstallCommand_SettingsOverwriteFlag(t *testing.T) {
	env := setupTestEnv(t)
	source := env.SeedSource()

	if err := os.MkdirAll(env.Paths.TargetRoot, 0755); err != nil {
		t.Fatalf("Failed to create target: %v", err)
	}
	if err := os.WriteFile(env.TargetPath("settings.json"), []byte(`{"custom": true}`), 0644); err != nil {
		t.Fatalf("Failed to seed settings: %v", err)
	}

	if _, _, err := executeCommand("install", "--yes", "--settings", "overwrite", "--source", source); err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	if got := env.ReadTarget("settings.json"); !strings.Contains(got, "PreToolUse") {
		t.Errorf("settings.json = %q, want source content", got)
	}
}

func TestInstallCommand_EmbeddedFallback(t *testing.T) {
	env := setupTestEnv(t)

	// No --source and no checkout near the test binary: the payload
	// compiled into the binary is used.
	if _, _, err := executeCommand("install", "--yes"); err != nil {
		t.Fatalf("Install from embedded payload failed: %v", err)
	}

	shim := env.ReadTarget("hooks/pre-exec.sh")
	if !strings.Contains(shim, "loadout hook pre-exec") {
		t.Errorf("Embedded hook shim should dispatch to the binary, got %q", shim)
	}
}

func TestInstallCommand_SourceInvalidExitCode(t *testing.T) {
	env := setupTestEnv(t)
	_ = env

	_, _, err := executeCommand("install", "--yes", "--source", "/nonexistent/assets")
	if err == nil {
		t.Fatal("Install with a bad source should fail")
	}
	if code := loaderr.GetExitCode(err); code != loaderr.ExitSourceInvalid {
		t.Errorf("Exit code = %d, want %d", code, loaderr.ExitSourceInvalid)
	}
}

func TestInstallCommand_RejectsTargetAsSource(t *testing.T) {
	env := setupTestEnv(t)
	source := env.SeedSource()

	if _, _, err := executeCommand("install", "--yes", "--source", source); err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	// An installed target looks like an asset checkout, so it resolves
	// as a source. Using it as its own source must be refused rather
	// than clearing it mid-copy.
	_, _, err := executeCommand("install", "--yes", "--source", env.Paths.TargetRoot)
	if err == nil {
		t.Fatal("Install from the target root should fail")
	}
	if code := loaderr.GetExitCode(err); code != loaderr.ExitSourceInvalid {
		t.Errorf("Exit code = %d, want %d", code, loaderr.ExitSourceInvalid)
	}

	for _, rel := range []string{"agents/code-reviewer.md", "hooks/pre-exec.sh", "CLAUDE.md"} {
		if !env.TargetExists(rel) {
			t.Errorf("%s should survive the refused install", rel)
		}
	}
}

func TestInstallCommand_TargetRootExitCode(t *testing.T) {
	env := setupTestEnv(t)
	source := env.SeedSource()

	// A file where a directory must go makes the precondition fail.
	blocker := filepath.Join(env.TmpDir, "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to write blocker: %v", err)
	}

	_, _, err := executeCommand("install", "--yes",
		"--source", source, "--target", filepath.Join(blocker, "claude"))
	if err == nil {
		t.Fatal("Install into an impossible target should fail")
	}
	if code := loaderr.GetExitCode(err); code != loaderr.ExitTargetRoot {
		t.Errorf("Exit code = %d, want %d", code, loaderr.ExitTargetRoot)
	}
}

func TestInstallCommand_BrokenConfigExitCode(t *testing.T) {
	env := setupTestEnv(t)
	env.WriteConfig("target = [broken")

	_, _, err := executeCommand("install", "--yes")
	if err == nil {
		t.Fatal("Install with a broken config file should fail")
	}
	if code := loaderr.GetExitCode(err); code != loaderr.ExitConfigError {
		t.Errorf("Exit code = %d, want %d", code, loaderr.ExitConfigError)
	}
}

func TestInstallCommand_ConfigFileTarget(t *testing.T) {
	env := setupTestEnv(t)
	source := env.SeedSource()

	other := filepath.Join(env.TmpDir, "other-target")
	env.WriteConfig("target = \"" + other + "\"\n")

	if _, _, err := executeCommand("install", "--yes", "--source", source); err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(other, "agents")); err != nil {
		t.Errorf("Install should honor the configured target: %v", err)
	}
}

func TestInstallCommand_RecordsAuditEvent(t *testing.T) {
	env := setupTestEnv(t)
	source := env.SeedSource()

	if _, _, err := executeCommand("install", "--yes", "--source", source); err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	events := env.AuditEvents()
	if len(events) != 1 {
		t.Fatalf("Expected 1 audit event, got %d", len(events))
	}
	if events[0].Type != audit.EventInstall {
		t.Errorf("Event type = %q, want install", events[0].Type)
	}
	if events[0].RunID == "" {
		t.Error("Event should carry a run ID")
	}
	if events[0].Target != env.Paths.TargetRoot {
		t.Errorf("Event target = %q, want %q", events[0].Target, env.Paths.TargetRoot)
	}
}

func TestUpdateCommand_ReinstallsAndAudits(t *testing.T) {
	env := setupTestEnv(t)
	source := env.SeedSource()

	if _, _, err := executeCommand("install", "--yes", "--source", source); err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	// Non-git source: the sync is skipped and update proceeds.
	if _, _, err := executeCommand("update", "--source", source); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if !env.TargetExists("agents/code-reviewer.md") {
		t.Error("Update should leave assets installed")
	}

	events := env.AuditEvents()
	if len(events) != 2 {
		t.Fatalf("Expected 2 audit events, got %d", len(events))
	}
	if events[1].Type != audit.EventUpdate {
		t.Errorf("Second event type = %q, want update", events[1].Type)
	}
	if events[1].Backup == "" {
		t.Error("Update over an existing install should record the snapshot")
	}
}

func TestUninstallCommand_Full(t *testing.T) {
	env := setupTestEnv(t)
	source := env.SeedSource()

	if _, _, err := executeCommand("install", "--yes", "--source", source); err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	if _, _, err := executeCommand("uninstall", "--yes"); err != nil {
		t.Fatalf("Uninstall failed: %v", err)
	}

	for _, rel := range []string{"agents", "skills", "commands", "hooks", "CLAUDE.md", "USAGE.md"} {
		if env.TargetExists(rel) {
			t.Errorf("%s should be removed by uninstall", rel)
		}
	}
	if !env.TargetExists("settings.json") {
		t.Error("settings.json must survive uninstall")
	}

	names := snapshotNames(t, env.Paths.TargetRoot)
	if len(names) != 1 {
		t.Fatalf("Uninstall should leave one snapshot, got %v", names)
	}
	if _, err := os.Stat(filepath.Join(env.Paths.TargetRoot, names[0], "settings.json")); err != nil {
		t.Errorf("Snapshot should include settings.json: %v", err)
	}
}

func TestUninstallCommand_DeclineKeepsEverything(t *testing.T) {
	env := setupTestEnv(t)
	source := env.SeedSource()

	if _, _, err := executeCommand("install", "--yes", "--source", source); err != nil {
		t.Fatalf("Install failed: %v", err)
	}
	auditBefore := len(env.AuditEvents())

	// "n" declines; so does closed stdin.
	_, _, err := executeCommandWithInput("n\n", "uninstall")
	if err != nil {
		t.Fatalf("Declined uninstall should exit cleanly: %v", err)
	}

	if !env.TargetExists("agents/code-reviewer.md") {
		t.Error("Decline must not remove anything")
	}
	if got := len(env.AuditEvents()); got != auditBefore {
		t.Errorf("Decline must not log events, got %d new", got-auditBefore)
	}
}

func TestUninstallCommand_NothingToDo(t *testing.T) {
	env := setupTestEnv(t)
	_ = env

	_, _, err := executeCommand("uninstall", "--yes")
	if err != nil {
		t.Fatalf("Uninstall of an empty target should succeed: %v", err)
	}
}

func TestStatusCommand_Table(t *testing.T) {
	env := setupTestEnv(t)
	source := env.SeedSource()

	if _, _, err := executeCommand("install", "--yes", "--source", source); err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	stdout, _, err := executeCommand("status", "--source", source)
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}

	if !strings.Contains(stdout, "Target: "+env.Paths.TargetRoot) {
		t.Error("Status should report the target")
	}
	if !strings.Contains(stdout, "Snapshots: 0") {
		t.Error("Fresh install should report zero snapshots")
	}
	if !strings.Contains(stdout, "Last operation: install") {
		t.Error("Status should surface the last audit event")
	}
	for _, name := range []string{"agents", "skills", "commands", "hooks", "CLAUDE.md", "USAGE.md", "settings.json"} {
		if !strings.Contains(stdout, name) {
			t.Errorf("Status table should list %s", name)
		}
	}
}

func TestStatusCommand_Check(t *testing.T) {
	env := setupTestEnv(t)
	source := env.SeedSource()

	if _, _, err := executeCommand("install", "--yes", "--source", source); err != nil {
		t.Fatalf("Install failed: %v", err)
	}

	stdout, _, err := executeCommand("status", "--check", "--source", source)
	if err != nil {
		t.Fatalf("Status --check failed: %v", err)
	}
	if !strings.Contains(stdout, "in sync") {
		t.Error("Freshly installed entries should be in sync")
	}

	// Local drift shows up as divergence.
	if err := os.WriteFile(env.TargetPath("CLAUDE.md"), []byte("drifted\n"), 0644); err != nil {
		t.Fatalf("Failed to modify target file: %v", err)
	}
	stdout, _, err = executeCommand("status", "--check", "--source", source)
	if err != nil {
		t.Fatalf("Status --check failed: %v", err)
	}
	if !strings.Contains(stdout, "differs") {
		t.Error("Modified entries should differ")
	}
}

func TestBackupsCommand_ListAndShow(t *testing.T) {
	env := setupTestEnv(t)
	source := env.SeedSource()

	if _, _, err := executeCommand("install", "--yes", "--source", source); err != nil {
		t.Fatalf("First install failed: %v", err)
	}
	if _, _, err := executeCommand("install", "--yes", "--source", source); err != nil {
		t.Fatalf("Second install failed: %v", err)
	}

	stdout, _, err := executeCommand("backups")
	if err != nil {
		t.Fatalf("Backups failed: %v", err)
	}
	names := snapshotNames(t, env.Paths.TargetRoot)
	if len(names) != 1 {
		t.Fatalf("Expected one snapshot, got %v", names)
	}
	if !strings.Contains(stdout, names[0]) {
		t.Error("Backups list should name the snapshot")
	}

	stdout, _, err = executeCommand("backups", "show", names[0])
	if err != nil {
		t.Fatalf("Backups show failed: %v", err)
	}
	for _, want := range []string{"agents/code-reviewer.md", "settings.json", "backup-manifest.yaml"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("Snapshot contents should list %s", want)
		}
	}
}

func TestBackupsCommand_ShowWithoutNameNonInteractive(t *testing.T) {
	env := setupTestEnv(t)
	source := env.SeedSource()

	if _, _, err := executeCommand("install", "--yes", "--source", source); err != nil {
		t.Fatalf("First install failed: %v", err)
	}
	if _, _, err := executeCommand("install", "--yes", "--source", source); err != nil {
		t.Fatalf("Second install failed: %v", err)
	}

	// No TTY: the picker degrades to a plain listing.
	stdout, _, err := executeCommand("backups", "show")
	if err != nil {
		t.Fatalf("Backups show failed: %v", err)
	}
	if !strings.Contains(stdout, "backup_") {
		t.Error("Plain listing should include snapshot names")
	}
}

func TestBackupsCommand_ShowRejectsTraversal(t *testing.T) {
	env := setupTestEnv(t)
	_ = env

	_, _, err := executeCommand("backups", "show", "../../etc")
	if err == nil {
		t.Fatal("Traversal names must be rejected")
	}
}

func TestBackupsCommand_EmptyTarget(t *testing.T) {
	env := setupTestEnv(t)
	_ = env

	_, _, err := executeCommand("backups")
	if err != nil {
		t.Fatalf("Backups on an empty target should succeed: %v", err)
	}
}

// snapshotNames lists backup directories directly under root.
func snapshotNames(t *testing.T, root string) []string {
	t.Helper()

	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", root, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), "backup_") {
			names = append(names, entry.Name())
		}
	}
	return names
}
