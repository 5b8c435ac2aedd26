// Package lifecycle implements the install, update, and uninstall
// operations over the managed asset tree.
//
// # Safety model
//
// Every destructive operation snapshots the prior state first. The
// ordering is a hard invariant:
//
//  1. Ensure the target root exists (install only).
//  2. Snapshot every managed entry currently present. Each copied file
//     is verified before moving on; a snapshot failure aborts the whole
//     operation with nothing mutated.
//  3. Mutate: overwrite (install/update) or delete (uninstall).
//
// Step 3 failures are collected per entry and never roll back; the
// snapshot from step 2 is the recovery path. Snapshots are never
// deleted or restored automatically.
//
// A disk source that resolves to the target root itself is refused
// before step 1: the copy phase clears destination directories and
// would destroy a source living there.
//
// # Operations
//
// Install copies the four asset directories and the two managed root
// files, marks hook scripts executable, and copies the settings file
// only when it is absent or the user opts in.
//
// Update is install run again, preceded by a best-effort `git pull` of
// the source checkout. Sync failures are reported and ignored.
//
// Uninstall deletes the managed entries but retains the settings file,
// the snapshots, and the target root itself.
//
// Usage:
//
//	mgr := lifecycle.NewManager(src, target, lifecycle.WithAudit(log))
//	result, err := mgr.Install(lifecycle.InstallOptions{
//	    Settings:        lifecycle.SettingsAsk,
//	    ConfirmSettings: promptUser,
//	})
//
// All filesystem access goes through system.FileSystem so tests can
// inject per-path failures.
package lifecycle
