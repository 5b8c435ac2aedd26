// Package assets locates and serves the payload tree that loadout
// installs into the target directory.
//
// The payload is a directory tree of agents, skills, commands, hook
// shims, and root documents. A copy is embedded in the binary at build
// time, so a bare `loadout install` works anywhere; a checkout of the
// tree on disk takes precedence when one can be found.
//
// # Resolution
//
// Resolve picks the source in priority order:
//   - an explicit path (flag or config), which must be a valid tree
//   - the current working directory, when it is itself a payload tree
//   - the directory holding the running binary, or one level up
//   - the embedded copy
//
// Usage:
//
//	src, err := assets.Resolve(flagSource)
//	if err != nil {
//	    return err
//	}
//	entries, _ := fs.ReadDir(src.FS(), assets.AgentsDir)
//
// A directory qualifies as a payload tree when it contains agents/ and
// hooks/ subdirectories. Explicit paths that fail that check are
// rejected rather than silently falling through to the embedded copy.
package assets
