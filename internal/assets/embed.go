package assets

import (
	"embed"
	"io/fs"
)

// treeFS holds the asset payload compiled into the binary: the four asset
// directories, the preferences and usage documents, and the settings file.
// It is the install source when no checkout of the asset repository is
// available (e.g. the binary was installed on its own).
//
//go:embed all:tree
var treeFS embed.FS

// embeddedTree strips the "tree" wrapper directory so the embedded payload
// has the same shape as a checkout.
func embeddedTree() fs.FS {
	sub, err := fs.Sub(treeFS, "tree")
	if err != nil {
		// Only reachable if the embed directive itself is broken.
		panic("assets: embedded tree missing: " + err.Error())
	}
	return sub
}
