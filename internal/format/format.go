package format

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/loadstone/loadout/internal/logging"
	"github.com/loadstone/loadout/internal/system"
)

// Kind is the logical file category the dispatcher formats by.
type Kind string

const (
	KindShell      Kind = "shell"
	KindPython     Kind = "python"
	KindJavaScript Kind = "javascript"
	KindJSON       Kind = "json"
	KindMarkdown   Kind = "markdown"
	KindGo         Kind = "go"
	KindUnknown    Kind = "unknown"
)

// applyTimeout bounds a single formatter run so a hung tool cannot
// stall the host session.
const applyTimeout = 30 * time.Second

// kindsByExt maps a lowercased file extension to its Kind. The table is
// closed; anything absent is KindUnknown.
var kindsByExt = map[string]Kind{
	".sh":   KindShell,
	".bash": KindShell,
	".py":   KindPython,
	".js":   KindJavaScript,
	".jsx":  KindJavaScript,
	".ts":   KindJavaScript,
	".tsx":  KindJavaScript,
	".mjs":  KindJavaScript,
	".json": KindJSON,
	".md":   KindMarkdown,
	".go":   KindGo,
}

// invocation is a parsed formatter command line; the target path is
// appended as the final argument.
type invocation struct {
	name string
	args []string
}

// commandsByKind maps each Kind to its formatter. Templates are parsed
// once at init; an unparseable template is a programmer error.
var commandsByKind = map[Kind]invocation{
	KindShell:      mustParse("shfmt -w"),
	KindPython:     mustParse("black --quiet"),
	KindJavaScript: mustParse("prettier --log-level warn --write"),
	KindJSON:       mustParse("prettier --log-level warn --write"),
	KindMarkdown:   mustParse("prettier --log-level warn --write"),
	KindGo:         mustParse("gofmt -w"),
}

func mustParse(template string) invocation {
	words, err := shellquote.Split(template)
	if err != nil || len(words) == 0 {
		panic("format: bad formatter template: " + template)
	}
	return invocation{name: words[0], args: words[1:]}
}

// Classify returns the Kind for path based on its extension. The
// comparison is case-insensitive; paths without a mapped extension are
// KindUnknown.
func Classify(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	if kind, ok := kindsByExt[ext]; ok {
		return kind
	}
	return KindUnknown
}

// Command returns the formatter command line for kind, quoted for
// display, and false when the kind has no formatter.
func Command(kind Kind) (string, bool) {
	inv, ok := commandsByKind[kind]
	if !ok {
		return "", false
	}
	return shellquote.Join(append([]string{inv.name}, inv.args...)...), true
}

// Apply runs the formatter matching path, best-effort. Unknown kinds,
// missing formatter binaries, and formatter failures are all swallowed;
// the caller always proceeds. Each run is bounded by applyTimeout.
func Apply(ctx context.Context, path string) {
	if path == "" {
		return
	}

	kind := Classify(path)
	inv, ok := commandsByKind[kind]
	if !ok {
		logging.Debug("no formatter for file", "path", path, "kind", string(kind))
		return
	}

	executor := system.DefaultExecutor()
	if _, err := executor.LookPath(inv.name); err != nil {
		logging.Debug("formatter not installed", "tool", inv.name, "path", path)
		return
	}

	runCtx, cancel := context.WithTimeout(ctx, applyTimeout)
	defer cancel()

	args := append(append([]string{}, inv.args...), path)
	output, err := executor.Execute(runCtx, inv.name, args...)
	if err != nil {
		logging.Debug("formatter failed", "tool", inv.name, "path", path, "error", err, "output", strings.TrimSpace(string(output)))
		return
	}
	logging.Debug("formatted file", "tool", inv.name, "path", path)
}
