// Package guard vetoes shell commands that contain known-destructive
// substrings. Matching is literal, case-sensitive containment, nothing
// more: no shell parsing, no globbing, no regex. False positives are
// accepted; false negatives on the listed patterns are not.
package guard

import "strings"

// denyList holds the blocked substrings in match order. The list is
// fixed at compile time and never mutated; first match wins.
var denyList = []string{
	"rm -rf /",
	"rm -rf ~",
	"rm -rf $HOME",
	"rm -rf *",
	"rm -fr /",
	"mkfs.",
	"of=/dev/sd",
	"of=/dev/nvme",
	":(){",
	"chmod -R 777 /",
	"curl | sh",
	"curl | bash",
	"wget | sh",
	"wget | bash",
}

// Patterns returns a copy of the deny-list, for display.
func Patterns() []string {
	out := make([]string, len(denyList))
	copy(out, denyList)
	return out
}

// Check scans command against the deny-list. It returns the first
// matching pattern and true when the command must be blocked, or
// ("", false) when it may run. The empty command is always allowed.
func Check(command string) (pattern string, blocked bool) {
	if command == "" {
		return "", false
	}
	for _, p := range denyList {
		if strings.Contains(command, p) {
			return p, true
		}
	}
	return "", false
}
