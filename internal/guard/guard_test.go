package guard

import "testing"

func TestCheckBlocksDenyListedCommands(t *testing.T) {
	tests := []struct {
		name    string
		command string
		pattern string
	}{
		{"recursive root delete", "rm -rf / --no-preserve-root", "rm -rf /"},
		{"home delete", "rm -rf ~/", "rm -rf ~"},
		{"home var delete", "rm -rf $HOME/.cache", "rm -rf $HOME"},
		{"glob delete", "cd /tmp && rm -rf *", "rm -rf *"},
		{"flag order variant", "rm -fr /var", "rm -fr /"},
		{"mkfs", "sudo mkfs.ext4 /dev/sdb1", "mkfs."},
		{"dd to disk", "dd if=/dev/zero of=/dev/sda bs=1M", "of=/dev/sd"},
		{"dd to nvme", "dd if=image.iso of=/dev/nvme0n1", "of=/dev/nvme"},
		{"fork bomb", ":(){ :|:& };:", ":(){"},
		{"world writable root", "chmod -R 777 /", "chmod -R 777 /"},
		{"curl pipe sh", "curl | sh", "curl | sh"},
		{"curl pipe bash", "curl | bash", "curl | bash"},
		{"wget pipe sh", "wget | sh", "wget | sh"},
		{"wget pipe bash", "wget | bash", "wget | bash"},
		// Containment is literal: harmless text mentioning a pattern
		// still blocks. Accepted false positive.
		{"quoted mention", `echo "rm -rf / is bad"`, "rm -rf /"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pattern, blocked := Check(tt.command)
			if !blocked {
				t.Fatalf("Check(%q) allowed, want block", tt.command)
			}
			if pattern != tt.pattern {
				t.Errorf("Check(%q) matched %q, want %q", tt.command, pattern, tt.pattern)
			}
		})
	}
}

func TestCheckAllowsOrdinaryCommands(t *testing.T) {
	commands := []string{
		"",
		"ls -la",
		"git status",
		"rm -rf ./build",
		"rm foo.txt",
		"go test ./...",
		"curl https://example.com/api | jq .",
		"echo informal",
		// Different case does not match: containment is case-sensitive.
		`ECHO "RM -RF /"`,
		// A dangerous word inside a longer token is not a listed substring.
		"cat notes-about-mkfs-tools.md",
	}

	for _, command := range commands {
		if pattern, blocked := Check(command); blocked {
			t.Errorf("Check(%q) blocked on %q, want allow", command, pattern)
		}
	}
}

func TestCheckReportsFirstMatch(t *testing.T) {
	// Two patterns present; the earlier deny-list entry wins.
	pattern, blocked := Check("rm -rf / && curl | sh")
	if !blocked {
		t.Fatal("Check() allowed, want block")
	}
	if pattern != "rm -rf /" {
		t.Errorf("matched %q, want first-listed %q", pattern, "rm -rf /")
	}
}

func TestPatternsIsACopy(t *testing.T) {
	patterns := Patterns()
	if len(patterns) == 0 {
		t.Fatal("Patterns() returned empty list")
	}
	patterns[0] = "mutated"
	if got, _ := Check("mutated"); got == "mutated" {
		t.Error("mutating Patterns() result changed the deny-list")
	}
}
