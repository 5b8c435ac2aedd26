// Package testutil provides test fixtures and utilities.
//
// # Test Environment
//
// NewTestEnv builds a fully isolated environment: a temp-dir target root,
// tool config directory, and audit log, installed as the process-wide app
// default until Cleanup runs:
//
//	env := testutil.NewTestEnv(t)
//	defer env.Cleanup()
//
//	source := env.SeedSource()
//	// run commands against env.Paths.TargetRoot
//
// # Hook Payload Fixtures
//
// Captured host payloads are embedded with go:embed:
//
//	fixtures/pre_tool_use.json
//	fixtures/post_tool_use.json
//
// Load them directly or build payloads around specific inputs:
//
//	data, err := testutil.SamplePreToolUse()
//	payload := testutil.CommandPayload("git push --force")
//	payload := testutil.FilePayload("/tmp/server.py")
package testutil
