package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

var addedIDRE = regexp.MustCompile(`ID: ([0-9a-f-]+)\)`)

// TestEndToEndWorkflow drives a built sknn binary. Build it into ./bin first
// (or point SKNN_BIN_DIR at it); the test skips when no binary is found.
func TestEndToEndWorkflow(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get cwd: %v", err)
	}

	binDir := os.Getenv("SKNN_BIN_DIR")
	if binDir == "" {
		binDir = filepath.Join(cwd, "..", "..", "bin")
	}
	binDir, _ = filepath.Abs(binDir)

	cliPath := filepath.Join(binDir, "sknn")
	if _, err := os.Stat(cliPath); os.IsNotExist(err) {
		t.Skipf("CLI binary not found at %s, build it first", cliPath)
	}

	// Isolate the run from the user's config, keyring lookup and environment
	tempDir := t.TempDir()
	var env []string
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "HOME=") || strings.HasPrefix(e, "SKNN_DB_CONNECTION=") {
			continue
		}
		env = append(env, e)
	}
	env = append(env, fmt.Sprintf("HOME=%s", tempDir))
	dbPath := filepath.Join(tempDir, "sknn", "sknn.db")

	run := func(args ...string) string {
		t.Helper()
		return runCmd(t, cliPath, env, append([]string{"--config", dbPath}, args...)...)
	}

	t.Log("Initializing storage...")
	if out := run("init"); !strings.Contains(out, "7 routines ready") {
		t.Fatalf("unexpected init output: %s", out)
	}

	t.Log("Adding a step...")
	out := run("add", "Toner", "--time", "Night")
	match := addedIDRE.FindStringSubmatch(out)
	if match == nil {
		t.Fatalf("no id in add output: %s", out)
	}
	id := match[1]

	t.Log("Completing the new step...")
	run("done", id)
	if out := run("progress"); !strings.Contains(out, "1 of 8 completed (13%)") {
		t.Errorf("unexpected progress after done: %s", out)
	}

	if out := run("list", "--time", "Night"); !strings.Contains(out, "[x] Toner") {
		t.Errorf("Toner should be listed as done: %s", out)
	}

	t.Log("Backing up...")
	run("backup", "create")
	if out := run("backup", "list"); !strings.Contains(out, "sknn-") {
		t.Errorf("backup not listed: %s", out)
	}

	t.Log("Resetting and deleting...")
	run("reset")
	if out := run("progress"); !strings.Contains(out, "0 of 8 completed (0%)") {
		t.Errorf("unexpected progress after reset: %s", out)
	}
	run("delete", id)
	if out := run("list"); strings.Contains(out, "Toner") {
		t.Errorf("Toner should be gone: %s", out)
	}

	if out := run("doctor"); !strings.Contains(out, "Storage reachable: OK") {
		t.Errorf("doctor did not report healthy storage: %s", out)
	}
}

func runCmd(t *testing.T, path string, env []string, args ...string) string {
	t.Helper()
	cmd := exec.Command(path, args...)
	cmd.Env = env
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("Command %s %v failed: %v\nOutput: %s", path, args, err, out)
	}
	return string(out)
}
