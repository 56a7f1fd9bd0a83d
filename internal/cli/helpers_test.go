package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/hbowie/NotenikLib-sub002/internal/note"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	defer func() { stdout = prev }()
	fn()
	return buf.String()
}

// resetFlags restores every package-level flag to its default, since cobra
// keeps values between Execute calls.
func resetFlags() {
	jsonOutput = false
	configPath = ""
	templateFlag = ""
	fieldsFlag = ""
	lockFlag = false
	cfg = nil
	formatDialect = note.Unknown
	formatWrite = false
	formatOutput = ""
	showRaw = false
	showOutline = false
	fieldsWrite = false
}

// runCommand executes the root command with an empty config file and
// returns what it wrote to stdout and stderr.
func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	confPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(confPath, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	var out, errOut bytes.Buffer
	prevOut, prevErr := stdout, stderr
	stdout, stderr = &out, &errOut
	defer func() { stdout, stderr = prevOut, prevErr }()

	rootCmd.SetArgs(append([]string{"--config", confPath}, args...))
	err := Execute()
	return out.String(), errOut.String(), err
}

// runJSON runs a command with --json and decodes the envelope.
func runJSON(t *testing.T, args ...string) Response {
	t.Helper()
	out, _, _ := runCommand(t, append([]string{"--json"}, args...)...)
	var resp Response
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("expected JSON output, got %v; out=%s", err, out)
	}
	return resp
}

func writeNote(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// dataMap re-decodes the envelope data as a generic map.
func dataMap(t *testing.T, resp Response) map[string]interface{} {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("data is not an object: %s", raw)
	}
	return m
}
