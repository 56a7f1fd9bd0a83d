package testutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

// Result is the decoded --json envelope of one ntnk invocation.
type Result struct {
	OK       bool
	Data     map[string]interface{}
	Error    *ResultError
	Warnings []ResultWarning
	Raw      string
	Exit     int
}

// ResultError is the envelope's error object.
type ResultError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion,omitempty"`
}

// ResultWarning is one envelope warning.
type ResultWarning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Line    int    `json:"line,omitempty"`
}

var (
	buildOnce sync.Once
	binary    string
	buildErr  error
)

// ntnkBinary compiles ./cmd/ntnk once per test process.
func ntnkBinary(t *testing.T) string {
	t.Helper()
	buildOnce.Do(func() {
		root, err := moduleRoot()
		if err != nil {
			buildErr = err
			return
		}
		dir, err := os.MkdirTemp("", "ntnk-bin-*")
		if err != nil {
			buildErr = err
			return
		}
		name := "ntnk"
		if runtime.GOOS == "windows" {
			name += ".exe"
		}
		out := filepath.Join(dir, name)
		cmd := exec.Command("go", "build", "-o", out, "./cmd/ntnk")
		cmd.Dir = root
		if msg, err := cmd.CombinedOutput(); err != nil {
			buildErr = fmt.Errorf("go build ./cmd/ntnk: %w\n%s", err, msg)
			return
		}
		binary = out
	})
	if buildErr != nil {
		t.Fatalf("failed to build ntnk: %v", buildErr)
	}
	return binary
}

// moduleRoot walks up from the working directory to the go.mod.
func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found")
		}
		dir = parent
	}
}

// RunCLI runs ntnk with --json and the collection's config, from the
// collection directory.
func (c *TestCollection) RunCLI(args ...string) *Result {
	c.t.Helper()
	return c.run(nil, args...)
}

// RunCLIWithStdin is RunCLI with stdin as standard input.
func (c *TestCollection) RunCLIWithStdin(stdin string, args ...string) *Result {
	c.t.Helper()
	return c.run(strings.NewReader(stdin), args...)
}

func (c *TestCollection) run(stdin io.Reader, args ...string) *Result {
	c.t.Helper()

	var out, errOut bytes.Buffer
	cmd := exec.Command(ntnkBinary(c.t), append([]string{"--config", c.ConfigPath, "--json"}, args...)...)
	cmd.Dir = c.Path
	cmd.Stdin = stdin
	cmd.Stdout = &out
	cmd.Stderr = &errOut

	res := &Result{}
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			c.t.Fatalf("ntnk %s: %v", strings.Join(args, " "), err)
		}
		res.Exit = exitErr.ExitCode()
	}
	res.Raw = out.String()

	var env struct {
		OK       bool                   `json:"ok"`
		Data     map[string]interface{} `json:"data"`
		Error    *ResultError           `json:"error"`
		Warnings []ResultWarning        `json:"warnings"`
	}
	if err := json.Unmarshal(out.Bytes(), &env); err != nil {
		c.t.Fatalf("ntnk %s: output is not a JSON envelope: %v\nstdout: %s\nstderr: %s",
			strings.Join(args, " "), err, out.String(), errOut.String())
	}
	res.OK, res.Data, res.Error, res.Warnings = env.OK, env.Data, env.Error, env.Warnings
	return res
}
