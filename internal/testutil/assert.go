package testutil

import (
	"strings"
	"testing"
)

// AssertFileExists fails the test if the file doesn't exist.
func (c *TestCollection) AssertFileExists(relPath string) {
	c.t.Helper()
	if !c.FileExists(relPath) {
		c.t.Errorf("expected file to exist: %s", relPath)
	}
}

// AssertFileContains fails the test if the file doesn't contain substr.
func (c *TestCollection) AssertFileContains(relPath, substr string) {
	c.t.Helper()
	if content := c.ReadFile(relPath); !strings.Contains(content, substr) {
		c.t.Errorf("expected %s to contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertFileEquals fails the test if the file content differs from want.
func (c *TestCollection) AssertFileEquals(relPath, want string) {
	c.t.Helper()
	if got := c.ReadFile(relPath); got != want {
		c.t.Errorf("%s content:\n%q\nwant:\n%q", relPath, got, want)
	}
}

// MustSucceed stops the test unless the command reported ok.
func (r *Result) MustSucceed(t *testing.T) *Result {
	t.Helper()
	if !r.OK || r.Exit != 0 {
		msg := "no error object"
		if r.Error != nil {
			msg = r.Error.Code + ": " + r.Error.Message
		}
		t.Fatalf("command failed (exit %d): %s\n%s", r.Exit, msg, r.Raw)
	}
	return r
}

// MustFail stops the test unless the command failed with code and a
// non-zero exit status.
func (r *Result) MustFail(t *testing.T, code string) *Result {
	t.Helper()
	if r.OK || r.Error == nil {
		t.Fatalf("expected %s, command succeeded\n%s", code, r.Raw)
	}
	if r.Error.Code != code {
		t.Fatalf("error code = %s (%s), want %s", r.Error.Code, r.Error.Message, code)
	}
	if r.Exit == 0 {
		t.Errorf("%s exited 0", code)
	}
	return r
}

// MustFailContaining stops the test unless the command failed with an error
// message or suggestion containing substr.
func (r *Result) MustFailContaining(t *testing.T, substr string) *Result {
	t.Helper()
	if r.OK || r.Error == nil {
		t.Fatalf("expected failure mentioning %q, command succeeded\n%s", substr, r.Raw)
	}
	if !strings.Contains(r.Error.Message, substr) && !strings.Contains(r.Error.Suggestion, substr) {
		t.Errorf("error %q (suggestion %q) does not mention %q", r.Error.Message, r.Error.Suggestion, substr)
	}
	return r
}

// AssertHasWarning checks that the result carries a warning with code.
func (r *Result) AssertHasWarning(t *testing.T, code string) {
	t.Helper()
	for _, w := range r.Warnings {
		if w.Code == code {
			return
		}
	}
	t.Errorf("expected warning %s, got %+v", code, r.Warnings)
}

// AssertNoWarnings checks that the result has no warnings.
func (r *Result) AssertNoWarnings(t *testing.T) {
	t.Helper()
	if len(r.Warnings) > 0 {
		t.Errorf("expected no warnings, got %+v", r.Warnings)
	}
}

// AssertResultCount checks the length of the list at data[key].
func (r *Result) AssertResultCount(t *testing.T, key string, want int) {
	t.Helper()
	list, _ := r.Data[key].([]interface{})
	if len(list) != want {
		t.Errorf("len(data.%s) = %d, want %d\n%s", key, len(list), want, r.Raw)
	}
}

// AssertDataString checks the string at data[key].
func (r *Result) AssertDataString(t *testing.T, key, want string) {
	t.Helper()
	if got, _ := r.Data[key].(string); got != want {
		t.Errorf("data.%s = %q, want %q\n%s", key, got, want, r.Raw)
	}
}
