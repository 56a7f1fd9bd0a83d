package cli

import (
	"reflect"
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/hbowie/NotenikLib-sub002/internal/buildinfo"
)

func stubBuildInfo(t *testing.T, bi *debug.BuildInfo) {
	t.Helper()
	prev := readBuildInfo
	t.Cleanup(func() { readBuildInfo = prev })
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, bi != nil }
}

func TestCurrentVersionInfo(t *testing.T) {
	dialects := []string{"plain", "markdown", "multimarkdown", "yaml", "notenik"}
	tests := []struct {
		name    string
		bi      *debug.BuildInfo
		ldflags [3]string
		want    versionInfo
	}{
		{
			name: "module build info",
			bi: &debug.BuildInfo{
				GoVersion: "go1.23.4",
				Main:      debug.Module{Path: "example.com/ntnk", Version: "v1.2.3"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "abc123"},
					{Key: "vcs.time", Value: "2026-02-14T17:00:00Z"},
					{Key: "vcs.modified", Value: "true"},
					{Key: "GOOS", Value: "windows"},
					{Key: "GOARCH", Value: "amd64"},
				},
			},
			want: versionInfo{
				Version:  "v1.2.3",
				Module:   "example.com/ntnk",
				Commit:   "abc123",
				Built:    "2026-02-14T17:00:00Z",
				Dirty:    true,
				Go:       "go1.23.4",
				Platform: "windows/amd64",
				Dialects: dialects,
			},
		},
		{
			name:    "devel build takes linked values",
			bi:      &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			ldflags: [3]string{"v0.3.0", "feed01", "2026-03-01"},
			want: versionInfo{
				Version:  "v0.3.0",
				Module:   modulePath,
				Commit:   "feed01",
				Built:    "2026-03-01",
				Go:       runtime.Version(),
				Platform: runtime.GOOS + "/" + runtime.GOARCH,
				Dialects: dialects,
			},
		},
		{
			name: "no build info",
			want: versionInfo{
				Version:  "devel",
				Module:   modulePath,
				Go:       runtime.Version(),
				Platform: runtime.GOOS + "/" + runtime.GOARCH,
				Dialects: dialects,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubBuildInfo(t, tt.bi)
			prev := [3]string{buildinfo.Version, buildinfo.Commit, buildinfo.Date}
			t.Cleanup(func() { buildinfo.Version, buildinfo.Commit, buildinfo.Date = prev[0], prev[1], prev[2] })
			buildinfo.Version, buildinfo.Commit, buildinfo.Date = tt.ldflags[0], tt.ldflags[1], tt.ldflags[2]

			if got := currentVersionInfo(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("info = %+v\nwant %+v", got, tt.want)
			}
		})
	}
}

func TestVersionText(t *testing.T) {
	info := versionInfo{
		Version:  "v1.2.3",
		Module:   "example.com/ntnk",
		Commit:   "abc123",
		Built:    "2026-02-14T17:00:00Z",
		Dirty:    true,
		Go:       "go1.23.4",
		Platform: "windows/amd64",
		Dialects: []string{"plain", "notenik"},
	}
	want := "ntnk v1.2.3\n" +
		"module:    example.com/ntnk\n" +
		"commit:    abc123 (dirty)\n" +
		"built:     2026-02-14T17:00:00Z\n" +
		"go:        go1.23.4 windows/amd64\n" +
		"dialects:  plain, notenik\n"
	if got := versionText(info); got != want {
		t.Errorf("text:\n%s\nwant:\n%s", got, want)
	}

	bare := versionText(versionInfo{Version: "devel", Module: "m", Go: "go1.23", Platform: "linux/arm64", Dialects: []string{"yaml"}})
	if want := "ntnk devel\nmodule:    m\ngo:        go1.23 linux/arm64\ndialects:  yaml\n"; bare != want {
		t.Errorf("bare text:\n%q\nwant:\n%q", bare, want)
	}
}

func TestVersionCommandJSON(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		GoVersion: "go1.23.4",
		Main:      debug.Module{Path: modulePath, Version: "v2.0.0"},
		Settings:  []debug.BuildSetting{{Key: "vcs.revision", Value: "deadbeef"}},
	})

	resp := runJSON(t, "version")
	if !resp.OK {
		t.Fatalf("version failed: %+v", resp.Error)
	}
	data := dataMap(t, resp)
	if data["version"] != "v2.0.0" || data["commit"] != "deadbeef" {
		t.Errorf("data = %v", data)
	}
	dialects, ok := data["dialects"].([]interface{})
	if !ok || len(dialects) != 5 || dialects[4] != "notenik" {
		t.Errorf("dialects = %v", data["dialects"])
	}
}
