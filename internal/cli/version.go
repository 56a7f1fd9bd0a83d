package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hbowie/NotenikLib-sub002/internal/buildinfo"
	"github.com/hbowie/NotenikLib-sub002/internal/ui"
)

const modulePath = "github.com/hbowie/NotenikLib-sub002"

// versionInfo describes the running binary and the dialects it reads.
type versionInfo struct {
	Version  string   `json:"version"`
	Module   string   `json:"module"`
	Commit   string   `json:"commit,omitempty"`
	Built    string   `json:"built,omitempty"`
	Dirty    bool     `json:"dirty"`
	Go       string   `json:"go"`
	Platform string   `json:"platform"`
	Dialects []string `json:"dialects"`
}

var readBuildInfo = debug.ReadBuildInfo

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show ntnk version, build information and supported dialects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentVersionInfo()
		if isJSONOutput() {
			outputSuccess(info, nil)
			return nil
		}
		fmt.Fprint(stdout, versionText(info))
		return nil
	},
}

func versionText(info versionInfo) string {
	var sb strings.Builder
	sb.WriteString("ntnk " + info.Version + "\n")

	tbl := ui.NewTable(2)
	tbl.AddRow("module:", info.Module)
	if info.Commit != "" {
		commit := info.Commit
		if info.Dirty {
			commit += " (dirty)"
		}
		tbl.AddRow("commit:", commit)
	}
	if info.Built != "" {
		tbl.AddRow("built:", info.Built)
	}
	tbl.AddRow("go:", info.Go+" "+info.Platform)
	tbl.AddRow("dialects:", strings.Join(info.Dialects, ", "))
	sb.WriteString(tbl.String())
	return sb.String()
}

// currentVersionInfo prefers the module build info and falls back to the
// values linked into internal/buildinfo.
func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:  "devel",
		Module:   modulePath,
		Go:       runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
		Dialects: dialectNames(),
	}

	if bi, ok := readBuildInfo(); ok && bi != nil {
		settings := make(map[string]string, len(bi.Settings))
		for _, s := range bi.Settings {
			settings[s.Key] = s.Value
		}
		if bi.Main.Path != "" {
			info.Module = bi.Main.Path
		}
		info.Version = releaseVersion(bi.Main.Version)
		if bi.GoVersion != "" {
			info.Go = bi.GoVersion
		}
		if goos, goarch := settings["GOOS"], settings["GOARCH"]; goos != "" && goarch != "" {
			info.Platform = goos + "/" + goarch
		}
		info.Commit = settings["vcs.revision"]
		info.Built = settings["vcs.time"]
		info.Dirty = settings["vcs.modified"] == "true"
	}

	if info.Version == "devel" {
		info.Version = releaseVersion(buildinfo.Version)
	}
	if info.Commit == "" {
		info.Commit = buildinfo.Commit
	}
	if info.Built == "" {
		info.Built = buildinfo.Date
	}
	return info
}

func releaseVersion(v string) string {
	if v == "" || v == "(devel)" {
		return "devel"
	}
	return v
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
