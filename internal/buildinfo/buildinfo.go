// Package buildinfo holds release metadata set at link time, e.g.
// -ldflags "-X github.com/hbowie/NotenikLib-sub002/internal/buildinfo.Version=v0.3.0".
package buildinfo

// Empty for local builds.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)
