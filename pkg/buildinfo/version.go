// Package buildinfo reports which lamafmt build produced an output. The CLI
// prints it for --version and the server returns it from /healthz, so a
// formatting difference can be traced back to a release.
//
// The values are stamped at link time:
//
//	go build -ldflags "-X github.com/matzehuels/lamafmt/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/lamafmt/pkg/buildinfo.Commit=$(git rev-parse HEAD)" ./cmd/lamafmt
package buildinfo

import "fmt"

var (
	Version = "dev"     // release tag
	Commit  = "none"    // git commit of the build
	Date    = "unknown" // build time, RFC 3339
)

// Info is the build description served by /healthz.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Built   string `json:"built"`
}

// Get returns the stamped build description.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Built: Date}
}

// Template is the cobra version template: the formatter's name and release
// on the first line, commit and build time below.
func Template() string {
	i := Get()
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", i.Version, i.Commit, i.Built)
}
