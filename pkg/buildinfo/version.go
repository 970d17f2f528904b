// Package buildinfo holds the gridpack release stamp.
//
// The CLI prints it for --version, the API reports it on /healthz, and the
// planner's cache keys are scoped by Version so a new release never serves
// results computed by an older engine. Release builds stamp the values:
//
//	go build -ldflags "\
//	    -X github.com/matzehuels/gridpack/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/gridpack/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/gridpack/pkg/buildinfo.Date=$(date -u +%FT%TZ)" \
//	    ./cmd/gridpack
package buildinfo

import "fmt"

// Stamped at link time; local builds keep the defaults.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Template is the cobra version template for the gridpack root command.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", Version, Commit, Date)
}
