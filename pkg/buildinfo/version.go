// Package buildinfo reports which dotkit build is running. The CLI prints it
// for --version and the HTTP API returns the version from /healthz.
//
// Release builds stamp the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/dotkit/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/dotkit/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/dotkit/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/dotkit
//
// Unstamped builds, such as go run and tests, report "dev".
package buildinfo

import "fmt"

var (
	// Version is the release tag, "dev" when unstamped.
	Version = "dev"

	// Commit is the git commit the binary was built from.
	Commit = "none"

	// Date is the UTC build time in RFC 3339 form.
	Date = "unknown"
)

// String returns the build information, one field per line.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template, for example
// "dotkit version v0.3.0".
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// UserAgent identifies dotkit in outgoing requests and server headers.
func UserAgent() string {
	return "dotkit/" + Version
}
