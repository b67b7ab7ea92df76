// Package cmd holds build metadata for the flatlint binary.
//
// Release builds set these with the linker:
//
//	go build -ldflags "-X github.com/thoreinstein/flatlint/cmd.Version=v1.2.0 \
//	  -X github.com/thoreinstein/flatlint/cmd.Commit=$(git rev-parse HEAD)" ./cmd/flatlint
package cmd

var (
	// Version is the release the binary was built from.
	Version = "dev"
	// Commit is the git commit SHA of the build.
	Commit = "none"
	// Date is the build date.
	Date = "unknown"
)
