// Package version holds build metadata, set with -ldflags:
//
//	go build -ldflags "-X github.com/mutablelogic/go-lmq/pkg/version.GitTag=v1.0.0" ./cmd/lmq
package version

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

var (
	GitSource   string
	GitTag      string
	GitBranch   string
	GitHash     string
	GoBuildTime string
)

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ExecName returns the name of the running executable
func ExecName() string {
	name, err := os.Executable()
	if err != nil {
		return "lmq"
	}
	return filepath.Base(name)
}

// Version returns the tag, or the branch and hash when there is no tag
func Version() string {
	switch {
	case GitTag != "":
		return GitTag
	case GitBranch != "" && GitHash != "":
		return fmt.Sprintf("%s@%s", GitBranch, GitHash)
	case GitHash != "":
		return GitHash
	}
	return "dev"
}

// Compiler returns the go version, operating system and architecture
func Compiler() string {
	return fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
