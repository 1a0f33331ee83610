package main

import (
	"runtime"

	"github.com/teammerge/teammerge/cmd"
)

// Overridden at release time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cmd.Execute(version, runtime.GOOS+"_"+runtime.GOARCH)
}
