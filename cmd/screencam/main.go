package main

import (
	"log"
	"os"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Logging goes to stderr; stdout belongs to command output and,
	// under serve, to the MCP protocol stream.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime)

	Execute()
}
