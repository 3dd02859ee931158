package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/screencam/screencam/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `serve exposes every screencam operation as MCP tools over stdio so an
AI agent can capture and inspect screenshots on its own.

Add it to an MCP client configuration, e.g. for Claude Desktop:

  {
    "mcpServers": {
      "screencam": {
        "command": "screencam",
        "args": ["serve"]
      }
    }
  }`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.LogLevel == "debug" {
			log.Printf("screencam %s (built %s, commit %s) serving MCP on stdio",
				Version, BuildTime, GitCommit)
		}
		return server.New(cfg, Version).Serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
