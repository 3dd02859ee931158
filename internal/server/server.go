package server

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/screencam/screencam/internal/cache"
	"github.com/screencam/screencam/internal/capture"
	"github.com/screencam/screencam/internal/config"
)

// Server wires the capture toolkit into an MCP stdio server.
type Server struct {
	cfg    *config.Config
	store  *cache.Store
	worker *capture.Worker
	mcp    *server.MCPServer
}

// New builds the server and registers every tool.
func New(cfg *config.Config, version string) *Server {
	s := &Server{
		cfg:   cfg,
		store: cache.New(cfg.CacheDir, cfg.MaxCacheBytes()),
	}
	s.worker = &capture.Worker{}

	s.mcp = server.NewMCPServer(
		"screencam",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(true, true),
		server.WithRecovery(),
	)
	s.registerTools()
	s.registerResources()
	return s
}

// Serve runs the stdio loop until the client disconnects.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}

// jsonResult marshals v and wraps it as a text tool result. Handlers
// return plain JSON objects so any client can consume them.
func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError("encode result: " + err.Error())
	}
	return mcp.NewToolResultText(string(data))
}

// failure reports an expected, non-protocol failure.
func failure(msg string) *mcp.CallToolResult {
	return jsonResult(map[string]any{"success": false, "error": msg})
}
