package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// registerResources exposes cached screenshots as screenshot://<filename>
// so clients can pull an image without a tool round trip.
func (s *Server) registerResources() {
	tmpl := mcp.NewResourceTemplate(
		"screenshot://{name}",
		"Cached screenshot",
		mcp.WithTemplateDescription("A screenshot from the local cache, addressed by filename. Use list_recent_screenshots to discover names."),
		mcp.WithTemplateMIMEType("image/jpeg"),
	)
	s.mcp.AddResourceTemplate(tmpl, s.readScreenshot)
}

func (s *Server) readScreenshot(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	name := strings.TrimPrefix(request.Params.URI, "screenshot://")
	// Names come from the client; keep reads inside the cache dir.
	if name == "" || name != filepath.Base(name) {
		return nil, fmt.Errorf("invalid screenshot name %q", name)
	}

	data, err := os.ReadFile(filepath.Join(s.store.Dir, name))
	if err != nil {
		return nil, fmt.Errorf("read screenshot %s: %w", name, err)
	}

	mime := "image/jpeg"
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		mime = "image/png"
	case ".gif":
		mime = "image/gif"
	}

	return []mcp.ResourceContents{
		mcp.BlobResourceContents{
			URI:      request.Params.URI,
			MIMEType: mime,
			Blob:     base64.StdEncoding.EncodeToString(data),
		},
	}, nil
}
