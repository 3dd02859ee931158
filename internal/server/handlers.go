package server

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/screencam/screencam/internal/cache"
	"github.com/screencam/screencam/internal/capture"
	"github.com/screencam/screencam/internal/classify"
	"github.com/screencam/screencam/internal/display"
	"github.com/screencam/screencam/internal/gif"
	"github.com/screencam/screencam/internal/snap"
)

// Argument helpers. JSON numbers arrive as float64.

func argString(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func argInt(args map[string]any, key string, def int) int {
	if v, ok := args[key].(float64); ok {
		return int(v)
	}
	return def
}

func argFloat(args map[string]any, key string, def float64) float64 {
	if v, ok := args[key].(float64); ok {
		return v
	}
	return def
}

func argBool(args map[string]any, key string) bool {
	v, _ := args[key].(bool)
	return v
}

func argBoolDefault(args map[string]any, key string, def bool) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return def
}

func argStrings(args map[string]any, key string) []string {
	raw, ok := args[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func (s *Server) handleCapture(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	opts := snap.Options{
		Message:      argString(args, "message"),
		OutputPath:   argString(args, "output_path"),
		Quality:      argInt(args, "quality", s.cfg.Quality),
		Monitor:      argInt(args, "monitor_id", 0),
		All:          argBool(args, "all"),
		App:          argString(args, "app"),
		URL:          argString(args, "url"),
		NoCategorize: argBool(args, "no_categorize"),
	}
	if ec := argString(args, "error_context"); ec != "" {
		opts.Err = true
		if opts.Message == "" {
			opts.Message = ec
		}
	}

	res, err := snap.Take(ctx, s.store, opts)
	if err != nil {
		return failure("capture failed: " + err.Error()), nil
	}

	payload := map[string]any{
		"success":   true,
		"path":      res.Path,
		"category":  res.Category,
		"size_kb":   res.SizeKB,
		"timestamp": time.Now().Format(time.RFC3339),
	}
	if res.Reason != "" {
		payload["reason"] = res.Reason
	}

	result := jsonResult(payload)
	if argBool(args, "return_base64") {
		data, err := os.ReadFile(res.Path)
		if err == nil {
			result.Content = append(result.Content, mcp.ImageContent{
				Type:     "image",
				Data:     base64.StdEncoding.EncodeToString(data),
				MIMEType: "image/jpeg",
			})
		}
	}
	return result, nil
}

func (s *Server) handleStartMonitoring(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	set := capture.Settings{
		OutputDir: s.cfg.CacheDir,
		Interval:  s.cfg.Interval,
		JPEG:      true,
		Quality:   s.cfg.MonitorQuality,
		Monitor:   argInt(args, "monitor_id", 0),
		All:       argBool(args, "capture_all"),
	}
	if sec := argFloat(args, "interval", 0); sec > 0 {
		set.Interval = time.Duration(sec * float64(time.Second))
	}
	if dir := argString(args, "output_dir"); dir != "" {
		set.OutputDir = dir
	}
	if q := argInt(args, "quality", 0); q >= 1 && q <= 100 {
		set.Quality = q
	}

	sessionID := argString(args, "session_id")
	if err := s.worker.Start(sessionID, set); err != nil {
		if errors.Is(err, capture.ErrAlreadyRunning) {
			st := s.worker.Status()
			return failure("monitoring already running (session " + st.SessionID + ")"), nil
		}
		return failure(err.Error()), nil
	}

	st := s.worker.Status()
	return jsonResult(map[string]any{
		"success":          true,
		"session_id":       st.SessionID,
		"interval_seconds": st.Interval.Seconds(),
		"output_dir":       st.OutputDir,
	}), nil
}

func (s *Server) handleStopMonitoring(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st := s.worker.Status()
	if err := s.worker.Stop(); err != nil {
		if errors.Is(err, capture.ErrNotRunning) {
			return failure("monitoring not running"), nil
		}
		return failure(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"success":          true,
		"session_id":       st.SessionID,
		"screenshot_count": st.Count,
	}), nil
}

func (s *Server) handleMonitoringStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	st := s.worker.Status()
	return jsonResult(map[string]any{
		"success":          true,
		"running":          st.Running,
		"session_id":       st.SessionID,
		"screenshot_count": st.Count,
		"interval_seconds": st.Interval.Seconds(),
		"output_dir":       st.OutputDir,
	}), nil
}

func (s *Server) handleAnalyze(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if _, err := os.Stat(path); err != nil {
		return failure("cannot read " + path + ": " + err.Error()), nil
	}

	a := classify.DetectPath(path)
	payload := map[string]any{
		"success":      true,
		"path":         path,
		"category":     a.Category,
		"red_ratio":    a.RedRatio,
		"yellow_ratio": a.YellowRatio,
		"reason":       a.Reason,
	}

	if argBool(request.GetArguments(), "ocr") {
		keywords, err := classify.ScanText(path, "eng")
		if err != nil {
			payload["ocr_error"] = err.Error()
		} else {
			payload["ocr_keywords"] = keywords
			if len(keywords) > 0 {
				payload["category"] = cache.Stderr
				payload["reason"] = "text keyword: " + keywords[0]
			}
		}
	}
	return jsonResult(payload), nil
}

func (s *Server) handleListRecent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	limit := argInt(args, "limit", 10)
	category := argString(args, "category")
	if category == "" {
		category = "all"
	}

	entries, err := s.store.Recent(limit, category)
	if err != nil {
		return failure(err.Error()), nil
	}

	total, _ := s.store.TotalSize()
	return jsonResult(map[string]any{
		"success":        true,
		"screenshots":    entries,
		"count":          len(entries),
		"cache_size_mb":  float64(total) / (1024 * 1024),
		"cache_dir":      s.store.Dir,
		"category_shown": category,
	}), nil
}

func (s *Server) handleClearCache(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	var n int
	var err error
	if argBool(args, "clear_all") {
		n, err = s.store.Clear()
	} else {
		st := s.store
		if gb := argFloat(args, "max_size_gb", 0); gb > 0 {
			st = cache.New(s.store.Dir, int64(gb*1024*1024*1024))
		}
		n, err = st.Prune()
	}
	if err != nil {
		return failure(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"success":       true,
		"files_removed": n,
		"cache_dir":     s.store.Dir,
	}), nil
}

func (s *Server) handleCreateGIF(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	opts := gif.Options{
		Duration:  time.Duration(argFloat(args, "duration", 0.5) * float64(time.Second)),
		Optimize:  argBoolDefault(args, "optimize", true),
		MaxFrames: argInt(args, "max_frames", 0),
	}
	outPath := argString(args, "output_path")
	// Session GIFs name themselves <id>_summary.gif; the explicit-frame
	// forms need a fallback name in the cache dir.
	genericOut := func() string {
		if outPath != "" {
			return outPath
		}
		ts := time.Now().Format("20060102_150405")
		return filepath.Join(s.store.Dir, "gif_summary_"+ts+".gif")
	}

	var res *gif.Result
	var err error
	switch {
	case len(argStrings(args, "image_paths")) > 0:
		res, err = gif.FromFiles(argStrings(args, "image_paths"), genericOut(), opts)
	case argString(args, "pattern") != "":
		res, err = gif.FromPattern(argString(args, "pattern"), genericOut(), opts)
	case argString(args, "session_id") != "":
		res, err = gif.FromSession(s.store, argString(args, "session_id"), outPath, opts)
	default:
		res, err = gif.FromLatestSession(s.store, outPath, opts)
	}
	if err != nil {
		return failure(err.Error()), nil
	}

	return jsonResult(map[string]any{
		"success":               true,
		"path":                  res.Path,
		"frames":                res.Frames,
		"size_kb":               res.SizeKB,
		"duration_per_frame_ms": res.DurationMS,
	}), nil
}

func (s *Server) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := argInt(request.GetArguments(), "limit", 10)

	sessions, err := s.store.Sessions(limit)
	if err != nil {
		return failure(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"success":  true,
		"sessions": sessions,
		"count":    len(sessions),
	}), nil
}

func (s *Server) handleGetInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info, err := display.GetInfo(ctx)
	if err != nil {
		return failure(err.Error()), nil
	}
	return jsonResult(info), nil
}

func (s *Server) handleListWindows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info, err := display.GetInfo(ctx)
	if err != nil {
		return failure(err.Error()), nil
	}
	if !info.Windows.Supported {
		return failure("window enumeration is only available when a Windows host is reachable"), nil
	}
	return jsonResult(map[string]any{
		"success": true,
		"windows": info.Windows.Details,
		"count":   info.Windows.VisibleCount,
	}), nil
}

func (s *Server) handleCaptureWindow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	handle, ok := args["window_handle"].(float64)
	if !ok || handle <= 0 {
		return mcp.NewToolResultError("window_handle is required"), nil
	}
	quality := argInt(args, "quality", s.cfg.Quality)

	outPath := argString(args, "output_path")
	if outPath == "" {
		ts := strings.Replace(time.Now().Format("20060102_150405.000"), ".", "_", 1)
		outPath = filepath.Join(s.store.Dir,
			fmt.Sprintf("%s-window-%d.jpg", ts, int64(handle)))
	}

	if err := display.CaptureWindow(ctx, int64(handle), outPath, quality); err != nil {
		return failure(err.Error()), nil
	}

	var size int64
	if st, err := os.Stat(outPath); err == nil {
		size = st.Size() / 1024
	}
	return jsonResult(map[string]any{
		"success":       true,
		"path":          outPath,
		"window_handle": int64(handle),
		"size_kb":       size,
	}), nil
}
