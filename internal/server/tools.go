package server

import "github.com/mark3labs/mcp-go/mcp"

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("capture_screenshot",
		mcp.WithDescription("Capture a screenshot of a monitor, all monitors, a window, or a web page. The image is saved to the local cache and classified as stdout (normal) or stderr (error-looking) from its red/yellow content."),
		mcp.WithString("message",
			mcp.Description("Short note embedded in the filename, e.g. 'after deploy'"),
		),
		mcp.WithNumber("monitor_id",
			mcp.Description("Monitor index to capture, starting at 0 (default 0)"),
		),
		mcp.WithBoolean("all",
			mcp.Description("Capture the full virtual desktop spanning every monitor"),
		),
		mcp.WithString("app",
			mcp.Description("Capture the window of this application, matched by process name or title substring"),
		),
		mcp.WithString("url",
			mcp.Description("Render this URL in a headless browser and capture the page"),
		),
		mcp.WithNumber("quality",
			mcp.Description("JPEG quality 1-100 (default 85)"),
		),
		mcp.WithString("output_path",
			mcp.Description("Explicit output path; <timestamp>, <scope>, <message> and <category> are substituted"),
		),
		mcp.WithString("error_context",
			mcp.Description("Describe the error being captured; forces the stderr category and is used as the message when none is given"),
		),
		mcp.WithBoolean("no_categorize",
			mcp.Description("Skip color classification"),
		),
		mcp.WithBoolean("return_base64",
			mcp.Description("Also return the image as base64 content"),
		),
	), s.handleCapture)

	s.mcp.AddTool(mcp.NewTool("start_monitoring",
		mcp.WithDescription("Start capturing screenshots on an interval into a named session. Frames accumulate in the cache until stop_monitoring."),
		mcp.WithNumber("interval",
			mcp.Description("Seconds between captures (default 1)"),
		),
		mcp.WithString("session_id",
			mcp.Description("Session identifier; defaults to the current timestamp"),
		),
		mcp.WithNumber("monitor_id",
			mcp.Description("Monitor index to capture, starting at 0"),
		),
		mcp.WithBoolean("capture_all",
			mcp.Description("Capture the full virtual desktop each tick"),
		),
		mcp.WithString("output_dir",
			mcp.Description("Directory for the frames (default: the cache directory)"),
		),
		mcp.WithNumber("quality",
			mcp.Description("JPEG quality for frames (default 60)"),
		),
	), s.handleStartMonitoring)

	s.mcp.AddTool(mcp.NewTool("stop_monitoring",
		mcp.WithDescription("Stop the running monitoring session and report how many frames it captured."),
	), s.handleStopMonitoring)

	s.mcp.AddTool(mcp.NewTool("get_monitoring_status",
		mcp.WithDescription("Report whether monitoring is running, the session ID, and the frame count so far."),
	), s.handleMonitoringStatus)

	s.mcp.AddTool(mcp.NewTool("analyze_screenshot",
		mcp.WithDescription("Classify a screenshot as stdout or stderr from its red and yellow pixel ratios. Optionally run OCR and scan the text for error keywords."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path of the image to analyze"),
		),
		mcp.WithBoolean("ocr",
			mcp.Description("Also extract text with Tesseract and scan it for error keywords"),
		),
	), s.handleAnalyze)

	s.mcp.AddTool(mcp.NewTool("list_recent_screenshots",
		mcp.WithDescription("List the newest cached screenshots with path, category, size and timestamp."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum entries to return (default 10)"),
		),
		mcp.WithString("category",
			mcp.Description("Filter: 'stdout', 'stderr' or 'all' (default 'all')"),
		),
	), s.handleListRecent)

	s.mcp.AddTool(mcp.NewTool("clear_cache",
		mcp.WithDescription("Delete cached screenshots: everything with clear_all, or just enough oldest files to fit under max_size_gb."),
		mcp.WithBoolean("clear_all",
			mcp.Description("Delete every screenshot and GIF instead of pruning to the cap"),
		),
		mcp.WithNumber("max_size_gb",
			mcp.Description("Size cap in GB to prune down to (default: the configured cap)"),
		),
	), s.handleClearCache)

	s.mcp.AddTool(mcp.NewTool("create_gif",
		mcp.WithDescription("Assemble an animated GIF summary from a monitoring session, an explicit frame list, or a file glob. Defaults to the most recent session."),
		mcp.WithString("session_id",
			mcp.Description("Session to summarize; empty means the most recent one"),
		),
		mcp.WithArray("image_paths",
			mcp.Description("Explicit frame paths to use instead of a session"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("pattern",
			mcp.Description("File glob to use instead of a session, e.g. '/tmp/frames/*.jpg'"),
		),
		mcp.WithString("output_path",
			mcp.Description("Where to write the GIF; defaults to the cache directory"),
		),
		mcp.WithNumber("duration",
			mcp.Description("Seconds each frame is shown (default 0.5)"),
		),
		mcp.WithNumber("max_frames",
			mcp.Description("Cap on frames; sampled evenly when exceeded"),
		),
		mcp.WithBoolean("optimize",
			mcp.Description("Downscale wide frames to 960px before quantization (default true)"),
		),
	), s.handleCreateGIF)

	s.mcp.AddTool(mcp.NewTool("list_sessions",
		mcp.WithDescription("List monitoring sessions found in the cache, newest first, with frame counts and sizes."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum sessions to return (default 10)"),
		),
	), s.handleListSessions)

	s.mcp.AddTool(mcp.NewTool("get_info",
		mcp.WithDescription("Describe the display environment: monitors, visible windows, and virtual desktop support."),
	), s.handleGetInfo)

	s.mcp.AddTool(mcp.NewTool("list_windows",
		mcp.WithDescription("List visible host windows with handle, title and process name."),
	), s.handleListWindows)

	s.mcp.AddTool(mcp.NewTool("capture_window",
		mcp.WithDescription("Capture one window by its handle. Get handles from list_windows; use capture_screenshot with 'app' to capture by name."),
		mcp.WithNumber("window_handle",
			mcp.Required(),
			mcp.Description("Handle of the window to capture"),
		),
		mcp.WithNumber("quality",
			mcp.Description("JPEG quality 1-100 (default 85)"),
		),
		mcp.WithString("output_path",
			mcp.Description("Explicit output path; defaults to the cache directory"),
		),
	), s.handleCaptureWindow)
}
