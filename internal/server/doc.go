// Package server exposes the capture toolkit over the Model Context
// Protocol so an agent can drive it as a set of tools.
//
// The transport is stdio through mark3labs/mcp-go; stdout carries the
// protocol stream and all logging goes to stderr. Every tool returns a
// JSON object as text content, with "success" set to false for expected
// failures such as stopping a monitor that is not running. Protocol
// level errors are reserved for malformed requests.
//
// # Available Tools
//
// Capture:
//   - capture_screenshot: one screenshot of a monitor, all monitors, a
//     window, or a URL
//   - capture_window: screenshot of one window by its handle
//
// Monitoring:
//   - start_monitoring: begin interval capture into a session
//   - stop_monitoring: stop the running session
//   - get_monitoring_status: running state and frame count
//
// Cache:
//   - list_recent_screenshots: newest entries, optionally by category
//   - clear_cache: delete every cached screenshot
//   - list_sessions: monitoring sessions with frame counts
//
// Analysis and summaries:
//   - analyze_screenshot: red/yellow classification of an image
//   - create_gif: animated summary of a session or file pattern
//
// Host inspection:
//   - get_info: monitors, windows, virtual desktop support
//   - list_windows: visible host windows
package server
