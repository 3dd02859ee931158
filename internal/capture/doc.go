// Package capture takes screenshots.
//
// It does no pixel work of its own: frames come from the OS through one of
// three backends, tried in order.
//
//   - WSL: when running under WSL, a PowerShell script on the Windows host
//     captures with DPI-aware .NET bitmap APIs and prints base64 PNG.
//   - Native: github.com/kbinani/screenshot grabs a display, or the union
//     rectangle of all displays.
//   - scrot: shelled out to as a last resort on X11 hosts where the native
//     backend fails.
//
// Saving is delegated to github.com/disintegration/imaging; JPEG output
// flattens any alpha channel onto white first.
//
// The package also hosts the monitoring Worker, a single background loop
// that captures a frame per tick into session-named files.
package capture
