package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/screencam/screencam/internal/cache"
	"github.com/screencam/screencam/internal/capture"
	"github.com/screencam/screencam/internal/gif"
)

var (
	flagInterval   time.Duration
	flagSessionID  string
	flagSessionGIF bool
	flagFrameQual  int
	flagOutputDir  string
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Capture the screen on an interval until interrupted",
	Long: `monitor captures a screenshot every interval into a session until
Ctrl-C. Frames land in the cache under the session ID, and list-sessions
or gif can summarize them afterwards.`,
	Example: `  # One frame per second until Ctrl-C
  screencam monitor

  # Slower, and build the GIF summary on exit
  screencam monitor --interval 5s --gif`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := cache.New(cfg.CacheDir, cfg.MaxCacheBytes())

		interval := flagInterval
		if interval <= 0 {
			interval = cfg.Interval
		}
		quality := flagFrameQual
		if quality == 0 {
			quality = cfg.MonitorQuality
		}
		outputDir := flagOutputDir
		if outputDir == "" {
			outputDir = cfg.CacheDir
		}

		w := &capture.Worker{
			OnError: func(err error) {
				log.Printf("capture: %v", err)
			},
		}
		set := capture.Settings{
			OutputDir: outputDir,
			Interval:  interval,
			JPEG:      true,
			Quality:   quality,
			Monitor:   flagMonitor,
			All:       flagAll,
		}
		if err := w.Start(flagSessionID, set); err != nil {
			return err
		}

		st := w.Status()
		fmt.Fprintf(os.Stderr, "monitoring session %s every %s, Ctrl-C to stop\n",
			st.SessionID, interval)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		if err := w.Stop(); err != nil {
			return err
		}
		st = w.Status()
		fmt.Fprintf(os.Stderr, "captured %d frames in session %s\n", st.Count, st.SessionID)

		if _, err := store.Prune(); err != nil {
			log.Printf("cache prune: %v", err)
		}

		if flagSessionGIF && st.Count > 0 {
			frameStore := store
			if outputDir != cfg.CacheDir {
				frameStore = cache.New(outputDir, cfg.MaxCacheBytes())
			}
			res, err := gif.FromSession(frameStore, st.SessionID, "", gif.Options{Optimize: true})
			if err != nil {
				return err
			}
			fmt.Printf("%s (%d frames, %.0f KB)\n", res.Path, res.Frames, res.SizeKB)
		}
		return nil
	},
}

func init() {
	monitorCmd.Flags().DurationVar(&flagInterval, "interval", 0, "time between captures (default from config)")
	monitorCmd.Flags().StringVar(&flagSessionID, "session", "", "session ID (default: current timestamp)")
	monitorCmd.Flags().IntVar(&flagMonitor, "monitor", 0, "monitor index to capture, starting at 0")
	monitorCmd.Flags().BoolVar(&flagAll, "all", false, "capture every monitor each tick")
	monitorCmd.Flags().IntVar(&flagFrameQual, "quality", 0, "JPEG quality for frames (default from config)")
	monitorCmd.Flags().StringVar(&flagOutputDir, "dir", "", "directory for frames (default: cache dir)")
	monitorCmd.Flags().BoolVar(&flagSessionGIF, "gif", false, "build the GIF summary when monitoring stops")

	rootCmd.AddCommand(monitorCmd)
}
