package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/screencam/screencam/internal/cache"
	"github.com/screencam/screencam/internal/gif"
)

var (
	flagGIFSession    string
	flagGIFPattern    string
	flagGIFOutput     string
	flagGIFDuration   time.Duration
	flagGIFMaxFrames  int
	flagGIFNoOptimize bool
)

var gifCmd = &cobra.Command{
	Use:   "gif",
	Short: "Build an animated GIF from a monitoring session or a file glob",
	Example: `  # Summarize the most recent session
  screencam gif

  # A specific session, two frames per second
  screencam gif --session 20260829_101500 --duration 500ms

  # Arbitrary frames
  screencam gif --pattern '/tmp/frames/*.jpg' -o /tmp/out.gif`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := cache.New(cfg.CacheDir, cfg.MaxCacheBytes())

		opts := gif.Options{
			Duration:  flagGIFDuration,
			Optimize:  !flagGIFNoOptimize,
			MaxFrames: flagGIFMaxFrames,
		}

		var res *gif.Result
		var err error
		switch {
		case flagGIFPattern != "":
			out := flagGIFOutput
			if out == "" {
				ts := time.Now().Format("20060102_150405")
				out = filepath.Join(store.Dir, "gif_summary_"+ts+".gif")
			}
			res, err = gif.FromPattern(flagGIFPattern, out, opts)
		case flagGIFSession != "":
			res, err = gif.FromSession(store, flagGIFSession, flagGIFOutput, opts)
		default:
			res, err = gif.FromLatestSession(store, flagGIFOutput, opts)
		}
		if err != nil {
			return err
		}

		fmt.Printf("%s (%d frames, %.0f KB, %d ms/frame)\n",
			res.Path, res.Frames, res.SizeKB, res.DurationMS)
		return nil
	},
}

func init() {
	gifCmd.Flags().StringVar(&flagGIFSession, "session", "", "session ID to summarize (default: most recent)")
	gifCmd.Flags().StringVar(&flagGIFPattern, "pattern", "", "file glob to use instead of a session")
	gifCmd.Flags().StringVarP(&flagGIFOutput, "output", "o", "", "output GIF path")
	gifCmd.Flags().DurationVar(&flagGIFDuration, "duration", 0, "time each frame is shown (default 500ms)")
	gifCmd.Flags().IntVar(&flagGIFMaxFrames, "max-frames", 0, "cap on frames, sampled evenly when exceeded")
	gifCmd.Flags().BoolVar(&flagGIFNoOptimize, "no-optimize", false, "keep full resolution frames")

	rootCmd.AddCommand(gifCmd)
}
