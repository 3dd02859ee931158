package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/screencam/screencam/internal/cache"
	"github.com/screencam/screencam/internal/config"
	"github.com/screencam/screencam/internal/snap"
)

var cfg *config.Config

var (
	flagAll          bool
	flagMonitor      int
	flagApp          string
	flagURL          string
	flagQuality      int
	flagOutput       string
	flagError        bool
	flagNoCategorize bool
	flagQuiet        bool
)

var rootCmd = &cobra.Command{
	Use:   "screencam [message]",
	Short: "Screen capture with a bounded local cache",
	Long: `screencam captures screenshots of monitors, windows, or web pages,
classifies them as normal (stdout) or error-looking (stderr) from their
red and yellow content, and keeps them in a size-capped local cache.

With no subcommand it takes a single screenshot. The optional message
becomes part of the filename.`,
	Example: `  # Capture the primary monitor
  screencam

  # Capture everything, with a note in the filename
  screencam --all "after deploy"

  # Capture a browser window or a URL
  screencam --app firefox
  screencam --url localhost:8080`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := cache.New(cfg.CacheDir, cfg.MaxCacheBytes())

		quality := flagQuality
		if quality == 0 {
			quality = cfg.Quality
		}

		res, err := snap.Take(context.Background(), store, snap.Options{
			Message:      strings.Join(args, " "),
			OutputPath:   flagOutput,
			Quality:      quality,
			Monitor:      flagMonitor,
			All:          flagAll,
			App:          flagApp,
			URL:          flagURL,
			Err:          flagError,
			NoCategorize: flagNoCategorize,
		})
		if err != nil {
			return err
		}
		if !flagQuiet {
			fmt.Printf("%s (%s, %d KB)\n", res.Path, res.Category, res.SizeKB)
		}
		return nil
	},
}

func Execute() {
	cfg = config.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&flagAll, "all", false, "capture every monitor as one image")
	rootCmd.Flags().IntVar(&flagMonitor, "monitor", 0, "monitor index to capture, starting at 0")
	rootCmd.Flags().StringVar(&flagApp, "app", "", "capture the window of this application")
	rootCmd.Flags().StringVar(&flagURL, "url", "", "capture a web page instead of the screen")
	rootCmd.Flags().IntVar(&flagQuality, "quality", 0, "JPEG quality 1-100 (default from config)")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output path (<timestamp>, <scope>, <message>, <category> substituted)")
	rootCmd.Flags().BoolVar(&flagError, "error", false, "file the capture as stderr")
	rootCmd.Flags().BoolVar(&flagNoCategorize, "no-categorize", false, "skip color classification")
	rootCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "print nothing on success")

	rootCmd.Version = fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit)
}
