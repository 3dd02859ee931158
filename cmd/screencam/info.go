package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/screencam/screencam/internal/cache"
	"github.com/screencam/screencam/internal/display"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe monitors, windows, and cache state as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := display.GetInfo(context.Background())
		if err != nil {
			return err
		}

		store := cache.New(cfg.CacheDir, cfg.MaxCacheBytes())
		count, _ := store.Count()
		size, _ := store.TotalSize()

		out := map[string]any{
			"display": info,
			"cache": map[string]any{
				"dir":         store.Dir,
				"screenshots": count,
				"size_mb":     float64(size) / (1024 * 1024),
				"max_gb":      cfg.MaxCacheGB,
			},
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List visible host windows",
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := display.GetInfo(context.Background())
		if err != nil {
			return err
		}
		if !info.Windows.Supported {
			return fmt.Errorf("window enumeration is only available when a Windows host is reachable")
		}
		for _, w := range info.Windows.Details {
			fmt.Printf("%8d  %-24s  %s\n", w.Handle, w.ProcessName, w.Title)
		}
		return nil
	},
}

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List monitoring sessions in the cache, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := cache.New(cfg.CacheDir, cfg.MaxCacheBytes())
		sessions, err := store.Sessions(0)
		if err != nil {
			return err
		}
		for _, s := range sessions {
			fmt.Printf("%s  %4d frames  %8.0f KB\n", s.ID, s.Count, s.TotalKB)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(windowsCmd)
	rootCmd.AddCommand(sessionsCmd)
}
