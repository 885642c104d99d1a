package main

import (
	"fmt"

	"github.com/jedarden/liftlog/internal/config"
	"github.com/jedarden/liftlog/internal/workout"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the parsed workout cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached workout file",
	Args:  cobra.NoArgs,
	RunE:  runCacheClear,
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show what the cache holds",
	Args:  cobra.NoArgs,
	RunE:  runCacheStats,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd, cacheStatsCmd)
	rootCmd.AddCommand(cacheCmd)
}

// openCacheForCommand opens the cache named by the config, ignoring the
// cache on/off switch
func openCacheForCommand(cmd *cobra.Command) (*config.Config, *workout.SetCache, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	cache, err := workout.NewSetCache(cfg.CacheDir)
	if err != nil {
		return nil, nil, err
	}
	return cfg, cache, nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	_, cache, err := openCacheForCommand(cmd)
	if err != nil {
		return err
	}
	defer cache.Close()

	if err := cache.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleared %s\n", cache.Path())
	return nil
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	cfg, cache, err := openCacheForCommand(cmd)
	if err != nil {
		return err
	}
	defer cache.Close()

	st, err := cache.Stats(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Cache:   %s\n", cache.Path())
	if !cfg.Cache {
		fmt.Fprintln(out, "         (disabled in config)")
	}
	fmt.Fprintf(out, "Files:   %d\n", st.FileCount)
	fmt.Fprintf(out, "Sets:    %d\n", st.SetCount)
	fmt.Fprintf(out, "Size:    %s\n", workout.FormatBytes(st.DBSizeBytes))
	return nil
}
