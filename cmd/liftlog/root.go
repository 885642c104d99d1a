package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jedarden/liftlog/internal/chart"
	"github.com/jedarden/liftlog/internal/config"
	"github.com/jedarden/liftlog/internal/logger"
	"github.com/jedarden/liftlog/internal/ui"
	"github.com/jedarden/liftlog/internal/workout"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	configPath string
	metricFlag string
	noCache    bool
	debugMode  bool
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:   "liftlog [flags] <workouts.csv>",
	Short: "Browse workout history and chart exercise progression",
	Long: `liftlog reads a workout export (CSV) and opens an interactive browser over
its exercises. Type to filter, use the arrow keys to move, and press Enter
to chart the selected exercise's progression.`,
	Args:          cobra.ExactArgs(1),
	RunE:          runBrowser,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/liftlog/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (default $TMPDIR/liftlog.log)")
	rootCmd.Flags().StringVarP(&metricFlag, "metric", "m", "", "Metric to chart: auto, weight, reps, duration, distance")
	rootCmd.Flags().BoolVar(&noCache, "no-cache", false, "Parse the file without the SQLite cache")
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("liftlog %s\n", version))
	return rootCmd.Execute()
}

// loadConfig reads the config file and applies command-line overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("metric") {
		cfg.Metric = metricFlag
	}
	if flags.Changed("no-cache") {
		cfg.Cache = !noCache
	}
	if flags.Changed("debug") {
		cfg.Debug = debugMode
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setupLogging opens the log file; failures leave logging disabled
func setupLogging(cfg *config.Config) {
	logger.SetDebug(cfg.Debug)
	if err := logger.Init(cfg.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Note: logging disabled: %v\n", err)
	}
}

// openCache returns the parse cache, or nil when caching is off
func openCache(cfg *config.Config) *workout.SetCache {
	if !cfg.Cache {
		return nil
	}
	cache, err := workout.NewSetCache(cfg.CacheDir)
	if err != nil {
		logger.Warn("Parse cache unavailable: %v", err)
	}
	return cache
}

func runBrowser(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	path := args[0]
	if _, err := workout.CheckFile(path); err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("liftlog must be run in a terminal")
	}

	setupLogging(cfg)
	defer logger.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache := openCache(cfg)
	if cache != nil {
		defer cache.Close()
	}

	loader := workout.NewLoader(cache)
	loader.Columns = cfg.Columns
	loader.Layouts = cfg.DateLayouts

	log, err := loader.Load(ctx, path)
	if err != nil {
		return err
	}
	logger.Info("Loaded %d sets, %d exercises from %s", log.SetCount(), len(log.Exercises()), path)

	browser := ui.NewBrowser(log, ui.Options{
		Metric:     cfg.MetricValue(),
		SparkWidth: cfg.SparklineWidth,
		Chart: chart.Options{
			Height: cfg.ChartHeight,
			Width:  cfg.ChartWidth,
		},
	})

	p := tea.NewProgram(
		browser,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err = p.Run()
	switch {
	case errors.Is(err, tea.ErrProgramKilled), errors.Is(err, tea.ErrInterrupted):
		fmt.Println("\nExiting... 💪")
		return nil
	case err != nil:
		return fmt.Errorf("error running browser: %w", err)
	}

	if err := browser.Err(); err != nil {
		return err
	}

	fmt.Println("Goodbye! 💪")
	return nil
}
