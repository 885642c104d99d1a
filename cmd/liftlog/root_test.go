package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jedarden/liftlog/internal/workout"
)

// execute runs the root command with args and returns its output
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		configPath, metricFlag, logFile = "", "", ""
		noCache, debugMode = false, false
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "cache_dir: " + filepath.Join(dir, "cache") + "\nlog_file: " + filepath.Join(dir, "liftlog.log") + "\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRoot_RequiresOneFile(t *testing.T) {
	if _, err := execute(t); err == nil {
		t.Error("expected an error without a workout file")
	}
	if _, err := execute(t, "a.csv", "b.csv"); err == nil {
		t.Error("expected an error with two workout files")
	}
}

func TestRoot_MissingFile(t *testing.T) {
	cfg := writeTestConfig(t)
	_, err := execute(t, "--config", cfg, filepath.Join(t.TempDir(), "missing.csv"))
	if !errors.Is(err, workout.ErrNoDataFile) {
		t.Errorf("error = %v; want ErrNoDataFile", err)
	}
}

func TestRoot_InvalidMetric(t *testing.T) {
	cfg := writeTestConfig(t)
	_, err := execute(t, "--config", cfg, "--metric", "speed", "workouts.csv")
	if err == nil || !strings.Contains(err.Error(), "unknown metric") {
		t.Errorf("error = %v; want unknown metric", err)
	}
}

func TestRoot_MissingConfig(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "workouts.csv")
	if err == nil || !strings.Contains(err.Error(), "config file") {
		t.Errorf("error = %v; want config file error", err)
	}
}

func TestCacheCommands(t *testing.T) {
	cfg := writeTestConfig(t)

	out, err := execute(t, "cache", "stats", "--config", cfg)
	if err != nil {
		t.Fatalf("cache stats error = %v", err)
	}
	for _, want := range []string{"Files:   0", "Sets:    0", "Size:"} {
		if !strings.Contains(out, want) {
			t.Errorf("cache stats output missing %q:\n%s", want, out)
		}
	}

	out, err = execute(t, "cache", "clear", "--config", cfg)
	if err != nil {
		t.Fatalf("cache clear error = %v", err)
	}
	if !strings.Contains(out, "Cleared") {
		t.Errorf("cache clear output = %q", out)
	}
}
