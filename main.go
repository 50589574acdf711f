package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	app "github.com/rocketscienceinc/minesweeper-backend/internal"
	"github.com/rocketscienceinc/minesweeper-backend/internal/config"
)

// main - loads config.yml, builds the logger and serves the minesweeper session.
func main() {
	os.Exit(run())
}

// run returns the process exit code. Until config.yml is loaded, failures are
// reported through the default logger.
func run() (code int) {
	logger := slog.Default()

	defer func() {
		if err := recover(); err != nil {
			logger.Error("recovered from panic", "error", err)
			code = 1
		}
	}()

	conf := initConfig()
	logger = initLogger(conf)

	if err := app.RunApp(logger, conf); err != nil {
		logger.Error("app run failed", "error", err)
		return 1
	}

	return 0
}

// initialize config.
func initConfig() *config.Config {
	baseDir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get current directory: %w", err))
	}

	return config.MustLoad(filepath.Join(baseDir, "./config.yml"))
}

// initialize logger.
func initLogger(conf *config.Config) *slog.Logger {
	var level slog.Level

	switch conf.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
