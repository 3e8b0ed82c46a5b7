package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rocketscienceinc/tictactoe-widget/internal/config"
	"github.com/rocketscienceinc/tictactoe-widget/internal/entity"
	"github.com/rocketscienceinc/tictactoe-widget/internal/tui"
)

const logFileName = "tictactoe-tui.log"

// main - runs the widget in the terminal. Logs go to a file so they do not
// draw over the board.
func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	baseDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	conf, err := config.Load(filepath.Join(baseDir, "./config.yml"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	theme, err := entity.ParseTheme(conf.DefaultTheme)
	if err != nil {
		return fmt.Errorf("invalid default theme: %w", err)
	}

	logger, closeLog, err := initLogger(conf)
	if err != nil {
		return err
	}
	defer closeLog()

	p := tea.NewProgram(tui.NewModel(logger, theme), tea.WithAltScreen())
	if _, err = p.Run(); err != nil {
		return fmt.Errorf("running terminal ui: %w", err)
	}

	return nil
}

// initialize logger. Only debug level writes a log file.
func initLogger(conf *config.Config) (*slog.Logger, func(), error) {
	if conf.SlogLevel() != slog.LevelDebug {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), func() {}, nil
	}

	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return logger, func() { _ = f.Close() }, nil
}
