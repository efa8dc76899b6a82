package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bpetrich/skipper/internal/app"
	"github.com/bpetrich/skipper/internal/config"
	"github.com/bpetrich/skipper/internal/keybind"
	"github.com/bpetrich/skipper/internal/logger"
	"github.com/bpetrich/skipper/internal/tab"
)

func main() {
	if err := logger.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	}
	defer logger.Close()

	cfg := config.Load()
	keymap := config.LoadKeymap()

	keys, err := keybind.FromKeymap(keymap)
	if err != nil {
		fatal(fmt.Errorf("invalid keymap: %w", err))
	}

	ctx := app.New(cfg)

	// Failing to resolve the startup directory into a tab is the only
	// fatal condition; everything after this point is recoverable
	cwd, err := os.Getwd()
	if err != nil {
		fatal(fmt.Errorf("cannot determine working directory: %w", err))
	}
	first, err := tab.New(cwd, ctx.TabOptions())
	if err != nil {
		fatal(err)
	}
	ctx.AddTab(first)

	logger.Info("skipper started in %s", cwd)

	program := tea.NewProgram(newModel(ctx, keys), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	logger.Error("%v", err)
	logger.Close()
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
