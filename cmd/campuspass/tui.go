package main

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"github.com/muurk/campuspass/internal/config"
	"github.com/muurk/campuspass/internal/logging"
	"github.com/muurk/campuspass/internal/responsive"
	"github.com/muurk/campuspass/internal/tui"
)

var startScreen string

func init() {
	rootCmd.Flags().StringVar(&startScreen, "screen", string(tui.ScreenLanding), "Screen to open first (landing, signup, tutorials, settings, email, recovery)")
}

func parseStartScreen(name string) (tui.Screen, error) {
	s := tui.Screen(name)
	switch s {
	case tui.ScreenLanding, tui.ScreenSignup, tui.ScreenTutorials,
		tui.ScreenSettings, tui.ScreenEmail, tui.ScreenRecovery:
		return s, nil
	}
	return "", fmt.Errorf("unknown screen %q", name)
}

// tuiLogFile keeps log output off the alternate screen.
func tuiLogFile() string {
	if settings.LogFile != "" {
		return settings.LogFile
	}
	dir, err := config.GetConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "campuspass.log")
}

func runTUI(cmd *cobra.Command, args []string) error {
	start, err := parseStartScreen(startScreen)
	if err != nil {
		return err
	}

	if err := logging.InitializeWithOptions(logging.Options{Level: settings.LogLevel, File: tuiLogFile()}); err != nil {
		return err
	}
	defer logging.Sync()

	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	layout := settings.Layout
	monitor := responsive.NewMonitor(responsive.TerminalViewport(layout.UnitsPerColumn, layout.UnitsPerRow))

	zone.NewGlobal()
	app := tui.NewAppModel(tui.Options{
		Client:         newClient(registry),
		Registry:       registry,
		Monitor:        monitor,
		UnitsPerColumn: layout.UnitsPerColumn,
		UnitsPerRow:    layout.UnitsPerRow,
	}, start)

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(cmd.Context()))
	final, err := p.Run()
	if m, ok := final.(tui.AppModel); ok {
		m.Close()
	} else {
		app.Close()
	}
	if err != nil {
		return fmt.Errorf("interface error: %w", err)
	}
	return nil
}
