package main

import (
	"TUI-MC-Launcher/config"
	"TUI-MC-Launcher/logging"
	"TUI-MC-Launcher/tui"
	"context"
	"fmt"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logDir, err := config.Dir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error locating config directory: %v\n", err)
		os.Exit(1)
	}
	if err := logging.Init(logDir, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}

	// LoadConfig returns defaults when the file is missing; ask for settings then
	configFilePath, err := config.GetConfigPath()
	if err != nil {
		log.Error().Err(err).Msg("could not locate config file")
		fmt.Fprintf(os.Stderr, "Error locating config file: %v\n", err)
		os.Exit(1)
	}
	needsInitialSetup := false
	if _, err := os.Stat(configFilePath); os.IsNotExist(err) {
		needsInitialSetup = true
	}
	if err := cfg.Validate(); err != nil {
		log.Warn().Err(err).Msg("configuration needs attention")
		needsInitialSetup = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	commands := tui.NewCommands(ctx, afero.NewOsFs())
	m := tui.InitialModel(cfg, commands, needsInitialSetup)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		log.Error().Err(err).Msg("program exited with error")
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	// the game keeps running on its own once handed off
	if fm, ok := final.(*tui.Model); ok {
		if proc := fm.Process(); proc != nil {
			if err := proc.Release(); err != nil {
				log.Warn().Err(err).Msg("release game process")
			}
			log.Info().Int("pid", proc.Pid).Msg("handed off to game, exiting")
			stop()
			os.Exit(0)
		}
	}
}
