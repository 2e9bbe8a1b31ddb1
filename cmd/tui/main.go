package main

import (
	"fmt"
	"os"
	"path/filepath"

	"codeberg.org/contentstudio/server/internal/clipboard"
	"codeberg.org/contentstudio/server/internal/config"
	"codeberg.org/contentstudio/server/internal/content"
	"codeberg.org/contentstudio/server/internal/logger"
	"codeberg.org/contentstudio/server/internal/studio"
	"codeberg.org/contentstudio/server/internal/tui"
	"codeberg.org/contentstudio/server/internal/usage"
	tea "github.com/charmbracelet/bubbletea"
)

// key of the single local user in the usage file
const localClientKey = "local"

func main() {
	flags := config.ParseTUIFlags()

	if err := os.MkdirAll(filepath.Dir(flags.LogPath), 0o750); err != nil {
		fmt.Printf("error creating log directory: %v\n", err)
		os.Exit(1)
	}

	// the terminal belongs to bubbletea, so logs go to a file
	logFile, err := logger.ToFile(flags.LogPath)
	if err != nil {
		fmt.Printf("error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close() //nolint:errcheck

	backend, err := newBackend(flags)
	if err != nil {
		fmt.Printf("error starting content studio: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting content studio tui", "remote", flags.Remote, "endpoint", flags.Endpoint)

	app := tui.NewApp(backend, clipboard.NewCopier(nil))
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Printf("error running content studio: %v\n", err)
		os.Exit(1)
	}
}

func newBackend(flags config.Flags) (tui.Backend, error) {
	if flags.Remote {
		clientID, err := tui.LoadOrCreateClientID(filepath.Join(filepath.Dir(flags.StatePath), "client_id"))
		if err != nil {
			return nil, err
		}

		return tui.NewRemoteClient(flags.Endpoint, clientID), nil
	}

	tracker := usage.NewTracker(usage.NewFileStore(flags.StatePath), usage.SystemClock{})
	generator := content.NewTemplateGenerator(content.WithLatency(flags.Delay))

	return tui.NewLocalBackend(studio.New(tracker, generator), localClientKey), nil
}
