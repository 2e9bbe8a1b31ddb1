package config

import (
	"flag"
	"os"
	"path/filepath"
)

// parses CLI flags for the terminal client
func ParseTUIFlags() Flags {
	return parseTUIFlags(os.Args[1:])
}

func parseTUIFlags(args []string) Flags {
	defaults := DefaultTUIFlags()

	fs := flag.NewFlagSet("tui", flag.ExitOnError)
	remote := fs.Bool("remote", defaults.Remote, "use the HTTP API instead of local storage")
	endpoint := fs.String("endpoint", defaults.Endpoint, "base URL of the content studio server")
	state := fs.String("state", defaults.StatePath, "path to the local usage file")
	logPath := fs.String("log", defaults.LogPath, "path to the log file")
	delay := fs.Duration("delay", defaults.Delay, "simulated generation latency in local mode")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return Flags{
		Remote:    *remote,
		Endpoint:  *endpoint,
		StatePath: *state,
		LogPath:   *logPath,
		Delay:     *delay,
	}
}

// returns default flags for the terminal client
func DefaultTUIFlags() Flags {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}

	base := filepath.Join(dir, "content-studio")

	return Flags{
		Remote:    false,
		Endpoint:  "http://localhost:8080",
		StatePath: filepath.Join(base, "usage.json"),
		LogPath:   filepath.Join(base, "tui.log"),
		Delay:     defaultGenerationDelay,
	}
}
