package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/pinboard/internal/app"
	"github.com/marcus/pinboard/internal/pin"
	"github.com/marcus/pinboard/internal/settings"
	"github.com/marcus/pinboard/internal/vault"
)

// Version is set at build time via ldflags
var Version = ""

var (
	vaultDir     = flag.String("vault", ".", "notes vault root directory")
	settingsFlag = flag.String("settings", "", "path to settings file")
	debugFlag    = flag.Bool("debug", false, "enable debug logging")
	versionFlag  = flag.Bool("version", false, "print version and exit")
	shortVersion = flag.Bool("v", false, "print version and exit (short)")
)

func main() {
	flag.Parse()

	if *versionFlag || *shortVersion {
		fmt.Printf("pinboard version %s\n", effectiveVersion(Version))
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *debugFlag {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	settingsPath := *settingsFlag
	if settingsPath == "" {
		settingsPath = settings.SettingsPath()
	}

	// A broken settings file falls back to defaults; the app surfaces the
	// problem as a toast instead of refusing to start.
	set, loadErr := settings.LoadFrom(settingsPath)
	var notice string
	if loadErr != nil {
		logger.Warn("settings load failed, using defaults", "err", loadErr)
		notice = "Settings could not be read, starting with defaults"
	}

	v, err := vault.New(*vaultDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open vault %s: %v\n", *vaultDir, err)
		os.Exit(1)
	}

	events, stopWatcher, err := v.NewWatcher()
	if err != nil {
		// The app still works without live updates, refresh stays manual.
		logger.Warn("vault watcher unavailable", "err", err)
		events, stopWatcher = nil, func() {}
	}

	model := app.New(app.Options{
		Settings:      set,
		SettingsPath:  settingsPath,
		Vault:         v,
		VaultEvents:   events,
		StopWatcher:   stopWatcher,
		Logger:        logger,
		QuietWindow:   pin.DefaultQuietWindow,
		StartupNotice: notice,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

// effectiveVersion returns the version string, with fallback to build info.
func effectiveVersion(v string) string {
	if v != "" {
		return v
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}

	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}

	if revision != "" {
		ver := "devel+" + revision
		if dirty {
			ver += "+dirty"
		}
		return ver
	}

	return "devel"
}
