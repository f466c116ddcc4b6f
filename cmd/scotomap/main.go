package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/scotomap/audio"
	"github.com/lixenwraith/scotomap/config"
	"github.com/lixenwraith/scotomap/engine"
)

var (
	configFlag = flag.String("config", "", "Path to a TOML configuration file")
	modeFlag   = flag.String("mode", "", "Advance mode: timer, keys (overrides config)")
	rateFlag   = flag.Float64("rate", 0, "Probes per second in timer mode (overrides config)")
	pngFlag    = flag.String("png", "", "Write the tabulated map to this PNG path on completion")
	muteFlag   = flag.Bool("mute", false, "Start with audio cues disabled")
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/scotomap.log")
)

func main() {
	flag.Parse()

	logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}
	logger := slog.Default()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	// Panic Recovery: Ensure terminal is reset even if the loop crashes
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mSCOTOMAP CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	// Audio is optional, continue silently on failure
	sound := audio.NewSoundManager(cfg.AudioConfig(), logger)
	if err := sound.Initialize(); err != nil {
		logger.Warn("audio unavailable, continuing without audio", "error", err)
	} else {
		defer sound.Cleanup()
	}
	if *muteFlag {
		sound.ToggleMute()
	}

	app, err := engine.NewApp(screen, cfg, engine.WithLogger(logger), engine.WithSound(sound))
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := app.Run(ctx)
	screen.Fini()

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		fmt.Fprintf(os.Stderr, "%v\n", runErr)
		os.Exit(1)
	}
	if path := app.Exported(); path != "" {
		fmt.Printf("Map saved to %s\n", path)
	}
}

// loadConfig layers flags over the file and environment
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFlag)
	if err != nil {
		return nil, err
	}
	if *modeFlag != "" {
		cfg.Advance.Mode = *modeFlag
	}
	if *rateFlag > 0 {
		cfg.Advance.FrameRate = *rateFlag
	}
	if *pngFlag != "" {
		cfg.Export.Path = *pngFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
