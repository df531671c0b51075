// cmd/arena/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-arena/pkg/audio"
	"github.com/opd-ai/go-arena/pkg/camera"
	"github.com/opd-ai/go-arena/pkg/config"
	"github.com/opd-ai/go-arena/pkg/engine"
	"github.com/opd-ai/go-arena/pkg/event"
	"github.com/opd-ai/go-arena/pkg/health"
	"github.com/opd-ai/go-arena/pkg/logging"
	"github.com/opd-ai/go-arena/pkg/physics"
	"github.com/opd-ai/go-arena/pkg/render"
	enginengo "github.com/opd-ai/go-arena/pkg/render/engo"
)

const frameTime = time.Second / 60

func main() {
	if err := run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

// run parses args and hosts the game. Errors are logged before they are
// returned so main only has to set the exit code.
func run(args []string) error {
	flags := flag.NewFlagSet("arena", flag.ContinueOnError)
	configPath := flags.String("config", "config.json", "Path to configuration file")
	createDefault := flags.Bool("default", false, "Create default configuration file")
	renderer := flags.String("renderer", "terminal", "Renderer type: 'headless', 'terminal' or 'engo'")
	seed := flags.Uint64("seed", 0, "Random seed (overrides config when non-zero)")
	frames := flags.Int("frames", 3600, "Frames to simulate (headless only, 0 runs until interrupted)")
	width := flags.Float64("width", 0, "Arena width (overrides config when non-zero)")
	height := flags.Float64("height", 0, "Arena height (overrides config when non-zero)")
	logPath := flags.String("log", "arena.log", "Log file (terminal only)")
	maxEntities := flags.Int("max-entities", 2000, "Live entity budget checked after a headless run")
	maxMemoryMB := flags.Int64("max-memory", 500, "Heap limit in MB checked after a headless run")
	if err := flags.Parse(args); err != nil {
		return err
	}

	logger := logging.NewLogger()
	ctx := context.Background()

	// Create default configuration file if requested
	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			return err
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return nil
	}

	// The terminal host owns stdout, so its logs go to a file
	if *renderer == "terminal" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			logger.Error(ctx, "Failed to open log file", err, "log_path", *logPath)
			return err
		}
		defer f.Close()
		logger = logging.NewLoggerTo(f)
	}

	gameConfig, err := loadConfig(ctx, logger, *configPath)
	if err != nil {
		logger.Error(ctx, "Failed to load configuration", err,
			"config_path", *configPath,
		)
		return err
	}

	// Command line flags win over the file and the environment
	if *seed != 0 {
		gameConfig.Seed = *seed
	}
	if *width > 0 {
		gameConfig.Arena.Width = *width
	}
	if *height > 0 {
		gameConfig.Arena.Height = *height
	}
	if err := config.Validate(gameConfig); err != nil {
		logger.Error(ctx, "Invalid configuration", err)
		return err
	}

	sound := audio.NewSoundManager(gameConfig.Audio)
	if *renderer != "headless" {
		if err := sound.Initialize(); err != nil {
			logger.Warn(ctx, "Audio unavailable, continuing without sound",
				"error", err.Error(),
			)
		}
	}
	defer sound.Cleanup()

	shaker := camera.NewShaker(gameConfig.Seed)
	opts := []engine.Option{engine.WithSound(sound), engine.WithCamera(shaker)}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch *renderer {
	case "headless":
		err = runHeadless(sigCtx, gameConfig, logger, *frames, *maxEntities, *maxMemoryMB, opts)
	case "terminal":
		err = runTerminal(sigCtx, gameConfig, logger, shaker, sound, opts)
	case "engo":
		scene := enginengo.NewGameScene(gameConfig, logger, shaker, opts...)
		enginengo.Run(scene)
	default:
		err = fmt.Errorf("unknown renderer %q", *renderer)
	}
	if err != nil {
		logger.Error(ctx, "Arena stopped with an error", err, "renderer", *renderer)
	}
	return err
}

// loadConfig reads the config file, falling back to the defaults when it
// does not exist, and applies ARENA_* environment overrides
func loadConfig(ctx context.Context, logger *logging.Logger, path string) (*config.GameConfig, error) {
	var gameConfig *config.GameConfig
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		gameConfig = config.DefaultConfig()
	} else {
		gameConfig, err = config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if err := config.ApplyEnv(gameConfig); err != nil {
		return nil, logging.WrapError(err, "failed to apply environment configuration")
	}
	return gameConfig, nil
}

// runHeadless steps the simulation with a fixed dt and no output, then
// checks the run stayed within its budgets
func runHeadless(ctx context.Context, cfg *config.GameConfig, logger *logging.Logger, frames, maxEntities int, maxMemoryMB int64, opts []engine.Option) error {
	opts = append(opts, engine.WithRenderer(render.NewNullRenderer(logger)))
	game := engine.NewGame(cfg, logger, opts...)
	game.Start()

	healthChecker := health.NewHealthChecker()
	healthChecker.AddCheck(health.NewGameLoopHealthCheck(func() uint64 { return game.Frame }))
	healthChecker.AddCheck(health.NewEntityBudgetHealthCheck(maxEntities, game.Manager.Len))
	healthChecker.AddCheck(health.NewMemoryHealthCheck(maxMemoryMB, nil))

	start := time.Now()
	err := game.Run(ctx, frames, frameTime.Seconds())

	state := game.GetGameState()
	logger.Info(logging.WithSessionID(ctx, game.SessionID()), "Headless run finished",
		"frames", game.Frame,
		"score", state.Score,
		"wave", state.Wave,
		"status", state.Status.String(),
		"elapsed", time.Since(start).String(),
	)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	status := healthChecker.CheckHealth(ctx)
	if !status.Healthy() {
		return fmt.Errorf("headless run unhealthy: %v", status.Failed())
	}
	return nil
}

// runTerminal draws the arena with tcell until the player quits or the
// process is interrupted
func runTerminal(ctx context.Context, cfg *config.GameConfig, logger *logging.Logger, shaker *camera.Shaker, sound *audio.SoundManager, opts []engine.Option) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return logging.WrapError(err, "failed to create terminal screen")
	}
	if err := screen.Init(); err != nil {
		return logging.WrapError(err, "failed to initialize terminal screen")
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	view := render.NewTerminalRenderer(screen, physics.NewArena(cfg.Arena.Width, cfg.Arena.Height), shaker)
	input := render.NewTerminalInput(view)
	go input.Listen(screen)

	opts = append(opts, engine.WithRenderer(view), engine.WithInput(input))
	game := engine.NewGame(cfg, logger, opts...)
	game.EventBus.Subscribe(event.GamePaused, func(event.Event) { sound.SetPaused(true) })
	game.EventBus.Subscribe(event.GameResumed, func(event.Event) { sound.SetPaused(false) })
	game.Start()

	gameCtx := logging.WithSessionID(ctx, game.SessionID())
	logger.Info(gameCtx, "Terminal host started")

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			logger.Info(gameCtx, "Interrupted", "score", game.GetGameState().Score)
			return nil
		case <-input.Quit():
			state := game.GetGameState()
			logger.Info(gameCtx, "Player quit", "score", state.Score, "wave", state.Wave)
			return nil
		case now := <-ticker.C:
			dt := min(now.Sub(last).Seconds(), 0.1)
			last = now
			view.SetStatus(render.StatusLine(game.GetGameState()))
			game.Update(dt)
		}
	}
}
