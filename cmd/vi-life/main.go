package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/vi-life/audio"
	"github.com/lixenwraith/vi-life/board"
	"github.com/lixenwraith/vi-life/config"
	"github.com/lixenwraith/vi-life/constants"
	"github.com/lixenwraith/vi-life/engine"
	"github.com/lixenwraith/vi-life/entities"
	"github.com/lixenwraith/vi-life/modes"
	"github.com/lixenwraith/vi-life/network"
	"github.com/lixenwraith/vi-life/render"
	"go.uber.org/zap"
)

var (
	configFlag  = flag.String("config", "", "Path to TOML config (default $VI_LIFE_CONFIG or ./vi-life.toml)")
	debugFlag   = flag.Bool("debug", false, "Write debug logs to the log directory")
	soundFlag   = flag.Bool("sound", false, "Enable audio cues")
	listenFlag  = flag.String("listen", "", "Serve metrics, board and websocket stream on this address")
	patternFlag = flag.String("pattern", "", "Seed pattern stamped at the board centre")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "vi-life: %v\n", err)
		os.Exit(1)
	}
}

// resolveConfigPath picks the flag, then the environment, then the default
// file if it exists. "" means built-in defaults
func resolveConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv(config.EnvPath); env != "" {
		return env
	}
	if _, err := os.Stat(config.DefaultPath); errors.Is(err, fs.ErrNotExist) {
		return ""
	}
	return config.DefaultPath
}

// boardSize fits the board to the screen above the status bar unless the config fixes it
func boardSize(cfg config.BoardConfig, screenW, screenH int) (rows, cols int) {
	rows, cols = cfg.Rows, cfg.Cols
	if rows == 0 {
		rows = (screenH - constants.StatusBarHeight) / cfg.TileHeight
	}
	if cols == 0 {
		cols = screenW / cfg.TileWidth
	}
	return max(rows, 1), max(cols, 1)
}

func networkConfig(cfg config.NetworkConfig) *network.Config {
	nc := network.DefaultConfig()
	nc.Enabled = cfg.Enabled
	nc.Address = cfg.BindAddress
	nc.BroadcastRate = cfg.BroadcastRate
	nc.BroadcastBurst = cfg.BroadcastBurst
	nc.MaxClients = cfg.MaxClients
	nc.CORSOrigins = cfg.CORSOrigins
	if cfg.ImageTileSize > 0 {
		nc.ImageTileSize = cfg.ImageTileSize
	}
	return nc
}

func loadPatterns(path string) (*board.PatternLibrary, error) {
	if path == "" {
		return board.BuiltinPatterns(), nil
	}
	return board.LoadPatterns(path)
}

func run() error {
	cfg, err := config.Load(resolveConfigPath(*configFlag))
	if err != nil {
		return err
	}
	if *soundFlag {
		cfg.Audio.Enabled = true
	}
	if *listenFlag != "" {
		cfg.Network.Enabled = true
		cfg.Network.BindAddress = *listenFlag
	}
	if *patternFlag != "" {
		cfg.Board.Pattern = *patternFlag
	}

	logger, logFile, err := setupLogging(*debugFlag, cfg.Logging)
	if err != nil {
		return err
	}
	defer logger.Sync()
	if logFile != nil {
		defer logFile.Close()
	}

	rule, err := cfg.Rule()
	if err != nil {
		return err
	}
	keyMap, err := cfg.KeyMap()
	if err != nil {
		return err
	}
	patterns, err := loadPatterns(cfg.Board.PatternFile)
	if err != nil {
		return err
	}
	var seed *board.Pattern
	if cfg.Board.Pattern != "" {
		p, err := patterns.Get(cfg.Board.Pattern)
		if err != nil {
			return err
		}
		seed = &p
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialize terminal: %w", err)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()

	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mVI-LIFE CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	screen.EnableMouse()
	screen.HideCursor()
	screen.SetStyle(tcell.StyleDefault.Background(render.RGBBackground.Tcell()))
	screen.Clear()

	w, h := screen.Size()
	rows, cols := boardSize(cfg.Board, w, h)
	life := board.NewLife(rows, cols, rule, cfg.Board.Wrap)
	if seed != nil {
		n := life.StampCentered(*seed)
		logger.Debug("pattern stamped", zap.String("pattern", seed.Name), zap.Int("cells", n))
	}

	var sound engine.Sound
	if cfg.Audio.Enabled {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			logger.Warn("audio unavailable, continuing without sound", zap.Error(err))
		} else {
			sound = sm
			defer sm.Cleanup()
		}
	}

	game := engine.NewGameEngine(engine.Options{
		Board:         life,
		KeyMap:        keyMap,
		Sound:         sound,
		Logger:        logger,
		FrameInterval: cfg.Engine.FrameInterval,
		MaxStep:       cfg.Engine.MaxStep,
		TileWidth:     cfg.Board.TileWidth,
		TileHeight:    cfg.Board.TileHeight,
	})
	if err := game.Init(render.NewTerminalSurface(screen)); err != nil {
		return err
	}

	area := board.NewArea(game, life, cfg.Board.StepInterval)
	bar := entities.NewStatusBar(game, life)
	game.SetPauseIndicator(bar)
	game.AddEntity(area)
	game.AddEntity(entities.NewMarker(game))
	game.AddEntity(bar)
	game.AddEntity(entities.NewMenu(game, nil))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.Network.Enabled {
		netCfg := networkConfig(cfg.Network)
		metrics := network.NewMetrics()
		hub := network.NewHub(netCfg, metrics, logger)
		area.AddSink(metrics)
		area.AddSink(hub)
		game.AddObserver(metrics)

		service := network.NewService(netCfg, network.NewRouter(network.RouterConfig{
			Snapshots:     hub,
			Hub:           hub,
			Metrics:       metrics,
			ImageTileSize: netCfg.ImageTileSize,
			CORSOrigins:   netCfg.CORSOrigins,
			Logger:        logger,
		}), logger)
		if err := service.Start(ctx); err != nil {
			return err
		}
		defer service.Stop()
		go hub.Run(ctx)
	}

	events := make(chan engine.InputEvent, constants.EventChannelSize)
	// Input polling uses raw goroutine as it interacts directly with terminal
	go func() {
		defer func() {
			if r := recover(); r != nil {
				screen.Fini()
				fmt.Fprintf(os.Stderr, "\r\n\x1b[31mEVENT POLLER CRASHED: %v\x1b[0m\r\n", r)
				fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
				os.Exit(1)
			}
		}()

		input := modes.NewInputHandler()
		for {
			ev := screen.PollEvent()
			// nil after Fini
			if ev == nil {
				return
			}
			in, ok := input.Translate(ev)
			if !ok {
				continue
			}
			select {
			case events <- in:
			case <-ctx.Done():
				return
			}
		}
	}()

	logger.Info("vi-life started",
		zap.Int("rows", rows),
		zap.Int("cols", cols),
		zap.String("rule", rule.String()),
		zap.Bool("network", cfg.Network.Enabled),
	)

	err = game.Run(ctx, events)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	logger.Info("vi-life stopped", zap.Int64("frames", game.Frame()), zap.Float64("game_time", game.GameTime()))
	return err
}
