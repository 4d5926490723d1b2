package engine

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/vi-life/constants"
)

// RunState is the loop lifecycle state
type RunState int32

const (
	StateStopped RunState = iota
	StateRunning
)

func (s RunState) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	default:
		return fmt.Sprintf("RunState(%d)", int32(s))
	}
}

// FrameStats describes one completed frame
type FrameStats struct {
	Frame     int64
	ClockTick float64
	GameTime  float64
	Duration  time.Duration
	Entities  int
}

// FrameObserver is notified after every frame on the loop goroutine
type FrameObserver interface {
	ObserveFrame(stats FrameStats)
}

// Options configures a GameEngine. Zero values select defaults
type Options struct {
	Board     Board
	KeyMap    KeyMap
	Indicator PauseIndicator
	Sound     Sound
	Logger    *zap.Logger

	Clock         TimeProvider
	Scheduler     FrameScheduler
	FrameInterval time.Duration
	MaxStep       float64

	TileWidth, TileHeight int
}

// GameEngine owns the surface, the entity list and the timer, and drives the
// tick/update/draw cycle. All state is confined to the goroutine calling Run
type GameEngine struct {
	entities []Entity

	surface       Surface
	width, height int
	timer         *Timer
	clockTick     float64
	frame         int64

	pause    bool
	debug    bool
	menuFlag bool

	board     Board
	keyMap    KeyMap
	indicator PauseIndicator
	sound     Sound
	logger    *zap.Logger
	observers []FrameObserver

	clock         TimeProvider
	scheduler     FrameScheduler
	frameInterval time.Duration
	maxStep       float64
	tileW, tileH  int

	lastClick    TilePos
	hasLastClick bool

	state  atomic.Int32
	mu     sync.Mutex // guards cancel
	cancel context.CancelFunc
}

// NewGameEngine creates an engine. It starts paused and in menu mode
func NewGameEngine(opts Options) *GameEngine {
	g := &GameEngine{
		entities:      make([]Entity, 0, constants.InitialEntityCapacity),
		pause:         true,
		menuFlag:      true,
		board:         opts.Board,
		keyMap:        opts.KeyMap,
		indicator:     opts.Indicator,
		sound:         opts.Sound,
		logger:        opts.Logger,
		clock:         opts.Clock,
		scheduler:     opts.Scheduler,
		frameInterval: opts.FrameInterval,
		maxStep:       opts.MaxStep,
		tileW:         opts.TileWidth,
		tileH:         opts.TileHeight,
	}

	if g.keyMap == nil {
		g.keyMap = DefaultKeyMap()
	}
	if g.logger == nil {
		g.logger = zap.NewNop()
	}
	if g.clock == nil {
		g.clock = NewMonotonicTimeProvider()
	}
	if g.frameInterval <= 0 {
		g.frameInterval = constants.FrameUpdateInterval
	}
	if g.tileW <= 0 {
		g.tileW = constants.TileWidth
	}
	if g.tileH <= 0 {
		g.tileH = constants.TileHeight
	}
	return g
}

// Init binds the rendering surface and creates the timer. Call once before Run
func (g *GameEngine) Init(surface Surface) error {
	if surface == nil {
		return fmt.Errorf("init: %w: nil surface", ErrNotInitialized)
	}
	if g.surface != nil {
		return ErrAlreadyInitialized
	}
	g.surface = surface
	g.width, g.height = surface.Size()
	g.timer = NewTimer(g.clock, g.maxStep)

	g.logger.Debug("engine initialized",
		zap.Int("width", g.width),
		zap.Int("height", g.height),
		zap.Float64("max_step", g.timer.MaxStep()),
	)
	return nil
}

// Run drives frames from the scheduler and applies input events until ctx is
// cancelled or Stop is called. Frames and events share this goroutine.
// Returns nil after Stop and the context error after cancellation
func (g *GameEngine) Run(ctx context.Context, events <-chan InputEvent) error {
	if g.surface == nil {
		return ErrNotInitialized
	}
	if !g.state.CompareAndSwap(int32(StateStopped), int32(StateRunning)) {
		return ErrAlreadyRunning
	}
	defer g.state.Store(int32(StateStopped))

	runCtx, cancel := context.WithCancel(ctx)
	g.mu.Lock()
	g.cancel = cancel
	g.mu.Unlock()
	defer func() {
		g.mu.Lock()
		g.cancel = nil
		g.mu.Unlock()
		cancel()
	}()

	scheduler := g.scheduler
	if scheduler == nil {
		ticker := NewTickerScheduler(g.frameInterval)
		defer ticker.Stop()
		scheduler = ticker
	}

	g.logger.Info("engine started", zap.Duration("frame_interval", g.frameInterval))

	// First frame runs immediately, later ones on schedule
	_ = g.Loop()

	for {
		select {
		case <-runCtx.Done():
			g.logger.Info("engine stopped", zap.Int64("frames", g.frame), zap.Float64("game_time", g.timer.GameTime()))
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if err := g.HandleEvent(ev); err != nil {
				g.logger.Debug("input rejected", zap.Error(err))
			}

		case <-scheduler.Frames():
			_ = g.Loop()
		}
	}
}

// Stop cancels a running loop. Safe from any goroutine, no-op when stopped
func (g *GameEngine) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cancel != nil {
		g.cancel()
	}
}

// State returns the loop lifecycle state
func (g *GameEngine) State() RunState {
	return RunState(g.state.Load())
}

// AddEntity appends an entity. Insertion order is update and draw order
func (g *GameEngine) AddEntity(e Entity) {
	g.entities = append(g.entities, e)
}

// AddObserver registers a frame observer
func (g *GameEngine) AddObserver(o FrameObserver) {
	g.observers = append(g.observers, o)
}

// SetPauseIndicator attaches the pause indicator and syncs it to the current state
func (g *GameEngine) SetPauseIndicator(ind PauseIndicator) {
	g.indicator = ind
	if ind != nil {
		ind.SetIcon(g.currentIcon())
	}
}

// Loop runs one frame: tick, update, draw
func (g *GameEngine) Loop() error {
	if g.surface == nil {
		return ErrNotInitialized
	}
	start := time.Now()

	g.clockTick = g.timer.Tick()
	g.frame++
	g.Update()
	g.Draw()

	if len(g.observers) > 0 {
		stats := FrameStats{
			Frame:     g.frame,
			ClockTick: g.clockTick,
			GameTime:  g.timer.GameTime(),
			Duration:  time.Since(start),
			Entities:  len(g.entities),
		}
		for _, o := range g.observers {
			o.ObserveFrame(stats)
		}
	}
	return nil
}

// Update runs every entity's Update in insertion order, then drops removed entities.
// Entities added during the pass are first updated on the next frame
func (g *GameEngine) Update() {
	count := len(g.entities)
	for i := 0; i < count; i++ {
		g.entities[i].Update()
	}

	kept := g.entities[:0]
	for _, e := range g.entities {
		if r, ok := e.(Removable); ok && r.Removed() {
			continue
		}
		kept = append(kept, e)
	}
	clear(g.entities[len(kept):])
	g.entities = kept
}

// Draw clears the surface and draws every entity inside one save/restore bracket
func (g *GameEngine) Draw() {
	if g.surface == nil {
		return
	}
	g.surface.ClearRect(0, 0, float64(g.width), float64(g.height))
	g.surface.Save()
	for _, e := range g.entities {
		e.Draw(g.surface)
	}
	g.surface.Restore()

	if p, ok := g.surface.(Presenter); ok {
		p.Show()
	}
}

// ===== ACCESSORS =====

// ClockTick returns the clamped delta of the current frame
func (g *GameEngine) ClockTick() float64 {
	return g.clockTick
}

// GameTime returns accumulated game seconds, 0 before Init
func (g *GameEngine) GameTime() float64 {
	if g.timer == nil {
		return 0
	}
	return g.timer.GameTime()
}

// Frame returns the number of completed frames
func (g *GameEngine) Frame() int64 {
	return g.frame
}

// Paused reports the advisory pause flag
func (g *GameEngine) Paused() bool {
	return g.pause
}

// Debug reports whether outline mode is on
func (g *GameEngine) Debug() bool {
	return g.debug
}

// InMenu reports whether the next click only dismisses the menu
func (g *GameEngine) InMenu() bool {
	return g.menuFlag
}

// Size returns the surface dimensions captured at Init or on resize
func (g *GameEngine) Size() (int, int) {
	return g.width, g.height
}

// TileSize returns the tile dimensions in surface units
func (g *GameEngine) TileSize() (int, int) {
	return g.tileW, g.tileH
}

// Board returns the attached board collaborator
func (g *GameEngine) Board() Board {
	return g.board
}

// Entities returns a copy of the entity list
func (g *GameEngine) Entities() []Entity {
	out := make([]Entity, len(g.entities))
	copy(out, g.entities)
	return out
}

// LastClick returns the most recently toggled tile
func (g *GameEngine) LastClick() (TilePos, bool) {
	return g.lastClick, g.hasLastClick
}
