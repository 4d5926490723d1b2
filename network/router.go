package network

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/lixenwraith/vi-life/board"
	"github.com/lixenwraith/vi-life/engine"
	"github.com/lixenwraith/vi-life/render"
	"go.uber.org/zap"
)

const (
	maxImageTileSize = 32

	// defaultMaxImagePixels bounds the RGBA buffer of one /board.png render
	defaultMaxImagePixels = 4 << 20
)

// RouterConfig contains the dependencies of the HTTP router
type RouterConfig struct {
	// Snapshots serves /board and /board.png (required)
	Snapshots SnapshotSource

	// Hub serves /ws; nil disables the route
	Hub *Hub

	// Metrics serves /metrics; nil disables the route
	Metrics *Metrics

	// ImageTileSize is the default cell size in pixels for /board.png
	ImageTileSize int

	// MaxImagePixels caps the /board.png pixel area; the tile size shrinks to
	// fit. Zero uses the default
	MaxImagePixels int

	// CORSOrigins is passed to the CORS middleware; nil allows any origin
	CORSOrigins []string

	Logger *zap.Logger
}

type routerHandlers struct {
	snapshots SnapshotSource
	tileSize  int
	maxPixels int
	logger    *zap.Logger
}

// NewRouter constructs the router. It starts no goroutines and opens no
// listeners, so it is safe to use with httptest.NewServer
func NewRouter(cfg RouterConfig) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	tileSize := cfg.ImageTileSize
	if tileSize <= 0 {
		tileSize = DefaultConfig().ImageTileSize
	}

	if cfg.MaxImagePixels <= 0 {
		cfg.MaxImagePixels = defaultMaxImagePixels
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	h := &routerHandlers{
		snapshots: cfg.Snapshots,
		tileSize:  tileSize,
		maxPixels: cfg.MaxImagePixels,
		logger:    logger,
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok\n"))
	})
	r.Get("/board", h.handleBoard)
	r.Get("/board.png", h.handleBoardPNG)

	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics.Handler())
	}
	if cfg.Hub != nil {
		r.Get("/ws", cfg.Hub.HandleWebSocket)
	}
	return r
}

func (h *routerHandlers) latest(w http.ResponseWriter) (board.Snapshot, bool) {
	if h.snapshots == nil {
		http.Error(w, "no board", http.StatusServiceUnavailable)
		return board.Snapshot{}, false
	}
	snap, ok := h.snapshots.Latest()
	if !ok {
		http.Error(w, "board not published yet", http.StatusServiceUnavailable)
		return board.Snapshot{}, false
	}
	return snap, true
}

func (h *routerHandlers) handleBoard(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.latest(w)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		h.logger.Debug("board encode failed", zap.Error(err))
	}
}

// handleBoardPNG renders the board; ?tile=N overrides the cell size
func (h *routerHandlers) handleBoardPNG(w http.ResponseWriter, r *http.Request) {
	tile := h.tileSize
	if v := r.URL.Query().Get("tile"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxImageTileSize {
			http.Error(w, "tile must be 1-32", http.StatusBadRequest)
			return
		}
		tile = n
	}

	snap, ok := h.latest(w)
	if !ok {
		return
	}

	cells := snap.Rows * snap.Cols
	for tile > 0 && cells*tile*tile > h.maxPixels {
		tile--
	}
	if tile == 0 {
		http.Error(w, "board too large for image", http.StatusUnprocessableEntity)
		return
	}

	surface := render.NewImageSurface(snap.Cols*tile, snap.Rows*tile, render.RGBBackground.Color())
	board.DrawSnapshot(surface, snap, float64(tile), float64(tile), nil, engine.ColorCell)

	var buf bytes.Buffer
	if err := surface.EncodePNG(&buf); err != nil {
		h.logger.Error("png encode failed", zap.Error(err))
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

// requestLogger logs each request through zap at debug level
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
