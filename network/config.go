package network

import (
	"time"

	"github.com/lixenwraith/vi-life/constants"
)

// Config holds the observation server configuration
type Config struct {
	// Enabled starts the HTTP server
	Enabled bool

	// Address to bind
	Address string

	// Websocket broadcast limiting: snapshots per second and burst
	BroadcastRate  float64
	BroadcastBurst int

	// Connection limits
	MaxClients int

	// ImageTileSize is the default pixel size of one cell on /board.png
	ImageTileSize int

	// CORSOrigins lists browser origins allowed to read the board; nil allows any
	CORSOrigins []string

	// Timing
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// Per-client outbound queue length
	SendQueueSize int
}

// DefaultConfig returns local-only defaults
func DefaultConfig() *Config {
	return &Config{
		Enabled:         false,
		Address:         "127.0.0.1:8080",
		BroadcastRate:   10,
		BroadcastBurst:  2,
		MaxClients:      64,
		ImageTileSize:   constants.ImageTileSize,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 2 * time.Second,
		SendQueueSize:   4,
	}
}
