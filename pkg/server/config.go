package server

import (
	"net/http"
	"net/url"
	"time"
)

// Config configures the Server.
type Config struct {
	// Address is the listen address (default ":8080").
	Address string

	// Title is the app shell's page title.
	Title string

	// MountID is the DOM id routes render into (default "app").
	MountID string

	// Styles are inline CSS blocks added to the shell.
	Styles []string

	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration

	// ReadBufferSize and WriteBufferSize size the WebSocket buffers.
	ReadBufferSize  int
	WriteBufferSize int

	// MaxMessageSize limits client frames in bytes.
	MaxMessageSize int64

	// CheckOrigin validates WebSocket upgrade origins.
	// Default: SameOriginCheck.
	CheckOrigin func(r *http.Request) bool
}

// DefaultConfig returns a Config with defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:           ":8080",
		Title:             "hashroute",
		MountID:           "app",
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
		ShutdownTimeout:   10 * time.Second,
		ReadBufferSize:    4096,
		WriteBufferSize:   4096,
		MaxMessageSize:    4096,
		CheckOrigin:       SameOriginCheck,
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c *Config) withDefaults() *Config {
	d := DefaultConfig()
	if c == nil {
		return d
	}
	out := *c
	if out.Address == "" {
		out.Address = d.Address
	}
	if out.Title == "" {
		out.Title = d.Title
	}
	if out.MountID == "" {
		out.MountID = d.MountID
	}
	if out.ReadHeaderTimeout == 0 {
		out.ReadHeaderTimeout = d.ReadHeaderTimeout
	}
	if out.ReadTimeout == 0 {
		out.ReadTimeout = d.ReadTimeout
	}
	if out.IdleTimeout == 0 {
		out.IdleTimeout = d.IdleTimeout
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = d.ShutdownTimeout
	}
	if out.ReadBufferSize == 0 {
		out.ReadBufferSize = d.ReadBufferSize
	}
	if out.WriteBufferSize == 0 {
		out.WriteBufferSize = d.WriteBufferSize
	}
	if out.MaxMessageSize == 0 {
		out.MaxMessageSize = d.MaxMessageSize
	}
	if out.CheckOrigin == nil {
		out.CheckOrigin = d.CheckOrigin
	}
	return &out
}

// SameOriginCheck accepts upgrades whose Origin host matches the request
// host, and requests without an Origin header.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if r.Host == "" {
		return false
	}
	return originURL.Host == r.Host
}

// AllowOrigins accepts same-origin upgrades and the listed origins
// (e.g. "https://example.com").
func AllowOrigins(origins ...string) func(r *http.Request) bool {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return func(r *http.Request) bool {
		if SameOriginCheck(r) {
			return true
		}
		return allowed[r.Header.Get("Origin")]
	}
}
