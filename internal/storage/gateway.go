package storage

import (
	"encoding/json"
	"errors"
	"log/slog"
)

// Gateway serialises values to JSON over a Provider. It never fails: read
// problems fall back, write problems are logged and the caller carries on
// with its in-memory state.
type Gateway struct {
	p      Provider
	logger *slog.Logger
}

// NewGateway wraps p. A nil logger uses slog.Default().
func NewGateway(p Provider, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{p: p, logger: logger}
}

// Load decodes the value under key. ok is false when the key is absent or
// its content does not decode into T.
func Load[T any](g *Gateway, key string) (value T, ok bool) {
	data, err := g.p.Read(key)
	if err != nil {
		if !errors.Is(err, ErrNotExist) {
			g.logger.Error("storage: read failed", slog.String("key", key), slog.String("error", err.Error()))
		}
		return value, false
	}
	if err := json.Unmarshal(data, &value); err != nil {
		g.logger.Warn("storage: corrupt value", slog.String("key", key), slog.String("error", err.Error()))
		var zero T
		return zero, false
	}
	return value, true
}

// Get returns the value under key, or fallback when it is absent or corrupt.
func Get[T any](g *Gateway, key string, fallback T) T {
	if v, ok := Load[T](g, key); ok {
		return v
	}
	return fallback
}

// Set encodes value and stores it under key.
func (g *Gateway) Set(key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		g.logger.Error("storage: encode failed", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	if err := g.p.Write(key, data); err != nil {
		g.logger.Error("storage: write failed", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	g.logger.Debug("storage: saved", slog.String("key", key), slog.Int("bytes", len(data)))
}
