// Package testutil provides shared test helpers for gateways, clocks and services.
package testutil

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/starford/startpage/internal/clock"
	"github.com/starford/startpage/internal/storage"
)

// Epoch is the default time of test clocks.
var Epoch = time.Date(2024, time.February, 10, 9, 0, 0, 0, time.UTC)

// Logger returns a logger that discards everything.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Gateway returns a gateway over a fresh in-memory provider.
func Gateway(t *testing.T) (*storage.Gateway, *storage.Memory) {
	t.Helper()
	mem := storage.NewMemory()
	return storage.NewGateway(mem, Logger()), mem
}

// Clock returns a manual clock stopped at Epoch.
func Clock() *clock.Manual {
	return clock.NewManual(Epoch)
}

// Raw returns the bytes stored under key, or nil.
func Raw(t *testing.T, p storage.Provider, key string) []byte {
	t.Helper()
	data, err := p.Read(key)
	if err != nil {
		return nil
	}
	return data
}
