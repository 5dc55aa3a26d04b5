// Package storage is the persistence gateway: named JSON values over a local
// key-value provider.
package storage

import "io/fs"

// Logical keys of the start page collections.
const (
	KeyNotes      = "notes"
	KeyDateNotes  = "dateNotes"
	KeyQuickLinks = "quickLinks"
)

// ErrNotExist is returned by providers for a key that was never written.
var ErrNotExist = fs.ErrNotExist

// Provider stores raw values by key.
type Provider interface {
	// Read returns the value stored under key or an error wrapping ErrNotExist.
	Read(key string) ([]byte, error)
	// Write replaces the value stored under key.
	Write(key string, data []byte) error
}
