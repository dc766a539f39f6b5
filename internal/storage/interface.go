package storage

import "errors"

// ErrNotInitialized is returned by Load when no storage exists at the configured location
var ErrNotInitialized = errors.New("storage not initialized, run 'sknn init' first")

// KV is the key/value contract the routine store persists through.
type KV interface {
	// Get returns the value for key; ok is false when the key has never been set.
	Get(key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value in full.
	Set(key, value string) error
}

type Provider interface {
	KV

	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Utils
	GetConfigPath() string
}
