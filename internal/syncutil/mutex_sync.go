//go:build !deadlock

// Package syncutil selects the lock implementation guarding the package's
// shared registries. The default build uses plain sync primitives; building
// with -tags=deadlock swaps in github.com/sasha-s/go-deadlock to catch lock
// ordering mistakes during development.
package syncutil

import "sync"

// RWMutex wraps sync.RWMutex. Build with -tags=deadlock for deadlock
// detection.
//
//nolint:gocritic // Intentionally embedding sync.RWMutex to expose its interface
type RWMutex struct {
	sync.RWMutex
}
