// Package view holds the per-page orchestration: fetch collections from the
// API facade, merge incrementally arriving records, derive display
// aggregates, and expose loading/error state to the renderer.
package view

import (
	"sync"

	"github.com/hcmut-tutoring/tutorhub/internal/session"
	apperrors "github.com/hcmut-tutoring/tutorhub/pkg/errors"
)

// Phase is the lifecycle of one fetch-driven view: Idle to Loading to
// (Ready | Failed), re-armed by the next reload.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseFailed
)

// Loadable tracks fetch state for a value of type T. Each reload bumps a
// generation counter; responses from older generations are discarded so a
// stale response can never overwrite fresher state.
type Loadable[T any] struct {
	mu         sync.Mutex
	phase      Phase
	data       T
	err        *apperrors.Error
	generation uint64
}

// Begin arms a new load: bumps the generation, clears any previous error,
// and returns the ticket the eventual Resolve/Fail must present.
func (l *Loadable[T]) Begin() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.generation++
	l.phase = PhaseLoading
	l.err = nil
	return l.generation
}

// Resolve stores the fetched data. Returns false when a newer load started
// in the meantime and this response was dropped.
func (l *Loadable[T]) Resolve(gen uint64, data T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.generation {
		return false
	}
	l.data = data
	l.phase = PhaseReady
	l.err = nil
	return true
}

// Fail stores the load error. Stale failures are dropped like stale data.
func (l *Loadable[T]) Fail(gen uint64, err error) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.generation {
		return false
	}
	l.err = apperrors.FromError(err)
	l.phase = PhaseFailed
	return true
}

// Set replaces the data outside a load cycle, used by mutation actions
// applying optimistic local patches.
func (l *Loadable[T]) Set(data T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.data = data
	l.phase = PhaseReady
}

// Clear resets to an empty Ready state carrying the given error, used by
// the authorization-gap guard.
func (l *Loadable[T]) Clear(err *apperrors.Error) {
	var zero T
	l.mu.Lock()
	defer l.mu.Unlock()
	l.data = zero
	l.err = err
	if err != nil {
		l.phase = PhaseFailed
	} else {
		l.phase = PhaseIdle
	}
}

// State returns the current phase, data and error.
func (l *Loadable[T]) State() (Phase, T, *apperrors.Error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.phase, l.data, l.err
}

// Data returns the current value regardless of phase.
func (l *Loadable[T]) Data() T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.data
}

// Loading reports whether a fetch is in flight.
func (l *Loadable[T]) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.phase == PhaseLoading
}

// Err returns the surfaced error, nil when none.
func (l *Loadable[T]) Err() *apperrors.Error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// identitySource is the slice of the session manager the views consume.
type identitySource interface {
	Ready() bool
	Snapshot() session.Identity
}

// gate applies the shared guard clause. Not ready means skip with no request
// and no error. Ready but tokenless yields an authorization-gap error, never a
// network call.
func gate(ident identitySource) (session.Identity, *apperrors.Error, bool) {
	if !ident.Ready() {
		return session.Identity{}, nil, false
	}
	snapshot := ident.Snapshot()
	if snapshot.Token == "" {
		return snapshot, apperrors.ErrAuthGap, false
	}
	return snapshot, nil, true
}
