package mods

import (
	"errors"
	"sync"
	"sync/atomic"
)

// Workspace holds the current compilation of an analysis session.  Readers
// take immutable snapshots; writers build a new compilation and publish it
// whole, so a query never observes a graph that is being modified.
type Workspace struct {
	current atomic.Pointer[snapshot]

	// m serializes writers
	m sync.Mutex
}

// snapshot pairs a published compilation with its version
type snapshot struct {
	comp    *Compilation
	version uint64
}

// NewWorkspace creates a workspace whose first snapshot is `comp`
func NewWorkspace(comp *Compilation) *Workspace {
	ws := &Workspace{}
	ws.current.Store(&snapshot{comp: comp, version: 1})
	return ws
}

// Snapshot returns the current compilation and its version
func (ws *Workspace) Snapshot() (*Compilation, uint64) {
	snap := ws.current.Load()
	return snap.comp, snap.version
}

// Update computes a new compilation from the current one and publishes it.  If
// `fn` returns an error, the current snapshot is left untouched.  The new
// version is returned.
func (ws *Workspace) Update(fn func(*Compilation) (*Compilation, error)) (uint64, error) {
	ws.m.Lock()
	defer ws.m.Unlock()

	prev := ws.current.Load()
	next, err := fn(prev.comp)
	if err != nil {
		return prev.version, err
	}

	if next == nil {
		return prev.version, errors.New("workspace update produced no compilation")
	}

	ws.current.Store(&snapshot{comp: next, version: prev.version + 1})
	return prev.version + 1, nil
}
