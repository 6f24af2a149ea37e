package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/linguaflow/internal/session"
)

// Registry holds the live sessions of the HTTP API, keyed by UUID.
type Registry struct {
	newMachine func() *session.Machine
	now        func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
}

type entry struct {
	machine  *session.Machine
	lastSeen time.Time
}

// NewRegistry returns an empty registry that builds machines with factory.
func NewRegistry(factory func() *session.Machine) *Registry {
	return &Registry{
		newMachine: factory,
		now:        time.Now,
		sessions:   make(map[string]*entry),
	}
}

// Create starts a new session and returns its id.
func (r *Registry) Create() (string, *session.Machine) {
	id := uuid.NewString()
	m := r.newMachine()

	r.mu.Lock()
	r.sessions[id] = &entry{machine: m, lastSeen: r.now()}
	r.mu.Unlock()
	return id, m
}

// Get returns the session's machine and marks it as active.
func (r *Registry) Get(id string) (*session.Machine, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.machine, true
}

// Delete removes a session. It reports whether the session existed.
func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep removes sessions idle for longer than ttl. Sessions waiting on a
// remote call are kept.
func (r *Registry) Sweep(ttl time.Duration) int {
	cutoff := r.now().Add(-ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for id, e := range r.sessions {
		if e.lastSeen.After(cutoff) || e.machine.Snapshot().State.Busy() {
			continue
		}
		delete(r.sessions, id)
		removed++
	}
	return removed
}

// StartTTLWorker periodically sweeps idle sessions until ctx is done.
func StartTTLWorker(ctx context.Context, reg *Registry, ttl, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		slog.Info("TTL worker started", "interval", interval, "ttl", ttl)

		for {
			select {
			case <-ticker.C:
				if n := reg.Sweep(ttl); n > 0 {
					slog.Info("TTL worker removed idle sessions", "count", n, "remaining", reg.Len())
				}
			case <-ctx.Done():
				slog.Info("TTL worker shutting down", "reason", ctx.Err())
				return
			}
		}
	}()
}
