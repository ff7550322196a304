// Package focus tracks which interaction currently owns the verse display.
// A newer interaction always takes ownership; results that arrive for an
// older one are discarded by the caller instead of being shown.
package focus

import (
	"context"
	"sync"
)

// Ticket identifies one interaction.
type Ticket struct {
	ID  string
	seq uint64
}

// Tracker holds the current owner. The zero value is ready to use.
type Tracker struct {
	mu    sync.Mutex
	seq   uint64
	owner uint64
	id    string
}

// Begin starts a new interaction for target id and makes it the owner.
func (t *Tracker) Begin(id string) Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	t.owner = t.seq
	t.id = id
	return Ticket{ID: id, seq: t.seq}
}

// Current reports whether no newer interaction has started since tk.
func (t *Tracker) Current(tk Ticket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tk.seq != 0 && t.owner == tk.seq
}

// Release clears ownership if tk still holds it.
func (t *Tracker) Release(tk Ticket) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.owner == tk.seq {
		t.owner = 0
		t.id = ""
	}
}

// Owner returns the target id of the current interaction, if any.
func (t *Tracker) Owner() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.id, t.owner != 0
}

// Show begins an interaction for id, runs resolve and reports whether the
// interaction still owns the display once resolve returns. The result is
// returned either way; resolve itself is never interrupted.
func Show[T any](ctx context.Context, t *Tracker, id string, resolve func(context.Context) T) (T, bool) {
	tk := t.Begin(id)
	v := resolve(ctx)
	return v, t.Current(tk)
}

// Registry keeps one Tracker per client while that client has requests in
// flight. A client's tracker is dropped when its last request leaves, so
// idle clients hold no memory.
type Registry struct {
	mu      sync.Mutex
	clients map[string]*entry
}

type entry struct {
	t    *Tracker
	refs int
}

// Enter returns the tracker for client and holds it until the matching
// Leave.
func (r *Registry) Enter(client string) *Tracker {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.clients == nil {
		r.clients = make(map[string]*entry)
	}
	e, ok := r.clients[client]
	if !ok {
		e = &entry{t: &Tracker{}}
		r.clients[client] = e
	}
	e.refs++
	return e.t
}

// Leave releases one hold taken by Enter.
func (r *Registry) Leave(client string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.clients[client]
	if !ok {
		return
	}
	if e.refs--; e.refs <= 0 {
		delete(r.clients, client)
	}
}

// Len reports how many clients have requests in flight.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// ShowFor runs Show on client's tracker for the duration of resolve.
func ShowFor[T any](ctx context.Context, r *Registry, client, id string, resolve func(context.Context) T) (T, bool) {
	t := r.Enter(client)
	defer r.Leave(client)
	return Show(ctx, t, id, resolve)
}
