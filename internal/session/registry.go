// Package session keeps form machines and editors per signed in session or
// anonymous visitor.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/daniilsolovey/verein-site/internal/auth"
	"github.com/daniilsolovey/verein-site/internal/verein"
)

const DefaultTTL = 30 * time.Minute

// Instance is anything that must be torn down with its owner.
type Instance interface {
	Dispose()
}

// Subscriber delivers authentication state changes.
type Subscriber interface {
	OnAuthStateChange(l auth.Listener) func()
}

type entry struct {
	instance Instance
	touched  time.Time
}

// Registry maps owner key and instance name to a live instance.
type Registry struct {
	ttl time.Duration
	log *slog.Logger
	now func() time.Time

	mu     sync.Mutex
	owners map[string]map[string]*entry
}

func NewRegistry(ttl time.Duration, log *slog.Logger) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Registry{
		ttl:    ttl,
		log:    log,
		now:    time.Now,
		owners: make(map[string]map[string]*entry),
	}
}

// OwnerKey is the key of a signed in session.
func OwnerKey(s verein.Session) string {
	return "session:" + s.ID
}

// VisitorKey is the key of an anonymous visitor.
func VisitorKey(visitorID string) string {
	return "visitor:" + visitorID
}

// Get returns the instance called name of owner, creating it with create when
// missing. An instance of another type under the same name is replaced.
func Get[T Instance](r *Registry, owner, name string, create func() T) T {
	r.mu.Lock()
	defer r.mu.Unlock()

	instances, ok := r.owners[owner]
	if !ok {
		instances = make(map[string]*entry)
		r.owners[owner] = instances
	}

	if e, ok := instances[name]; ok {
		if v, ok := e.instance.(T); ok {
			e.touched = r.now()
			return v
		}
		e.instance.Dispose()
	}

	v := create()
	instances[name] = &entry{instance: v, touched: r.now()}

	return v
}

// Lookup returns the instance without creating one.
func Lookup[T Instance](r *Registry, owner, name string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	e, ok := r.owners[owner][name]
	if !ok {
		return zero, false
	}

	v, ok := e.instance.(T)
	if ok {
		e.touched = r.now()
	}
	return v, ok
}

// Drop disposes and removes one instance.
func (r *Registry) Drop(owner, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.owners[owner][name]; ok {
		e.instance.Dispose()
		delete(r.owners[owner], name)
		if len(r.owners[owner]) == 0 {
			delete(r.owners, owner)
		}
	}
}

// DisposeOwner disposes everything owner holds.
func (r *Registry) DisposeOwner(owner string) int {
	r.mu.Lock()
	instances := r.owners[owner]
	delete(r.owners, owner)
	r.mu.Unlock()

	for _, e := range instances {
		e.instance.Dispose()
	}

	return len(instances)
}

// Sweep disposes instances idle for longer than the TTL.
func (r *Registry) Sweep(now time.Time) int {
	var stale []Instance

	r.mu.Lock()
	for owner, instances := range r.owners {
		for name, e := range instances {
			if now.Sub(e.touched) > r.ttl {
				stale = append(stale, e.instance)
				delete(instances, name)
			}
		}
		if len(instances) == 0 {
			delete(r.owners, owner)
		}
	}
	r.mu.Unlock()

	for _, inst := range stale {
		inst.Dispose()
	}

	return len(stale)
}

// Len returns the number of live instances.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, instances := range r.owners {
		n += len(instances)
	}
	return n
}

// Bind disposes the instances of a session once it signs out.
func (r *Registry) Bind(sub Subscriber) func() {
	return sub.OnAuthStateChange(func(e auth.Event) {
		if e.Type != auth.SignedOut {
			return
		}
		if n := r.DisposeOwner(OwnerKey(e.Session)); n > 0 {
			r.log.Debug("session instances disposed", "sessionId", e.Session.ID, "count", n)
		}
	})
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(r.now()); n > 0 {
				r.log.Debug("idle instances swept", "count", n)
			}
		}
	}
}
