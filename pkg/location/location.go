// Package location supplies the current hash fragment to a router.
//
// The router never reads ambient browser state. It asks a Source for the
// hash at dispatch time. Static and SourceFunc cover fixed values and
// adapters; Location is a mutable, thread-safe holder that notifies
// listeners on change, which is how a hash-change event source (a browser
// bridge, a WebSocket session, a test) drives navigation.
package location

import "sync"

// Source provides the current location hash (e.g. "#/users/list").
// An empty string means no hash is present.
type Source interface {
	Hash() string
}

// SourceFunc adapts a function to a Source.
type SourceFunc func() string

// Hash implements Source.
func (f SourceFunc) Hash() string { return f() }

// Static is a fixed hash.
type Static string

// Hash implements Source.
func (s Static) Hash() string { return string(s) }

// Listener is called with the new hash after it changes.
type Listener func(hash string)

// Location holds the current hash of one navigation context.
type Location struct {
	mu        sync.RWMutex
	hash      string
	listeners map[uint64]Listener
	nextID    uint64
}

// New creates a Location with an initial hash.
func New(initial string) *Location {
	return &Location{
		hash:      initial,
		listeners: make(map[uint64]Listener),
	}
}

// Hash implements Source.
func (l *Location) Hash() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.hash
}

// Set updates the hash and notifies listeners when the value changed.
// Listeners run synchronously on the caller's goroutine, outside the lock.
// It reports whether the value changed.
func (l *Location) Set(hash string) bool {
	l.mu.Lock()
	if l.hash == hash {
		l.mu.Unlock()
		return false
	}
	l.hash = hash
	listeners := make([]Listener, 0, len(l.listeners))
	for _, fn := range l.listeners {
		listeners = append(listeners, fn)
	}
	l.mu.Unlock()

	for _, fn := range listeners {
		fn(hash)
	}
	return true
}

// Replace updates the hash without notifying listeners.
func (l *Location) Replace(hash string) {
	l.mu.Lock()
	l.hash = hash
	l.mu.Unlock()
}

// OnChange registers a listener and returns a function that removes it.
func (l *Location) OnChange(fn Listener) (cancel func()) {
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.listeners[id] = fn
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.listeners, id)
			l.mu.Unlock()
		})
	}
}

// ListenerCount returns the number of registered listeners.
func (l *Location) ListenerCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.listeners)
}
