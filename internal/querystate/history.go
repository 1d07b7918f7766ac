package querystate

import "sync"

// History is an in-memory address bar with a back/forward stack. Push drops
// any forward entries, like the browser's pushState.
type History struct {
	mu        sync.Mutex
	entries   []string
	index     int
	listeners map[int]func(rawQuery string)
	nextID    int
}

func NewHistory(rawQuery string) *History {
	return &History{
		entries:   []string{rawQuery},
		listeners: map[int]func(string){},
	}
}

func (h *History) Query() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

func (h *History) Push(rawQuery string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.index+1], rawQuery)
	h.index++
}

// Len returns the number of entries on the stack.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Back moves one entry back and notifies listeners. It reports false when
// already at the oldest entry.
func (h *History) Back() bool {
	return h.move(-1)
}

// Forward moves one entry forward and notifies listeners.
func (h *History) Forward() bool {
	return h.move(1)
}

func (h *History) OnPopState(fn func(rawQuery string)) (remove func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	h.listeners[id] = fn

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.listeners, id)
	}
}

func (h *History) move(delta int) bool {
	h.mu.Lock()
	target := h.index + delta
	if target < 0 || target >= len(h.entries) {
		h.mu.Unlock()
		return false
	}
	h.index = target
	rawQuery := h.entries[target]
	listeners := make([]func(string), 0, len(h.listeners))
	for _, fn := range h.listeners {
		listeners = append(listeners, fn)
	}
	h.mu.Unlock()

	for _, fn := range listeners {
		fn(rawQuery)
	}
	return true
}

// RequestBar is an address bar seeded from an incoming request. Writes are
// recorded so the handler can redirect the client to the new location.
type RequestBar struct {
	path   string
	query  string
	pushed bool
}

func NewRequestBar(path, rawQuery string) *RequestBar {
	return &RequestBar{path: path, query: rawQuery}
}

func (b *RequestBar) Query() string {
	return b.query
}

func (b *RequestBar) Push(rawQuery string) {
	b.query = rawQuery
	b.pushed = true
}

// Pushed reports whether the store wrote to the bar.
func (b *RequestBar) Pushed() bool {
	return b.pushed
}

// Location is the path plus the current query string, if any.
func (b *RequestBar) Location() string {
	if b.query == "" {
		return b.path
	}
	return b.path + "?" + b.query
}
