// Package event provides typed subscribe/unsubscribe streams.
package event

import "sync"

// Token identifies a subscription. The zero Token is never issued.
type Token uint64

// Emitter fans a value out to every registered handler, in registration order.
//
// Handlers run synchronously on the goroutine calling Emit. A handler may call
// On or Off on the same emitter; changes apply from the next Emit.
type Emitter[T any] struct {
	mu       sync.Mutex
	next     Token
	handlers []entry[T]
}

type entry[T any] struct {
	tok Token
	fn  func(T)
}

// On registers fn and returns its token.
func (e *Emitter[T]) On(fn func(T)) Token {
	if fn == nil {
		return 0
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.next++
	e.handlers = append(e.handlers, entry[T]{tok: e.next, fn: fn})
	return e.next
}

// Off removes the handler registered with tok. Unknown or already removed
// tokens are ignored.
func (e *Emitter[T]) Off(tok Token) {
	if tok == 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, h := range e.handlers {
		if h.tok != tok {
			continue
		}
		// Copy so an Emit in progress keeps iterating its own snapshot.
		hs := make([]entry[T], 0, len(e.handlers)-1)
		hs = append(hs, e.handlers[:i]...)
		e.handlers = append(hs, e.handlers[i+1:]...)
		return
	}
}

// Clear removes every handler.
func (e *Emitter[T]) Clear() {
	e.mu.Lock()
	e.handlers = nil
	e.mu.Unlock()
}

// Len returns the number of registered handlers.
func (e *Emitter[T]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handlers)
}

// Emit calls every handler registered at the time of the call with v.
func (e *Emitter[T]) Emit(v T) {
	e.mu.Lock()
	hs := e.handlers
	e.mu.Unlock()
	for _, h := range hs {
		h.fn(v)
	}
}
