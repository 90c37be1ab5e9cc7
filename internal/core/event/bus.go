package event

import (
	"fmt"
	"reflect"
	"sync"
)

// Bus is a double-buffered event bus. Events emitted during a frame land in
// the back buffer; SwapBuffers + DispatchAll deliver them in emission order.
// Handlers are display-side collaborators: a panicking handler is recovered
// and reported through the panic hook, never propagated into the frame.
type Bus struct {
	mu       sync.Mutex // only protects handler registration
	front    []any
	back     []any
	handlers map[reflect.Type][]any
	onPanic  func(evt any, recovered any)
}

func NewBus() *Bus {
	return &Bus{
		front:    make([]any, 0, 64),
		back:     make([]any, 0, 64),
		handlers: make(map[reflect.Type][]any),
	}
}

// OnPanic installs a hook that receives recovered handler panics.
func (b *Bus) OnPanic(fn func(evt any, recovered any)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onPanic = fn
}

// Emit queues an event into the back buffer.
func Emit[T any](b *Bus, event T) {
	if b == nil {
		return
	}
	b.back = append(b.back, event)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t := reflect.TypeOf((*T)(nil)).Elem()
	b.handlers[t] = append(b.handlers[t], fn)
}

// Pending returns the events queued since the last swap.
func (b *Bus) Pending() []any {
	return b.back
}

// Front returns the events about to be dispatched.
func (b *Bus) Front() []any {
	return b.front
}

// SwapBuffers rotates back→front and clears the new back buffer.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front[:0]
}

// DispatchAll delivers all front-buffer events to their subscribed handlers
// in emission order.
func (b *Bus) DispatchAll() {
	for _, ev := range b.front {
		for _, h := range b.handlers[reflect.TypeOf(ev)] {
			b.callHandler(h, ev)
		}
	}
}

func (b *Bus) callHandler(handler any, event any) {
	defer func() {
		if r := recover(); r != nil && b.onPanic != nil {
			b.onPanic(event, r)
		}
	}()
	// Subscribe and Emit key on the same static type, so the call is safe.
	reflect.ValueOf(handler).Call([]reflect.Value{reflect.ValueOf(event)})
}

// Collect returns the pending events of type T without consuming them.
func Collect[T any](b *Bus) []T {
	var out []T
	for _, ev := range b.back {
		if v, ok := ev.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// Describe renders an event for debug logging.
func Describe(ev any) string {
	return fmt.Sprintf("%T%+v", ev, ev)
}
