package event

import "reflect"

// Bus is a double-buffered event bus. Events emitted in tick N are
// dispatched in tick N+1 when EventDispatchSystem calls SwapBuffers and
// DispatchAll. Only the game loop goroutine touches it.
type Bus struct {
	order    []reflect.Type // event types in first-seen order
	known    map[reflect.Type]struct{}
	front    map[reflect.Type][]any
	back     map[reflect.Type][]any
	handlers map[reflect.Type][]func(any)
}

func NewBus() *Bus {
	return &Bus{
		known:    make(map[reflect.Type]struct{}),
		front:    make(map[reflect.Type][]any),
		back:     make(map[reflect.Type][]any),
		handlers: make(map[reflect.Type][]func(any)),
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

func (b *Bus) track(t reflect.Type) {
	if _, ok := b.known[t]; ok {
		return
	}
	b.known[t] = struct{}{}
	b.order = append(b.order, t)
}

// Emit queues an event into the back buffer (readable next tick).
func Emit[T any](b *Bus, ev T) {
	t := typeOf[T]()
	b.track(t)
	b.back[t] = append(b.back[t], ev)
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) {
	t := typeOf[T]()
	b.track(t)
	b.handlers[t] = append(b.handlers[t], func(ev any) { fn(ev.(T)) })
}

// SwapBuffers rotates back→front and clears the new back buffer.
func (b *Bus) SwapBuffers() {
	b.front, b.back = b.back, b.front
	for k := range b.back {
		b.back[k] = b.back[k][:0]
	}
}

// DispatchAll delivers front-buffer events to their handlers. Event types
// are visited in the order they were first seen, events in emit order.
func (b *Bus) DispatchAll() int {
	n := 0
	for _, t := range b.order {
		handlers := b.handlers[t]
		for _, ev := range b.front[t] {
			for _, h := range handlers {
				h(ev)
			}
			n++
		}
	}
	return n
}
