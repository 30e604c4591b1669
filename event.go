package geoscribe

// listenerEntry pairs a listener function with its registration ID.
type listenerEntry[T any] struct {
	id uint32
	fn func(T)
}

// Event is a typed publish/subscribe primitive. The zero value is ready to
// use. Events are not safe for concurrent use; like the rest of the package
// they belong to the application goroutine.
type Event[T any] struct {
	listeners []listenerEntry[T]
	nextID    uint32
	fireBuf   []listenerEntry[T] // reused snapshot so listeners may remove themselves mid-fire
}

// ListenerHandle allows removing a registered listener.
type ListenerHandle struct {
	remove func()
}

// Remove unregisters the listener so it no longer fires.
// Safe to call more than once.
func (h ListenerHandle) Remove() {
	if h.remove != nil {
		h.remove()
	}
}

// Listen registers fn to be invoked on every Fire.
func (e *Event[T]) Listen(fn func(T)) ListenerHandle {
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, listenerEntry[T]{id: id, fn: fn})
	return ListenerHandle{remove: func() { e.removeListener(id) }}
}

// ListenOnce registers fn to be invoked on the next Fire only.
func (e *Event[T]) ListenOnce(fn func(T)) ListenerHandle {
	var handle ListenerHandle
	handle = e.Listen(func(v T) {
		handle.Remove()
		fn(v)
	})
	return handle
}

// Fire invokes every registered listener with v, in registration order.
// Listeners may remove themselves or register new listeners during the call;
// listeners added mid-fire do not see the current value.
func (e *Event[T]) Fire(v T) {
	e.fireBuf = append(e.fireBuf[:0], e.listeners...)
	buf := e.fireBuf
	for _, l := range buf {
		if e.hasListener(l.id) {
			l.fn(v)
		}
	}
}

// NumListeners returns the number of registered listeners.
func (e *Event[T]) NumListeners() int {
	return len(e.listeners)
}

func (e *Event[T]) hasListener(id uint32) bool {
	for i := range e.listeners {
		if e.listeners[i].id == id {
			return true
		}
	}
	return false
}

// removeListener removes the entry with the given id.
// Uses copy+truncate to avoid retaining the function in the backing array.
func (e *Event[T]) removeListener(id uint32) {
	for i := range e.listeners {
		if e.listeners[i].id == id {
			copy(e.listeners[i:], e.listeners[i+1:])
			e.listeners[len(e.listeners)-1] = listenerEntry[T]{}
			e.listeners = e.listeners[:len(e.listeners)-1]
			return
		}
	}
}
