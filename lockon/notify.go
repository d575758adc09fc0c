package lockon

type listener[T any] struct {
	id int
	fn func(T)
}

// listeners is a fan-out list. Emit iterates a copy, so a listener may
// subscribe or unsubscribe while being notified.
type listeners[T any] struct {
	next int
	fns  []listener[T]
}

func (l *listeners[T]) add(fn func(T)) func() {
	if fn == nil {
		return func() {}
	}
	l.next++
	id := l.next
	l.fns = append(l.fns, listener[T]{id: id, fn: fn})
	return func() { l.remove(id) }
}

func (l *listeners[T]) remove(id int) {
	for i, ln := range l.fns {
		if ln.id == id {
			l.fns = append(l.fns[:i:i], l.fns[i+1:]...)
			return
		}
	}
}

func (l *listeners[T]) emit(v T) {
	if len(l.fns) == 0 {
		return
	}
	snapshot := append([]listener[T](nil), l.fns...)
	for _, ln := range snapshot {
		ln.fn(v)
	}
}
