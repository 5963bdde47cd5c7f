package settings

type watcher[T any] struct {
	id int
	fn func(T)
}

// watcherList keeps callbacks in registration order. Callers hold the Settings lock.
type watcherList[T any] struct {
	nextID  int
	entries []watcher[T]
}

func (l *watcherList[T]) add(fn func(T)) int {
	l.nextID++
	l.entries = append(l.entries, watcher[T]{id: l.nextID, fn: fn})
	return l.nextID
}

func (l *watcherList[T]) remove(id int) {
	for i, entry := range l.entries {
		if entry.id == id {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return
		}
	}
}

func (l *watcherList[T]) snapshot() []func(T) {
	fns := make([]func(T), len(l.entries))
	for i, entry := range l.entries {
		fns[i] = entry.fn
	}
	return fns
}
