package frame

import "sort"

// Listeners is an ordered set of callbacks. Hosts embed one per event kind.
type Listeners[T any] struct {
	next uint64
	fns  map[uint64]T
}

// Add registers fn and returns its remover. Calling the remover twice is
// harmless.
func (l *Listeners[T]) Add(fn T) func() {
	if l.fns == nil {
		l.fns = make(map[uint64]T)
	}
	l.next++
	id := l.next
	l.fns[id] = fn
	return func() { delete(l.fns, id) }
}

func (l *Listeners[T]) Len() int { return len(l.fns) }

// Each calls visit for every listener in registration order. Listeners added
// or removed during the walk take effect on the next call.
func (l *Listeners[T]) Each(visit func(T)) {
	if len(l.fns) == 0 {
		return
	}
	ids := make([]uint64, 0, len(l.fns))
	for id := range l.fns {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	fns := make([]T, len(ids))
	for i, id := range ids {
		fns[i] = l.fns[id]
	}
	for _, fn := range fns {
		visit(fn)
	}
}

// Queue is a Scheduler whose callbacks run when the host calls Flush, once
// per refresh.
type Queue struct {
	next    ID
	pending map[ID]func()
}

func (q *Queue) RequestFrame(fn func()) ID {
	if q.pending == nil {
		q.pending = make(map[ID]func())
	}
	q.next++
	q.pending[q.next] = fn
	return q.next
}

func (q *Queue) CancelFrame(id ID) {
	delete(q.pending, id)
}

// Pending returns the number of outstanding requests.
func (q *Queue) Pending() int { return len(q.pending) }

// Flush runs every request issued before the call, in order, and returns
// how many ran. Requests made by the callbacks wait for the next Flush.
func (q *Queue) Flush() int {
	if len(q.pending) == 0 {
		return 0
	}
	ids := make([]ID, 0, len(q.pending))
	for id := range q.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	ran := 0
	for _, id := range ids {
		fn, ok := q.pending[id]
		if !ok {
			continue
		}
		delete(q.pending, id)
		fn()
		ran++
	}
	return ran
}
