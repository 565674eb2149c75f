package marketplace

import "sync"

// Feed broadcasts snapshots of one piece of store state. A new
// subscriber receives the latest snapshot immediately; afterwards every
// published snapshot is delivered. Each subscriber holds at most one
// pending value: a slow consumer sees the most recent snapshot, not a
// backlog.
type Feed[T any] struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan T
	latest T
	primed bool
}

func NewFeed[T any]() *Feed[T] {
	return &Feed[T]{subs: make(map[int]chan T)}
}

// Publish stores v as the latest snapshot and offers it to every
// subscriber.
func (f *Feed[T]) Publish(v T) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.latest = v
	f.primed = true
	for _, ch := range f.subs {
		offer(ch, v)
	}
}

// Subscribe registers a new consumer. The returned cancel func detaches
// it and closes the channel; calling cancel more than once is fine.
func (f *Feed[T]) Subscribe() (<-chan T, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan T, 1)
	if f.primed {
		ch <- f.latest
	}

	id := f.nextID
	f.nextID++
	f.subs[id] = ch

	cancel := func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if _, ok := f.subs[id]; ok {
			delete(f.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// Latest returns the most recent snapshot, if any has been published.
func (f *Feed[T]) Latest() (T, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.latest, f.primed
}

// offer replaces whatever is pending on a capacity-1 channel with v.
func offer[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
