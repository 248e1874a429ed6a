package utils

import "sync"

// Mailbox is an unbounded FIFO queue. Put never blocks; items are delivered in order
// on the channel returned by C, which is closed after Close once the queue drains.
type Mailbox[T any] struct {
	mu     sync.Mutex
	queue  []T
	closed bool
	notify chan struct{}
	out    chan T
}

// NewMailbox starts the delivery goroutine
func NewMailbox[T any]() *Mailbox[T] {
	m := &Mailbox[T]{
		notify: make(chan struct{}, 1),
		out:    make(chan T),
	}
	go m.pump()
	return m
}

// Put enqueues v. Items put after Close are dropped.
func (m *Mailbox[T]) Put(v T) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.queue = append(m.queue, v)
	m.mu.Unlock()
	m.wake()
}

// C returns the delivery channel
func (m *Mailbox[T]) C() <-chan T {
	return m.out
}

// Close stops accepting items. Queued items are still delivered.
func (m *Mailbox[T]) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.wake()
}

func (m *Mailbox[T]) wake() {
	select {
	case m.notify <- struct{}{}:
	default:
	}
}

func (m *Mailbox[T]) pump() {
	for {
		m.mu.Lock()
		if len(m.queue) == 0 {
			closed := m.closed
			m.mu.Unlock()
			if closed {
				close(m.out)
				return
			}
			<-m.notify
			continue
		}
		v := m.queue[0]
		var zero T
		m.queue[0] = zero
		m.queue = m.queue[1:]
		m.mu.Unlock()

		m.out <- v
	}
}
