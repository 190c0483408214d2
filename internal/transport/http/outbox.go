package http

import (
	"sync"

	"github.com/renato145/interactive-class/internal/domain"
)

const outboxSize = 16

// outbox is the buffered mailbox other sessions push broadcasts into. It
// implements app.Sink. Pushing to a closed or full outbox drops the message
// and reports false; it never blocks and never panics, so stale handles left
// in a room are harmless until cleanup runs.
type outbox struct {
	ch   chan domain.ServerMessage
	done chan struct{}
	once sync.Once
}

func newOutbox() *outbox {
	return &outbox{
		ch:   make(chan domain.ServerMessage, outboxSize),
		done: make(chan struct{}),
	}
}

func (o *outbox) Push(msg domain.ServerMessage) bool {
	select {
	case <-o.done:
		return false
	default:
	}
	select {
	case o.ch <- msg:
		return true
	case <-o.done:
		return false
	default:
		return false
	}
}

func (o *outbox) Close() {
	o.once.Do(func() { close(o.done) })
}
