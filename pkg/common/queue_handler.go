package common

import (
	"sync"
	"time"
)

// QueueProcessor is a function that processes a batch of items from the queue.
type QueueProcessor[V any] func(items []V)

// QueueHandler is a generic queue handler that processes items in the background.
type QueueHandler[V any] struct {
	mu        sync.Mutex
	queue     []V
	processor QueueProcessor[V]
	chunkSize int
	done      chan struct{}
	closeOnce sync.Once
}

// NewQueueHandler creates a new QueueHandler and starts its worker.
func NewQueueHandler[V any](processor QueueProcessor[V], chunkSize int) *QueueHandler[V] {
	q := &QueueHandler[V]{
		queue:     make([]V, 0),
		processor: processor,
		chunkSize: chunkSize,
		done:      make(chan struct{}),
	}
	go q.processQueue()
	return q
}

// Close stops the worker goroutine. Items still queued are not processed,
// call Flush first when they matter.
func (h *QueueHandler[V]) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
}

// Add adds items to the queue.
func (h *QueueHandler[V]) Add(item ...V) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.queue = append(h.queue, item...)
}

// Flush synchronously drains everything queued so far.
func (h *QueueHandler[V]) Flush() {
	for {
		items := h.take()
		if len(items) == 0 {
			return
		}
		h.processor(items)
	}
}

func (h *QueueHandler[V]) take() []V {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.queue) == 0 {
		return nil
	}
	items := h.queue[:min(h.chunkSize, len(h.queue))]
	h.queue = h.queue[len(items):]
	return items
}

func (h *QueueHandler[V]) processQueue() {
	for {
		select {
		case <-h.done:
			return
		default:
		}
		items := h.take()
		if items == nil {
			select {
			case <-h.done:
				return
			case <-time.After(time.Second):
			}
			continue
		}
		h.processor(items)
	}
}
