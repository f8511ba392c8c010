package platform

import (
	"sync"

	"github.com/spaghettifunk/gamecore/engine/containers"
)

const defaultQueueSize = 64

// NotificationQueue buffers notifications between the producers (window
// callbacks, OS signal goroutines) and the run loop that drains it.
type NotificationQueue struct {
	mu    sync.Mutex
	queue *containers.RingQueue[Notification]
	// signalled whenever a notification is pushed
	ready chan struct{}
}

func NewNotificationQueue() *NotificationQueue {
	return &NotificationQueue{
		queue: containers.NewGrowableRingQueue[Notification](defaultQueueSize),
		ready: make(chan struct{}, 1),
	}
}

// Push is safe to call from any goroutine.
func (q *NotificationQueue) Push(n Notification) {
	q.mu.Lock()
	// a growable queue never rejects
	_ = q.queue.Enqueue(n)
	q.mu.Unlock()

	select {
	case q.ready <- struct{}{}:
	default:
	}
}

// Pop removes the oldest notification without blocking.
func (q *NotificationQueue) Pop() (Notification, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	n, err := q.queue.Dequeue()
	if err != nil {
		return Notification{}, false
	}
	return n, true
}

func (q *NotificationQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.queue.Len()
}

// Ready is signalled after a Push; platforms use it to cut a wait short.
func (q *NotificationQueue) Ready() <-chan struct{} {
	return q.ready
}
