package platform

import (
	"sync"
	"testing"

	"github.com/spaghettifunk/gamecore/engine/core"
)

func TestNotificationQueue_PopEmpty(t *testing.T) {
	q := NewNotificationQueue()
	if _, ok := q.Pop(); ok {
		t.Fatalf("expected empty queue")
	}
}

func TestNotificationQueue_ConcurrentPushKeepsEverything(t *testing.T) {
	q := NewNotificationQueue()

	const producers, perProducer = 4, 100
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(Key(core.KeyA, i%2 == 0))
			}
		}()
	}
	wg.Wait()

	if q.Len() != producers*perProducer {
		t.Fatalf("expected %d notifications, got %d", producers*perProducer, q.Len())
	}
	count := 0
	for {
		if _, ok := q.Pop(); !ok {
			break
		}
		count++
	}
	if count != producers*perProducer {
		t.Fatalf("expected %d pops, got %d", producers*perProducer, count)
	}
}

func TestNotificationQueue_ReadySignalled(t *testing.T) {
	q := NewNotificationQueue()
	q.Push(Simple(NotifyDestroy))
	select {
	case <-q.Ready():
	default:
		t.Fatalf("expected ready signal after push")
	}
}

func TestNotification_String(t *testing.T) {
	tests := []struct {
		n    Notification
		want string
	}{
		{SizeChanged(800, 600), "size-changed(800x600)"},
		{Minimized(), "size-changed(minimized)"},
		{Simple(NotifyPowerSuspendQuery), "power-suspend-query"},
		{Simple(NotifyDestroy), "destroy"},
	}
	for _, tt := range tests {
		if got := tt.n.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
