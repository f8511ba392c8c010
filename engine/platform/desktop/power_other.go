//go:build !unix

package desktop

import (
	"os"
	"os/signal"
	"sync"

	"github.com/spaghettifunk/gamecore/engine/core"
	"github.com/spaghettifunk/gamecore/engine/platform"
)

// Only interrupts are forwarded, there are no suspend signals here.
func signalNotification(sig os.Signal) (platform.Notification, bool) {
	if sig == os.Interrupt {
		return platform.Simple(platform.NotifyDestroy), true
	}
	return platform.Notification{}, false
}

func stopSelf() {}

func watchSignals(push func(platform.Notification), wake func()) func() {
	ch := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(ch, os.Interrupt)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			case sig := <-ch:
				if n, ok := signalNotification(sig); ok {
					core.LogDebug("signal %s received", sig)
					push(n)
					wake()
				}
			}
		}
	}()

	return func() {
		signal.Stop(ch)
		close(done)
		wg.Wait()
	}
}
