//go:build unix

package desktop

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spaghettifunk/gamecore/engine/core"
	"github.com/spaghettifunk/gamecore/engine/platform"
)

var watchedSignals = []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGTSTP, syscall.SIGCONT}

// SIGTSTP asks the process to suspend, it only stops once acknowledged.
func signalNotification(sig os.Signal) (platform.Notification, bool) {
	switch sig {
	case syscall.SIGINT, syscall.SIGTERM:
		return platform.Simple(platform.NotifyDestroy), true
	case syscall.SIGTSTP:
		return platform.Simple(platform.NotifyPowerSuspendQuery), true
	case syscall.SIGCONT:
		return platform.Simple(platform.NotifyPowerResume), true
	}
	return platform.Notification{}, false
}

func stopSelf() {
	if err := syscall.Kill(os.Getpid(), syscall.SIGSTOP); err != nil {
		core.LogError("failed to stop the process: %s", err)
	}
}

// watchSignals forwards signals until the returned function is called. That
// function returns once the forwarding goroutine has exited.
func watchSignals(push func(platform.Notification), wake func()) func() {
	ch := make(chan os.Signal, 4)
	done := make(chan struct{})
	signal.Notify(ch, watchedSignals...)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			case sig := <-ch:
				n, ok := signalNotification(sig)
				if !ok {
					continue
				}
				core.LogDebug("signal %s received", sig)
				push(n)
				wake()
			}
		}
	}()

	return func() {
		signal.Stop(ch)
		close(done)
		wg.Wait()
	}
}
