// ABOUTME: Cancellable one-second countdown driving the resend timer
// ABOUTME: Stop releases the ticker so no tick arrives after the screen is gone

package otp

import (
	"sync"
	"time"
)

// Countdown sends the remaining count on C once per interval and closes
// C after the last tick or after Stop.
type Countdown struct {
	C <-chan int

	stop chan struct{}
	once sync.Once
	done chan struct{}
}

// StartCountdown counts down from `from` to zero, one step per interval
func StartCountdown(from int, interval time.Duration) *Countdown {
	ch := make(chan int)
	c := &Countdown{
		C:    ch,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}

	go func() {
		defer close(c.done)
		defer close(ch)
		if from <= 0 {
			return
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for remaining := from - 1; remaining >= 0; remaining-- {
			select {
			case <-c.stop:
				return
			case <-ticker.C:
			}
			select {
			case <-c.stop:
				return
			case ch <- remaining:
			}
		}
	}()

	return c
}

// Stop cancels the countdown and waits for its goroutine to exit.
// Calling Stop more than once is safe.
func (c *Countdown) Stop() {
	c.once.Do(func() {
		close(c.stop)
	})
	<-c.done
}

// Done is closed once the countdown goroutine has exited
func (c *Countdown) Done() <-chan struct{} {
	return c.done
}
