package controller

import (
	"context"
	"sync"
)

// Listener is told about every view produced by Run.
type Listener func(View)

// Run owns the controller on the calling goroutine. Commands returned by
// Handle run in their own goroutines and post their completion events back
// onto the loop. Run returns when ctx is done, or once events is closed and
// every pending command has reported.
func (c *Controller) Run(ctx context.Context, events <-chan Event, listeners ...Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	results := make(chan Event)
	pending := 0

	dispatch := func(ev Event) {
		if ev != nil {
			if cmd := c.Handle(ev); cmd != nil {
				pending++
				wg.Add(1)
				go func() {
					defer wg.Done()
					out := cmd(ctx)
					select {
					case results <- out:
					case <-ctx.Done():
					}
				}()
			}
		}
		view := c.View()
		for _, l := range listeners {
			l(view)
		}
	}

	for {
		if events == nil && pending == 0 {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			dispatch(ev)
		case ev := <-results:
			pending--
			dispatch(ev)
		}
	}
}

// Replay handles scripted input on the calling goroutine. Each command runs
// to completion, and its event is handled, before the next input event.
func (c *Controller) Replay(ctx context.Context, events []Event) View {
	for _, ev := range events {
		for ev != nil {
			if err := ctx.Err(); err != nil {
				return c.View()
			}
			cmd := c.Handle(ev)
			if cmd == nil {
				break
			}
			ev = cmd(ctx)
		}
	}
	return c.View()
}
