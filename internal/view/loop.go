// Copyright (c) 2026 Ludex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
)

// ErrLoopClosed is returned when work is submitted to a closed [Loop].
var ErrLoopClosed = errors.New("view: loop closed")

// # Single-Writer Loop

// Loop runs submitted functions one at a time on a dedicated goroutine.
//
// It is the owner thread of a [View]: every read or write of the view goes
// through the loop. Functions run in submission order. A panicking function
// is logged and does not stop the loop.
type Loop struct {
	mu     sync.Mutex
	queue  []func()
	closed bool

	wake   chan struct{}
	done   chan struct{}
	logger *slog.Logger
}

// NewLoop starts a loop goroutine.
func NewLoop(logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}

	loop := &Loop{
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		logger: logger,
	}
	go loop.run()
	return loop
}

// Post enqueues fn without waiting. It reports false when the loop is closed.
func (loop *Loop) Post(fn func()) bool {
	loop.mu.Lock()
	if loop.closed {
		loop.mu.Unlock()
		return false
	}
	loop.queue = append(loop.queue, fn)
	loop.mu.Unlock()

	select {
	case loop.wake <- struct{}{}:
	default:
	}
	return true
}

/*
Do runs fn on the loop and waits for it to finish.

Description: Must not be called from the loop goroutine itself. If ctx
expires first, Do returns ctx.Err() and fn may still run later.

Returns:
  - error: ErrLoopClosed, the context error, or nil
*/
func (loop *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !loop.Post(func() {
		defer close(finished)
		fn()
	}) {
		return ErrLoopClosed
	}

	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting work, runs what is already queued and waits for the
// goroutine to exit. Must not be called from the loop goroutine.
func (loop *Loop) Close() {
	loop.mu.Lock()
	if loop.closed {
		loop.mu.Unlock()
		<-loop.done
		return
	}
	loop.closed = true
	loop.mu.Unlock()

	select {
	case loop.wake <- struct{}{}:
	default:
	}
	<-loop.done
}

func (loop *Loop) run() {
	defer close(loop.done)

	for {
		loop.mu.Lock()
		tasks := loop.queue
		loop.queue = nil
		closed := loop.closed
		loop.mu.Unlock()

		for _, task := range tasks {
			loop.execute(task)
		}

		if len(tasks) > 0 {
			continue
		}
		if closed {
			return
		}
		<-loop.wake
	}
}

func (loop *Loop) execute(task func()) {
	defer func() {
		if recovered := recover(); recovered != nil {
			loop.logger.Error("loop_task_panicked",
				slog.String("panic", fmt.Sprint(recovered)),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()
	task()
}
