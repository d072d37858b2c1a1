// Package persister coalesces bursts of index mutations into single
// background writes.
package persister

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.trai.ch/slicer/internal/core/domain"
	"go.trai.ch/slicer/internal/core/ports"
	"go.trai.ch/zerr"
)

// Persister runs one worker goroutine that calls write after a sliding
// window of quiet following the last MarkDirty. Only the worker calls write.
type Persister struct {
	mu     sync.Mutex
	dirty  bool
	closed bool
	timer  *time.Timer
	gen    uint64 // bumped on every reschedule so stale timers are ignored

	window time.Duration
	write  func(context.Context)
	logger ports.Logger

	wake      chan struct{}
	flushes   chan chan struct{}
	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// New starts a Persister. Close must be called to stop its worker.
func New(window time.Duration, write func(context.Context), logger ports.Logger) *Persister {
	p := &Persister{
		window:  window,
		write:   write,
		logger:  logger,
		wake:    make(chan struct{}, 1),
		flushes: make(chan chan struct{}),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

// MarkDirty records a mutation and restarts the window.
func (p *Persister) MarkDirty() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}

	p.dirty = true
	p.cancelTimerLocked()
	gen := p.gen
	p.timer = time.AfterFunc(p.window, func() { p.fire(gen) })
}

// FlushNow asks the worker to write immediately and returns without waiting.
func (p *Persister) FlushNow() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.cancelTimerLocked()
	p.mu.Unlock()

	p.signal()
}

// FlushAndWait blocks until the worker has written pending changes, or
// found nothing to write.
func (p *Persister) FlushAndWait() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.cancelTimerLocked()
	p.mu.Unlock()

	ack := make(chan struct{})
	select {
	case p.flushes <- ack:
		<-ack
	case <-p.done:
	}
}

// Close flushes pending changes and stops the worker. It is safe to call
// more than once; later calls return after the first has finished.
func (p *Persister) Close() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		p.cancelTimerLocked()
		p.mu.Unlock()

		close(p.stop)
		<-p.done
	})
}

func (p *Persister) cancelTimerLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.gen++
}

func (p *Persister) fire(gen uint64) {
	p.mu.Lock()
	stale := gen != p.gen
	if !stale {
		p.timer = nil
	}
	p.mu.Unlock()

	if !stale {
		p.signal()
	}
}

func (p *Persister) signal() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *Persister) run() {
	defer close(p.done)

	ctx := context.Background()
	for {
		select {
		case <-p.wake:
			p.writeIfDirty(ctx)
		case ack := <-p.flushes:
			p.writeIfDirty(ctx)
			close(ack)
		case <-p.stop:
			p.writeIfDirty(ctx)
			return
		}
	}
}

// writeIfDirty clears the flag before writing, so a mutation that lands
// during the write schedules another one.
func (p *Persister) writeIfDirty(ctx context.Context) {
	p.mu.Lock()
	if !p.dirty {
		p.mu.Unlock()
		return
	}
	p.dirty = false
	p.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error(zerr.With(domain.ErrPersistPanicked, "panic", fmt.Sprint(r)))
		}
	}()
	p.write(ctx)
}
