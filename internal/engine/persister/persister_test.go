package persister_test

import (
	"context"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/slicer/internal/core/ports/mocks"
	"go.trai.ch/slicer/internal/engine/persister"
	"go.uber.org/mock/gomock"
)

const window = 500 * time.Millisecond

// counter is a write callback that counts invocations.
type counter struct {
	n atomic.Int32
}

func (c *counter) write(context.Context) { c.n.Add(1) }

func (c *counter) count() int { return int(c.n.Load()) }

func newPersister(t *testing.T, write func(context.Context)) *persister.Persister {
	t.Helper()
	ctrl := gomock.NewController(t)
	return persister.New(window, write, mocks.NewMockLogger(ctrl))
}

func TestPersister_CoalescesBurst(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var c counter
		p := newPersister(t, c.write)
		defer p.Close()

		for range 10 {
			p.MarkDirty()
		}

		time.Sleep(window - time.Millisecond)
		synctest.Wait()
		assert.Equal(t, 0, c.count(), "no write before the window elapses")

		time.Sleep(2 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, 1, c.count(), "burst should collapse into one write")

		time.Sleep(10 * window)
		synctest.Wait()
		assert.Equal(t, 1, c.count(), "nothing left to write")
	})
}

func TestPersister_SlidingWindow(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var c counter
		p := newPersister(t, c.write)
		defer p.Close()

		// Each mutation lands inside the previous window and pushes it back.
		p.MarkDirty()
		time.Sleep(300 * time.Millisecond)
		p.MarkDirty()
		time.Sleep(300 * time.Millisecond)
		p.MarkDirty()
		time.Sleep(300 * time.Millisecond)

		synctest.Wait()
		assert.Equal(t, 0, c.count(), "window should restart on every mutation")

		time.Sleep(250 * time.Millisecond)
		synctest.Wait()
		assert.Equal(t, 1, c.count())
	})
}

func TestPersister_SeparateBurstsWriteSeparately(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var c counter
		p := newPersister(t, c.write)
		defer p.Close()

		p.MarkDirty()
		time.Sleep(window + time.Millisecond)
		synctest.Wait()

		p.MarkDirty()
		time.Sleep(window + time.Millisecond)
		synctest.Wait()

		assert.Equal(t, 2, c.count())
	})
}

func TestPersister_FlushNow(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var c counter
		p := newPersister(t, c.write)
		defer p.Close()

		p.MarkDirty()
		p.FlushNow()
		synctest.Wait()
		assert.Equal(t, 1, c.count(), "flush should not wait for the window")

		time.Sleep(2 * window)
		synctest.Wait()
		assert.Equal(t, 1, c.count(), "cancelled timer must not write again")
	})
}

func TestPersister_FlushNow_NothingDirty(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var c counter
		p := newPersister(t, c.write)
		defer p.Close()

		p.FlushNow()
		synctest.Wait()
		assert.Equal(t, 0, c.count())
	})
}

func TestPersister_FlushAndWait(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var c counter
		p := newPersister(t, c.write)
		defer p.Close()

		p.MarkDirty()
		p.FlushAndWait()
		assert.Equal(t, 1, c.count(), "write should be done when FlushAndWait returns")

		p.FlushAndWait()
		assert.Equal(t, 1, c.count(), "clean state should not write")
	})
}

func TestPersister_FlushAndWait_WaitsForRunningWrite(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var finished atomic.Bool
		p := newPersister(t, func(context.Context) {
			time.Sleep(time.Second)
			finished.Store(true)
		})
		defer p.Close()

		p.MarkDirty()
		time.Sleep(window + time.Millisecond)
		synctest.Wait() // worker is now inside the slow write

		p.FlushAndWait()
		assert.True(t, finished.Load(), "FlushAndWait must not return while a write is running")
	})
}

func TestPersister_MutationDuringWriteSchedulesAnother(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var c counter
		var p *persister.Persister
		p = newPersister(t, func(ctx context.Context) {
			if c.count() == 0 {
				p.MarkDirty()
			}
			c.write(ctx)
		})
		defer p.Close()

		p.MarkDirty()
		time.Sleep(window + time.Millisecond)
		synctest.Wait()
		assert.Equal(t, 1, c.count())

		time.Sleep(window + time.Millisecond)
		synctest.Wait()
		assert.Equal(t, 2, c.count(), "mutation during the write must not be lost")
	})
}

func TestPersister_Close(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var c counter
		p := newPersister(t, c.write)

		p.MarkDirty()
		p.Close()
		assert.Equal(t, 1, c.count(), "Close should flush pending changes")

		p.Close()
		p.MarkDirty()
		p.FlushNow()
		p.FlushAndWait()
		time.Sleep(2 * window)
		synctest.Wait()
		assert.Equal(t, 1, c.count(), "calls after Close are no-ops")
	})
}

func TestPersister_Close_Clean(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var c counter
		p := newPersister(t, c.write)

		p.Close()
		assert.Equal(t, 0, c.count())
	})
}

func TestPersister_WritePanicIsLogged(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		logger := mocks.NewMockLogger(ctrl)
		logger.EXPECT().Error(gomock.Any()).Times(1)

		var calls atomic.Int32
		p := persister.New(window, func(context.Context) {
			if calls.Add(1) == 1 {
				panic("disk on fire")
			}
		}, logger)
		defer p.Close()

		p.MarkDirty()
		p.FlushAndWait()

		p.MarkDirty()
		p.FlushAndWait()
		assert.Equal(t, int32(2), calls.Load(), "worker should survive a panicking write")
	})
}
