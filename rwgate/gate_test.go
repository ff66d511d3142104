package rwgate

import (
	"math/rand/v2"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const (
	waitFor = time.Second
	tick    = time.Millisecond
	settle  = 50 * time.Millisecond
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func lockAsync(g *Gate) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		g.Lock()
		close(done)
	}()
	return done
}

func rlockAsync(g *Gate) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		g.RLock()
		close(done)
	}()
	return done
}

func closed(ch <-chan struct{}) func() bool {
	return func() bool {
		select {
		case <-ch:
			return true
		default:
			return false
		}
	}
}

func TestGate_ZeroState(t *testing.T) {
	g := New()
	require.True(t, g.Idle())
	require.Equal(t, State{}, g.State())
}

func TestGate_ReadersShare(t *testing.T) {
	g := New()

	g.RLock()
	g.RLock()
	require.Equal(t, State{Reading: 2}, g.State())

	g.RUnlock()
	g.RUnlock()
	require.True(t, g.Idle())
}

func TestGate_WriterExcludesReaders(t *testing.T) {
	g := New()
	g.Lock()
	require.Equal(t, State{Writing: true}, g.State())

	r := rlockAsync(g)
	require.Eventually(t, func() bool { return g.State().WaitRead == 1 }, waitFor, tick)
	require.Never(t, closed(r), settle, tick)

	g.Unlock()
	require.Eventually(t, closed(r), waitFor, tick)
	require.Equal(t, State{Reading: 1}, g.State())

	g.RUnlock()
	require.True(t, g.Idle())
}

func TestGate_WriterWaitsForReaders(t *testing.T) {
	g := New()
	g.RLock()

	w := lockAsync(g)
	require.Eventually(t, func() bool { return g.State().WaitWrite == 1 }, waitFor, tick)
	require.Never(t, closed(w), settle, tick)

	g.RUnlock()
	require.Eventually(t, closed(w), waitFor, tick)
	require.Equal(t, State{Writing: true}, g.State())

	g.Unlock()
	require.True(t, g.Idle())
}

func TestGate_WritersExcludeEachOther(t *testing.T) {
	g := New()
	g.Lock()

	w := lockAsync(g)
	require.Eventually(t, func() bool { return g.State().WaitWrite == 1 }, waitFor, tick)
	require.Never(t, closed(w), settle, tick)

	g.Unlock()
	require.Eventually(t, closed(w), waitFor, tick)
	g.Unlock()
	require.True(t, g.Idle())
}

func TestGate_ReaderPriority(t *testing.T) {
	g := New()
	g.RLock()

	w := lockAsync(g)
	require.Eventually(t, func() bool { return g.State().WaitWrite == 1 }, waitFor, tick)

	// Ждущий писатель не мешает новым читателям.
	g.RLock()
	require.Equal(t, State{Reading: 2, WaitWrite: 1}, g.State())

	g.RUnlock()
	require.Never(t, closed(w), settle, tick)

	g.RUnlock()
	require.Eventually(t, closed(w), waitFor, tick)
	g.Unlock()
}

func TestGate_WaitingReadersGoBeforeWaitingWriters(t *testing.T) {
	g := New()
	g.Lock()

	order := make(chan string, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		g.RLock()
		order <- "reader"
		g.RUnlock()
	}()
	go func() {
		defer wg.Done()
		g.Lock()
		order <- "writer"
		g.Unlock()
	}()

	require.Eventually(t, func() bool {
		s := g.State()
		return s.WaitRead == 1 && s.WaitWrite == 1
	}, waitFor, tick)

	g.Unlock()
	wg.Wait()

	require.Equal(t, "reader", <-order)
	require.Equal(t, "writer", <-order)
	require.True(t, g.Idle())
}

func TestGate_OverlappingReadersStarveWriter(t *testing.T) {
	g := New()
	g.RLock()

	w := lockAsync(g)
	require.Eventually(t, func() bool { return g.State().WaitWrite == 1 }, waitFor, tick)

	for i := 0; i < 5; i++ {
		g.RLock()
		g.RUnlock()
		require.Never(t, closed(w), 10*time.Millisecond, tick)
	}

	g.RUnlock()
	require.Eventually(t, closed(w), waitFor, tick)
	g.Unlock()
}

func TestGate_Misuse(t *testing.T) {
	g := New()
	require.Panics(t, g.RUnlock)
	require.Panics(t, g.Unlock)

	g.RLock()
	require.Panics(t, g.Unlock)
	g.RUnlock()
	require.True(t, g.Idle())
}

func TestGate_Helpers(t *testing.T) {
	g := New()

	l := g.RLocker()
	l.Lock()
	require.Equal(t, State{Reading: 1}, g.State())
	l.Unlock()

	g.Read(func() {
		require.Equal(t, State{Reading: 1}, g.State())
	})
	g.Write(func() {
		require.Equal(t, State{Writing: true}, g.State())
	})
	require.True(t, g.Idle())
}

func TestGate_Visibility(t *testing.T) {
	g := New()
	var value int

	done := make(chan struct{})
	go func() {
		defer close(done)
		g.Write(func() { value = 42 })
	}()
	<-done

	g.Read(func() {
		require.Equal(t, 42, value)
	})
}

func TestGate_MutualExclusionStress(t *testing.T) {
	const (
		workers = 16
		iters   = 2000
	)

	g := New()
	var (
		readers    atomic.Int32
		writers    atomic.Int32
		violations atomic.Int32
		wg         sync.WaitGroup
	)

	check := func() {
		r, w := readers.Load(), writers.Load()
		if w > 1 || (w == 1 && r > 0) {
			violations.Add(1)
		}
	}

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()
			rng := rand.New(rand.NewPCG(seed, 0))
			for j := 0; j < iters; j++ {
				if rng.IntN(10) < 8 {
					g.RLock()
					readers.Add(1)
					check()
					runtime.Gosched()
					check()
					readers.Add(-1)
					g.RUnlock()
				} else {
					g.Lock()
					writers.Add(1)
					check()
					runtime.Gosched()
					check()
					writers.Add(-1)
					g.Unlock()
				}
			}
		}(uint64(i + 1))
	}
	wg.Wait()

	require.Zero(t, violations.Load())
	require.True(t, g.Idle())
}
