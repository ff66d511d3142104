// Package rwgate implements a reader/writer gate with strict reader priority.
package rwgate

import "sync"

// A Gate is a reader/writer mutual exclusion lock that prefers readers.
// The lock can be held by an arbitrary number of readers or a single writer.
//
// A writer is admitted only when no reader holds the gate, no reader is
// waiting for it and no other writer holds it. A steady stream of readers
// can therefore keep writers out indefinitely; callers that need bounded
// write latency must arrange for it themselves.
//
// A Gate must be created with New and must not be copied after first use.
type Gate struct {
	mu      sync.Mutex
	readOK  *sync.Cond
	writeOK *sync.Cond

	waitRead  int
	reading   int
	waitWrite int
	writing   bool
}

// State is a point-in-time copy of the gate bookkeeping.
type State struct {
	WaitRead  int
	Reading   int
	WaitWrite int
	Writing   bool
}

// New creates an unlocked *Gate.
func New() *Gate {
	g := &Gate{}
	g.readOK = sync.NewCond(&g.mu)
	g.writeOK = sync.NewCond(&g.mu)
	return g
}

// RLock locks g for reading.
//
// A reader waits only while a writer holds the gate. Waiting writers
// do not block new readers.
func (g *Gate) RLock() {
	g.mu.Lock()
	for g.writing {
		g.waitRead++
		g.readOK.Wait()
		g.waitRead--
	}
	g.reading++
	g.mu.Unlock()
}

// RUnlock undoes a single RLock call;
// it does not affect other simultaneous readers.
// It is a run-time error if g is not locked for reading
// on entry to RUnlock.
func (g *Gate) RUnlock() {
	g.mu.Lock()
	if g.reading <= 0 {
		g.mu.Unlock()
		panic("rwgate: RUnlock of unlocked Gate")
	}
	g.reading--
	// последний читатель будит писателей, только если новых читателей в очереди нет
	if g.reading == 0 && g.waitWrite > 0 && g.waitRead == 0 {
		g.writeOK.Broadcast()
	}
	g.mu.Unlock()
}

// Lock locks g for writing.
// If the gate is held by readers or a writer, or readers are waiting
// for it, Lock blocks until all of them are gone.
func (g *Gate) Lock() {
	g.mu.Lock()
	// Broadcast будит всех писателей сразу, поэтому условие перепроверяется
	for g.reading > 0 || g.writing || g.waitRead > 0 {
		g.waitWrite++
		g.writeOK.Wait()
		g.waitWrite--
	}
	g.writing = true
	g.mu.Unlock()
}

// Unlock unlocks g for writing. It is a run-time error if g is
// not locked for writing on entry to Unlock.
//
// Waiting writers are woken only when no reader is waiting;
// otherwise the waiting readers are released.
func (g *Gate) Unlock() {
	g.mu.Lock()
	if !g.writing {
		g.mu.Unlock()
		panic("rwgate: Unlock of unlocked Gate")
	}
	g.writing = false
	if g.waitWrite > 0 && g.waitRead == 0 {
		g.writeOK.Broadcast()
	} else {
		g.readOK.Broadcast()
	}
	g.mu.Unlock()
}

// RLocker returns a sync.Locker that calls RLock and RUnlock on g.
func (g *Gate) RLocker() sync.Locker {
	return (*rlocker)(g)
}

type rlocker Gate

func (r *rlocker) Lock()   { (*Gate)(r).RLock() }
func (r *rlocker) Unlock() { (*Gate)(r).RUnlock() }

// Read runs fn while holding g for reading.
func (g *Gate) Read(fn func()) {
	g.RLock()
	defer g.RUnlock()
	fn()
}

// Write runs fn while holding g for writing.
func (g *Gate) Write(fn func()) {
	g.Lock()
	defer g.Unlock()
	fn()
}

// State returns a snapshot of the gate counters.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return State{
		WaitRead:  g.waitRead,
		Reading:   g.reading,
		WaitWrite: g.waitWrite,
		Writing:   g.writing,
	}
}

// Idle reports whether nobody holds or waits for g.
func (g *Gate) Idle() bool {
	return g.State() == State{}
}
