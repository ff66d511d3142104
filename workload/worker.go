package workload

import "math/rand/v2"

//go:generate mockgen -source=worker.go -destination=mock_worker_test.go -package=workload

// Locker is the reader/writer gate a worker goes through.
type Locker interface {
	RLock()
	RUnlock()
	Lock()
	Unlock()
}

// Set is the shared key set a worker operates on.
type Set interface {
	Member(key int) bool
	Insert(key int) bool
	Delete(key int) bool
}

// populateStream separates the population stream from worker streams
// that share the same seed.
const populateStream = 0x5eed

// Populate inserts up to n random keys from [0, maxKey) into set, giving up
// after 2n attempts. It returns the number of keys actually inserted.
// Populate must run before any worker starts.
func Populate(set Set, n int, seed uint64, maxKey int) int {
	rng := rand.New(rand.NewPCG(seed, populateStream))
	inserted := 0
	for attempts := 0; inserted < n && attempts < 2*n; attempts++ {
		if set.Insert(rng.IntN(maxKey)) {
			inserted++
		}
	}
	return inserted
}

// Work runs cfg.OpsPerThread() randomized operations for worker rank and
// returns the local counters. Every operation goes through gate: searches
// hold it for reading, inserts and deletes hold it for writing.
func Work(rank int, cfg Config, gate Locker, set Set) Counters {
	rng := rand.New(rand.NewPCG(cfg.Seed*uint64(rank+1), 0))
	ops := cfg.OpsPerThread()

	var local Counters
	for i := 0; i < ops; i++ {
		selector := rng.Float64()
		key := rng.IntN(cfg.MaxKey)

		switch {
		case selector < cfg.SearchPercent:
			gate.RLock()
			set.Member(key)
			gate.RUnlock()
			local.Member++
		case selector < cfg.SearchPercent+cfg.InsertPercent:
			gate.Lock()
			ok := set.Insert(key)
			gate.Unlock()
			local.Insert++
			if !ok {
				local.NotInserted++
			}
		default:
			gate.Lock()
			ok := set.Delete(key)
			gate.Unlock()
			local.Delete++
			if !ok {
				local.NotDeleted++
			}
		}
	}
	return local
}
