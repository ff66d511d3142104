package workload

import "sync"

// Counters tallies the operations performed by workers.
type Counters struct {
	Member      int `yaml:"member"`
	Insert      int `yaml:"insert"`
	Delete      int `yaml:"delete"`
	NotInserted int `yaml:"not_inserted"`
	NotDeleted  int `yaml:"not_deleted"`
}

// Total is the number of executed operations.
func (c Counters) Total() int {
	return c.Member + c.Insert + c.Delete
}

// Inserted is the number of inserts that changed the list.
func (c Counters) Inserted() int {
	return c.Insert - c.NotInserted
}

// Deleted is the number of deletes that changed the list.
func (c Counters) Deleted() int {
	return c.Delete - c.NotDeleted
}

func (c *Counters) add(o Counters) {
	c.Member += o.Member
	c.Insert += o.Insert
	c.Delete += o.Delete
	c.NotInserted += o.NotInserted
	c.NotDeleted += o.NotDeleted
}

// tally is the process-wide sum. Its mutex is never the gate mutex.
type tally struct {
	mu  sync.Mutex
	sum Counters
}

func (t *tally) merge(local Counters) {
	t.mu.Lock()
	t.sum.add(local)
	t.mu.Unlock()
}

func (t *tally) snapshot() Counters {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sum
}
