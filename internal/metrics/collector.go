package metrics

import (
	"cmp"
	"errors"
	"slices"
	"sync"
)

// ErrCollectorClosed is returned by Add after Wait.
var ErrCollectorClosed = errors.New("collector closed")

// Item is the count of one path.
type Item struct {
	Path string
	Count
}

type job struct {
	path    string
	content []byte
}

// Collector counts texts on a pool of workers. Counts of the same path are
// summed.
type Collector struct {
	mu      sync.Mutex // guards items
	sendMu  sync.RWMutex
	closed  bool
	wg      sync.WaitGroup
	jobs    chan job
	counter Counter
	items   map[string]Count
}

// NewCollector starts workers goroutines counting with counter.
func NewCollector(counter Counter, workers int) *Collector {
	if workers < 1 {
		workers = 1
	}
	c := &Collector{
		jobs:    make(chan job, workers*2),
		counter: counter,
		items:   make(map[string]Count),
	}
	c.wg.Add(workers)
	for range workers {
		go c.worker()
	}
	return c
}

func (c *Collector) worker() {
	defer c.wg.Done()
	for j := range c.jobs {
		n := c.counter.Count(j.content)

		c.mu.Lock()
		item := c.items[j.path]
		item.Add(n)
		c.items[j.path] = item
		c.mu.Unlock()
	}
}

// Add queues content for counting under path. It is safe to call
// concurrently, and fails once Wait has been called.
func (c *Collector) Add(path string, content []byte) error {
	c.sendMu.RLock()
	defer c.sendMu.RUnlock()
	if c.closed {
		return ErrCollectorClosed
	}
	c.jobs <- job{path: path, content: content}
	return nil
}

// Wait blocks until every queued text is counted. It may be called more than
// once.
func (c *Collector) Wait() {
	c.sendMu.Lock()
	if !c.closed {
		c.closed = true
		close(c.jobs)
	}
	c.sendMu.Unlock()
	c.wg.Wait()
}

// Items returns the counts sorted by path. It waits for pending work.
func (c *Collector) Items() []Item {
	c.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Item, 0, len(c.items))
	for p, n := range c.items {
		out = append(out, Item{Path: p, Count: n})
	}
	slices.SortFunc(out, func(a, b Item) int { return cmp.Compare(a.Path, b.Path) })
	return out
}

// Total sums every count. It waits for pending work.
func (c *Collector) Total() Count {
	var total Count
	for _, item := range c.Items() {
		total.Add(item.Count)
	}
	return total
}
