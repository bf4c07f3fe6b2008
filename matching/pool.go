package matching

import (
	"sync"

	tomb "gopkg.in/tomb.v2"

	"matchcore/domain"
)

// task is one symbol's share of a ProcessBatch call: every NewOrder command
// that batch carried for that symbol, in ingest order.
type task struct {
	symbol string
	orders []*domain.Order
}

// taskFunc is what a worker runs for one dequeued task. It is supplied by
// the MatchingEngine that owns the pool so the pool itself stays agnostic
// of order books and trade sinks.
type taskFunc func(t *task)

// pool is a fixed-size worker pool dispatching symbol-partitioned tasks.
// Lifecycle is built on gopkg.in/tomb.v2 (t.Go to launch, t.Kill/t.Wait to
// drain and join), the same idiom this repository's worker goroutines use.
//
// Completion uses a pending-counter barrier in place of a busy-wait on queue
// length: every enqueued task increments pending before it is visible to a
// worker; a worker decrements it (and broadcasts done) the moment it
// finishes the task, including when the task function panics. ProcessBatch
// blocks on done until pending reaches zero, so it can never return while a
// popped-but-unfinished task is still running.
type pool struct {
	t *tomb.Tomb

	mu       sync.Mutex
	nonEmpty *sync.Cond
	done     *sync.Cond
	queue    []*task
	pending  int
	closed   bool

	work taskFunc
}

// newPool constructs a pool with n long-lived workers and the function each
// one runs per dequeued task. Workers are started immediately.
func newPool(n int, work taskFunc) *pool {
	p := &pool{t: new(tomb.Tomb), work: work}
	p.nonEmpty = sync.NewCond(&p.mu)
	p.done = sync.NewCond(&p.mu)

	for i := 0; i < n; i++ {
		p.t.Go(p.worker)
	}
	return p
}

// submit enqueues tasks and returns once every one of them has been
// processed by some worker (the batch-completion barrier).
func (p *pool) submit(tasks []*task) {
	if len(tasks) == 0 {
		return
	}

	p.mu.Lock()
	p.queue = append(p.queue, tasks...)
	p.pending += len(tasks)
	p.mu.Unlock()
	p.nonEmpty.Broadcast()

	p.mu.Lock()
	for p.pending > 0 {
		p.done.Wait()
	}
	p.mu.Unlock()
}

// worker is the long-lived goroutine body: wait for a task or shutdown,
// process it, decrement pending, repeat.
func (p *pool) worker() error {
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.nonEmpty.Wait()
		}
		if len(p.queue) == 0 && p.closed {
			p.mu.Unlock()
			return nil
		}
		t := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		p.runTask(t)

		p.mu.Lock()
		p.pending--
		if p.pending == 0 {
			p.done.Broadcast()
		}
		p.mu.Unlock()
	}
}

// runTask executes work, recovering a panic so one bad task can never wedge
// the pending-counter barrier or take down the worker goroutine.
func (p *pool) runTask(t *task) {
	defer func() {
		recover()
	}()
	p.work(t)
}

// stop is cooperative: it marks the pool closed, wakes every worker parked
// on nonEmpty, and waits for all of them to drain the queue and exit.
// Outstanding work already running is allowed to finish; no new submit may
// be issued once stop has been called.
func (p *pool) stop() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.nonEmpty.Broadcast()

	p.t.Kill(nil)
	p.t.Wait()
}
