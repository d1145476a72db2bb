// Package parallel runs the independent units of a pixel-sort tick on a
// bounded set of goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a fixed set of goroutines executing batches of units.
//
// Each worker owns a queue. A worker whose queue is empty steals from the
// others, which keeps all workers busy when segments differ in length.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int

	// queues holds one buffered queue per worker.
	queues []chan func()

	// done is closed by Close to stop the workers.
	done chan struct{}

	// wg tracks running worker goroutines.
	wg sync.WaitGroup

	// running is false once Close has been called.
	running atomic.Bool

	// executed counts units completed by ExecuteAll.
	executed atomic.Int64
}

// NewWorkerPool starts a pool of the given size. A size of 0 or less
// selects GOMAXPROCS.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case fn := <-own:
			p.run(fn)
		default:
			if fn := p.steal(id); fn != nil {
				p.run(fn)
				continue
			}
			select {
			case <-p.done:
				p.drain(own)
				return
			case fn := <-own:
				p.run(fn)
			}
		}
	}
}

func (p *WorkerPool) run(fn func()) {
	if fn == nil {
		return
	}
	fn()
}

// drain runs whatever is left in queue.
func (p *WorkerPool) drain(queue chan func()) {
	for {
		select {
		case fn := <-queue:
			p.run(fn)
		default:
			return
		}
	}
}

// steal takes one unit from another worker's queue, or returns nil.
func (p *WorkerPool) steal(self int) func() {
	for i := range p.workers {
		if i == self {
			continue
		}
		select {
		case fn := <-p.queues[i]:
			return fn
		default:
		}
	}
	return nil
}

// ExecuteAll distributes units round-robin and blocks until every one of
// them has returned. It is the join barrier of a tick: no unit is still
// running when ExecuteAll returns.
//
// ExecuteAll reports false, without running anything, when the pool is
// closed.
func (p *WorkerPool) ExecuteAll(units []func()) bool {
	if !p.running.Load() {
		return false
	}
	if len(units) == 0 {
		return true
	}

	var barrier sync.WaitGroup
	barrier.Add(len(units))

	for i, fn := range units {
		unit := func() {
			defer barrier.Done()
			fn()
			p.executed.Add(1)
		}
		select {
		case p.queues[i%p.workers] <- unit:
		case <-p.done:
			// Close raced with submission; the workers are draining, so
			// run the unit here to keep the barrier intact.
			unit()
		}
	}

	barrier.Wait()
	return true
}

// Close stops the workers after the queued units have run. It is safe to
// call more than once.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the pool size.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}

// Executed returns the number of units completed by ExecuteAll since the
// pool was created.
func (p *WorkerPool) Executed() int64 {
	return p.executed.Load()
}

// QueuedWork approximates the number of units waiting in queues.
func (p *WorkerPool) QueuedWork() int {
	total := 0
	for _, q := range p.queues {
		total += len(q)
	}
	return total
}
