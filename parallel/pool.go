// Package parallel runs jobs on a fixed set of goroutines.
package parallel

import (
	"runtime"
	"sync"
)

type (
	// WorkerFunc queues a job. It may block while all workers are busy.
	WorkerFunc func(func())
	// WaitFunc stops accepting jobs and blocks until queued ones finish.
	WaitFunc func()
)

// Pool is single use: once Wait returns, Do must not be called again.
type Pool struct {
	wg    sync.WaitGroup
	jobs  chan func()
	close func()
}

// Start launches numWorkers goroutines, or GOMAXPROCS of them when
// numWorkers < 1. With one worker jobs run inline on the caller.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{close: func() {}}
	if numWorkers == 1 {
		return pool
	}

	pool.jobs = make(chan func(), numWorkers)
	for range numWorkers {
		pool.wg.Go(func() {
			for f := range pool.jobs {
				f()
			}
		})
	}
	pool.close = sync.OnceFunc(func() { close(pool.jobs) })

	return pool
}

func (p *Pool) Do(f func()) {
	if p.jobs == nil {
		f()
		return
	}
	p.jobs <- f
}

func (p *Pool) Wait() {
	p.close()
	p.wg.Wait()
}
