// Package parallel provides a persistent worker pool for chunked data-parallel loops.
package parallel

import (
	"runtime"
	"sync"
)

// DefaultThreshold is the minimum element count to use the workers.
// Below this, running on the caller is faster than dispatching.
const DefaultThreshold = 4096

// ChunkFunc processes elements [start, end) as chunk number chunk.
// Chunks never overlap, so a ChunkFunc may write to its own range without locking.
type ChunkFunc func(chunk, start, end int)

// workChunk represents a range of elements for a worker to process.
type workChunk struct {
	index, start, end int
	fn                ChunkFunc
}

// Pool splits loops across persistent worker goroutines.
type Pool struct {
	numWorkers int
	threshold  int

	// Worker pool channels
	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running

	mu sync.Mutex // serialises Run and Stop
}

// NewPool creates a pool. workers <= 0 uses GOMAXPROCS; threshold <= 0 uses DefaultThreshold.
// Workers start lazily on the first parallel Run.
func NewPool(workers, threshold int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Pool{
		numWorkers: workers,
		threshold:  threshold,
	}
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.numWorkers
}

// Chunks returns how many chunks Run splits n elements into.
func (p *Pool) Chunks(n int) int {
	if n <= 0 {
		return 0
	}
	if n < p.threshold || p.numWorkers == 1 {
		return 1
	}
	chunkSize := p.chunkSize(n)
	return (n + chunkSize - 1) / chunkSize
}

func (p *Pool) chunkSize(n int) int {
	return (n + p.numWorkers - 1) / p.numWorkers
}

// Run calls fn over [0, n) split into Chunks(n) contiguous ranges and blocks until
// every chunk has finished. Small jobs run inline on the caller as chunk 0.
func (p *Pool) Run(n int, fn ChunkFunc) {
	if n <= 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Chunks(n) == 1 {
		fn(0, 0, n)
		return
	}

	// Ensure workers are running
	if !p.running {
		p.startWorkers()
	}

	chunkSize := p.chunkSize(n)

	// Dispatch chunks to workers
	chunksDispatched := 0
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		p.workChan <- workChunk{index: chunksDispatched, start: start, end: end, fn: fn}
		chunksDispatched++
	}

	// Wait for all chunks to complete
	for i := 0; i < chunksDispatched; i++ {
		<-p.doneChan
	}
}

// startWorkers launches persistent worker goroutines.
func (p *Pool) startWorkers() {
	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			chunk.fn(chunk.index, chunk.start, chunk.end)
			p.doneChan <- struct{}{}
		}
	}
}

// Stop signals all workers to exit and waits for them.
// The pool restarts its workers if Run is called again.
func (p *Pool) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}
