package parallel

import (
	"sync/atomic"
	"testing"
)

func TestRunCoversEveryIndexOnce(t *testing.T) {
	p := NewPool(4, 1)
	defer p.Stop()

	for _, n := range []int{1, 3, 4, 5, 97, 1000} {
		hits := make([]int32, n)
		p.Run(n, func(chunk, start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i, h := range hits {
			if h != 1 {
				t.Fatalf("n=%d: index %d visited %d times", n, i, h)
			}
		}
	}
}

func TestChunkIndicesMatchChunks(t *testing.T) {
	p := NewPool(3, 1)
	defer p.Stop()

	const n = 10
	want := p.Chunks(n)
	if want != 3 {
		t.Fatalf("expected 3 chunks for 10 elements on 3 workers, got %d", want)
	}

	seen := make([]int32, want)
	p.Run(n, func(chunk, start, end int) {
		if chunk < 0 || chunk >= want {
			t.Errorf("chunk index %d out of range", chunk)
			return
		}
		atomic.AddInt32(&seen[chunk], 1)
	})
	for i, s := range seen {
		if s != 1 {
			t.Errorf("chunk %d ran %d times", i, s)
		}
	}
}

func TestSmallJobsRunInline(t *testing.T) {
	p := NewPool(8, 100)
	defer p.Stop()

	if got := p.Chunks(50); got != 1 {
		t.Errorf("expected 1 chunk below threshold, got %d", got)
	}
	if got := p.Chunks(0); got != 0 {
		t.Errorf("expected 0 chunks for empty job, got %d", got)
	}

	calls := 0
	p.Run(50, func(chunk, start, end int) {
		calls++
		if chunk != 0 || start != 0 || end != 50 {
			t.Errorf("unexpected inline chunk (%d, %d, %d)", chunk, start, end)
		}
	})
	if calls != 1 {
		t.Errorf("expected single inline call, got %d", calls)
	}
	if p.running {
		t.Error("workers should not start for inline jobs")
	}
}

func TestStopAndRestart(t *testing.T) {
	p := NewPool(2, 1)

	var total int64
	sum := func(chunk, start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt64(&total, int64(i))
		}
	}

	p.Run(100, sum)
	p.Stop()
	p.Stop() // second stop is a no-op
	p.Run(100, sum)
	p.Stop()

	if total != 2*4950 {
		t.Errorf("expected %d, got %d", 2*4950, total)
	}
}

func TestDefaults(t *testing.T) {
	p := NewPool(0, 0)
	if p.Workers() < 1 {
		t.Errorf("expected at least one worker, got %d", p.Workers())
	}
	if p.threshold != DefaultThreshold {
		t.Errorf("expected default threshold, got %d", p.threshold)
	}
}
