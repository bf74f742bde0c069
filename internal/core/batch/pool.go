package batch

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"recipe-ingest/internal/core/ingredient"
	"recipe-ingest/internal/pkg/common"

	"go.uber.org/zap"
)

// LineParser parses a single ingredient line.
type LineParser interface {
	Parse(line string) ingredient.ParsedIngredient
}

// Options configures a Pool.
type Options struct {
	Workers   int
	QueueSize int
	ChunkSize int
}

// task is one chunk of a block, parsed into its slot of the shared output.
type task struct {
	ctx   context.Context
	lines []string
	out   []ingredient.ParsedIngredient
	wg    *sync.WaitGroup
}

// Status reports pool occupancy.
type Status struct {
	QueueLength    int   `json:"queue_length"`
	ProcessedCount int64 `json:"processed_count"`
	MaxQueueSize   int   `json:"max_queue_size"`
	Workers        int   `json:"workers"`
}

// Pool parses large blocks in parallel while keeping input order.
type Pool struct {
	parser    LineParser
	opts      Options
	queue     chan *task
	processed int64
	wg        sync.WaitGroup

	mu     sync.RWMutex // guards closed against sends on a closed queue
	closed bool
}

// NewPool starts the workers. Zero options fall back to small defaults.
func NewPool(parser LineParser, opts Options) *Pool {
	if parser == nil {
		parser = ingredient.NewParser()
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 64
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = 16
	}

	p := &Pool{
		parser: parser,
		opts:   opts,
		queue:  make(chan *task, opts.QueueSize),
	}
	for i := 0; i < opts.Workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	common.LogDebug("batch pool started",
		zap.Int("workers", opts.Workers),
		zap.Int("queue_size", opts.QueueSize),
	)
	return p
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()
	for t := range p.queue {
		p.run(t)
	}
	common.LogDebug("batch worker stopped", zap.Int("worker", id))
}

func (p *Pool) run(t *task) {
	defer t.wg.Done()
	for i, line := range t.lines {
		if t.ctx.Err() != nil {
			return
		}
		t.out[i] = p.parser.Parse(line)
		atomic.AddInt64(&p.processed, 1)
	}
}

// ParseLines parses lines like ingredient.ParseLines, splitting the block into
// chunks handled by the workers. Results keep input order and section headers
// are carried after all chunks finish.
func (p *Pool) ParseLines(ctx context.Context, lines []string) ([]ingredient.ParsedIngredient, error) {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	out := make([]ingredient.ParsedIngredient, len(kept))

	var wg sync.WaitGroup
	for start := 0; start < len(kept); start += p.opts.ChunkSize {
		end := start + p.opts.ChunkSize
		if end > len(kept) {
			end = len(kept)
		}
		t := &task{ctx: ctx, lines: kept[start:end], out: out[start:end], wg: &wg}
		wg.Add(1)
		if err := p.enqueue(ctx, t); err != nil {
			wg.Done()
			wg.Wait()
			return nil, err
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ingredient.ApplySections(out)
	return out, nil
}

func (p *Pool) enqueue(ctx context.Context, t *task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return common.ErrServiceUnavailable
	}
	select {
	case p.queue <- t:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status returns a snapshot of the pool.
func (p *Pool) Status() Status {
	return Status{
		QueueLength:    len(p.queue),
		ProcessedCount: atomic.LoadInt64(&p.processed),
		MaxQueueSize:   p.opts.QueueSize,
		Workers:        p.opts.Workers,
	}
}

// Close stops accepting work and waits for queued chunks to drain.
func (p *Pool) Close() {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()
	p.wg.Wait()
}
