// Package browse holds the state of the job listing filter form: the fields a
// user edits, the filters actually applied, and the result of the last fetch.
package browse

import (
	"context"
	"errors"
	"sync"
	"time"

	"job-board/internal/client"
	"job-board/internal/domain/posting"

	"go.uber.org/zap"
)

const DefaultDebounce = 500 * time.Millisecond

var DefaultSalaryRange = SalaryRange{50000, 200000}

var ErrInvalidSalaryRange = errors.New("salary range must satisfy 0 <= min <= max")

// Fetcher loads the listing for a query. *client.Client satisfies it.
type Fetcher interface {
	ListJobPostings(ctx context.Context, q client.ListQuery) ([]posting.JobPosting, error)
}

type Filters struct {
	JobTitle string
	Location string
	JobType  string
}

type SalaryRange [2]int

func (r SalaryRange) Min() int { return r[0] }
func (r SalaryRange) Max() int { return r[1] }

// Snapshot is the form as an observer sees it. Filters are the applied values,
// not the ones still inside the debounce window.
type Snapshot struct {
	Filters     Filters
	SalaryRange SalaryRange
	Jobs        []posting.JobPosting
	Loading     bool
	Err         error
	Generation  uint64
}

type Option func(*Form)

func WithDebounce(d time.Duration) Option {
	return func(f *Form) {
		if d >= 0 {
			f.debounce = d
		}
	}
}

func WithSalaryRange(r SalaryRange) Option {
	return func(f *Form) { f.salary = r }
}

func WithLogger(l *zap.Logger) Option {
	return func(f *Form) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithObserver registers fn for every state change. Calls are serialized and
// arrive in the order the changes happened. fn must not call back into the
// Form synchronously.
func WithObserver(fn func(Snapshot)) Option {
	return func(f *Form) {
		if fn != nil {
			f.observers = append(f.observers, fn)
		}
	}
}

type Form struct {
	fetcher   Fetcher
	debounce  time.Duration
	logger    *zap.Logger
	observers []func(Snapshot)

	mu       sync.Mutex
	notifyMu sync.Mutex
	base     context.Context
	stop     context.CancelFunc
	edited   Filters
	applied  Filters
	salary   SalaryRange
	editSeq  uint64
	applySeq uint64
	timer    *time.Timer
	gen      uint64
	cancel   context.CancelFunc
	done     chan struct{}
	jobs     []posting.JobPosting
	loading  bool
	err      error
	closed   bool
	inflight sync.WaitGroup
}

func New(fetcher Fetcher, opts ...Option) *Form {
	f := &Form{
		fetcher:  fetcher,
		debounce: DefaultDebounce,
		logger:   zap.NewNop(),
		salary:   DefaultSalaryRange,
		jobs:     []posting.JobPosting{},
	}
	for _, opt := range opts {
		opt(f)
	}
	f.base, f.stop = context.WithCancel(context.Background())
	return f
}

// Start issues the first fetch with the initial filters. Fetches run under
// ctx until it is cancelled or the form is closed.
func (f *Form) Start(ctx context.Context) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.stop()
	f.base, f.stop = context.WithCancel(ctx)
	f.fetchLocked()
}

func (f *Form) SetJobTitle(v string) {
	f.edit(func(fl *Filters) { fl.JobTitle = v })
}

func (f *Form) SetLocation(v string) {
	f.edit(func(fl *Filters) { fl.Location = v })
}

func (f *Form) SetJobType(v string) {
	f.edit(func(fl *Filters) { fl.JobType = v })
}

// SetSalaryRange applies the range at once, together with the filters applied
// so far. Text edits still inside the debounce window are not flushed.
func (f *Form) SetSalaryRange(lo, hi int) error {
	if lo < 0 || lo > hi {
		return ErrInvalidSalaryRange
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	f.salary = SalaryRange{lo, hi}
	f.fetchLocked()
	return nil
}

// Edited returns the field values as typed, including ones not yet applied.
func (f *Form) Edited() Filters {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.edited
}

func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// Close stops the debounce timer, cancels the fetch in flight and waits for it
// to return.
func (f *Form) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	if f.timer != nil {
		f.timer.Stop()
	}
	if f.cancel != nil {
		f.cancel()
	}
	f.stop()
	f.mu.Unlock()

	f.inflight.Wait()
}

func (f *Form) edit(apply func(*Filters)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}

	apply(&f.edited)
	f.editSeq++
	seq := f.editSeq

	if f.timer != nil {
		f.timer.Stop()
	}
	f.timer = time.AfterFunc(f.debounce, func() { f.flush(seq) })
}

// flush applies the edited filters if no newer edit arrived meanwhile.
func (f *Form) flush(seq uint64) {
	f.mu.Lock()
	if f.closed || seq != f.editSeq || seq == f.applySeq {
		f.mu.Unlock()
		return
	}
	f.applySeq = seq
	f.applied = f.edited
	f.fetchLocked()
}

// Flush applies edits still inside the debounce window without waiting for
// it, then blocks until the latest fetch has returned or ctx is done.
func (f *Form) Flush(ctx context.Context) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil
	}
	if f.applySeq != f.editSeq {
		if f.timer != nil {
			f.timer.Stop()
		}
		f.applySeq = f.editSeq
		f.applied = f.edited
		f.fetchLocked()
		f.mu.Lock()
	}
	done := f.done
	f.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// fetchLocked starts a new generation and releases f.mu. The previous fetch,
// if any, is cancelled and its result will be dropped.
func (f *Form) fetchLocked() {
	if f.cancel != nil {
		f.cancel()
	}
	f.gen++
	gen := f.gen
	ctx, cancel := context.WithCancel(f.base)
	f.cancel = cancel
	done := make(chan struct{})
	f.done = done
	f.loading = true

	q := client.ListQuery{
		JobTitle:  f.applied.JobTitle,
		Location:  f.applied.Location,
		JobType:   f.applied.JobType,
		SalaryMin: f.salary.Min(),
		SalaryMax: f.salary.Max(),
	}

	f.inflight.Add(1)
	go f.run(ctx, cancel, done, gen, q)

	f.publishLocked()
}

func (f *Form) run(ctx context.Context, cancel context.CancelFunc, done chan struct{}, gen uint64, q client.ListQuery) {
	defer f.inflight.Done()
	defer close(done)
	defer cancel()

	jobs, err := f.fetcher.ListJobPostings(ctx, q)

	f.mu.Lock()
	if gen != f.gen || f.closed {
		f.mu.Unlock()
		f.logger.Debug("discarding stale listing", zap.Uint64("generation", gen))
		return
	}

	f.loading = false
	if err != nil {
		f.logger.Warn("fetch job postings failed", zap.Uint64("generation", gen), zap.Error(err))
		f.jobs = []posting.JobPosting{}
		f.err = err
	} else {
		if jobs == nil {
			jobs = []posting.JobPosting{}
		}
		f.jobs = jobs
		f.err = nil
	}
	f.publishLocked()
}

// publishLocked hands the current state to observers and releases f.mu.
// notifyMu is taken before f.mu is dropped so deliveries keep change order.
func (f *Form) publishLocked() {
	snap := f.snapshotLocked()
	f.notifyMu.Lock()
	f.mu.Unlock()
	defer f.notifyMu.Unlock()

	for _, fn := range f.observers {
		fn(snap)
	}
}

func (f *Form) snapshotLocked() Snapshot {
	jobs := make([]posting.JobPosting, len(f.jobs))
	copy(jobs, f.jobs)
	return Snapshot{
		Filters:     f.applied,
		SalaryRange: f.salary,
		Jobs:        jobs,
		Loading:     f.loading,
		Err:         f.err,
		Generation:  f.gen,
	}
}
