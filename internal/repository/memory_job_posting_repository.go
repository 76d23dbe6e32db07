package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"job-board/internal/domain/posting"
)

// MemoryJobPostingRepository keeps postings in process memory. The server
// falls back to it when no database host is configured.
type MemoryJobPostingRepository struct {
	mu     sync.RWMutex
	rows   []posting.JobPosting
	nextID int64
	now    func() time.Time
}

func NewMemoryJobPostingRepository(now func() time.Time) *MemoryJobPostingRepository {
	if now == nil {
		now = time.Now
	}
	return &MemoryJobPostingRepository{nextID: 1, now: now}
}

func (r *MemoryJobPostingRepository) Insert(ctx context.Context, p *posting.JobPosting) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = r.nextID
	r.nextID++
	p.CreatedAt = r.now().UTC()
	r.rows = append(r.rows, *p)
	return nil
}

func (r *MemoryJobPostingRepository) FindMany(ctx context.Context, f JobPostingFilter, order Order) ([]posting.JobPosting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	title := strings.ToLower(f.JobTitle)
	location := strings.ToLower(f.Location)

	r.mu.RLock()
	out := make([]posting.JobPosting, 0, len(r.rows))
	for _, p := range r.rows {
		if title != "" && !strings.Contains(strings.ToLower(p.JobTitle), title) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(p.Location), location) {
			continue
		}
		if f.JobType != "" && p.JobType != f.JobType {
			continue
		}
		out = append(out, p)
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if order == OldestFirst {
			a, b = b, a
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
	return out, nil
}
