package repository

import (
	"context"
	"strings"

	"job-board/internal/domain/posting"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// JobPostingFilter holds the optional predicate terms of a listing. Zero
// values mean "no constraint"; set terms are AND-combined.
type JobPostingFilter struct {
	JobTitle string
	Location string
	JobType  posting.JobType
}

func (f JobPostingFilter) IsEmpty() bool {
	return f.JobTitle == "" && f.Location == "" && f.JobType == ""
}

type Order int

const (
	NewestFirst Order = iota
	OldestFirst
)

// JobPostingRepository is the whole storage surface the use cases see.
type JobPostingRepository interface {
	Insert(ctx context.Context, p *posting.JobPosting) error
	FindMany(ctx context.Context, f JobPostingFilter, order Order) ([]posting.JobPosting, error)
}

type GormJobPostingRepository struct {
	db *gorm.DB
}

func NewGormJobPostingRepository(db *gorm.DB) *GormJobPostingRepository {
	return &GormJobPostingRepository{db: db}
}

// Insert writes p and fills in the generated ID and CreatedAt.
func (r *GormJobPostingRepository) Insert(ctx context.Context, p *posting.JobPosting) error {
	p.ID = 0
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *GormJobPostingRepository) FindMany(ctx context.Context, f JobPostingFilter, order Order) ([]posting.JobPosting, error) {
	out := make([]posting.JobPosting, 0)
	if err := r.listQuery(ctx, f, order).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormJobPostingRepository) listQuery(ctx context.Context, f JobPostingFilter, order Order) *gorm.DB {
	desc := order == NewestFirst
	return r.db.WithContext(ctx).
		Model(&posting.JobPosting{}).
		Scopes(filterScopes(f)...).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "created_at"}, Desc: desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: desc})
}

func filterScopes(f JobPostingFilter) []func(*gorm.DB) *gorm.DB {
	scopes := make([]func(*gorm.DB) *gorm.DB, 0, 3)
	if f.JobTitle != "" {
		scopes = append(scopes, containsFold("job_title", f.JobTitle))
	}
	if f.Location != "" {
		scopes = append(scopes, containsFold("location", f.Location))
	}
	if f.JobType != "" {
		jt := string(f.JobType)
		scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
			return db.Where("job_type = ?", jt)
		})
	}
	return scopes
}

// containsFold matches column values containing needle, ignoring case. LIKE
// wildcards in needle are matched literally.
func containsFold(column, needle string) func(*gorm.DB) *gorm.DB {
	pattern := "%" + escapeLike(needle) + "%"
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(clause.Expr{SQL: "? ILIKE ?", Vars: []any{clause.Column{Name: column}, pattern}})
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
