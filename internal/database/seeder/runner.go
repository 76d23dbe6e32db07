package seeder

import (
	"context"
	"fmt"

	"job-board/internal/usecase"

	"go.uber.org/zap"
)

type Runner struct {
	Seeders []Seeder
	Logger  *zap.Logger
}

func (r Runner) Run(ctx context.Context, jobs usecase.JobPostingUsecase) error {
	if jobs == nil {
		return fmt.Errorf("nil job postings usecase")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, jobs); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		if r.Logger != nil {
			r.Logger.Info("seeder finished", zap.String("seeder", s.Name()))
		}
	}
	return nil
}
