package seeder

import (
	"context"

	"job-board/internal/usecase"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, jobs usecase.JobPostingUsecase) error
}
