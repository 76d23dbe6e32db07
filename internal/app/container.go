package app

import (
	"context"
	"fmt"
	"strings"

	"job-board/internal/config"
	"job-board/internal/database"
	"job-board/internal/database/migration"
	"job-board/internal/database/orm"
	dbpostgres "job-board/internal/database/postgres"
	"job-board/internal/database/seeder"
	"job-board/internal/repository"
	"job-board/internal/usecase"
	"job-board/internal/validation"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

var jobPostingColumns = []string{
	"id",
	"job_title",
	"company_name",
	"location",
	"job_type",
	"salary_range",
	"job_description",
	"requirements",
	"responsibilities",
	"application_deadline",
	"created_at",
}

type Container struct {
	Config  config.Config
	Logger  *zap.Logger
	DB      database.DB
	Storage string

	JobPostings usecase.JobPostingUsecase
}

// NewContainer opens the database and wires the use cases on top of it. With
// no DB_HOST configured postings are kept in memory for the life of the process.
func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Container{Config: cfg, Logger: logger}

	var repo repository.JobPostingRepository
	if strings.TrimSpace(cfg.Database.DBHost) == "" {
		logger.Warn("DB_HOST not set, job postings are kept in memory")
		repo = repository.NewMemoryJobPostingRepository(nil)
		c.Storage = StorageMemory
	} else {
		db, gdb, err := openDatabase(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		c.DB = db
		c.Storage = StoragePostgres
		repo = repository.NewGormJobPostingRepository(gdb)
	}

	c.JobPostings = usecase.NewJobPostingUsecase(repo, validation.New(), logger.Named("jobs"))

	if cfg.Database.SeedSampleData {
		runner := seeder.Runner{Seeders: seeder.Defaults(), Logger: logger.Named("seeder")}
		if err := runner.Run(ctx, c.JobPostings); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("seed sample data: %w", err)
		}
	}

	return c, nil
}

func openDatabase(ctx context.Context, cfg config.Config, logger *zap.Logger) (database.DB, *gorm.DB, error) {
	db, err := dbpostgres.Connect(ctx, cfg.Database, logger.Named("db"))
	if err != nil {
		return nil, nil, err
	}
	gdb, err := orm.Open(db.SQLDB(), logger.Named("gorm"))
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	if cfg.Database.AutoMigrate {
		runner := migration.Runner{Dir: cfg.Database.MigrationsDir, Logger: logger.Named("migration")}
		if _, err := runner.Run(ctx, gdb); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	if err := database.EnsureTableColumns(ctx, db, "job_postings", jobPostingColumns...); err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return db, gdb, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
