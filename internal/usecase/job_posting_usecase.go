package usecase

import (
	"context"
	"strings"

	"job-board/internal/domain/posting"
	apperrors "job-board/internal/errors"
	"job-board/internal/repository"
	"job-board/internal/telemetry"
	"job-board/internal/validation"

	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("job-board/internal/usecase")

// CreateJobPostingInput is the ingestion request as received on the wire.
type CreateJobPostingInput struct {
	JobTitle            string `json:"jobTitle" validate:"required"`
	CompanyName         string `json:"companyName" validate:"required"`
	Location            string `json:"location" validate:"required"`
	JobType             string `json:"jobType" validate:"required,jobtype"`
	SalaryRange         string `json:"salaryRange" validate:"required"`
	JobDescription      string `json:"jobDescription" validate:"required"`
	Requirements        string `json:"requirements" validate:"required"`
	Responsibilities    string `json:"responsibilities" validate:"required"`
	ApplicationDeadline string `json:"applicationDeadline" validate:"required,isodate"`
}

// ListJobPostingsInput is the listing request. Every field is optional.
// SalaryRangeMin and SalaryRangeMax are accepted in any form and ignored:
// salary is stored as free text, so there is nothing to compare them against.
// JobType is matched exactly as sent.
type ListJobPostingsInput struct {
	JobTitle       string `json:"jobTitle"`
	Location       string `json:"location"`
	JobType        string `json:"jobType" validate:"omitempty,jobtype"`
	SalaryRangeMin string `json:"salaryRangeMin"`
	SalaryRangeMax string `json:"salaryRangeMax"`
}

type JobPostingUsecase interface {
	Create(ctx context.Context, in CreateJobPostingInput) (posting.JobPosting, error)
	List(ctx context.Context, in ListJobPostingsInput) ([]posting.JobPosting, error)
}

type JobPostings struct {
	repo      repository.JobPostingRepository
	validator *validation.Validator
	logger    *zap.Logger
}

func NewJobPostingUsecase(repo repository.JobPostingRepository, v *validation.Validator, logger *zap.Logger) *JobPostings {
	if v == nil {
		v = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobPostings{repo: repo, validator: v, logger: logger}
}

func (u *JobPostings) Create(ctx context.Context, in CreateJobPostingInput) (posting.JobPosting, error) {
	ctx, span := tracer.Start(ctx, "JobPostings.Create")
	defer span.End()

	in = trimCreateInput(in)
	if err := u.validator.Validate("invalid job posting", in); err != nil {
		span.SetStatus(codes.Error, "validation failed")
		return posting.JobPosting{}, err
	}

	// Both already passed the validator; the checks keep the conversion honest.
	jobType, ok := posting.ParseJobType(in.JobType)
	if !ok {
		return posting.JobPosting{}, apperrors.Validation("invalid job posting", apperrors.FieldViolation{
			Field: "jobType", Rule: "jobtype", Message: "jobType is not a known job type",
		})
	}
	deadline, err := posting.ParseDate(in.ApplicationDeadline)
	if err != nil {
		return posting.JobPosting{}, apperrors.Validation("invalid job posting", apperrors.FieldViolation{
			Field: "applicationDeadline", Rule: "isodate", Message: err.Error(),
		})
	}

	p := posting.JobPosting{
		JobTitle:            in.JobTitle,
		CompanyName:         in.CompanyName,
		Location:            in.Location,
		JobType:             jobType,
		SalaryRange:         in.SalaryRange,
		JobDescription:      in.JobDescription,
		Requirements:        in.Requirements,
		Responsibilities:    in.Responsibilities,
		ApplicationDeadline: deadline,
	}

	if err := u.repo.Insert(ctx, &p); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		u.logger.Error("insert job posting", zap.Error(err))
		return posting.JobPosting{}, apperrors.Internal("store job posting", err)
	}

	span.SetAttributes(telemetry.Int("job_posting.id", int(p.ID)))
	u.logger.Info("job posting created",
		zap.Int64("id", p.ID),
		zap.String("job_type", p.JobType.String()),
		zap.String("deadline", p.ApplicationDeadline.String()))
	return p, nil
}

func (u *JobPostings) List(ctx context.Context, in ListJobPostingsInput) ([]posting.JobPosting, error) {
	ctx, span := tracer.Start(ctx, "JobPostings.List")
	defer span.End()

	in = trimListInput(in)
	if err := u.validator.Validate("invalid job posting filter", in); err != nil {
		span.SetStatus(codes.Error, "validation failed")
		return nil, err
	}
	if in.SalaryRangeMin != "" || in.SalaryRangeMax != "" {
		u.logger.Debug("salary range filter ignored",
			zap.String("min", in.SalaryRangeMin),
			zap.String("max", in.SalaryRangeMax))
	}

	f := repository.JobPostingFilter{
		JobTitle: in.JobTitle,
		Location: in.Location,
		JobType:  posting.JobType(in.JobType),
	}
	span.SetAttributes(
		telemetry.String("filter.job_title", f.JobTitle),
		telemetry.String("filter.location", f.Location),
		telemetry.String("filter.job_type", string(f.JobType)),
		telemetry.Bool("filter.salary_ignored", in.SalaryRangeMin != "" || in.SalaryRangeMax != ""),
	)

	rows, err := u.repo.FindMany(ctx, f, repository.NewestFirst)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		u.logger.Error("list job postings", zap.Error(err))
		return nil, apperrors.Internal("query job postings", err)
	}
	if rows == nil {
		rows = []posting.JobPosting{}
	}

	span.SetAttributes(telemetry.Int("result.count", len(rows)))
	return rows, nil
}

func trimCreateInput(in CreateJobPostingInput) CreateJobPostingInput {
	in.JobTitle = strings.TrimSpace(in.JobTitle)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.Location = strings.TrimSpace(in.Location)
	in.JobType = strings.TrimSpace(in.JobType)
	in.SalaryRange = strings.TrimSpace(in.SalaryRange)
	in.JobDescription = strings.TrimSpace(in.JobDescription)
	in.Requirements = strings.TrimSpace(in.Requirements)
	in.Responsibilities = strings.TrimSpace(in.Responsibilities)
	in.ApplicationDeadline = strings.TrimSpace(in.ApplicationDeadline)
	return in
}

func trimListInput(in ListJobPostingsInput) ListJobPostingsInput {
	in.JobTitle = strings.TrimSpace(in.JobTitle)
	in.Location = strings.TrimSpace(in.Location)
	in.SalaryRangeMin = strings.TrimSpace(in.SalaryRangeMin)
	in.SalaryRangeMax = strings.TrimSpace(in.SalaryRangeMax)
	return in
}
