package handler

import (
	"job-board/internal/delivery/http/dto"
	"job-board/internal/delivery/http/middleware"
	"job-board/internal/pkg/response"
	"job-board/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	uc usecase.JobPostingUsecase
}

func NewJobsHandler(uc usecase.JobPostingUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/jobs", h.HandleCreateJob)
	r.Get("/jobs", h.HandleListJobs)
}

func (h *JobsHandler) HandleCreateJob(c fiber.Ctx) error {
	var req dto.CreateJobPostingRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid request body", nil, err)
	}

	created, err := h.uc.Create(c.Context(), usecase.CreateJobPostingInput{
		JobTitle:            req.JobTitle,
		CompanyName:         req.CompanyName,
		Location:            req.Location,
		JobType:             req.JobType,
		SalaryRange:         req.SalaryRange,
		JobDescription:      req.JobDescription,
		Requirements:        req.Requirements,
		Responsibilities:    req.Responsibilities,
		ApplicationDeadline: req.ApplicationDeadline,
	})
	if err != nil {
		return middleware.FromDomainError(err)
	}

	return response.Raw(c, fiber.StatusCreated, dto.NewJobPostingResponse(created))
}

func (h *JobsHandler) HandleListJobs(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context(), usecase.ListJobPostingsInput{
		JobTitle:       c.Query(dto.QueryJobTitle),
		Location:       c.Query(dto.QueryLocation),
		JobType:        c.Query(dto.QueryJobType),
		SalaryRangeMin: c.Query(dto.QuerySalaryRangeMin),
		SalaryRangeMax: c.Query(dto.QuerySalaryRangeMax),
	})
	if err != nil {
		return middleware.FromDomainError(err)
	}

	out := make([]dto.JobPostingResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.NewJobPostingResponse(it))
	}

	return response.Raw(c, fiber.StatusOK, out)
}
