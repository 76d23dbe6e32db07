package dto

import (
	"time"

	"job-board/internal/domain/posting"
)

// CreateJobPostingRequest is the POST /jobs body.
type CreateJobPostingRequest struct {
	JobTitle            string `json:"jobTitle"`
	CompanyName         string `json:"companyName"`
	Location            string `json:"location"`
	JobType             string `json:"jobType"`
	SalaryRange         string `json:"salaryRange"`
	JobDescription      string `json:"jobDescription"`
	Requirements        string `json:"requirements"`
	Responsibilities    string `json:"responsibilities"`
	ApplicationDeadline string `json:"applicationDeadline"`
}

// Query parameter names accepted by GET /jobs.
const (
	QueryJobTitle       = "jobTitle"
	QueryLocation       = "location"
	QueryJobType        = "jobType"
	QuerySalaryRangeMin = "salaryRangeMin"
	QuerySalaryRangeMax = "salaryRangeMax"
)

type JobPostingResponse struct {
	ID                  int64  `json:"id"`
	JobTitle            string `json:"jobTitle"`
	CompanyName         string `json:"companyName"`
	Location            string `json:"location"`
	JobType             string `json:"jobType"`
	SalaryRange         string `json:"salaryRange"`
	JobDescription      string `json:"jobDescription"`
	Requirements        string `json:"requirements"`
	Responsibilities    string `json:"responsibilities"`
	ApplicationDeadline string `json:"applicationDeadline"`
	CreatedAt           string `json:"createdAt"`
}

func NewJobPostingResponse(p posting.JobPosting) JobPostingResponse {
	return JobPostingResponse{
		ID:                  p.ID,
		JobTitle:            p.JobTitle,
		CompanyName:         p.CompanyName,
		Location:            p.Location,
		JobType:             p.JobType.String(),
		SalaryRange:         p.SalaryRange,
		JobDescription:      p.JobDescription,
		Requirements:        p.Requirements,
		Responsibilities:    p.Responsibilities,
		ApplicationDeadline: p.ApplicationDeadline.String(),
		CreatedAt:           p.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}
