package seeder

import (
	"context"

	"job-board/internal/usecase"
)

// SamplePostingsSeeder posts a handful of demo jobs through the regular
// ingestion path. It does nothing when any posting already exists.
type SamplePostingsSeeder struct{}

func (SamplePostingsSeeder) Name() string { return "sample_postings" }

func (SamplePostingsSeeder) Run(ctx context.Context, jobs usecase.JobPostingUsecase) error {
	existing, err := jobs.List(ctx, usecase.ListJobPostingsInput{})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for _, in := range samplePostings {
		if _, err := jobs.Create(ctx, in); err != nil {
			return err
		}
	}
	return nil
}

var samplePostings = []usecase.CreateJobPostingInput{
	{
		JobTitle:            "Backend Engineer",
		CompanyName:         "Acme",
		Location:            "Remote",
		JobType:             "Full-time",
		SalaryRange:         "$100,000 - $120,000",
		JobDescription:      "Design and run the services behind our hiring platform.",
		Requirements:        "3+ years of Go or a similar language; PostgreSQL.",
		Responsibilities:    "Own API endpoints end to end; review code; keep on-call healthy.",
		ApplicationDeadline: "2030-12-31",
	},
	{
		JobTitle:            "Frontend Developer",
		CompanyName:         "Globex",
		Location:            "Berlin, Germany",
		JobType:             "Part-time",
		SalaryRange:         "€30/hour",
		JobDescription:      "Build the job search UI.",
		Requirements:        "React, TypeScript, accessibility basics.",
		Responsibilities:    "Ship features with design; write component tests.",
		ApplicationDeadline: "2030-06-30",
	},
	{
		JobTitle:            "Data Analyst",
		CompanyName:         "Initech",
		Location:            "Jakarta, Indonesia",
		JobType:             "Contract",
		SalaryRange:         "Negotiable",
		JobDescription:      "Six month engagement on hiring funnel analytics.",
		Requirements:        "SQL, one BI tool, clear writing.",
		Responsibilities:    "Build dashboards; present findings weekly.",
		ApplicationDeadline: "2030-03-15",
	},
	{
		JobTitle:            "Software Engineering Intern",
		CompanyName:         "Acme",
		Location:            "Remote",
		JobType:             "Internship",
		SalaryRange:         "$3,000/month",
		JobDescription:      "Summer internship on the platform team.",
		Requirements:        "Enrolled in a CS or related degree.",
		Responsibilities:    "Pair with engineers; deliver one scoped project.",
		ApplicationDeadline: "2030-04-01",
	},
}
