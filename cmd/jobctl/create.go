package main

import (
	"fmt"

	"job-board/internal/delivery/http/dto"

	"github.com/spf13/cobra"
)

func (c *cli) newCreateCmd() *cobra.Command {
	var req dto.CreateJobPostingRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Post a new job",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			created, err := c.client().CreateJobPosting(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Job posted: #%d %s at %s (%s)\n",
				created.ID, created.JobTitle, created.CompanyName, created.CreatedAt.Format("2006-01-02 15:04"))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.JobTitle, "title", "", "job title")
	f.StringVar(&req.CompanyName, "company", "", "company name")
	f.StringVar(&req.Location, "location", "", "location")
	f.StringVar(&req.JobType, "type", "", "job type: Full-time, Part-time, Contract or Internship")
	f.StringVar(&req.SalaryRange, "salary", "", "salary range, free text")
	f.StringVar(&req.JobDescription, "description", "", "job description")
	f.StringVar(&req.Requirements, "requirements", "", "requirements")
	f.StringVar(&req.Responsibilities, "responsibilities", "", "responsibilities")
	f.StringVar(&req.ApplicationDeadline, "deadline", "", "application deadline, YYYY-MM-DD")

	return cmd
}
