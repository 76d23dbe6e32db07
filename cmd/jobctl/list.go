package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"job-board/internal/client"
	"job-board/internal/domain/posting"

	"github.com/spf13/cobra"
)

func (c *cli) newListCmd() *cobra.Command {
	var q client.ListQuery

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List job postings, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			jobs, err := c.client().ListJobPostings(cmd.Context(), q)
			if err != nil {
				return err
			}
			return printJobs(cmd.OutOrStdout(), jobs)
		},
	}

	f := cmd.Flags()
	f.StringVar(&q.JobTitle, "title", "", "match job titles containing this text")
	f.StringVar(&q.Location, "location", "", "match locations containing this text")
	f.StringVar(&q.JobType, "type", "", "exact job type")

	return cmd
}

func printJobs(w io.Writer, jobs []posting.JobPosting) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tCOMPANY\tLOCATION\tJOB TYPE\tSALARY RANGE\tDEADLINE")
	for _, j := range jobs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			j.JobTitle, j.CompanyName, j.Location, j.JobType, j.SalaryRange, j.ApplicationDeadline)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Total Jobs: %d\n", len(jobs))
	return err
}
