package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"job-board/internal/browse"

	"github.com/spf13/cobra"
)

func (c *cli) newBrowseCmd() *cobra.Command {
	var debounce = browse.DefaultDebounce

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Edit filters interactively and watch the listing update",
		Long: `Reads one edit per line from stdin:

  title=<text>      location=<text>      type=<job type>
  salary=<min>,<max>

Text edits apply after the debounce window, salary edits at once.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			out := cmd.OutOrStdout()
			var outMu sync.Mutex

			form := browse.New(c.client(),
				browse.WithDebounce(debounce),
				browse.WithLogger(c.logger()),
				browse.WithObserver(func(s browse.Snapshot) {
					outMu.Lock()
					defer outMu.Unlock()
					renderSnapshot(out, s)
				}))
			defer form.Close()

			form.Start(ctx)
			err := readEdits(cmd.InOrStdin(), form, func(msg string) {
				outMu.Lock()
				defer outMu.Unlock()
				fmt.Fprintln(out, msg)
			})
			if err != nil {
				return err
			}
			return form.Flush(ctx)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", debounce, "delay before text edits are applied")
	return cmd
}

type editor interface {
	SetJobTitle(v string)
	SetLocation(v string)
	SetJobType(v string)
	SetSalaryRange(lo, hi int) error
}

func readEdits(r io.Reader, form editor, report func(string)) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := applyEdit(form, line); err != nil {
			report(err.Error())
		}
	}
	return sc.Err()
}

func applyEdit(form editor, line string) error {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return fmt.Errorf("expected field=value, got %q", line)
	}
	value = strings.TrimSpace(value)

	switch strings.ToLower(strings.TrimSpace(key)) {
	case "title":
		form.SetJobTitle(value)
	case "location":
		form.SetLocation(value)
	case "type":
		form.SetJobType(value)
	case "salary":
		loRaw, hiRaw, ok := strings.Cut(value, ",")
		if !ok {
			return fmt.Errorf("salary expects min,max, got %q", value)
		}
		lo, err := strconv.Atoi(strings.TrimSpace(loRaw))
		if err != nil {
			return fmt.Errorf("salary min: %w", err)
		}
		hi, err := strconv.Atoi(strings.TrimSpace(hiRaw))
		if err != nil {
			return fmt.Errorf("salary max: %w", err)
		}
		return form.SetSalaryRange(lo, hi)
	default:
		return fmt.Errorf("unknown field %q", key)
	}
	return nil
}

func renderSnapshot(w io.Writer, s browse.Snapshot) {
	if s.Loading {
		fmt.Fprintln(w, "Loading...")
		return
	}
	fmt.Fprintf(w, "\nFilters: title=%q location=%q type=%q salary=%d-%d\n",
		s.Filters.JobTitle, s.Filters.Location, s.Filters.JobType, s.SalaryRange.Min(), s.SalaryRange.Max())
	if s.Err != nil {
		fmt.Fprintf(w, "Error fetching jobs: %v\n", s.Err)
	}
	_ = printJobs(w, s.Jobs)
}
