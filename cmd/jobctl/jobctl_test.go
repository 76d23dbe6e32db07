package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"job-board/internal/domain/posting"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEditor struct {
	title, location, jobType string
	lo, hi                   int
}

func (e *recordingEditor) SetJobTitle(v string) { e.title = v }
func (e *recordingEditor) SetLocation(v string) { e.location = v }
func (e *recordingEditor) SetJobType(v string)  { e.jobType = v }
func (e *recordingEditor) SetSalaryRange(lo, hi int) error {
	e.lo, e.hi = lo, hi
	return nil
}

func TestReadEdits(t *testing.T) {
	in := strings.NewReader("title=backend\n# comment\n\nlocation = Remote\ntype=Contract\nsalary=60000, 90000\nbogus\nsalary=1\nage=3\n")

	var e recordingEditor
	var problems []string
	require.NoError(t, readEdits(in, &e, func(msg string) { problems = append(problems, msg) }))

	assert.Equal(t, "backend", e.title)
	assert.Equal(t, "Remote", e.location)
	assert.Equal(t, "Contract", e.jobType)
	assert.Equal(t, 60000, e.lo)
	assert.Equal(t, 90000, e.hi)
	assert.Len(t, problems, 3)
}

func TestPrintJobs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJobs(&buf, []posting.JobPosting{{
		JobTitle:            "Backend Engineer",
		CompanyName:         "Acme",
		Location:            "Remote",
		JobType:             posting.JobTypeFullTime,
		SalaryRange:         "100k-120k",
		ApplicationDeadline: posting.NewDate(2024, 12, 31),
	}}))

	out := buf.String()
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Backend Engineer")
	assert.Contains(t, out, "2024-12-31")
	assert.Contains(t, out, "Total Jobs: 1")
}

func TestListCommand(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode([]posting.JobPosting{{ID: 1, JobTitle: "Backend Engineer", JobType: posting.JobTypeContract}})
	}))
	defer srv.Close()

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--api-url", srv.URL, "list", "--type", "Contract"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "jobType=Contract", gotQuery)
	assert.Contains(t, out.String(), "Backend Engineer")
	assert.Contains(t, out.String(), "Total Jobs: 1")
}

func TestCreateCommand_ReportsValidationError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":400,"message":"invalid job posting","data":[{"field":"jobTitle","rule":"required","message":"jobTitle is required"}]}`))
	}))
	defer srv.Close()

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"create", "--api-url", srv.URL, "--company", "Acme"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jobTitle is required")
}
