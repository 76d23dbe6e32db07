// Package client talks to the job board HTTP API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"job-board/internal/delivery/http/dto"
	"job-board/internal/domain/posting"
	apperrors "job-board/internal/errors"

	fiberclient "github.com/gofiber/fiber/v3/client"
)

const DefaultTimeout = 10 * time.Second

// ListQuery holds the listing filters. Empty strings are not sent. The salary
// bounds go out together whenever SalaryMax is positive.
type ListQuery struct {
	JobTitle  string
	Location  string
	JobType   string
	SalaryMin int
	SalaryMax int
}

func (q ListQuery) params() map[string]string {
	out := map[string]string{}
	set := func(k, v string) {
		if v = strings.TrimSpace(v); v != "" {
			out[k] = v
		}
	}
	set(dto.QueryJobTitle, q.JobTitle)
	set(dto.QueryLocation, q.Location)
	set(dto.QueryJobType, q.JobType)
	if q.SalaryMax > 0 {
		out[dto.QuerySalaryRangeMin] = strconv.Itoa(q.SalaryMin)
		out[dto.QuerySalaryRangeMax] = strconv.Itoa(q.SalaryMax)
	}
	return out
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
	Details []apperrors.FieldViolation
}

func (e *APIError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, d.Message)
	}
	return fmt.Sprintf("api error %d: %s (%s)", e.Status, e.Message, strings.Join(parts, "; "))
}

type Client struct {
	http    *fiberclient.Client
	baseURL string
}

func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	hc := fiberclient.New()
	hc.SetTimeout(timeout)
	return &Client{http: hc, baseURL: strings.TrimRight(baseURL, "/")}
}

func (c *Client) CreateJobPosting(ctx context.Context, req dto.CreateJobPostingRequest) (posting.JobPosting, error) {
	resp, err := c.http.Post(c.baseURL+"/jobs", fiberclient.Config{
		Ctx:    ctx,
		Header: map[string]string{"Accept": "application/json"},
		Body:   req,
	})
	if err != nil {
		return posting.JobPosting{}, fmt.Errorf("create job posting: %w", err)
	}
	defer resp.Close()

	if err := checkStatus(resp.StatusCode(), resp.Body()); err != nil {
		return posting.JobPosting{}, err
	}

	var out posting.JobPosting
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return posting.JobPosting{}, fmt.Errorf("decode job posting: %w", err)
	}
	return out, nil
}

func (c *Client) ListJobPostings(ctx context.Context, q ListQuery) ([]posting.JobPosting, error) {
	resp, err := c.http.Get(c.baseURL+"/jobs", fiberclient.Config{
		Ctx:    ctx,
		Header: map[string]string{"Accept": "application/json"},
		Param:  q.params(),
	})
	if err != nil {
		return nil, fmt.Errorf("list job postings: %w", err)
	}
	defer resp.Close()

	if err := checkStatus(resp.StatusCode(), resp.Body()); err != nil {
		return nil, err
	}

	out := []posting.JobPosting{}
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode job postings: %w", err)
	}
	if out == nil {
		out = []posting.JobPosting{}
	}
	return out, nil
}

type errorEnvelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func checkStatus(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}

	apiErr := &APIError{Status: status}
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		apiErr.Message = strings.TrimSpace(string(body))
		return apiErr
	}
	apiErr.Message = env.Message

	if len(env.Data) > 0 && env.Data[0] == '[' {
		var fields []apperrors.FieldViolation
		if err := json.Unmarshal(env.Data, &fields); err == nil {
			apiErr.Details = fields
		}
	}
	return apiErr
}
