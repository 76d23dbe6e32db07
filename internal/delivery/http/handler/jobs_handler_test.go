package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"job-board/internal/delivery/http/dto"
	"job-board/internal/delivery/http/middleware"
	"job-board/internal/pkg/response"
	"job-board/internal/repository"
	"job-board/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func steppedClock() func() time.Time {
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	n := 0
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	repo := repository.NewMemoryJobPostingRepository(steppedClock())
	uc := usecase.NewJobPostingUsecase(repo, nil, nil)

	app := fiber.New()
	app.Use(middleware.NewErrorMiddleware(nil).Middleware())
	NewHealthHandler(nil, "memory").RegisterRoutes(app)
	NewJobsHandler(uc).RegisterRoutes(app)
	return app
}

func backendEngineer() map[string]string {
	return map[string]string{
		"jobTitle":            "Backend Engineer",
		"companyName":         "Acme",
		"location":            "Remote",
		"jobType":             "Full-time",
		"salaryRange":         "100k-120k",
		"jobDescription":      "Build APIs",
		"requirements":        "Go",
		"responsibilities":    "Ship",
		"applicationDeadline": "2024-12-31",
	}
}

func do(t *testing.T, app *fiber.App, method, target string, body any) (*http.Response, []byte) {
	t.Helper()

	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, rd)
	if rd != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, out
}

func createJob(t *testing.T, app *fiber.App, body map[string]string) dto.JobPostingResponse {
	t.Helper()

	resp, raw := do(t, app, fiber.MethodPost, "/jobs", body)
	if resp.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.StatusCode, raw)
	}

	var created dto.JobPostingResponse
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	return created
}

func listJobs(t *testing.T, app *fiber.App, target string) []dto.JobPostingResponse {
	t.Helper()

	resp, raw := do(t, app, fiber.MethodGet, target, nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("GET %s: expected 200, got %d: %s", target, resp.StatusCode, raw)
	}

	var items []dto.JobPostingResponse
	if err := json.Unmarshal(raw, &items); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if items == nil {
		t.Fatalf("GET %s: expected a JSON array, got %s", target, raw)
	}
	return items
}

func TestJobsHandler_CreateReturnsStoredRecord(t *testing.T) {
	app := newTestApp(t)

	created := createJob(t, app, backendEngineer())

	if created.ID != 1 {
		t.Fatalf("expected id 1, got %d", created.ID)
	}
	if created.JobTitle != "Backend Engineer" || created.JobType != "Full-time" {
		t.Fatalf("unexpected record: %+v", created)
	}
	if created.ApplicationDeadline != "2024-12-31" {
		t.Fatalf("expected deadline 2024-12-31, got %q", created.ApplicationDeadline)
	}
	if created.CreatedAt == "" {
		t.Fatalf("expected createdAt")
	}
}

func TestJobsHandler_CreateAcceptsTimestampDeadline(t *testing.T) {
	app := newTestApp(t)

	body := backendEngineer()
	body["applicationDeadline"] = "2024-12-31T00:00:00.000Z"

	if got := createJob(t, app, body).ApplicationDeadline; got != "2024-12-31" {
		t.Fatalf("expected 2024-12-31, got %q", got)
	}
}

func TestJobsHandler_ListFiltersExample(t *testing.T) {
	app := newTestApp(t)
	created := createJob(t, app, backendEngineer())

	items := listJobs(t, app, "/jobs?jobTitle=backend")
	if len(items) != 1 || items[0].ID != created.ID {
		t.Fatalf("expected [%d], got %+v", created.ID, items)
	}

	if items := listJobs(t, app, "/jobs?jobType=Contract"); len(items) != 0 {
		t.Fatalf("expected no Contract postings, got %+v", items)
	}

	_, raw := do(t, app, fiber.MethodGet, "/jobs?jobType=Contract", nil)
	if strings.TrimSpace(string(raw)) != "[]" {
		t.Fatalf("expected [], got %s", raw)
	}
}

func TestJobsHandler_ListNewestFirst(t *testing.T) {
	app := newTestApp(t)

	first := createJob(t, app, backendEngineer())
	second := backendEngineer()
	second["jobTitle"] = "Frontend Engineer"
	second["location"] = "Berlin"
	secondCreated := createJob(t, app, second)

	items := listJobs(t, app, "/jobs")
	if len(items) != 2 || items[0].ID != secondCreated.ID || items[1].ID != first.ID {
		t.Fatalf("expected [%d %d], got %+v", secondCreated.ID, first.ID, items)
	}

	items = listJobs(t, app, "/jobs?location=berl&jobTitle=engineer")
	if len(items) != 1 || items[0].JobTitle != "Frontend Engineer" {
		t.Fatalf("expected Frontend Engineer only, got %+v", items)
	}
}

func TestJobsHandler_ListIgnoresSalaryRange(t *testing.T) {
	app := newTestApp(t)
	createJob(t, app, backendEngineer())

	targets := []string{
		"/jobs?salaryRangeMin=50000&salaryRangeMax=200000",
		"/jobs?salaryRangeMin=80k&salaryRangeMax=120k",
		"/jobs?salaryRangeMin=200000&salaryRangeMax=1000",
		"/jobs?salaryRangeMin=negotiable",
	}
	for _, target := range targets {
		if items := listJobs(t, app, target); len(items) != 1 {
			t.Errorf("GET %s: expected 1 posting, got %d", target, len(items))
		}
	}
}

func TestJobsHandler_CreateValidationErrors(t *testing.T) {
	app := newTestApp(t)

	missing := backendEngineer()
	delete(missing, "companyName")
	missing["location"] = "   "

	resp, raw := do(t, app, fiber.MethodPost, "/jobs", missing)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var env struct {
		Status  int                      `json:"status"`
		Message string                   `json:"message"`
		Data    []map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Status != fiber.StatusBadRequest || env.Message == "" {
		t.Fatalf("unexpected envelope: %+v", env)
	}

	fields := make([]string, 0, len(env.Data))
	for _, f := range env.Data {
		name, _ := f["field"].(string)
		fields = append(fields, name)
	}
	sort.Strings(fields)
	if strings.Join(fields, ",") != "companyName,location" {
		t.Fatalf("expected companyName and location violations, got %v", fields)
	}

	if items := listJobs(t, app, "/jobs"); len(items) != 0 {
		t.Fatalf("expected nothing stored, got %d", len(items))
	}
}

func TestJobsHandler_CreateRejectsUnknownJobType(t *testing.T) {
	app := newTestApp(t)

	body := backendEngineer()
	body["jobType"] = "Freelance"

	if resp, _ := do(t, app, fiber.MethodPost, "/jobs", body); resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestJobsHandler_CreateRejectsMalformedBody(t *testing.T) {
	app := newTestApp(t)

	resp, raw := do(t, app, fiber.MethodPost, "/jobs", `{"jobTitle":`)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var env response.SemanticResponse
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Message != "invalid request body" {
		t.Fatalf("unexpected message %q", env.Message)
	}
}

func TestJobsHandler_ListRejectsUnknownJobType(t *testing.T) {
	app := newTestApp(t)
	createJob(t, app, backendEngineer())

	body := backendEngineer()
	body["jobType"] = "Contract"
	createJob(t, app, body)

	for _, target := range []string{
		"/jobs?jobType=Freelance",
		"/jobs?jobType=%20Contract",
		"/jobs?jobType=Contract%20",
		"/jobs?jobType=contract",
	} {
		if resp, raw := do(t, app, fiber.MethodGet, target, nil); resp.StatusCode != fiber.StatusBadRequest {
			t.Errorf("GET %s: expected 400, got %d: %s", target, resp.StatusCode, raw)
		}
	}

	if items := listJobs(t, app, "/jobs?jobType=Contract"); len(items) != 1 {
		t.Fatalf("expected 1 Contract posting, got %d", len(items))
	}
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("connection refused") }

func TestHealthHandler(t *testing.T) {
	app := newTestApp(t)

	resp, raw := do(t, app, fiber.MethodGet, "/health", nil)
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(raw), `"storage":"memory"`) {
		t.Fatalf("expected storage in body, got %s", raw)
	}
}

func TestHealthHandler_DatabaseDown(t *testing.T) {
	down := fiber.New()
	down.Use(middleware.NewErrorMiddleware(nil).Middleware())
	NewHealthHandler(failingPinger{}, "postgres").RegisterRoutes(down)

	resp, raw := do(t, down, fiber.MethodGet, "/health", nil)
	if resp.StatusCode != fiber.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}

	var env response.SemanticResponse
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Message != response.MessageServiceUnavailable {
		t.Fatalf("unexpected message %q", env.Message)
	}
	if strings.Contains(string(raw), "connection refused") {
		t.Fatalf("cause leaked into response: %s", raw)
	}
}

func TestHealthHandler_ReturnsUnavailableError(t *testing.T) {
	app := fiber.New()
	app.Get("/health", NewHealthHandler(failingPinger{}, "postgres").Handle)

	// Without the error middleware fiber's default handler sees the raw error.
	resp, raw := do(t, app, fiber.MethodGet, "/health", nil)
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("expected fiber default 500, got %d: %s", resp.StatusCode, raw)
	}
	if !strings.Contains(string(raw), "UNAVAILABLE") {
		t.Fatalf("expected an UNAVAILABLE domain error, got %s", raw)
	}
}
