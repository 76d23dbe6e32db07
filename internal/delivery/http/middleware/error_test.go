package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "job-board/internal/errors"
	"job-board/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFromDomainError(t *testing.T) {
	v := FromDomainError(apperrors.Validation("bad input", apperrors.FieldViolation{Field: "jobType"}))
	if v.StatusCode != fiber.StatusBadRequest || v.Message != "bad input" {
		t.Fatalf("unexpected validation mapping: %+v", v)
	}
	if fields, ok := v.Data.([]apperrors.FieldViolation); !ok || len(fields) != 1 {
		t.Fatalf("expected one field violation, got %#v", v.Data)
	}

	cases := map[string]struct {
		err  error
		want int
	}{
		"unavailable": {apperrors.Unavailable("db", nil), fiber.StatusServiceUnavailable},
		"internal":    {apperrors.Internal("db", errors.New("x")), fiber.StatusInternalServerError},
		"plain":       {errors.New("plain"), fiber.StatusInternalServerError},
	}
	for name, tc := range cases {
		if got := FromDomainError(tc.err).StatusCode; got != tc.want {
			t.Errorf("%s: expected %d, got %d", name, tc.want, got)
		}
	}
}

func serveWith(t *testing.T, logger *zap.Logger, h fiber.Handler) (int, response.SemanticResponse) {
	t.Helper()

	app := fiber.New()
	app.Use(NewErrorMiddleware(logger).Middleware())
	app.Get("/", h)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	var env response.SemanticResponse
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode envelope %s: %v", raw, err)
	}
	return resp.StatusCode, env
}

func serve(t *testing.T, h fiber.Handler) (int, response.SemanticResponse) {
	t.Helper()
	return serveWith(t, nil, h)
}

func TestErrorMiddleware_MasksInternalCauses(t *testing.T) {
	status, env := serve(t, func(c fiber.Ctx) error {
		return apperrors.Internal("query job postings", errors.New("pq: password authentication failed"))
	})

	if status != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	if env.Message != response.MessageInternalServerError || env.Data != nil {
		t.Fatalf("expected masked envelope, got %+v", env)
	}
}

func TestErrorMiddleware_LogsDomainErrorStack(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)

	status, _ := serveWith(t, zap.New(core), func(c fiber.Ctx) error {
		return apperrors.Internal("query job postings", errors.New("connection reset"))
	})
	if status != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}

	entries := logs.FilterMessage("request failed").All()
	if len(entries) != 1 {
		t.Fatalf("expected one request failed entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	stack, ok := fields["stack"].(string)
	if !ok || stack == "" {
		t.Fatalf("expected stack field, got %#v", fields["stack"])
	}
	if !strings.Contains(stack, "error_test.go") {
		t.Fatalf("expected stack to point at the failing handler, got:\n%s", stack)
	}
	if fields["status"] != int64(fiber.StatusInternalServerError) {
		t.Fatalf("unexpected status field %#v", fields["status"])
	}
}

func TestErrorMiddleware_ClientErrorsNotLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	status, _ := serveWith(t, zap.New(core), func(c fiber.Ctx) error {
		return apperrors.Validation("invalid job posting filter")
	})
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", status)
	}
	if logs.Len() != 0 {
		t.Fatalf("expected no log entries, got %d", logs.Len())
	}
}

func TestErrorMiddleware_ValidationCarriesFields(t *testing.T) {
	status, env := serve(t, func(c fiber.Ctx) error {
		return FromDomainError(apperrors.Validation("invalid job posting",
			apperrors.FieldViolation{Field: "jobTitle", Rule: "required", Message: "jobTitle is required"}))
	})

	if status != fiber.StatusBadRequest || env.Status != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d / %d", status, env.Status)
	}
	if env.Message != "invalid job posting" || env.Data == nil {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestErrorMiddleware_RecoversPanics(t *testing.T) {
	status, env := serve(t, func(c fiber.Ctx) error {
		panic("boom")
	})

	if status != fiber.StatusInternalServerError || env.Message != response.MessageInternalServerError {
		t.Fatalf("expected masked 500, got %d %+v", status, env)
	}
}

func TestErrorMiddleware_FiberErrors(t *testing.T) {
	status, env := serve(t, func(c fiber.Ctx) error {
		return fiber.NewError(fiber.StatusMethodNotAllowed)
	})

	if status != fiber.StatusMethodNotAllowed || env.Message == "" {
		t.Fatalf("expected 405 with message, got %d %+v", status, env)
	}
}
