package handler

import (
	"context"
	"time"

	apperrors "job-board/internal/errors"
	"job-board/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	storage string
}

// NewHealthHandler reports the named storage backend; db may be nil when the
// backend has nothing to ping.
func NewHealthHandler(db Pinger, storage string) *HealthHandler {
	return &HealthHandler{db: db, storage: storage}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Handle)
}

func (h *HealthHandler) Handle(c fiber.Ctx) error {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			return apperrors.Unavailable("database unavailable", err)
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]string{"storage": h.storage})
}
