package routes

import (
	"job-board/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	jobs   *handler.JobsHandler
}

func NewRegistry(health *handler.HealthHandler, jobs *handler.JobsHandler) *Registry {
	return &Registry{health: health, jobs: jobs}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health == nil {
		return
	}
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	if r.jobs == nil {
		return
	}
	r.jobs.RegisterRoutes(app)
}
