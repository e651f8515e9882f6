package stats

import (
	"espoir-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *Service
}

// GetOverview GET /api/v1/stats/overview
func (h *Handlers) GetOverview(c *fiber.Ctx) error {
	overview, err := h.Service.GetOverview(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("stats overview failed")
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Stats fetched", fiber.Map{"overview": overview}, nil)
}

// GetProjectTotals GET /api/v1/stats/projects
func (h *Handlers) GetProjectTotals(c *fiber.Ctx) error {
	totals, err := h.Service.ProjectTotals(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("stats project totals failed")
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Stats fetched", fiber.Map{"projects": totals}, nil)
}
