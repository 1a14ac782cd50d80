package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/sira-labs/sira-api/internal/service"
	"github.com/sira-labs/sira-api/internal/utils"
)

// AnalyticsHandler wires the analytics endpoints.
type AnalyticsHandler struct {
	service service.AnalyticsService
	logger  zerolog.Logger
}

// NewAnalyticsHandler constructs the handler.
func NewAnalyticsHandler(service service.AnalyticsService, logger zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		logger:  logger.With().Str("component", "analytics_handler").Logger(),
	}
}

// Register attaches analytics routes to the router group.
func (h *AnalyticsHandler) Register(router fiber.Router) {
	router.Get("/student-stats", h.studentStats)
}

func (h *AnalyticsHandler) studentStats(c *fiber.Ctx) error {
	stats, err := h.service.StudentStats(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to compute student stats")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to fetch analytics")
	}

	return utils.SendSuccess(c, "student stats computed", stats)
}
