package stats

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type StatsHandler struct {
	ss     StatsService
	logger *zap.Logger
}

func StatsRouter(route fiber.Router, ss StatsService, logger *zap.Logger) {
	handler := &StatsHandler{
		ss:     ss,
		logger: logger,
	}

	route.Get("/stats", handler.getStats)
	route.Get("/devices", handler.getDevices)
}

// @Summary Get summary statistics
// @Description Rollup statistics over the full record set plus per-device summaries
// @Produce json
// @Success 200 {object} object
// @Failure 500 {object} object
// @Router /api/stats [get]
func (h *StatsHandler) getStats(c *fiber.Ctx) error {
	stats, devices, err := h.ss.Overview(c.Context())
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(&fiber.Map{
		"ok":      true,
		"stats":   stats,
		"devices": devices,
	})
}

// @Summary Get per-device summaries
// @Description One summary per distinct device, ordered by last seen descending
// @Produce json
// @Success 200 {object} object
// @Failure 500 {object} object
// @Router /api/devices [get]
func (h *StatsHandler) getDevices(c *fiber.Ctx) error {
	devices, err := h.ss.Devices(c.Context())
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(&fiber.Map{
		"ok":      true,
		"devices": devices,
	})
}

func (h *StatsHandler) fail(c *fiber.Ctx, err error) error {
	h.logger.Error("store failure",
		zap.Any("requestid", c.Locals("requestid")),
		zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(&fiber.Map{
		"ok":    false,
		"error": "Internal server error",
	})
}
