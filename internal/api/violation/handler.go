package violation

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	commonerrors "speedwatch-api-server/internal/api/common/errors"
	"speedwatch-api-server/internal/api/common/query"
)

type ViolationHandler struct {
	vs     ViolationService
	logger *zap.Logger
}

func ViolationRouter(route fiber.Router, vs ViolationService, logger *zap.Logger) {
	handler := &ViolationHandler{
		vs:     vs,
		logger: logger,
	}

	route.Post("/violation", handler.submit)
	route.Get("/violations", handler.list)
	route.Get("/violations/:id", handler.getByID)
	route.Delete("/violations", handler.deleteAll)
}

// @Summary Submit a speed violation event
// @Description Validate and persist one violation reported by a tracking device
// @Accept  json
// @Produce json
// @Success 201 {object} object
// @Failure 400 {object} object
// @Failure 500 {object} object
// @Router /api/violation [post]
func (h *ViolationHandler) submit(c *fiber.Ctx) error {
	var req SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"ok":     false,
			"errors": []string{"body must be valid JSON"},
		})
	}

	id, err := h.vs.Submit(c.Context(), req)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(&fiber.Map{
		"ok": true,
		"id": id,
	})
}

// @Summary List violations
// @Description List stored violations newest-first, optionally filtered
// @Produce json
// @Param limit  query string false "maximum records to return (default 200, cap 1000)"
// @Param tier   query string false "exact tier filter"
// @Param device query string false "exact device filter"
// @Param since  query string false "lower bound on receive time"
// @Success 200 {object} object
// @Failure 500 {object} object
// @Router /api/violations [get]
func (h *ViolationHandler) list(c *fiber.Ctx) error {
	filter, err := query.ParseAndValidate(c)
	if err != nil {
		return h.fail(c, err)
	}

	violations, err := h.vs.List(c.Context(), filter)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(&fiber.Map{
		"ok":         true,
		"count":      len(violations),
		"violations": violations,
	})
}

// @Summary Get one violation
// @Description Fetch a single violation by its store-assigned id
// @Produce json
// @Param id path int true "violation id"
// @Success 200 {object} object
// @Failure 404 {object} object
// @Router /api/violations/{id} [get]
func (h *ViolationHandler) getByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(&fiber.Map{
			"ok":    false,
			"error": "Not found",
		})
	}

	v, err := h.vs.Get(c.Context(), uint(id))
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(&fiber.Map{
		"ok":        true,
		"violation": v,
	})
}

// @Summary Delete all violations
// @Description Irreversibly remove every stored violation; requires the admin secret
// @Produce json
// @Param key query string true "admin secret"
// @Success 200 {object} object
// @Failure 401 {object} object
// @Router /api/violations [delete]
func (h *ViolationHandler) deleteAll(c *fiber.Ctx) error {
	count, err := h.vs.DeleteAll(c.Context(), c.Query("key"))
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(&fiber.Map{
		"ok":      true,
		"message": "deleted " + strconv.FormatInt(count, 10) + " violations",
	})
}

// fail maps the error taxonomy onto HTTP responses. StoreError is the only
// class logged with detail; the client always sees a generic message for it.
func (h *ViolationHandler) fail(c *fiber.Ctx, err error) error {
	var validationErr commonerrors.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(&fiber.Map{
			"ok":     false,
			"errors": validationErr.Errors,
		})
	}

	var notFoundErr commonerrors.NotFoundError
	if errors.As(err, &notFoundErr) {
		return c.Status(fiber.StatusNotFound).JSON(&fiber.Map{
			"ok":    false,
			"error": "Not found",
		})
	}

	var unauthorizedErr commonerrors.UnauthorizedError
	if errors.As(err, &unauthorizedErr) {
		return c.Status(fiber.StatusUnauthorized).JSON(&fiber.Map{
			"ok":    false,
			"error": "Unauthorized",
		})
	}

	h.logger.Error("store failure",
		zap.Any("requestid", c.Locals("requestid")),
		zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(&fiber.Map{
		"ok":    false,
		"error": "Internal server error",
	})
}
