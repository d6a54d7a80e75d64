package handlers

import (
	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/internal/middleware"
	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type DisasterHandler struct {
	service *services.DisasterService
}

func NewDisasterHandler(service *services.DisasterService) *DisasterHandler {
	return &DisasterHandler{service: service}
}

func SetupDisasterRoutes(router fiber.Router, service *services.DisasterService) {
	h := NewDisasterHandler(service)

	router.Post("/", h.Create)
	router.Get("/", h.List)
	router.Get("/:id", h.Get)
	router.Put("/:id", h.Update)
	router.Delete("/:id", h.Delete)
}

// Create godoc
// @Summary Create disaster
// @Description Geocodes the location name (or extracts one from the description) and persists the disaster
// @Tags disasters
// @Accept json
// @Produce json
// @Param request body services.CreateDisasterRequest true "Disaster data"
// @Success 201 {object} models.Disaster
// @Router /api/disasters [post]
func (h *DisasterHandler) Create(c *fiber.Ctx) error {
	var req services.CreateDisasterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid request body"})
	}

	disaster, err := h.service.Create(c.UserContext(), middleware.PrincipalFrom(c), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(disaster)
}

// List godoc
// @Summary List disasters
// @Tags disasters
// @Accept json
// @Produce json
// @Param tag query string false "Filter by tag"
// @Success 200 {array} models.Disaster
// @Router /api/disasters [get]
func (h *DisasterHandler) List(c *fiber.Ctx) error {
	disasters, err := h.service.List(c.UserContext(), c.Query("tag"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(disasters)
}

// Get godoc
// @Summary Get disaster by ID
// @Tags disasters
// @Accept json
// @Produce json
// @Param id path string true "Disaster ID"
// @Success 200 {object} models.Disaster
// @Router /api/disasters/{id} [get]
func (h *DisasterHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid disaster ID"})
	}

	disaster, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(disaster)
}

// Update godoc
// @Summary Update disaster
// @Tags disasters
// @Accept json
// @Produce json
// @Param id path string true "Disaster ID"
// @Param request body services.CreateDisasterRequest true "Disaster data"
// @Success 200 {object} models.Disaster
// @Router /api/disasters/{id} [put]
func (h *DisasterHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid disaster ID"})
	}

	var req services.CreateDisasterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid request body"})
	}

	disaster, err := h.service.Update(c.UserContext(), middleware.PrincipalFrom(c), id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(disaster)
}

// Delete godoc
// @Summary Delete disaster
// @Tags disasters
// @Accept json
// @Produce json
// @Param id path string true "Disaster ID"
// @Success 200 {object} map[string]string
// @Router /api/disasters/{id} [delete]
func (h *DisasterHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid disaster ID"})
	}

	if err := h.service.Delete(c.UserContext(), middleware.PrincipalFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Disaster deleted successfully"})
}
