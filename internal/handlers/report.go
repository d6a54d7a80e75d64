package handlers

import (
	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/internal/middleware"
	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReportHandler struct {
	service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// SetupReportRoutes mounts the report routes nested under a disaster
func SetupReportRoutes(router fiber.Router, service *services.ReportService) {
	h := NewReportHandler(service)

	router.Post("/", h.Create)
	router.Get("/", h.List)
	router.Get("/:id", h.Get)
	router.Put("/:id", h.Update)
	router.Delete("/:id", h.Delete)
	router.Post("/:id/verify", h.Verify)
}

func disasterIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(c.Params("disaster_id"))
}

// Create godoc
// @Summary Create report
// @Description Persists a report with pending verification; image verification runs in the background
// @Tags reports
// @Accept json
// @Produce json
// @Param disaster_id path string true "Disaster ID"
// @Param request body services.CreateReportRequest true "Report data"
// @Success 201 {object} models.Report
// @Router /api/disasters/{disaster_id}/reports [post]
func (h *ReportHandler) Create(c *fiber.Ctx) error {
	disasterID, err := disasterIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid disaster ID"})
	}

	var req services.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid request body"})
	}

	report, err := h.service.Create(c.UserContext(), middleware.PrincipalFrom(c), disasterID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}

// List godoc
// @Summary List reports for a disaster
// @Tags reports
// @Accept json
// @Produce json
// @Param disaster_id path string true "Disaster ID"
// @Success 200 {array} models.Report
// @Router /api/disasters/{disaster_id}/reports [get]
func (h *ReportHandler) List(c *fiber.Ctx) error {
	disasterID, err := disasterIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid disaster ID"})
	}

	reports, err := h.service.List(c.UserContext(), disasterID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(reports)
}

// Get godoc
// @Summary Get report by ID
// @Tags reports
// @Accept json
// @Produce json
// @Param disaster_id path string true "Disaster ID"
// @Param id path string true "Report ID"
// @Success 200 {object} models.Report
// @Router /api/disasters/{disaster_id}/reports/{id} [get]
func (h *ReportHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid report ID"})
	}

	report, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// Update godoc
// @Summary Update report
// @Description A changed image URL resets the verification status to pending
// @Tags reports
// @Accept json
// @Produce json
// @Param disaster_id path string true "Disaster ID"
// @Param id path string true "Report ID"
// @Param request body services.CreateReportRequest true "Report data"
// @Success 200 {object} models.Report
// @Router /api/disasters/{disaster_id}/reports/{id} [put]
func (h *ReportHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid report ID"})
	}

	var req services.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid request body"})
	}

	report, err := h.service.Update(c.UserContext(), middleware.PrincipalFrom(c), id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// Delete godoc
// @Summary Delete report
// @Tags reports
// @Accept json
// @Produce json
// @Param disaster_id path string true "Disaster ID"
// @Param id path string true "Report ID"
// @Success 200 {object} map[string]string
// @Router /api/disasters/{disaster_id}/reports/{id} [delete]
func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid report ID"})
	}

	if err := h.service.Delete(c.UserContext(), middleware.PrincipalFrom(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Report deleted successfully"})
}

// Verify godoc
// @Summary Verify report image
// @Description Runs the image authenticity check synchronously and returns the verdict
// @Tags reports
// @Accept json
// @Produce json
// @Param disaster_id path string true "Disaster ID"
// @Param id path string true "Report ID"
// @Success 200 {object} services.VerificationResult
// @Router /api/disasters/{disaster_id}/reports/{id}/verify [post]
func (h *ReportHandler) Verify(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid report ID"})
	}

	result, err := h.service.Verify(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}
