package handlers

import (
	"strconv"

	"github.com/coder-rancho/Disaster-Response-Coordination-Platform/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ResourceHandler struct {
	service *services.ResourceService
}

func NewResourceHandler(service *services.ResourceService) *ResourceHandler {
	return &ResourceHandler{service: service}
}

// SetupResourceRoutes mounts the resource routes nested under a disaster
func SetupResourceRoutes(router fiber.Router, service *services.ResourceService) {
	h := NewResourceHandler(service)

	router.Post("/", h.Create)
	router.Get("/", h.List)
	router.Get("/nearby", h.Nearby)
	router.Put("/:id", h.Update)
	router.Delete("/:id", h.Delete)
}

// SetupStandaloneResourceRoutes mounts the nearby search that is not
// scoped to a disaster
func SetupStandaloneResourceRoutes(router fiber.Router, service *services.ResourceService) {
	h := NewResourceHandler(service)

	router.Get("/nearby", h.Nearby)
}

// Create godoc
// @Summary Create resource
// @Tags resources
// @Accept json
// @Produce json
// @Param disaster_id path string true "Disaster ID"
// @Param request body services.CreateResourceRequest true "Resource data"
// @Success 201 {object} models.Resource
// @Router /api/disasters/{disaster_id}/resources [post]
func (h *ResourceHandler) Create(c *fiber.Ctx) error {
	disasterID, err := uuid.Parse(c.Params("disaster_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid disaster ID"})
	}

	var req services.CreateResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid request body"})
	}

	resource, err := h.service.Create(c.UserContext(), disasterID, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resource)
}

// List godoc
// @Summary List resources for a disaster
// @Tags resources
// @Accept json
// @Produce json
// @Param disaster_id path string true "Disaster ID"
// @Success 200 {array} models.Resource
// @Router /api/disasters/{disaster_id}/resources [get]
func (h *ResourceHandler) List(c *fiber.Ctx) error {
	disasterID, err := uuid.Parse(c.Params("disaster_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid disaster ID"})
	}

	resources, err := h.service.List(c.UserContext(), disasterID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resources)
}

// Nearby godoc
// @Summary Find nearby resources
// @Description Spatial proximity search ordered by ascending distance. Origin precedence: explicit coordinates, then location_name, then the scoped disaster's stored location.
// @Tags resources
// @Accept json
// @Produce json
// @Param latitude query number false "Origin latitude"
// @Param longitude query number false "Origin longitude"
// @Param location_name query string false "Location name to search around"
// @Param distance query int false "Search radius in meters (default 10000)"
// @Param type query string false "Filter by resource type"
// @Param disaster_id query string false "Filter by disaster"
// @Param limit query int false "Maximum results (default 50)"
// @Success 200 {object} services.NearbyResponse
// @Router /api/resources/nearby [get]
func (h *ResourceHandler) Nearby(c *fiber.Ctx) error {
	filter := services.NearbyFilter{
		LocationName: c.Query("location_name"),
		Type:         c.Query("type"),
	}

	if raw := c.Query("latitude"); raw != "" {
		lat, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid latitude"})
		}
		filter.Latitude = &lat
	}
	if raw := c.Query("longitude"); raw != "" {
		lng, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid longitude"})
		}
		filter.Longitude = &lng
	}

	filter.DistanceMeters, _ = strconv.Atoi(c.Query("distance", "0"))
	filter.Limit, _ = strconv.Atoi(c.Query("limit", "0"))

	// Disaster scope: path param on the nested route, query param on the
	// standalone one
	rawDisasterID := c.Params("disaster_id")
	if rawDisasterID == "" {
		rawDisasterID = c.Query("disaster_id")
	}
	if rawDisasterID != "" {
		disasterID, err := uuid.Parse(rawDisasterID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid disaster ID"})
		}
		filter.DisasterID = &disasterID
	}

	response, err := h.service.FindNearby(c.UserContext(), &filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(response)
}

// Update godoc
// @Summary Update resource
// @Tags resources
// @Accept json
// @Produce json
// @Param disaster_id path string true "Disaster ID"
// @Param id path string true "Resource ID"
// @Param request body services.CreateResourceRequest true "Resource data"
// @Success 200 {object} models.Resource
// @Router /api/disasters/{disaster_id}/resources/{id} [put]
func (h *ResourceHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid resource ID"})
	}

	var req services.CreateResourceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid request body"})
	}

	resource, err := h.service.Update(c.UserContext(), id, &req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resource)
}

// Delete godoc
// @Summary Delete resource
// @Tags resources
// @Accept json
// @Produce json
// @Param disaster_id path string true "Disaster ID"
// @Param id path string true "Resource ID"
// @Success 200 {object} map[string]string
// @Router /api/disasters/{disaster_id}/resources/{id} [delete]
func (h *ResourceHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "Invalid resource ID"})
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Resource deleted successfully"})
}
