package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inspection-service/internal/api/dto"
	"github.com/spec-kit/inspection-service/internal/auth"
	"github.com/spec-kit/inspection-service/internal/service"
	apperrors "github.com/spec-kit/inspection-service/pkg/util"
)

// APIHandler exposes the report operations as JSON under /api/v1.
type APIHandler struct {
	inspections *service.InspectionService
}

// NewAPIHandler constructs handler.
func NewAPIHandler(inspections *service.InspectionService) *APIHandler {
	return &APIHandler{inspections: inspections}
}

// List handles GET /api/v1/inspections.
func (h *APIHandler) List(c *fiber.Ctx) error {
	reports, err := h.inspections.List(c.UserContext(), c.Query("search"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewReportSummaries(reports)})
}

// Get handles GET /api/v1/inspections/:id.
func (h *APIHandler) Get(c *fiber.Ctx) error {
	report, err := h.inspections.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"report": report,
			"status": string(report.Status()),
		},
	})
}

// Create handles POST /api/v1/inspections.
func (h *APIHandler) Create(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("no user in context")
	}

	draft, err := dto.ParseSubmission(c.Body(), user.Name)
	if err != nil {
		return err
	}

	report, err := h.inspections.Submit(c.UserContext(), draft)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"id":     report.ID,
			"status": string(report.Status()),
		},
	})
}
