package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inspection-service/internal/api/dto"
	"github.com/spec-kit/inspection-service/internal/auth"
	"github.com/spec-kit/inspection-service/internal/service"
	apperrors "github.com/spec-kit/inspection-service/pkg/util"
)

// DashboardHandler renders the report list.
type DashboardHandler struct {
	inspections *service.InspectionService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(inspections *service.InspectionService) *DashboardHandler {
	return &DashboardHandler{inspections: inspections}
}

// Dashboard handles GET /dashboard. The q parameter filters by substring
// over vehicle registration or inspector name.
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("no user in context")
	}

	search := c.Query("q")
	reports, err := h.inspections.List(c.UserContext(), search)
	if err != nil {
		return err
	}

	return c.Render("dashboard", fiber.Map{
		"User":    user,
		"Search":  search,
		"Reports": dto.NewReportSummaries(reports),
	})
}
