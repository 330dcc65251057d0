package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/inspection-service/internal/api/dto"
	"github.com/spec-kit/inspection-service/internal/auth"
	"github.com/spec-kit/inspection-service/internal/catalog"
	"github.com/spec-kit/inspection-service/internal/domain"
	"github.com/spec-kit/inspection-service/internal/service"
	apperrors "github.com/spec-kit/inspection-service/pkg/util"
)

// InspectionsHandler serves the checklist form and the report detail page.
type InspectionsHandler struct {
	inspections *service.InspectionService
}

// NewInspectionsHandler constructs handler.
func NewInspectionsHandler(inspections *service.InspectionService) *InspectionsHandler {
	return &InspectionsHandler{inspections: inspections}
}

// NewForm handles GET /inspection/new.
func (h *InspectionsHandler) NewForm(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("no user in context")
	}

	draft := catalog.NewDraft(user.Name)
	return h.renderForm(c, http.StatusOK, draft, "", nil)
}

// Create handles POST /inspection/new. The submission arrives either as a
// single reportData field carrying the full report JSON, as a raw JSON
// body, or as plain form fields assembled through the draft mutators.
func (h *InspectionsHandler) Create(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewUnauthenticated("no user in context")
	}

	draft, err := h.parseDraft(c, user.Name)
	if err != nil {
		// Keep whatever the user already typed on the re-rendered form;
		// only a submission that never decoded starts over blank.
		if draft == nil {
			draft = catalog.NewDraft(user.Name)
		}
		return h.rejectOrFail(c, draft, err)
	}

	report, err := h.inspections.Submit(c.UserContext(), draft)
	if err != nil {
		return h.rejectOrFail(c, draft, err)
	}

	if auth.WantsHTML(c) {
		return c.Redirect("/dashboard", fiber.StatusFound)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"id":     report.ID,
			"status": string(report.Status()),
		},
	})
}

// Detail handles GET /inspection/:id.
func (h *InspectionsHandler) Detail(c *fiber.Ctx) error {
	report, err := h.inspections.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}

	return c.Render("inspection_view", fiber.Map{
		"Report": report,
		"Status": string(report.Status()),
	})
}

func (h *InspectionsHandler) parseDraft(c *fiber.Ctx, inspectorName string) (*domain.InspectionReport, error) {
	if raw := c.FormValue("reportData"); raw != "" {
		return dto.ParseSubmission([]byte(raw), inspectorName)
	}
	if strings.Contains(c.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON) {
		return dto.ParseSubmission(c.Body(), inspectorName)
	}
	return dto.FromFormValues(func(key string) string { return c.FormValue(key) }, inspectorName)
}

// rejectOrFail re-renders the form for browser validation failures and
// defers everything else to the error middleware.
func (h *InspectionsHandler) rejectOrFail(c *fiber.Ctx, draft *domain.InspectionReport, err error) error {
	var domainErr *apperrors.DomainError
	if !auth.WantsHTML(c) || !errors.As(err, &domainErr) || domainErr.Code != "VALIDATION_FAILED" {
		return err
	}

	offending := map[string]bool{}
	if ids, ok := domainErr.Details["offendingIds"].([]string); ok {
		for _, id := range ids {
			offending[id] = true
		}
	}
	return h.renderForm(c, http.StatusBadRequest, draft, domainErr.Message, offending)
}

func (h *InspectionsHandler) renderForm(c *fiber.Ctx, status int, draft *domain.InspectionReport, message string, offending map[string]bool) error {
	if offending == nil {
		offending = map[string]bool{}
	}
	c.Status(status)
	return c.Render("inspection_form", fiber.Map{
		"Draft":     draft,
		"Progress":  draft.Progress(),
		"Error":     message,
		"Offending": offending,
	})
}
