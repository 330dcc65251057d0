package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/inspection-service/internal/domain"
	"github.com/spec-kit/inspection-service/internal/events"
	"github.com/spec-kit/inspection-service/internal/repository"
	apperrors "github.com/spec-kit/inspection-service/pkg/util"
)

// InspectionService coordinates the submit/list/view workflow for
// inspection reports.
type InspectionService struct {
	inspections repository.InspectionRepository
	dispatcher  events.Dispatcher
}

// InspectionDependencies bundles requirements for the inspection service.
type InspectionDependencies struct {
	InspectionRepo repository.InspectionRepository
	Dispatcher     events.Dispatcher
}

// NewInspectionService builds the service.
func NewInspectionService(deps InspectionDependencies) *InspectionService {
	return &InspectionService{
		inspections: deps.InspectionRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// Submit validates the draft and persists it as an immutable completed
// record. A rejected draft never reaches the store.
func (s *InspectionService) Submit(ctx context.Context, report *domain.InspectionReport) (*domain.InspectionReport, error) {
	result := domain.Validate(report)
	if !result.OK() {
		return nil, apperrors.NewValidationError(result.Message, map[string]any{
			"offendingIds": result.OffendingIDs,
			"count":        len(result.OffendingIDs),
		})
	}

	report.ID = ""
	report.IsCompleted = true

	if err := requiredFieldsPresent(report); err != nil {
		return nil, apperrors.NewValidationError(err.Error(), nil)
	}

	if err := s.inspections.Create(ctx, report); err != nil {
		return nil, apperrors.NewPersistenceFailure(err)
	}

	s.publish(ctx, report)
	return report, nil
}

// Get loads one report by id, distinguishing missing from broken.
func (s *InspectionService) Get(ctx context.Context, id string) (*domain.InspectionReport, error) {
	report, err := s.inspections.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("inspection report", map[string]any{"id": id})
		}
		return nil, apperrors.NewPersistenceFailure(err)
	}
	return report, nil
}

// List returns all reports newest first, optionally narrowed by a
// case-insensitive substring over vehicle registration or inspector name.
func (s *InspectionService) List(ctx context.Context, search string) ([]domain.InspectionReport, error) {
	reports, err := s.inspections.List(ctx, repository.InspectionFilter{Search: search})
	if err != nil {
		return nil, apperrors.NewPersistenceFailure(err)
	}
	return reports, nil
}

// requiredFieldsPresent is the persistence gateway's defensive re-check;
// the validator should have caught all of this already.
func requiredFieldsPresent(report *domain.InspectionReport) error {
	switch {
	case strings.TrimSpace(report.InspectorName) == "":
		return errors.New("inspector name is required")
	case strings.TrimSpace(report.Header.VehicleReg) == "":
		return errors.New("vehicle registration is required")
	case strings.TrimSpace(report.Header.Date) == "":
		return errors.New("inspection date is required")
	case len(report.SectionA) == 0 || len(report.SectionB) == 0:
		return errors.New("checklist sections are required")
	}
	return nil
}

func (s *InspectionService) publish(ctx context.Context, report *domain.InspectionReport) {
	if s.dispatcher == nil {
		return
	}

	base := events.Event{
		Type:          events.EventInspectionSubmitted,
		ReportID:      report.ID,
		InspectorName: report.InspectorName,
		VehicleReg:    report.Header.VehicleReg,
		OccurredAt:    time.Now(),
	}
	_ = s.dispatcher.Publish(ctx, base)

	if report.Status() == domain.ReportStatusDefectFound {
		defect := base
		defect.Type = events.EventDefectFound
		defect.DefectiveItemIDs = defectiveItemIDs(report)
		_ = s.dispatcher.Publish(ctx, defect)
	}
}

func defectiveItemIDs(report *domain.InspectionReport) []string {
	var ids []string
	for _, item := range report.SectionA {
		if item.Status == domain.StatusDefective {
			ids = append(ids, item.ID)
		}
	}
	for _, item := range report.SectionB {
		if item.Status == domain.StatusDefective {
			ids = append(ids, item.ID)
		}
	}
	return ids
}
