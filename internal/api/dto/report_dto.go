package dto

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/spec-kit/inspection-service/internal/catalog"
	"github.com/spec-kit/inspection-service/internal/domain"
	apperrors "github.com/spec-kit/inspection-service/pkg/util"
)

//go:embed report.schema.json
var reportSchemaJSON string

// reportSchema validates the raw submission document before anything is
// decoded into typed structs.
var reportSchema = jsonschema.MustCompileString("report.schema.json", reportSchemaJSON)

// ParseSubmission turns the serialized report JSON from the form into a
// domain draft. Malformed documents are rejected at this boundary; draft
// completeness is the validator's concern, not this parser's.
func ParseSubmission(raw []byte, inspectorName string) (*domain.InspectionReport, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, apperrors.NewValidationError("missing report payload", nil)
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, apperrors.NewValidationError("report payload is not valid JSON", nil)
	}
	if err := reportSchema.Validate(doc); err != nil {
		return nil, apperrors.NewValidationError("report payload does not match the checklist schema", map[string]any{
			"schema": err.Error(),
		})
	}

	var report domain.InspectionReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, apperrors.NewValidationError("report payload could not be decoded", nil)
	}

	if err := sectionMatchesCatalog("sectionA", report.SectionA, catalog.SectionA()); err != nil {
		return nil, err
	}
	if err := sectionMatchesCatalog("sectionB", report.SectionB, catalog.SectionB()); err != nil {
		return nil, err
	}

	// Server-side identity wins over anything the client sent.
	report.ID = ""
	report.CreatedAt = time.Time{}
	report.IsCompleted = false
	if inspectorName != "" {
		report.InspectorName = inspectorName
	}
	return &report, nil
}

// sectionMatchesCatalog verifies a submitted section carries exactly the
// catalog's items in catalog order. Answers may vary; item identity may
// not, or reports of the same catalog version would stop lining up.
func sectionMatchesCatalog(name string, items, defs []domain.AnswerItem) error {
	if len(items) != len(defs) {
		return apperrors.NewValidationError(
			fmt.Sprintf("%s carries %d items, the checklist has %d", name, len(items), len(defs)), nil)
	}
	for i, def := range defs {
		item := items[i]
		if item.ID != def.ID || item.Label != def.Label || item.Kind != def.Kind {
			return apperrors.NewValidationError(
				fmt.Sprintf("%s item %d does not match the checklist", name, i),
				map[string]any{"offendingIds": []string{def.ID}})
		}
	}
	return nil
}

// FromFormValues assembles a draft from plain form fields. The draft is
// seeded from the catalog and mutated field by field, so unknown item ids
// or out-of-range statuses are rejected here. On rejection the partially
// assembled draft is returned with the error, so the form can re-render
// what was already typed.
func FromFormValues(get func(key string) string, inspectorName string) (*domain.InspectionReport, error) {
	draft := catalog.NewDraft(inspectorName)

	for _, field := range []string{
		domain.HeaderFieldVehicleReg,
		domain.HeaderFieldDate,
		domain.HeaderFieldRoadWorthiness,
		domain.HeaderFieldInsurance,
	} {
		if err := draft.SetHeaderField(field, get(field)); err != nil {
			return draft, apperrors.NewValidationError(err.Error(), nil)
		}
	}

	sections := []struct {
		id    domain.SectionID
		items []domain.AnswerItem
	}{
		{domain.SectionA, draft.SectionA},
		{domain.SectionB, draft.SectionB},
	}
	for _, section := range sections {
		for _, item := range section.items {
			var err error
			if item.Kind == domain.KindNumeric {
				err = draft.SetAnswer(section.id, item.ID, domain.AnswerFieldValue, get("value_"+item.ID))
			} else {
				err = draft.SetAnswer(section.id, item.ID, domain.AnswerFieldStatus, get("status_"+item.ID))
			}
			if err == nil {
				err = draft.SetAnswer(section.id, item.ID, domain.AnswerFieldRemarks, get("remarks_"+item.ID))
			}
			if err != nil {
				return draft, apperrors.NewValidationError(err.Error(), map[string]any{
					"offendingIds": []string{item.ID},
				})
			}
		}
	}
	return draft, nil
}

// ReportSummary is the dashboard row shape.
type ReportSummary struct {
	ID            string    `json:"id"`
	VehicleReg    string    `json:"vehicleReg"`
	Date          string    `json:"date"`
	InspectorName string    `json:"inspectorName"`
	CreatedAt     time.Time `json:"createdAt"`
	Status        string    `json:"status"`
}

// NewReportSummary derives the display row for one report.
func NewReportSummary(report domain.InspectionReport) ReportSummary {
	return ReportSummary{
		ID:            report.ID,
		VehicleReg:    report.Header.VehicleReg,
		Date:          report.Header.Date,
		InspectorName: report.InspectorName,
		CreatedAt:     report.CreatedAt,
		Status:        string(report.Status()),
	}
}

// NewReportSummaries maps a report list to dashboard rows.
func NewReportSummaries(reports []domain.InspectionReport) []ReportSummary {
	summaries := make([]ReportSummary, len(reports))
	for i, report := range reports {
		summaries[i] = NewReportSummary(report)
	}
	return summaries
}
