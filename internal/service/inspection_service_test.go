package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/inspection-service/internal/catalog"
	"github.com/spec-kit/inspection-service/internal/domain"
	"github.com/spec-kit/inspection-service/internal/events"
	"github.com/spec-kit/inspection-service/internal/repository"
	apperrors "github.com/spec-kit/inspection-service/pkg/util"
)

type fakeInspectionRepo struct {
	reports    []domain.InspectionReport
	createErr  error
	lastAssign int
}

func (f *fakeInspectionRepo) Create(_ context.Context, report *domain.InspectionReport) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.lastAssign++
	report.ID = fmt.Sprintf("r-%d", f.lastAssign)
	report.CreatedAt = time.Date(2026, 8, 31, 8, 0, 0, 0, time.UTC).Add(time.Duration(f.lastAssign) * time.Minute)
	f.reports = append(f.reports, *report)
	return nil
}

func (f *fakeInspectionRepo) GetByID(_ context.Context, id string) (*domain.InspectionReport, error) {
	for i := range f.reports {
		if f.reports[i].ID == id {
			report := f.reports[i]
			return &report, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeInspectionRepo) List(_ context.Context, filter repository.InspectionFilter) ([]domain.InspectionReport, error) {
	var result []domain.InspectionReport
	needle := strings.ToLower(strings.TrimSpace(filter.Search))
	for _, report := range f.reports {
		if needle != "" &&
			!strings.Contains(strings.ToLower(report.Header.VehicleReg), needle) &&
			!strings.Contains(strings.ToLower(report.InspectorName), needle) {
			continue
		}
		result = append(result, report)
	}
	// newest first, like the SQL ORDER BY
	for i := 0; i < len(result)/2; i++ {
		result[i], result[len(result)-1-i] = result[len(result)-1-i], result[i]
	}
	return result, nil
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func newTestService() (*InspectionService, *fakeInspectionRepo, *recordingDispatcher) {
	repo := &fakeInspectionRepo{}
	dispatcher := &recordingDispatcher{}
	svc := NewInspectionService(InspectionDependencies{
		InspectionRepo: repo,
		Dispatcher:     dispatcher,
	})
	return svc, repo, dispatcher
}

func completeDraft(inspector string) *domain.InspectionReport {
	draft := catalog.NewDraft(inspector)
	draft.Header.VehicleReg = "WR 1838-11"
	draft.Header.RoadWorthiness = "Valid"
	draft.Header.Insurance = "Valid"
	for i := range draft.SectionA {
		if draft.SectionA[i].Kind == domain.KindNumeric {
			draft.SectionA[i].Value = "12345"
		} else {
			draft.SectionA[i].Status = domain.StatusOK
		}
	}
	for i := range draft.SectionB {
		if draft.SectionB[i].Kind == domain.KindNumeric {
			draft.SectionB[i].Value = "42"
		} else {
			draft.SectionB[i].Status = domain.StatusOK
		}
	}
	return draft
}

func TestSubmitCleanReport(t *testing.T) {
	svc, repo, dispatcher := newTestService()

	report, err := svc.Submit(context.Background(), completeDraft("Ama"))
	require.NoError(t, err)

	assert.True(t, report.IsCompleted)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, domain.ReportStatusNoDefect, report.Status())
	require.Len(t, repo.reports, 1)

	require.Len(t, dispatcher.published, 1)
	assert.Equal(t, events.EventInspectionSubmitted, dispatcher.published[0].Type)
}

func TestSubmitDefectiveReportPublishesDefectEvent(t *testing.T) {
	svc, _, dispatcher := newTestService()

	draft := completeDraft("Ama")
	draft.SectionA[5].Status = domain.StatusDefective
	draft.SectionA[5].Remarks = "oil leak at sump"

	report, err := svc.Submit(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStatusDefectFound, report.Status())

	require.Len(t, dispatcher.published, 2)
	assert.Equal(t, events.EventDefectFound, dispatcher.published[1].Type)
	assert.Equal(t, []string{"a_5"}, dispatcher.published[1].DefectiveItemIDs)
}

func TestSubmitRejectsMissingRemarks(t *testing.T) {
	svc, repo, dispatcher := newTestService()

	draft := completeDraft("Ama")
	draft.SectionA[3].Status = domain.StatusDefective
	draft.SectionA[3].Remarks = ""

	_, err := svc.Submit(context.Background(), draft)
	require.Error(t, err)

	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	ids, ok := domainErr.Details["offendingIds"].([]string)
	require.True(t, ok)
	assert.Contains(t, ids, "a_3-remarks")

	assert.Empty(t, repo.reports, "rejected draft never reaches the store")
	assert.Empty(t, dispatcher.published)
}

func TestSubmitRejectsIncompleteDraft(t *testing.T) {
	svc, repo, _ := newTestService()

	draft := catalog.NewDraft("Ama")
	_, err := svc.Submit(context.Background(), draft)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	assert.Empty(t, repo.reports)
	assert.False(t, draft.IsCompleted, "rejected draft is not marked complete")
}

func TestSubmitSurfacesPersistenceFailure(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.createErr = errors.New("connection refused")

	_, err := svc.Submit(context.Background(), completeDraft("Ama"))
	require.Error(t, err)
	assert.Equal(t, "PERSISTENCE_FAILURE", apperrors.ToDomainError(err).Code)
}

func TestGetRoundTrip(t *testing.T) {
	svc, _, _ := newTestService()

	submitted, err := svc.Submit(context.Background(), completeDraft("Ama"))
	require.NoError(t, err)

	loaded, err := svc.Get(context.Background(), submitted.ID)
	require.NoError(t, err)

	assert.Equal(t, submitted.Header, loaded.Header)
	assert.Equal(t, submitted.SectionA, loaded.SectionA)
	assert.Equal(t, submitted.SectionB, loaded.SectionB)
}

func TestGetUnknownIDIsNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
	assert.Equal(t, 404, domainErr.HTTPStatus)
}

func TestListFilter(t *testing.T) {
	svc, _, _ := newTestService()

	first := completeDraft("Ama")
	first.Header.VehicleReg = "WR 1838-11"
	_, err := svc.Submit(context.Background(), first)
	require.NoError(t, err)

	second := completeDraft("Kwame")
	second.Header.VehicleReg = "GN 4021-18"
	_, err = svc.Submit(context.Background(), second)
	require.NoError(t, err)

	all, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "GN 4021-18", all[0].Header.VehicleReg, "newest first")

	matched, err := svc.List(context.Background(), "1838")
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "WR 1838-11", matched[0].Header.VehicleReg)

	matchedByName, err := svc.List(context.Background(), "kwame")
	require.NoError(t, err)
	require.Len(t, matchedByName, 1)

	none, err := svc.List(context.Background(), "no-such-reg")
	require.NoError(t, err)
	assert.Empty(t, none)
}
