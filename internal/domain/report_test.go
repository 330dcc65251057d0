package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDraft() *InspectionReport {
	return &InspectionReport{
		InspectorName: "Ama",
		Header:        Header{Date: "2026-08-31"},
		SectionA: []AnswerItem{
			{ID: "a_0", Label: "Odometer", Kind: KindNumeric},
			{ID: "a_1", Label: "Head Lamps", Kind: KindCheck},
			{ID: "a_2", Label: "Siren", Kind: KindCheck},
		},
		SectionB: []AnswerItem{
			{ID: "b_0", Label: "Fuel Level", Kind: KindCheck},
			{ID: "b_1", Label: "Flow rate", Kind: KindNumeric},
		},
	}
}

func TestSetHeaderField(t *testing.T) {
	draft := newTestDraft()

	require.NoError(t, draft.SetHeaderField(HeaderFieldVehicleReg, "GR 1234-20"))
	require.NoError(t, draft.SetHeaderField(HeaderFieldRoadWorthiness, "Valid"))
	require.NoError(t, draft.SetHeaderField(HeaderFieldInsurance, "Expired"))

	assert.Equal(t, "GR 1234-20", draft.Header.VehicleReg)
	assert.Equal(t, "Valid", draft.Header.RoadWorthiness)
	assert.Equal(t, "Expired", draft.Header.Insurance)

	assert.Error(t, draft.SetHeaderField("odometer", "1"))
}

func TestSetAnswer(t *testing.T) {
	draft := newTestDraft()

	require.NoError(t, draft.SetAnswer(SectionA, "a_1", AnswerFieldStatus, "OK"))
	assert.Equal(t, StatusOK, draft.SectionA[1].Status)

	require.NoError(t, draft.SetAnswer(SectionA, "a_1", AnswerFieldStatus, "DEFECTIVE"))
	require.NoError(t, draft.SetAnswer(SectionA, "a_1", AnswerFieldRemarks, "left lamp cracked"))
	assert.Equal(t, StatusDefective, draft.SectionA[1].Status)
	assert.Equal(t, "left lamp cracked", draft.SectionA[1].Remarks)

	// clearing a status is allowed
	require.NoError(t, draft.SetAnswer(SectionA, "a_1", AnswerFieldStatus, ""))
	assert.Equal(t, StatusUnset, draft.SectionA[1].Status)

	require.NoError(t, draft.SetAnswer(SectionB, "b_1", AnswerFieldValue, "450"))
	assert.Equal(t, "450", draft.SectionB[1].Value)
}

func TestSetAnswerRejectsMismatches(t *testing.T) {
	draft := newTestDraft()

	assert.Error(t, draft.SetAnswer(SectionA, "a_0", AnswerFieldStatus, "OK"), "status on numeric item")
	assert.Error(t, draft.SetAnswer(SectionA, "a_1", AnswerFieldValue, "5"), "value on check item")
	assert.Error(t, draft.SetAnswer(SectionA, "a_1", AnswerFieldStatus, "BROKEN"), "unknown status")
	assert.Error(t, draft.SetAnswer(SectionA, "a_99", AnswerFieldStatus, "OK"), "unknown item")
	assert.Error(t, draft.SetAnswer("C", "a_1", AnswerFieldStatus, "OK"), "unknown section")
	assert.Error(t, draft.SetAnswer(SectionA, "a_1", "colour", "red"), "unknown field")
}

func TestProgressBoundsAndMonotonicity(t *testing.T) {
	draft := newTestDraft()
	draft.Header.Date = ""

	last := draft.Progress()
	assert.Equal(t, 0, last)

	steps := []func(){
		func() { draft.Header.Date = "2026-08-31" },
		func() { draft.SectionA[0].Value = "12345" },
		func() { draft.SectionA[1].Status = StatusOK },
		func() { draft.SectionA[2].Status = StatusDefective },
		func() { draft.SectionB[0].Status = StatusOK },
		func() { draft.SectionB[1].Value = "450" },
	}
	for i, step := range steps {
		step()
		got := draft.Progress()
		assert.GreaterOrEqual(t, got, last, "step %d regressed", i)
		assert.LessOrEqual(t, got, 100)
		last = got
	}
	assert.Equal(t, 100, last)
}

func TestProgressIgnoresWhitespaceValues(t *testing.T) {
	draft := newTestDraft()
	draft.SectionA[0].Value = "   "
	assert.False(t, draft.SectionA[0].Filled())
}

func TestDerivedStatus(t *testing.T) {
	draft := newTestDraft()

	// incomplete reports are drafts no matter what the items say
	draft.SectionA[1].Status = StatusDefective
	assert.Equal(t, ReportStatusDraft, draft.Status())

	draft.IsCompleted = true
	assert.Equal(t, ReportStatusDefectFound, draft.Status())

	draft.SectionA[1].Status = StatusOK
	assert.Equal(t, ReportStatusNoDefect, draft.Status())

	draft.SectionB[0].Status = StatusDefective
	assert.Equal(t, ReportStatusDefectFound, draft.Status())
}

func TestParseItemStatus(t *testing.T) {
	status, err := ParseItemStatus("OK")
	require.NoError(t, err)
	assert.Equal(t, StatusOK, status)

	status, err = ParseItemStatus("")
	require.NoError(t, err)
	assert.Equal(t, StatusUnset, status)

	_, err = ParseItemStatus("ok")
	assert.Error(t, err)
}
