package domain

import (
	"fmt"
	"strings"
)

// ValidationResult describes why a draft may not be submitted. OffendingIDs
// is the deduplicated union of every violating identifier across all rules:
// header field names, incomplete item ids, and "<id>-remarks" for defective
// items missing remarks. Message reports the first violated rule.
type ValidationResult struct {
	OffendingIDs []string
	Message      string
}

// OK reports whether the draft passed every rule.
func (v ValidationResult) OK() bool {
	return len(v.OffendingIDs) == 0
}

// Validate decides whether a draft may transition to a persisted report.
// Rules are checked in a fixed order: header completeness, Section A
// completeness, Section A defect remarks, Section B defect remarks,
// Section B completeness. Every rule runs so the offending set is complete,
// but the message names only the earliest failing rule.
func Validate(r *InspectionReport) ValidationResult {
	var result ValidationResult
	seen := make(map[string]struct{})

	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		result.OffendingIDs = append(result.OffendingIDs, id)
	}
	fail := func(message string) {
		if result.Message == "" {
			result.Message = message
		}
	}

	missingHeader := 0
	for _, field := range []struct {
		name  string
		value string
	}{
		{HeaderFieldVehicleReg, r.Header.VehicleReg},
		{HeaderFieldDate, r.Header.Date},
		{HeaderFieldRoadWorthiness, r.Header.RoadWorthiness},
		{HeaderFieldInsurance, r.Header.Insurance},
	} {
		if strings.TrimSpace(field.value) == "" {
			add(field.name)
			missingHeader++
		}
	}
	if missingHeader > 0 {
		fail(fmt.Sprintf("Please complete all header fields. %d remaining.", missingHeader))
	}

	if n := collectIncomplete(r.SectionA, add); n > 0 {
		fail(fmt.Sprintf("Please complete all items in Section A. %d remaining.", n))
	}
	if n := collectMissingRemarks(r.SectionA, add); n > 0 {
		fail(fmt.Sprintf("Please provide remarks for all defective items in Section A. %d missing.", n))
	}
	if n := collectMissingRemarks(r.SectionB, add); n > 0 {
		fail(fmt.Sprintf("Please provide remarks for all defective items in Section B. %d missing.", n))
	}
	if n := collectIncomplete(r.SectionB, add); n > 0 {
		fail(fmt.Sprintf("Please complete all items in Section B. %d remaining.", n))
	}

	return result
}

func collectIncomplete(items []AnswerItem, add func(string)) int {
	count := 0
	for _, item := range items {
		if !item.Filled() {
			add(item.ID)
			count++
		}
	}
	return count
}

func collectMissingRemarks(items []AnswerItem, add func(string)) int {
	count := 0
	for _, item := range items {
		if item.Status == StatusDefective && strings.TrimSpace(item.Remarks) == "" {
			add(item.ID + "-remarks")
			count++
		}
	}
	return count
}
