package domain

// ReportStatus is the dashboard status derived from a report at display
// time; it is never stored.
type ReportStatus string

const (
	ReportStatusDraft       ReportStatus = "Draft"
	ReportStatusDefectFound ReportStatus = "Defect Found"
	ReportStatusNoDefect    ReportStatus = "No Defect"
)

// Status derives the display status. An incomplete report is always a
// Draft regardless of its item statuses.
func (r *InspectionReport) Status() ReportStatus {
	if !r.IsCompleted {
		return ReportStatusDraft
	}
	if r.HasDefect() {
		return ReportStatusDefectFound
	}
	return ReportStatusNoDefect
}
