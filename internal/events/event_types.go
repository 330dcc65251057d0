package events

import "time"

// EventType labels inspection lifecycle events.
type EventType string

const (
	EventInspectionSubmitted EventType = "inspection.submitted"
	EventDefectFound         EventType = "inspection.defect_found"
)

// Event carries the facts handlers need without reloading the report.
type Event struct {
	Type             EventType
	ReportID         string
	InspectorName    string
	VehicleReg       string
	DefectiveItemIDs []string
	OccurredAt       time.Time
}
