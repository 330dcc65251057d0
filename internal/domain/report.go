package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ItemKind distinguishes checkbox items from free numeric readings.
type ItemKind string

const (
	KindCheck   ItemKind = "check"
	KindNumeric ItemKind = "numeric"
)

// ItemStatus is the recorded outcome of a check item. The zero value is
// explicit: an item that has not been answered yet is StatusUnset, never
// an implicit empty string with hidden meaning.
type ItemStatus string

const (
	StatusUnset     ItemStatus = ""
	StatusOK        ItemStatus = "OK"
	StatusDefective ItemStatus = "DEFECTIVE"
)

// ParseItemStatus converts a raw string into an ItemStatus.
func ParseItemStatus(raw string) (ItemStatus, error) {
	switch raw {
	case "":
		return StatusUnset, nil
	case string(StatusOK):
		return StatusOK, nil
	case string(StatusDefective):
		return StatusDefective, nil
	default:
		return StatusUnset, fmt.Errorf("unknown item status %q", raw)
	}
}

// SectionID identifies one of the two checklist sections.
type SectionID string

const (
	SectionA SectionID = "A"
	SectionB SectionID = "B"
)

// AnswerItem is one catalog item's recorded response within a report.
// For check items Status carries the answer; for numeric items Value does.
type AnswerItem struct {
	ID      string     `json:"id"`
	Label   string     `json:"label"`
	Kind    ItemKind   `json:"kind"`
	Status  ItemStatus `json:"status,omitempty"`
	Remarks string     `json:"remarks,omitempty"`
	Value   string     `json:"value,omitempty"`
}

// Filled reports whether the item counts as answered.
func (a AnswerItem) Filled() bool {
	if a.Kind == KindNumeric {
		return strings.TrimSpace(a.Value) != ""
	}
	return a.Status != StatusUnset
}

// Header carries the per-inspection vehicle paperwork fields.
type Header struct {
	VehicleReg     string `json:"vehicleReg"`
	Date           string `json:"date"`
	RoadWorthiness string `json:"roadWorthiness"`
	Insurance      string `json:"insurance"`
}

// Header field names accepted by SetHeaderField.
const (
	HeaderFieldVehicleReg     = "vehicleReg"
	HeaderFieldDate           = "date"
	HeaderFieldRoadWorthiness = "roadWorthiness"
	HeaderFieldInsurance      = "insurance"
)

// Answer field names accepted by SetAnswer.
const (
	AnswerFieldStatus  = "status"
	AnswerFieldRemarks = "remarks"
	AnswerFieldValue   = "value"
)

// InspectionReport is the root aggregate. It starts life as an in-memory
// draft (IsCompleted=false) and becomes an immutable persisted record once
// submitted; no update or delete path exists after that.
type InspectionReport struct {
	ID            string       `json:"id,omitempty"`
	InspectorName string       `json:"inspectorName"`
	CreatedAt     time.Time    `json:"createdAt,omitempty"`
	Header        Header       `json:"header"`
	SectionA      []AnswerItem `json:"sectionA"`
	SectionB      []AnswerItem `json:"sectionB"`
	IsCompleted   bool         `json:"isCompleted"`
}

// SetHeaderField updates a single header field on a draft.
func (r *InspectionReport) SetHeaderField(field, value string) error {
	switch field {
	case HeaderFieldVehicleReg:
		r.Header.VehicleReg = value
	case HeaderFieldDate:
		r.Header.Date = value
	case HeaderFieldRoadWorthiness:
		r.Header.RoadWorthiness = value
	case HeaderFieldInsurance:
		r.Header.Insurance = value
	default:
		return fmt.Errorf("unknown header field %q", field)
	}
	return nil
}

// SetAnswer updates one field of one answer item on a draft. Status only
// applies to check items and value only to numeric items; remarks apply to
// both.
func (r *InspectionReport) SetAnswer(section SectionID, id, field, value string) error {
	items, err := r.section(section)
	if err != nil {
		return err
	}

	for i := range items {
		if items[i].ID != id {
			continue
		}
		switch field {
		case AnswerFieldStatus:
			if items[i].Kind != KindCheck {
				return fmt.Errorf("item %s: status not applicable to %s items", id, items[i].Kind)
			}
			status, err := ParseItemStatus(value)
			if err != nil {
				return fmt.Errorf("item %s: %w", id, err)
			}
			items[i].Status = status
		case AnswerFieldRemarks:
			items[i].Remarks = value
		case AnswerFieldValue:
			if items[i].Kind != KindNumeric {
				return fmt.Errorf("item %s: value not applicable to %s items", id, items[i].Kind)
			}
			items[i].Value = value
		default:
			return fmt.Errorf("unknown answer field %q", field)
		}
		return nil
	}
	return fmt.Errorf("unknown item %q in section %s", id, section)
}

// Progress returns the draft completion percentage in [0,100]. The header
// date counts as one slot alongside every checklist item.
func (r *InspectionReport) Progress() int {
	total := 1 + len(r.SectionA) + len(r.SectionB)
	filled := 0
	if r.Header.Date != "" {
		filled++
	}
	for _, item := range r.SectionA {
		if item.Filled() {
			filled++
		}
	}
	for _, item := range r.SectionB {
		if item.Filled() {
			filled++
		}
	}

	pct := int(math.Round(float64(filled) / float64(total) * 100))
	if pct > 100 {
		pct = 100
	}
	return pct
}

// HasDefect reports whether any item in either section is marked defective.
func (r *InspectionReport) HasDefect() bool {
	for _, item := range r.SectionA {
		if item.Status == StatusDefective {
			return true
		}
	}
	for _, item := range r.SectionB {
		if item.Status == StatusDefective {
			return true
		}
	}
	return false
}

func (r *InspectionReport) section(id SectionID) ([]AnswerItem, error) {
	switch id {
	case SectionA:
		return r.SectionA, nil
	case SectionB:
		return r.SectionB, nil
	default:
		return nil, fmt.Errorf("unknown section %q", id)
	}
}
