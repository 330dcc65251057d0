// Package catalog holds the fixed, ordered checklist item definitions.
// The catalog is pure static data: every new draft is seeded from it and
// every report of the same catalog version shares the same item ids,
// labels and kinds.
package catalog

import (
	"fmt"
	"time"

	"github.com/spec-kit/inspection-service/internal/domain"
)

type definition struct {
	label string
	kind  domain.ItemKind
}

// Section A covers the vehicle walk-around. Item a_0 (odometer) is the
// only numeric reading; everything else is a check.
var sectionA = []definition{
	{"Current Odometer reading", domain.KindNumeric},
	{"Fire tender", domain.KindCheck},
	{"Power Steering Fluid", domain.KindCheck},
	{"Engine Oil Level", domain.KindCheck},
	{"Water Coolant Level", domain.KindCheck},
	{"Water/Oil Leaks", domain.KindCheck},
	{"Tires & Lug Nuts", domain.KindCheck},
	{"Head Lamps", domain.KindCheck},
	{"Turn Signals", domain.KindCheck},
	{"Hazard Lights", domain.KindCheck},
	{"Brake Lights", domain.KindCheck},
	{"Backup Beep", domain.KindCheck},
	{"Starter", domain.KindCheck},
	{"Emergency Brake", domain.KindCheck},
	{"Air Pressure Gauges", domain.KindCheck},
	{"Oil Pressure Gauge", domain.KindCheck},
	{"Battery Charging System", domain.KindCheck},
	{"Fuel Gauge", domain.KindCheck},
	{"Ignition Indication", domain.KindCheck},
	{"Siren", domain.KindCheck},
	{"Steering Fluid (ATF)", domain.KindCheck},
	{"Water Level in Reservoir", domain.KindCheck},
	{"Carry out brake hold test", domain.KindCheck},
	{"Carry Out Brake test", domain.KindCheck},
	{"Two Way Radio", domain.KindCheck},
	{"Jack & Wheel Spanner", domain.KindCheck},
	{"Wheel chocks", domain.KindCheck},
	{"First Aid Box", domain.KindCheck},
	{"Warning Triangle", domain.KindCheck},
	{"Park Brake Operation", domain.KindCheck},
	{"Glass (all) & Mirror", domain.KindCheck},
	{"Hydraulic Operations", domain.KindCheck},
	{"Sounds/Vibrations", domain.KindCheck},
	{"Air-Condition", domain.KindCheck},
	{"Spare tyre", domain.KindCheck},
	{"Gear Stick Sealed & Correct", domain.KindCheck},
	{"Seat Belt Condition", domain.KindCheck},
	{"Driver & Passenger Doors", domain.KindCheck},
	{"Beacon Light", domain.KindCheck},
	{"Air Horn", domain.KindCheck},
	{"Wiper & Washer Fluid", domain.KindCheck},
	{"Radiator Coolant Level", domain.KindCheck},
	{"6% AFFF Concentrate Level", domain.KindCheck},
}

// Section B covers the pump. The running-time, pressure and flow readings
// are numeric.
var sectionB = []definition{
	{"Engine Oil Level", domain.KindCheck},
	{"Fuel Level", domain.KindCheck},
	{"Gauge Operative", domain.KindCheck},
	{"Indicator Lamp", domain.KindCheck},
	{"Pump Running time (Hour)", domain.KindNumeric},
	{"Delivery Pressure", domain.KindNumeric},
	{"Flow rate", domain.KindNumeric},
}

// SectionA returns fresh, unanswered Section A items in catalog order.
func SectionA() []domain.AnswerItem {
	return build("a", sectionA)
}

// SectionB returns fresh, unanswered Section B items in catalog order.
func SectionB() []domain.AnswerItem {
	return build("b", sectionB)
}

func build(prefix string, defs []definition) []domain.AnswerItem {
	items := make([]domain.AnswerItem, len(defs))
	for i, def := range defs {
		items[i] = domain.AnswerItem{
			ID:    fmt.Sprintf("%s_%d", prefix, i),
			Label: def.label,
			Kind:  def.kind,
		}
	}
	return items
}

// NewDraft seeds an in-memory draft for the named inspector. The header
// date defaults to today; everything else starts empty.
func NewDraft(inspectorName string) *domain.InspectionReport {
	return &domain.InspectionReport{
		InspectorName: inspectorName,
		Header: domain.Header{
			Date: time.Now().Format("2006-01-02"),
		},
		SectionA:    SectionA(),
		SectionB:    SectionB(),
		IsCompleted: false,
	}
}
