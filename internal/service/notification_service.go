package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/inspection-service/internal/events"
)

// NotificationService reacts to inspection events. The transport is a
// structured log line; a mail or webhook sender would hang off the same
// handlers.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService builds the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to the inspection events.
func (s *NotificationService) RegisterHandlers() {
	s.dispatcher.Subscribe(events.EventInspectionSubmitted, s.onSubmitted)
	s.dispatcher.Subscribe(events.EventDefectFound, s.onDefectFound)
}

func (s *NotificationService) onSubmitted(_ context.Context, event events.Event) error {
	s.logger.Info("inspection submitted",
		zap.String("report_id", event.ReportID),
		zap.String("inspector", event.InspectorName),
		zap.String("vehicle_reg", event.VehicleReg),
	)
	return nil
}

func (s *NotificationService) onDefectFound(_ context.Context, event events.Event) error {
	s.logger.Warn("defects reported on vehicle",
		zap.String("report_id", event.ReportID),
		zap.String("vehicle_reg", event.VehicleReg),
		zap.Strings("defective_items", event.DefectiveItemIDs),
	)
	return nil
}
