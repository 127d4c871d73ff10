package services

import (
	"log"
	"time"

	"gatewise-vms/internal/adapters/persistence/memstore"
	"gatewise-vms/internal/core/domain"
)

// MaintenanceService handles infrastructure issue reports filed at the
// gate or by residents and reviewed by managers.
type MaintenanceService struct {
	store *memstore.Directory
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(store *memstore.Directory) *MaintenanceService {
	return &MaintenanceService{store: store}
}

// MaintenanceReportInput represents a new issue report
type MaintenanceReportInput struct {
	PropertyName string `json:"property_name"`
	ReportedBy   string `json:"reported_by"`
	Type         string `json:"type"`
	Details      string `json:"details"`
}

// Report files a new maintenance request. Status is always
// PENDING_REVIEW regardless of what the caller sends.
func (s *MaintenanceService) Report(input MaintenanceReportInput) (domain.MaintenanceRequest, error) {
	// 1. Validate the target property
	if !s.store.IsPropertyNameValid(input.PropertyName) {
		return domain.MaintenanceRequest{}, domain.ErrUnknownProperty
	}
	if input.Details == "" {
		return domain.MaintenanceRequest{}, domain.ErrInvalidInput
	}

	req := s.store.InsertMaintenanceRequest(domain.MaintenanceRequest{
		PropertyName: input.PropertyName,
		ReportedBy:   input.ReportedBy,
		Type:         input.Type,
		Details:      input.Details,
		ReportedAt:   time.Now(),
	})
	log.Printf("🔧 Maintenance report filed: %s (%s @ %s)", req.ID, req.Type, req.PropertyName)
	return req, nil
}

// ListAll returns every maintenance request
func (s *MaintenanceService) ListAll() []domain.MaintenanceRequest {
	return s.store.MaintenanceRequests()
}

// ListByProperty returns a property's maintenance requests
func (s *MaintenanceService) ListByProperty(propertyName string) []domain.MaintenanceRequest {
	return s.store.MaintenanceRequestsByProperty(propertyName)
}

// Review moves a request to a new status and records the reviewer's
// notes. Unexpected transitions are logged but still applied.
func (s *MaintenanceService) Review(id string, status domain.MaintenanceStatus, adminNotes string) (domain.MaintenanceRequest, error) {
	switch status {
	case domain.MaintenancePendingReview, domain.MaintenanceApproved, domain.MaintenanceRejected:
	default:
		return domain.MaintenanceRequest{}, domain.ErrInvalidInput
	}
	req, ok := s.store.SetMaintenanceStatus(id, status, adminNotes)
	if !ok {
		return domain.MaintenanceRequest{}, domain.ErrNotFound
	}
	log.Printf("✅ Maintenance request %s → %s", id, status)
	return req, nil
}
