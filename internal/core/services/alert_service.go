package services

import (
	"log"
	"time"

	"gatewise-vms/internal/adapters/persistence/memstore"
	"gatewise-vms/internal/core/domain"
)

// AlertService handles security alert notes: incident write-ups filed
// at the gate and triaged by managers.
type AlertService struct {
	store *memstore.Directory
}

// NewAlertService creates a new alert service
func NewAlertService(store *memstore.Directory) *AlertService {
	return &AlertService{store: store}
}

// AlertNoteInput represents a new incident note
type AlertNoteInput struct {
	ResidentID         string `json:"resident_id"`
	ResidentName       string `json:"resident_name"`
	UnitNumber         string `json:"unit_number"`
	PropertyName       string `json:"property_name"`
	OfficerName        string `json:"officer_name"`
	Details            string `json:"details"`
	PoliceContacted    string `json:"police_contacted"`
	PoliceReportNumber string `json:"police_report_number"`
	AttachmentURL      string `json:"attachment_url"`
}

// File records a new alert note. Status always starts at UNDER_REVIEW.
func (s *AlertService) File(input AlertNoteInput) (domain.AlertNote, error) {
	if input.Details == "" {
		return domain.AlertNote{}, domain.ErrInvalidInput
	}

	policeContacted := domain.PoliceContactStatus(input.PoliceContacted)
	switch policeContacted {
	case domain.PoliceContacted, domain.PoliceNotContacted, domain.PoliceNotYet:
	case "":
		policeContacted = domain.PoliceNotContacted
	default:
		return domain.AlertNote{}, domain.ErrInvalidInput
	}

	note := s.store.InsertAlertNote(domain.AlertNote{
		ResidentID:         input.ResidentID,
		ResidentName:       input.ResidentName,
		UnitNumber:         input.UnitNumber,
		PropertyName:       input.PropertyName,
		OfficerName:        input.OfficerName,
		Details:            input.Details,
		Timestamp:          time.Now(),
		PoliceContacted:    policeContacted,
		PoliceReportNumber: input.PoliceReportNumber,
		AttachmentURL:      input.AttachmentURL,
	})
	log.Printf("🚨 Alert note filed: %s (%s, police: %s)", note.ID, note.PropertyName, note.PoliceContacted)
	return note, nil
}

// ListAll returns every alert note
func (s *AlertService) ListAll() []domain.AlertNote {
	return s.store.AlertNotes()
}

// ListUnderReview returns notes awaiting triage
func (s *AlertService) ListUnderReview() []domain.AlertNote {
	return s.store.AlertNotesByStatus(domain.AlertUnderReview)
}

// ListForwarded returns notes escalated to property management
func (s *AlertService) ListForwarded() []domain.AlertNote {
	return s.store.AlertNotesByStatus(domain.AlertForwardedToPM)
}

// Triage resolves a note, optionally rewriting its details first.
// STORED_INTERNAL additionally appends the note's details to the
// subject resident's internal security notes; FORWARDED_TO_PM makes it
// visible on the management dashboard.
func (s *AlertService) Triage(id string, status domain.AlertNoteStatus, editedDetails string) (domain.AlertNote, error) {
	switch status {
	case domain.AlertUnderReview, domain.AlertStoredInternal, domain.AlertForwardedToPM:
	default:
		return domain.AlertNote{}, domain.ErrInvalidInput
	}
	note, ok := s.store.SetAlertNoteStatus(id, status, editedDetails)
	if !ok {
		return domain.AlertNote{}, domain.ErrNotFound
	}
	log.Printf("✅ Alert note %s → %s", id, status)
	return note, nil
}
