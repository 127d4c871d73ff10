package services

import (
	"fmt"
	"log"
	"time"

	"gatewise-vms/internal/adapters/persistence/memstore"
	"gatewise-vms/internal/config"
	"gatewise-vms/internal/core/domain"
)

// ResidentIDLookupSentinel is sent by the gate UI when the officer did
// not pick an explicit resident and the unit fallback should be used.
const ResidentIDLookupSentinel = "lookup"

// VisitorService handles visitor check-in and check-out
type VisitorService struct {
	store  *memstore.Directory
	policy config.PolicyConfig
}

// NewVisitorService creates a new visitor service
func NewVisitorService(store *memstore.Directory, policy config.PolicyConfig) *VisitorService {
	return &VisitorService{store: store, policy: policy}
}

// CheckInInput represents a gate check-in request
type CheckInInput struct {
	ResidentID            string `json:"resident_id"`
	ResidentUnit          string `json:"resident_unit"`
	PropertyName          string `json:"property_name"`
	FirstName             string `json:"first_name"`
	LastName              string `json:"last_name"`
	Relationship          string `json:"relationship"`
	VehicleInfo           string `json:"vehicle_info"`
	VisitorImageURL       string `json:"visitor_image_url"`
	VisitorIDImageURL     string `json:"visitor_id_image_url"`
	ExpectedDurationHours int    `json:"expected_duration_hours"`
}

// CheckIn runs the visitor check-in protocol and inserts an ACTIVE
// visit on success.
func (s *VisitorService) CheckIn(input CheckInInput) (domain.VisitorProfile, error) {
	// 1. Resident resolution: explicit id wins unless it is the lookup
	// sentinel; otherwise fall back to (property, unit) among APPROVED
	// residents.
	var resident domain.ResidentProfile
	var found bool
	if input.ResidentID != "" && input.ResidentID != ResidentIDLookupSentinel {
		resident, found = s.store.ResidentByID(input.ResidentID)
	}
	if !found {
		resident, found = s.store.ApprovedResidentByUnit(input.PropertyName, input.ResidentUnit)
	}
	if !found {
		return domain.VisitorProfile{}, domain.ErrNoResidentOnFile
	}

	// 2. Authorization gate
	if !resident.AcceptingVisitors {
		return domain.VisitorProfile{}, domain.ErrNotAcceptingVisitors
	}
	if len(resident.AllowedVisitors) > 0 {
		visitorName := domain.Normalize(input.FirstName + " " + input.LastName)
		allowed := false
		for _, name := range resident.AllowedVisitors {
			if domain.Normalize(name) == visitorName {
				allowed = true
				break
			}
		}
		if !allowed {
			return domain.VisitorProfile{}, fmt.Errorf("%w: %q",
				domain.ErrVisitorNotOnGuestList, input.FirstName+" "+input.LastName)
		}
	}

	// 3. Duplicate-active detection: an audit flag only, never a block
	flagged := s.store.HasActiveVisitByName(input.FirstName, input.LastName)

	// 4. Duration: requested hours capped at the policy ceiling
	requestedHours := input.ExpectedDurationHours
	if requestedHours <= 0 {
		requestedHours = s.policy.DefaultVisitHours
	}
	durationHours := requestedHours
	if durationHours > s.policy.MaxVisitHours {
		durationHours = s.policy.MaxVisitHours
	}

	checkInTime := time.Now()
	v := s.store.InsertVisitor(domain.VisitorProfile{
		ResidentID:             resident.ID,
		ResidentUnit:           input.ResidentUnit,
		PropertyName:           input.PropertyName,
		FirstName:              input.FirstName,
		LastName:               input.LastName,
		VisitorImageURL:        input.VisitorImageURL,
		VisitorIDImageURL:      input.VisitorIDImageURL,
		Relationship:           input.Relationship,
		VehicleInfo:            input.VehicleInfo,
		CheckInTime:            checkInTime,
		ExpectedDurationHours:  durationHours,
		ExpirationTime:         checkInTime.Add(time.Duration(durationHours) * time.Hour),
		Status:                 domain.VisitActive,
		ReEntryWithoutCheckOut: flagged,
	})

	if flagged {
		log.Printf("⚠️ Re-entry without checkout flagged: %s %s (%s)",
			input.FirstName, input.LastName, input.PropertyName)
	}
	log.Printf("🎫 Visitor checked in: %s %s → %s %s (%dh pass)",
		input.FirstName, input.LastName, input.PropertyName, input.ResidentUnit, durationHours)
	return v, nil
}

// CheckOut closes a visit. A visit that was already checked out is
// silently re-stamped; only an unknown id is an error.
func (s *VisitorService) CheckOut(id string) (domain.VisitorProfile, error) {
	v, ok := s.store.CheckOutVisitor(id, time.Now())
	if !ok {
		return domain.VisitorProfile{}, domain.ErrNotFound
	}
	log.Printf("👋 Visitor checked out: %s %s (%s)", v.FirstName, v.LastName, v.PropertyName)
	return v, nil
}

// ActiveVisitors returns all visits still checked in
func (s *VisitorService) ActiveVisitors() []domain.VisitorProfile {
	return s.store.ActiveVisitors()
}

// AllVisitors returns the full visit history
func (s *VisitorService) AllVisitors() []domain.VisitorProfile {
	return s.store.Visitors()
}

// OverstayedVisitors returns ACTIVE visits past their expiration
func (s *VisitorService) OverstayedVisitors() []domain.VisitorProfile {
	return s.store.OverstayedVisitors(time.Now())
}

// VisitorsForResident returns one resident's visit history
func (s *VisitorService) VisitorsForResident(residentID string) []domain.VisitorProfile {
	return s.store.VisitorsByResident(residentID)
}
