package services

import (
	"encoding/json"
	"log"
	"strings"

	"gatewise-vms/internal/adapters/persistence/memstore"
	"gatewise-vms/internal/core/domain"
)

// GateService handles resident identity verification at a gate and the
// append-only audit trail behind it.
type GateService struct {
	store *memstore.Directory
}

// NewGateService creates a new gate service
func NewGateService(store *memstore.Directory) *GateService {
	return &GateService{store: store}
}

// qrPayload is the shape of a scanned resident pass
type qrPayload struct {
	ID string `json:"id"`
}

// DecodeQRPayload extracts the resident id from a scanned QR payload.
// The payload is opaque JSON supplied by the scanner; anything without
// an id field is treated as not-a-pass.
func DecodeQRPayload(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "{") {
		return "", false
	}
	var p qrPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil || p.ID == "" {
		return "", false
	}
	return p.ID, true
}

// Lookup resolves an APPROVED resident in the given property. A QR
// payload resolves by resident id; a manual query matches the DL number
// (case-insensitive) or the literal date-of-birth string. At most one
// resident is returned.
func (s *GateService) Lookup(query, propertyName string) (domain.ResidentProfile, bool) {
	if id, ok := DecodeQRPayload(query); ok {
		r, found := s.store.ResidentByID(id)
		if found && r.Status == domain.StatusApproved &&
			domain.Normalize(r.PropertyName) == domain.Normalize(propertyName) {
			return r, true
		}
		return domain.ResidentProfile{}, false
	}
	return s.store.LookupResidentByIDOrDOB(query, propertyName)
}

// LogCheckInInput represents a gate verification audit entry
type LogCheckInInput struct {
	ResidentID   string            `json:"resident_id"`
	ResidentName string            `json:"resident_name"`
	PropertyName string            `json:"property_name"`
	OfficerName  string            `json:"officer_name"`
	Result       domain.GateResult `json:"result"`
	SearchQuery  string            `json:"search_query"`
}

// LogCheckIn appends a gate verification attempt to the audit trail.
// Every lookup, granted or denied, is expected to be logged.
func (s *GateService) LogCheckIn(input LogCheckInInput) domain.ResidentCheckInLog {
	entry := s.store.AppendResidentCheckInLog(domain.ResidentCheckInLog{
		ResidentID:   input.ResidentID,
		ResidentName: input.ResidentName,
		PropertyName: input.PropertyName,
		OfficerName:  input.OfficerName,
		Result:       input.Result,
		SearchQuery:  input.SearchQuery,
	})

	if input.Result == domain.GateDenied {
		log.Printf("🛑 Gate check DENIED at %s (query %q, officer %s)",
			input.PropertyName, input.SearchQuery, input.OfficerName)
	}
	return entry
}

// CheckInLogs returns the gate audit trail
func (s *GateService) CheckInLogs() []domain.ResidentCheckInLog {
	return s.store.ResidentCheckInLogs()
}
