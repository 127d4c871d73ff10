package services

import (
	"fmt"
	"log"
	"time"

	"gatewise-vms/internal/adapters/persistence/memstore"
	"gatewise-vms/internal/core/domain"
)

// ResidentService handles resident directory queries and the mutations
// property managers and residents themselves perform.
type ResidentService struct {
	store *memstore.Directory
}

// NewResidentService creates a new resident service
func NewResidentService(store *memstore.Directory) *ResidentService {
	return &ResidentService{store: store}
}

// GetByID returns one resident
func (s *ResidentService) GetByID(id string) (domain.ResidentProfile, error) {
	r, ok := s.store.ResidentByID(id)
	if !ok {
		return domain.ResidentProfile{}, domain.ErrNotFound
	}
	return r, nil
}

// ListByProperty returns a property's residents, any status
func (s *ResidentService) ListByProperty(propertyName string) []domain.ResidentProfile {
	return s.store.ResidentsByProperty(propertyName)
}

// ListApproved returns all APPROVED residents
func (s *ResidentService) ListApproved() []domain.ResidentProfile {
	return s.store.ApprovedResidents()
}

// PreferencesInput represents a resident's visitor preferences
type PreferencesInput struct {
	AcceptingVisitors bool     `json:"accepting_visitors"`
	AllowedVisitors   []string `json:"allowed_visitors"`
}

// UpdatePreferences replaces the visitor-acceptance flag and guest
// allow-list. An empty allow-list means every visitor is admitted
// (subject to the acceptance flag); a non-empty list admits only the
// named guests.
func (s *ResidentService) UpdatePreferences(id string, input PreferencesInput) error {
	if !s.store.SetResidentPreferences(id, input.AcceptingVisitors, input.AllowedVisitors) {
		return domain.ErrNotFound
	}
	log.Printf("✅ Preferences updated for resident %s (accepting=%v, %d allowed names)",
		id, input.AcceptingVisitors, len(input.AllowedVisitors))
	return nil
}

// ProfileUpdateInput represents the fields a manager may edit in place
type ProfileUpdateInput struct {
	UnitNumber          *string             `json:"unit_number"`
	MoveInDate          *string             `json:"move_in_date"`
	LeaseExpirationDate *string             `json:"lease_expiration_date"`
	DateOfBirth         *string             `json:"date_of_birth"`
	DLNumber            *string             `json:"dl_number"`
	Notes               *string             `json:"notes"`
	Credentials         *domain.Credentials `json:"credentials"`
}

// UpdateProfile applies a partial profile update
func (s *ResidentService) UpdateProfile(id string, input ProfileUpdateInput) (domain.ResidentProfile, error) {
	r, ok := s.store.UpdateResidentProfile(id, memstore.ResidentProfileUpdate{
		UnitNumber:          input.UnitNumber,
		MoveInDate:          input.MoveInDate,
		LeaseExpirationDate: input.LeaseExpirationDate,
		DateOfBirth:         input.DateOfBirth,
		DLNumber:            input.DLNumber,
		Notes:               input.Notes,
		Credentials:         input.Credentials,
	})
	if !ok {
		return domain.ResidentProfile{}, domain.ErrNotFound
	}
	log.Printf("✅ Resident profile updated: %s", id)
	return r, nil
}

// BatchImportRow is one row of a roster import
type BatchImportRow struct {
	Unit  string `json:"unit"`
	Last  string `json:"last"`
	First string `json:"first"`
}

// BatchImport inserts a pre-approved roster for a property. Imported
// residents get placeholder lease dates and FirstLast credentials, the
// same defaults the legacy importer applied.
func (s *ResidentService) BatchImport(propertyName string, rows []BatchImportRow) int {
	today := time.Now().Format("2006-01-02")
	for i, row := range rows {
		s.store.InsertResident(domain.ResidentProfile{
			ID:                  fmt.Sprintf("res-import-%d-%d", time.Now().UnixMilli(), i),
			PropertyName:        propertyName,
			UnitNumber:          row.Unit,
			FirstName:           row.First,
			LastName:            row.Last,
			DateOfBirth:         "01/01/1980",
			MoveInDate:          today,
			LeaseExpirationDate: "2025-12-31",
			DLNumber:            row.Unit,
			DLImageURL:          "https://picsum.photos/400/250",
			ResidentImageURL:    fmt.Sprintf("https://i.pravatar.cc/150?u=%d-%d", time.Now().UnixMilli(), i),
			Status:              domain.StatusApproved,
			AcceptingVisitors:   true,
			Credentials: domain.Credentials{
				Username: row.First + row.Last,
				Password: row.First + row.Last,
			},
			CreatedAt: time.Now(),
		})
	}
	log.Printf("📥 Batch import: %d residents → %s", len(rows), propertyName)
	return len(rows)
}
