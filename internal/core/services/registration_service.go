package services

import (
	"log"
	"time"

	"gatewise-vms/internal/adapters/persistence/memstore"
	"gatewise-vms/internal/core/domain"
)

// RegistrationService handles self-registration requests and their
// approval workflow. Uniqueness and property-validity checks run here,
// before the store insert; the store itself does not raise them.
type RegistrationService struct {
	store *memstore.Directory
}

// NewRegistrationService creates a new registration service
func NewRegistrationService(store *memstore.Directory) *RegistrationService {
	return &RegistrationService{store: store}
}

// ResidentRegistrationInput represents a resident self-registration
type ResidentRegistrationInput struct {
	PropertyName        string `json:"property_name"`
	UnitNumber          string `json:"unit_number"`
	FirstName           string `json:"first_name"`
	MiddleInitial       string `json:"middle_initial"`
	LastName            string `json:"last_name"`
	DateOfBirth         string `json:"date_of_birth"`
	MoveInDate          string `json:"move_in_date"`
	LeaseExpirationDate string `json:"lease_expiration_date"`
	DLNumber            string `json:"dl_number"`
	DLImageURL          string `json:"dl_image_url"`
	ResidentImageURL    string `json:"resident_image_url"`
	Username            string `json:"username"`
	Password            string `json:"password"`
}

// RegisterResident validates and inserts a PENDING resident request
func (s *RegistrationService) RegisterResident(input ResidentRegistrationInput) (domain.ResidentProfile, error) {
	// 1. The property must be an approved community
	if !s.store.IsPropertyNameValid(input.PropertyName) {
		return domain.ResidentProfile{}, domain.ErrUnknownProperty
	}

	// 2. DL number must be unique across all residents
	if s.store.IsDLNumberTaken(input.DLNumber) {
		return domain.ResidentProfile{}, domain.ErrDLNumberTaken
	}

	// 3. Username shares one namespace with every account kind
	if s.store.IsUsernameTaken(input.Username) {
		return domain.ResidentProfile{}, domain.ErrUsernameTaken
	}

	r := s.store.InsertResident(domain.ResidentProfile{
		PropertyName:        input.PropertyName,
		UnitNumber:          input.UnitNumber,
		FirstName:           input.FirstName,
		MiddleInitial:       input.MiddleInitial,
		LastName:            input.LastName,
		DateOfBirth:         input.DateOfBirth,
		MoveInDate:          input.MoveInDate,
		LeaseExpirationDate: input.LeaseExpirationDate,
		DLNumber:            input.DLNumber,
		DLImageURL:          input.DLImageURL,
		ResidentImageURL:    input.ResidentImageURL,
		Status:              domain.StatusPending,
		AcceptingVisitors:   true,
		Credentials:         domain.Credentials{Username: input.Username, Password: input.Password},
		CreatedAt:           time.Now(),
	})

	log.Printf("📝 Resident registration received: %s %s (%s %s)",
		input.FirstName, input.LastName, input.PropertyName, input.UnitNumber)
	return r, nil
}

// PropertyRegistrationInput represents a property onboarding request
type PropertyRegistrationInput struct {
	PropertyName string `json:"property_name"`
	ManagerName  string `json:"manager_name"`
	ContactEmail string `json:"contact_email"`
	Address      string `json:"address"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	PhoneNumber  string `json:"phone_number"`
	Username     string `json:"username"`
	Password     string `json:"password"`
}

// RegisterProperty validates and inserts a PENDING property request
func (s *RegistrationService) RegisterProperty(input PropertyRegistrationInput) (domain.PropertyRequest, error) {
	if s.store.IsUsernameTaken(input.Username) {
		return domain.PropertyRequest{}, domain.ErrUsernameTaken
	}

	p := s.store.InsertPropertyRequest(domain.PropertyRequest{
		PropertyName: input.PropertyName,
		Status:       domain.StatusPending,
		ManagerName:  input.ManagerName,
		ContactEmail: input.ContactEmail,
		Address:      input.Address,
		City:         input.City,
		State:        input.State,
		ZipCode:      input.ZipCode,
		PhoneNumber:  input.PhoneNumber,
		Credentials:  domain.Credentials{Username: input.Username, Password: input.Password},
	})

	log.Printf("📝 Property onboarding request received: %s", input.PropertyName)
	return p, nil
}

// StaffRegistrationInput represents a management staff account request
type StaffRegistrationInput struct {
	PropertyName string `json:"property_name"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username"`
	Password     string `json:"password"`
}

// RegisterStaff validates and inserts a PENDING staff request
func (s *RegistrationService) RegisterStaff(input StaffRegistrationInput) (domain.ManagementStaffRequest, error) {
	if !s.store.IsPropertyNameValid(input.PropertyName) {
		return domain.ManagementStaffRequest{}, domain.ErrUnknownProperty
	}
	if s.store.IsUsernameTaken(input.Username) {
		return domain.ManagementStaffRequest{}, domain.ErrUsernameTaken
	}

	st := s.store.InsertStaffRequest(domain.ManagementStaffRequest{
		PropertyName: input.PropertyName,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Status:       domain.StatusPending,
		Credentials:  domain.Credentials{Username: input.Username, Password: input.Password},
	})

	log.Printf("📝 Staff request received: %s %s (%s)", input.FirstName, input.LastName, input.PropertyName)
	return st, nil
}

// OfficerRegistrationInput represents a security officer account request
type OfficerRegistrationInput struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	BadgeNumber    string `json:"badge_number"`
	OnDutyProperty string `json:"on_duty_property"`
	Username       string `json:"username"`
	Password       string `json:"password"`
}

// RegisterOfficer validates and inserts a PENDING officer request
func (s *RegistrationService) RegisterOfficer(input OfficerRegistrationInput) (domain.SecurityOfficerRequest, error) {
	if s.store.IsUsernameTaken(input.Username) {
		return domain.SecurityOfficerRequest{}, domain.ErrUsernameTaken
	}

	o := s.store.InsertOfficerRequest(domain.SecurityOfficerRequest{
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		BadgeNumber:    input.BadgeNumber,
		OnDutyProperty: input.OnDutyProperty,
		Status:         domain.StatusPending,
		Credentials:    domain.Credentials{Username: input.Username, Password: input.Password},
	})

	log.Printf("📝 Officer request received: %s %s (badge %s)", input.FirstName, input.LastName, input.BadgeNumber)
	return o, nil
}

// ============================================================
// Approval flips. All of these are idempotent by id; unexpected
// transitions are logged by the store and still applied.
// ============================================================

// ApproveResident approves a resident request
func (s *RegistrationService) ApproveResident(id, actor string) error {
	if !s.store.SetResidentStatus(id, domain.StatusApproved) {
		return domain.ErrNotFound
	}
	log.Printf("✅ Resident approved: %s (by %s)", id, actor)
	return nil
}

// RejectResident rejects a resident request
func (s *RegistrationService) RejectResident(id, actor string) error {
	if !s.store.SetResidentStatus(id, domain.StatusRejected) {
		return domain.ErrNotFound
	}
	log.Printf("🛑 Resident rejected: %s (by %s)", id, actor)
	return nil
}

// ApproveProperty approves a property request
func (s *RegistrationService) ApproveProperty(id string) error {
	if !s.store.SetPropertyStatus(id, domain.StatusApproved) {
		return domain.ErrNotFound
	}
	log.Printf("✅ Property approved: %s", id)
	return nil
}

// RejectProperty rejects a property request
func (s *RegistrationService) RejectProperty(id string) error {
	if !s.store.SetPropertyStatus(id, domain.StatusRejected) {
		return domain.ErrNotFound
	}
	log.Printf("🛑 Property rejected: %s", id)
	return nil
}

// ApproveStaff approves a staff request
func (s *RegistrationService) ApproveStaff(id string) error {
	if !s.store.SetStaffStatus(id, domain.StatusApproved) {
		return domain.ErrNotFound
	}
	log.Printf("✅ Staff approved: %s", id)
	return nil
}

// RejectStaff rejects a staff request
func (s *RegistrationService) RejectStaff(id string) error {
	if !s.store.SetStaffStatus(id, domain.StatusRejected) {
		return domain.ErrNotFound
	}
	log.Printf("🛑 Staff rejected: %s", id)
	return nil
}

// ApproveOfficer approves an officer request
func (s *RegistrationService) ApproveOfficer(id string) error {
	if !s.store.SetOfficerStatus(id, domain.StatusApproved) {
		return domain.ErrNotFound
	}
	log.Printf("✅ Officer approved: %s", id)
	return nil
}

// RejectOfficer rejects an officer request
func (s *RegistrationService) RejectOfficer(id string) error {
	if !s.store.SetOfficerStatus(id, domain.StatusRejected) {
		return domain.ErrNotFound
	}
	log.Printf("🛑 Officer rejected: %s", id)
	return nil
}

// ApprovedProperties returns the communities registration forms may
// reference
func (s *RegistrationService) ApprovedProperties() []domain.PropertyRequest {
	return s.store.ApprovedProperties()
}

// PropertyRequests returns all property onboarding requests
func (s *RegistrationService) PropertyRequests() []domain.PropertyRequest {
	return s.store.PropertyRequests()
}

// OfficerRequests returns all officer account requests
func (s *RegistrationService) OfficerRequests() []domain.SecurityOfficerRequest {
	return s.store.OfficerRequests()
}

// PendingStaffRequests returns a property's PENDING staff requests
func (s *RegistrationService) PendingStaffRequests(propertyName string) []domain.ManagementStaffRequest {
	return s.store.PendingStaffRequests(propertyName)
}

// StaffRequestByID returns one staff request
func (s *RegistrationService) StaffRequestByID(id string) (domain.ManagementStaffRequest, error) {
	st, ok := s.store.StaffRequestByID(id)
	if !ok {
		return domain.ManagementStaffRequest{}, domain.ErrNotFound
	}
	return st, nil
}
