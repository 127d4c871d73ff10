package domain

import (
	"strings"
	"time"
)

// Role represents user role in the system
type Role string

const (
	RoleResident   Role = "RESIDENT"
	RolePM         Role = "PM"
	RoleSecurity   Role = "SECURITY"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// RequestStatus is the lifecycle status of an account/property request
type RequestStatus string

const (
	StatusPending  RequestStatus = "PENDING"
	StatusApproved RequestStatus = "APPROVED"
	StatusRejected RequestStatus = "REJECTED"
)

// requestTransitions is the intended lifecycle. The store keeps the
// legacy flip-by-id behavior, so an unexpected transition is logged
// and still applied.
var requestTransitions = map[RequestStatus][]RequestStatus{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {},
	StatusRejected: {},
}

// CanTransition reports whether to is an expected next status
func (s RequestStatus) CanTransition(to RequestStatus) bool {
	for _, allowed := range requestTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// VisitStatus is the lifecycle status of a visitor session
type VisitStatus string

const (
	VisitActive     VisitStatus = "ACTIVE"
	VisitCheckedOut VisitStatus = "CHECKED_OUT"
	VisitOverstayed VisitStatus = "OVERSTAYED"
)

// MaintenanceStatus is the review status of a maintenance report
type MaintenanceStatus string

const (
	MaintenancePendingReview MaintenanceStatus = "PENDING_REVIEW"
	MaintenanceApproved      MaintenanceStatus = "APPROVED"
	MaintenanceRejected      MaintenanceStatus = "REJECTED"
)

var maintenanceTransitions = map[MaintenanceStatus][]MaintenanceStatus{
	MaintenancePendingReview: {MaintenanceApproved, MaintenanceRejected},
	MaintenanceApproved:      {},
	MaintenanceRejected:      {},
}

// CanTransition reports whether to is an expected next status
func (s MaintenanceStatus) CanTransition(to MaintenanceStatus) bool {
	for _, allowed := range maintenanceTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// AlertNoteStatus is the routing status of a security alert note
type AlertNoteStatus string

const (
	AlertUnderReview    AlertNoteStatus = "UNDER_REVIEW"
	AlertStoredInternal AlertNoteStatus = "STORED_INTERNAL"
	AlertForwardedToPM  AlertNoteStatus = "FORWARDED_TO_PM"
)

var alertNoteTransitions = map[AlertNoteStatus][]AlertNoteStatus{
	AlertUnderReview:    {AlertStoredInternal, AlertForwardedToPM},
	AlertStoredInternal: {},
	AlertForwardedToPM:  {},
}

// CanTransition reports whether to is an expected next status
func (s AlertNoteStatus) CanTransition(to AlertNoteStatus) bool {
	for _, allowed := range alertNoteTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// GateResult is the outcome of a resident gate verification attempt
type GateResult string

const (
	GateGranted GateResult = "GRANTED"
	GateDenied  GateResult = "DENIED"
)

// PoliceContactStatus marks whether police were contacted for an alert note
type PoliceContactStatus string

const (
	PoliceContacted    PoliceContactStatus = "YES"
	PoliceNotContacted PoliceContactStatus = "NO"
	PoliceNotYet       PoliceContactStatus = "NOT_YET"
)

// Normalize is the single case/whitespace fold used for every name,
// property and username comparison in the system.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Credentials are login credentials.
// Stored and compared as plain text, matching the legacy system.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ResidentProfile represents a resident of a managed property
type ResidentProfile struct {
	ID                    string        `json:"id"`
	PropertyName          string        `json:"property_name"`
	UnitNumber            string        `json:"unit_number"`
	FirstName             string        `json:"first_name"`
	MiddleInitial         string        `json:"middle_initial,omitempty"`
	LastName              string        `json:"last_name"`
	DateOfBirth           string        `json:"date_of_birth"`
	MoveInDate            string        `json:"move_in_date"`
	LeaseExpirationDate   string        `json:"lease_expiration_date"`
	DLNumber              string        `json:"dl_number"`
	DLImageURL            string        `json:"dl_image_url"`
	ResidentImageURL      string        `json:"resident_image_url"`
	ResidentIDCardURL     string        `json:"resident_id_card_url,omitempty"`
	Status                RequestStatus `json:"status"`
	Credentials           Credentials   `json:"-"`
	Notes                 string        `json:"notes,omitempty"`
	InternalSecurityNotes []string      `json:"internal_security_notes,omitempty"`
	AcceptingVisitors     bool          `json:"accepting_visitors"`
	AllowedVisitors       []string      `json:"allowed_visitors"`
	CreatedAt             time.Time     `json:"created_at"`
}

// FullName returns the resident's display name
func (r *ResidentProfile) FullName() string {
	return r.FirstName + " " + r.LastName
}

// VisitorProfile represents a single visit instance.
// Records are never deleted; closed visits stay for audit queries and
// pattern detection.
type VisitorProfile struct {
	ID                     string      `json:"id"`
	ResidentID             string      `json:"resident_id"`
	ResidentUnit           string      `json:"resident_unit"`
	PropertyName           string      `json:"property_name"`
	FirstName              string      `json:"first_name"`
	LastName               string      `json:"last_name"`
	VisitorImageURL        string      `json:"visitor_image_url,omitempty"`
	VisitorIDImageURL      string      `json:"visitor_id_image_url,omitempty"`
	Relationship           string      `json:"relationship"`
	VehicleInfo            string      `json:"vehicle_info,omitempty"`
	CheckInTime            time.Time   `json:"check_in_time"`
	ExpectedDurationHours  int         `json:"expected_duration_hours"`
	ExpirationTime         time.Time   `json:"expiration_time"`
	CheckOutTime           *time.Time  `json:"check_out_time,omitempty"`
	Status                 VisitStatus `json:"status"`
	ReEntryWithoutCheckOut bool        `json:"re_entry_without_check_out"`
}

// FullName returns the visitor's display name
func (v *VisitorProfile) FullName() string {
	return v.FirstName + " " + v.LastName
}

// IsOverstayed reports whether an ACTIVE visit has passed its expiration
// at the given instant. Overstay is computed against the clock at read
// time, never stored as a transition.
func (v *VisitorProfile) IsOverstayed(now time.Time) bool {
	return v.Status == VisitActive && now.After(v.ExpirationTime)
}

// PropertyRequest represents a property onboarding request.
// Approved properties are the valid set residents and visitors may
// reference.
type PropertyRequest struct {
	ID           string        `json:"id"`
	PropertyName string        `json:"property_name"`
	Status       RequestStatus `json:"status"`
	RequestDate  time.Time     `json:"request_date"`
	Credentials  Credentials   `json:"-"`
	ManagerName  string        `json:"manager_name,omitempty"`
	ContactEmail string        `json:"contact_email,omitempty"`
	Address      string        `json:"address,omitempty"`
	City         string        `json:"city,omitempty"`
	State        string        `json:"state,omitempty"`
	ZipCode      string        `json:"zip_code,omitempty"`
	PhoneNumber  string        `json:"phone_number,omitempty"`
}

// ManagementStaffRequest represents a management staff account request
// tied to a property
type ManagementStaffRequest struct {
	ID           string        `json:"id"`
	PropertyName string        `json:"property_name"`
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	Status       RequestStatus `json:"status"`
	RequestDate  time.Time     `json:"request_date"`
	Credentials  Credentials   `json:"-"`
}

// FullName returns the staff member's display name
func (m *ManagementStaffRequest) FullName() string {
	return m.FirstName + " " + m.LastName
}

// SecurityOfficerRequest represents a security officer account request
type SecurityOfficerRequest struct {
	ID             string        `json:"id"`
	FirstName      string        `json:"first_name"`
	LastName       string        `json:"last_name"`
	BadgeNumber    string        `json:"badge_number"`
	OnDutyProperty string        `json:"on_duty_property,omitempty"`
	Status         RequestStatus `json:"status"`
	RequestDate    time.Time     `json:"request_date"`
	Credentials    Credentials   `json:"-"`
}

// FullName returns the officer's display name
func (o *SecurityOfficerRequest) FullName() string {
	return o.FirstName + " " + o.LastName
}

// MaintenanceRequest represents a free-text issue report tied to a property
type MaintenanceRequest struct {
	ID           string            `json:"id"`
	Type         string            `json:"type"`
	Details      string            `json:"details"`
	ReportedBy   string            `json:"reported_by"`
	ReportedAt   time.Time         `json:"reported_at"`
	PropertyName string            `json:"property_name"`
	Status       MaintenanceStatus `json:"status"`
	AdminNotes   string            `json:"admin_notes,omitempty"`
}

// Maintenance report types
const (
	MaintenanceLightsOut       = "Lights Out"
	MaintenanceBrokenFence     = "Broken Fence"
	MaintenanceBrokenWindow    = "Broken Window"
	MaintenanceGateMalfunction = "Gate Malfunction"
)

// AlertNote represents a security-filed incident/interaction note tied
// to a resident
type AlertNote struct {
	ID                 string              `json:"id"`
	ResidentID         string              `json:"resident_id"`
	ResidentName       string              `json:"resident_name"`
	UnitNumber         string              `json:"unit_number"`
	PropertyName       string              `json:"property_name"`
	OfficerName        string              `json:"officer_name"`
	Details            string              `json:"details"`
	Timestamp          time.Time           `json:"timestamp"`
	PoliceContacted    PoliceContactStatus `json:"police_contacted"`
	PoliceReportNumber string              `json:"police_report_number,omitempty"`
	AttachmentURL      string              `json:"attachment_url,omitempty"`
	Status             AlertNoteStatus     `json:"status"`
}

// ResidentCheckInLog is an append-only audit record of a resident
// identity verification attempt at a gate
type ResidentCheckInLog struct {
	ID           string     `json:"id"`
	ResidentID   string     `json:"resident_id"`
	ResidentName string     `json:"resident_name"`
	PropertyName string     `json:"property_name"`
	Timestamp    time.Time  `json:"timestamp"`
	OfficerName  string     `json:"officer_name"`
	Result       GateResult `json:"result"`
	SearchQuery  string     `json:"search_query"`
}

// VisitorOverstayAlert is a computed pattern-detection result.
// Not stored — derived on demand from visitor history.
type VisitorOverstayAlert struct {
	ID              string    `json:"id"`
	VisitorName     string    `json:"visitor_name"`
	ResidentName    string    `json:"resident_name"`
	UnitNumber      string    `json:"unit_number"`
	PropertyName    string    `json:"property_name"`
	ConsecutiveDays int       `json:"consecutive_days"`
	LastCheckIn     time.Time `json:"last_check_in"`
}

// RefreshToken represents a stored refresh token
type RefreshToken struct {
	ID        string
	UserID    string
	Role      Role
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	RevokedAt *time.Time
}

// IsRevoked reports whether the token has been revoked
func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

// IsExpired reports whether the token has expired
func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// TokenPair represents access and refresh tokens
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
