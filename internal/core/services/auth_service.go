package services

import (
	"log"

	"gatewise-vms/internal/adapters/persistence/memstore"
	"gatewise-vms/internal/config"
	"gatewise-vms/internal/core/domain"
	"gatewise-vms/internal/pkg/jwt"
	"gatewise-vms/internal/pkg/password"

	"github.com/google/uuid"
)

// AuthService handles the portal logins. Each portal authenticates
// against its own record collection; only APPROVED records may log in.
// Portal credentials compare as plain text (legacy behavior); the
// operator account alone is bcrypt-verified.
type AuthService struct {
	store *memstore.Directory
	cfg   *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(store *memstore.Directory, cfg *config.Config) *AuthService {
	return &AuthService{store: store, cfg: cfg}
}

// ManagedProperty is one property a management login can administer
type ManagedProperty struct {
	ID           string `json:"id"`
	PropertyName string `json:"property_name"`
	ManagerName  string `json:"manager_name,omitempty"`
	IsStaff      bool   `json:"is_staff"`
}

// AuthResponse represents an authentication response
type AuthResponse struct {
	UserID       string            `json:"user_id"`
	Name         string            `json:"name"`
	Role         domain.Role       `json:"role"`
	Properties   []ManagedProperty `json:"properties,omitempty"`
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
}

// LoginResident authenticates a resident
func (s *AuthService) LoginResident(creds domain.Credentials) (*AuthResponse, error) {
	r, ok := s.store.FindResidentByCredentials(creds)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	resp, err := s.buildResponse(r.ID, r.FullName(), domain.RoleResident, []ManagedProperty{
		{ID: r.ID, PropertyName: r.PropertyName},
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Resident logged in: %s (%s %s)", creds.Username, r.PropertyName, r.UnitNumber)
	return resp, nil
}

// LoginPM authenticates a management login. Direct property-manager
// matches and approved staff matches are combined, so one login may
// carry management access to several properties.
func (s *AuthService) LoginPM(creds domain.Credentials) (*AuthResponse, error) {
	properties := s.managedProperties(creds)
	if len(properties) == 0 {
		return nil, domain.ErrInvalidCredentials
	}

	resp, err := s.buildResponse(properties[0].ID, s.pmDisplayName(properties[0]), domain.RolePM, properties)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Management login: %s (%d properties)", creds.Username, len(properties))
	return resp, nil
}

// LoginOfficer authenticates a security officer
func (s *AuthService) LoginOfficer(creds domain.Credentials) (*AuthResponse, error) {
	o, ok := s.store.FindOfficerByCredentials(creds)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	var properties []ManagedProperty
	if o.OnDutyProperty != "" {
		properties = []ManagedProperty{{ID: o.ID, PropertyName: o.OnDutyProperty}}
	}

	resp, err := s.buildResponse(o.ID, o.FullName(), domain.RoleSecurity, properties)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Officer logged in: %s (badge %s)", creds.Username, o.BadgeNumber)
	return resp, nil
}

// LoginAdmin authenticates the platform operator account
func (s *AuthService) LoginAdmin(creds domain.Credentials) (*AuthResponse, error) {
	if creds.Username != s.cfg.Admin.Username ||
		!password.Verify(creds.Password, s.cfg.Admin.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	resp, err := s.buildResponse("admin", s.cfg.Admin.Username, domain.RoleSuperAdmin, nil)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Operator logged in: %s", creds.Username)
	return resp, nil
}

// Refresh rotates a refresh token and issues a new token pair
func (s *AuthService) Refresh(refreshToken string) (*AuthResponse, error) {
	// 1. Validate refresh token JWT
	claims, err := jwt.ValidateRefreshToken(refreshToken, s.cfg.JWT.RefreshSecret)
	if err != nil {
		if err == jwt.ErrTokenExpired {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	// 2. Find the stored token by hash
	tokenHash := password.HashToken(refreshToken)
	stored, ok := s.store.RefreshTokenByHash(tokenHash)
	if !ok {
		return nil, domain.ErrTokenInvalid
	}

	// 3. Revocation and expiry checks
	if stored.IsRevoked() {
		return nil, domain.ErrTokenRevoked
	}
	if stored.IsExpired() {
		return nil, domain.ErrTokenExpired
	}

	// 4. Re-resolve the account; a login revoked or rejected since
	// issue must not refresh.
	userID, name, role, properties, err := s.resolveAccount(claims.UserID, domain.Role(claims.Role))
	if err != nil {
		return nil, err
	}

	// 5. Rotate: revoke old, issue new
	s.store.RevokeRefreshToken(tokenHash)

	resp, err := s.buildResponse(userID, name, role, properties)
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Token refreshed for %s (%s)", name, role)
	return resp, nil
}

// Logout revokes the presented refresh token
func (s *AuthService) Logout(refreshToken string) {
	s.store.RevokeRefreshToken(password.HashToken(refreshToken))
	log.Printf("✅ User logged out")
}

// LogoutAll revokes every refresh token held by one account
func (s *AuthService) LogoutAll(userID string) int {
	revoked := s.store.RevokeAllRefreshTokens(userID)
	log.Printf("✅ All sessions revoked for user ID: %s (%d tokens)", userID, revoked)
	return revoked
}

// CredentialAudit returns the full credential list for the super-admin
// audit view.
func (s *AuthService) CredentialAudit() []memstore.CredentialAuditEntry {
	return s.store.AllUserCredentials()
}

// managedProperties resolves the full property set for a management
// credential: direct manager matches plus approved staff memberships
// resolved to their property.
func (s *AuthService) managedProperties(creds domain.Credentials) []ManagedProperty {
	var out []ManagedProperty
	for _, p := range s.store.FindPropertyManagersByCredentials(creds) {
		out = append(out, ManagedProperty{
			ID:           p.ID,
			PropertyName: p.PropertyName,
			ManagerName:  p.ManagerName,
		})
	}
	for _, st := range s.store.FindStaffByCredentials(creds) {
		mp := ManagedProperty{ID: st.ID, PropertyName: st.PropertyName, IsStaff: true}
		if prop, ok := s.store.PropertyByName(st.PropertyName); ok {
			mp.ManagerName = prop.ManagerName
		}
		out = append(out, mp)
	}
	return out
}

func (s *AuthService) pmDisplayName(p ManagedProperty) string {
	if p.IsStaff {
		if st, ok := s.store.StaffRequestByID(p.ID); ok {
			return st.FullName()
		}
	}
	if p.ManagerName != "" {
		return p.ManagerName
	}
	return p.PropertyName
}

// resolveAccount rebuilds token identity from the stored records
func (s *AuthService) resolveAccount(userID string, role domain.Role) (string, string, domain.Role, []ManagedProperty, error) {
	switch role {
	case domain.RoleResident:
		r, ok := s.store.ResidentByID(userID)
		if !ok || r.Status != domain.StatusApproved {
			return "", "", "", nil, domain.ErrUnauthorized
		}
		return r.ID, r.FullName(), role, []ManagedProperty{{ID: r.ID, PropertyName: r.PropertyName}}, nil

	case domain.RoleSecurity:
		o, ok := s.store.OfficerRequestByID(userID)
		if !ok || o.Status != domain.StatusApproved {
			return "", "", "", nil, domain.ErrUnauthorized
		}
		var props []ManagedProperty
		if o.OnDutyProperty != "" {
			props = []ManagedProperty{{ID: o.ID, PropertyName: o.OnDutyProperty}}
		}
		return o.ID, o.FullName(), role, props, nil

	case domain.RolePM:
		// The managed set is recomputed from the record's credentials,
		// so property approvals granted since login are picked up.
		var creds domain.Credentials
		if p, ok := s.store.PropertyRequestByID(userID); ok && p.Status == domain.StatusApproved {
			creds = p.Credentials
		} else if st, ok := s.store.StaffRequestByID(userID); ok && st.Status == domain.StatusApproved {
			creds = st.Credentials
		} else {
			return "", "", "", nil, domain.ErrUnauthorized
		}
		properties := s.managedProperties(creds)
		if len(properties) == 0 {
			return "", "", "", nil, domain.ErrUnauthorized
		}
		return properties[0].ID, s.pmDisplayName(properties[0]), role, properties, nil

	case domain.RoleSuperAdmin:
		return "admin", s.cfg.Admin.Username, role, nil, nil
	}
	return "", "", "", nil, domain.ErrUnauthorized
}

// buildResponse issues a token pair and stores the hashed refresh token
func (s *AuthService) buildResponse(userID, name string, role domain.Role, properties []ManagedProperty) (*AuthResponse, error) {
	propertyNames := make([]string, 0, len(properties))
	for _, p := range properties {
		propertyNames = append(propertyNames, p.PropertyName)
	}

	accessToken, err := jwt.GenerateAccessToken(
		userID, name, string(role), propertyNames,
		s.cfg.JWT.Secret, s.cfg.JWT.AccessTokenMins,
	)
	if err != nil {
		return nil, err
	}

	// Unique token ID for the refresh token
	tokenID := uuid.New().String()

	refreshToken, err := jwt.GenerateRefreshToken(
		userID, string(role), tokenID,
		s.cfg.JWT.RefreshSecret, s.cfg.JWT.RefreshTokenDays,
	)
	if err != nil {
		return nil, err
	}

	s.store.InsertRefreshToken(domain.RefreshToken{
		ID:        tokenID,
		UserID:    userID,
		Role:      role,
		TokenHash: password.HashToken(refreshToken),
		ExpiresAt: jwt.GetExpiryTime(s.cfg.JWT.RefreshTokenDays),
	})

	return &AuthResponse{
		UserID:       userID,
		Name:         name,
		Role:         role,
		Properties:   properties,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
