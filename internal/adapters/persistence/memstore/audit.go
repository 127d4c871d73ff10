package memstore

import "gatewise-vms/internal/core/domain"

// CredentialAuditEntry is one row of the super-admin credential list.
// Passwords are intentionally exposed here; the endpoint serving this
// is restricted to the SUPER_ADMIN role.
type CredentialAuditEntry struct {
	Role         domain.Role `json:"role"`
	Name         string      `json:"name"`
	PropertyName string      `json:"property_name"`
	Status       string      `json:"status"`
	Username     string      `json:"username"`
	Password     string      `json:"password"`
}

// AllUserCredentials returns every stored account's credentials across
// residents, property managers, staff and officers.
func (d *Directory) AllUserCredentials() []CredentialAuditEntry {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]CredentialAuditEntry, 0,
		len(d.residents)+len(d.propertyRequests)+len(d.staffRequests)+len(d.officerRequests))

	for _, r := range d.residents {
		out = append(out, CredentialAuditEntry{
			Role:         domain.RoleResident,
			Name:         r.FullName(),
			PropertyName: r.PropertyName,
			Status:       string(r.Status),
			Username:     r.Credentials.Username,
			Password:     r.Credentials.Password,
		})
	}
	for _, p := range d.propertyRequests {
		out = append(out, CredentialAuditEntry{
			Role:         domain.RolePM,
			Name:         p.ManagerName,
			PropertyName: p.PropertyName,
			Status:       string(p.Status),
			Username:     p.Credentials.Username,
			Password:     p.Credentials.Password,
		})
	}
	for _, m := range d.staffRequests {
		out = append(out, CredentialAuditEntry{
			Role:         domain.RolePM,
			Name:         m.FullName(),
			PropertyName: m.PropertyName,
			Status:       string(m.Status),
			Username:     m.Credentials.Username,
			Password:     m.Credentials.Password,
		})
	}
	for _, o := range d.officerRequests {
		out = append(out, CredentialAuditEntry{
			Role:         domain.RoleSecurity,
			Name:         o.FullName(),
			PropertyName: o.OnDutyProperty,
			Status:       string(o.Status),
			Username:     o.Credentials.Username,
			Password:     o.Credentials.Password,
		})
	}
	return out
}
