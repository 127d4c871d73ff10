package memstore

import (
	"log"
	"time"

	"gatewise-vms/internal/core/domain"
)

// ============================================================
// Property requests
// ============================================================

// InsertPropertyRequest inserts a property onboarding request
func (d *Directory) InsertPropertyRequest(p domain.PropertyRequest) domain.PropertyRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	if p.ID == "" {
		p.ID = d.newID("prop")
	}
	if p.RequestDate.IsZero() {
		p.RequestDate = time.Now()
	}
	d.propertyIdx[p.ID] = len(d.propertyRequests)
	d.propertyRequests = append(d.propertyRequests, p)
	d.registerUsername(p.Credentials.Username)
	return p
}

// PropertyRequests returns all property requests
func (d *Directory) PropertyRequests() []domain.PropertyRequest {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]domain.PropertyRequest, len(d.propertyRequests))
	copy(out, d.propertyRequests)
	return out
}

// ApprovedProperties returns all APPROVED properties
func (d *Directory) ApprovedProperties() []domain.PropertyRequest {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []domain.PropertyRequest
	for i := range d.propertyRequests {
		if d.propertyRequests[i].Status == domain.StatusApproved {
			out = append(out, d.propertyRequests[i])
		}
	}
	return out
}

// PropertyByName resolves a property by case-insensitive name
func (d *Directory) PropertyByName(name string) (domain.PropertyRequest, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	idx, ok := d.propertyIdx2(name)
	if !ok {
		return domain.PropertyRequest{}, false
	}
	return d.propertyRequests[idx], true
}

// SetPropertyStatus flips a property request's status by id
func (d *Directory) SetPropertyStatus(id string, status domain.RequestStatus) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	idx, ok := d.propertyIdx[id]
	if !ok {
		return false
	}
	from := d.propertyRequests[idx].Status
	if !from.CanTransition(status) && from != status {
		log.Printf("⚠️ Unexpected property status transition %s → %s (id=%s)", from, status, id)
	}
	d.propertyRequests[idx].Status = status
	return true
}

// FindPropertyManagersByCredentials scans APPROVED properties for exact
// username+password matches. A single login may manage several
// properties, so all matches are returned.
func (d *Directory) FindPropertyManagersByCredentials(creds domain.Credentials) []domain.PropertyRequest {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []domain.PropertyRequest
	for i := range d.propertyRequests {
		p := d.propertyRequests[i]
		if p.Status == domain.StatusApproved &&
			p.Credentials.Username == creds.Username &&
			p.Credentials.Password == creds.Password {
			out = append(out, p)
		}
	}
	return out
}

// ============================================================
// Management staff requests
// ============================================================

// InsertStaffRequest inserts a management staff account request
func (d *Directory) InsertStaffRequest(s domain.ManagementStaffRequest) domain.ManagementStaffRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	if s.ID == "" {
		s.ID = d.newID("staff")
	}
	if s.RequestDate.IsZero() {
		s.RequestDate = time.Now()
	}
	d.staffIdx[s.ID] = len(d.staffRequests)
	d.staffRequests = append(d.staffRequests, s)
	d.registerUsername(s.Credentials.Username)
	return s
}

// PendingStaffRequests returns the PENDING staff requests for a property
func (d *Directory) PendingStaffRequests(propertyName string) []domain.ManagementStaffRequest {
	d.mu.RLock()
	defer d.mu.RUnlock()
	norm := domain.Normalize(propertyName)
	var out []domain.ManagementStaffRequest
	for i := range d.staffRequests {
		s := d.staffRequests[i]
		if s.Status == domain.StatusPending && domain.Normalize(s.PropertyName) == norm {
			out = append(out, s)
		}
	}
	return out
}

// StaffRequests returns all staff requests
func (d *Directory) StaffRequests() []domain.ManagementStaffRequest {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]domain.ManagementStaffRequest, len(d.staffRequests))
	copy(out, d.staffRequests)
	return out
}

// SetStaffStatus flips a staff request's status by id
func (d *Directory) SetStaffStatus(id string, status domain.RequestStatus) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	idx, ok := d.staffIdx[id]
	if !ok {
		return false
	}
	from := d.staffRequests[idx].Status
	if !from.CanTransition(status) && from != status {
		log.Printf("⚠️ Unexpected staff status transition %s → %s (id=%s)", from, status, id)
	}
	d.staffRequests[idx].Status = status
	return true
}

// FindStaffByCredentials scans APPROVED staff for exact
// username+password matches across all properties.
func (d *Directory) FindStaffByCredentials(creds domain.Credentials) []domain.ManagementStaffRequest {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []domain.ManagementStaffRequest
	for i := range d.staffRequests {
		s := d.staffRequests[i]
		if s.Status == domain.StatusApproved &&
			s.Credentials.Username == creds.Username &&
			s.Credentials.Password == creds.Password {
			out = append(out, s)
		}
	}
	return out
}

// ============================================================
// Security officer requests
// ============================================================

// InsertOfficerRequest inserts a security officer account request
func (d *Directory) InsertOfficerRequest(o domain.SecurityOfficerRequest) domain.SecurityOfficerRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	if o.ID == "" {
		o.ID = d.newID("off")
	}
	if o.RequestDate.IsZero() {
		o.RequestDate = time.Now()
	}
	d.officerIdx[o.ID] = len(d.officerRequests)
	d.officerRequests = append(d.officerRequests, o)
	d.registerUsername(o.Credentials.Username)
	return o
}

// OfficerRequests returns all officer requests
func (d *Directory) OfficerRequests() []domain.SecurityOfficerRequest {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]domain.SecurityOfficerRequest, len(d.officerRequests))
	copy(out, d.officerRequests)
	return out
}

// SetOfficerStatus flips an officer request's status by id
func (d *Directory) SetOfficerStatus(id string, status domain.RequestStatus) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	idx, ok := d.officerIdx[id]
	if !ok {
		return false
	}
	from := d.officerRequests[idx].Status
	if !from.CanTransition(status) && from != status {
		log.Printf("⚠️ Unexpected officer status transition %s → %s (id=%s)", from, status, id)
	}
	d.officerRequests[idx].Status = status
	return true
}

// PropertyRequestByID returns a property request by id
func (d *Directory) PropertyRequestByID(id string) (domain.PropertyRequest, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	idx, ok := d.propertyIdx[id]
	if !ok {
		return domain.PropertyRequest{}, false
	}
	return d.propertyRequests[idx], true
}

// StaffRequestByID returns a staff request by id
func (d *Directory) StaffRequestByID(id string) (domain.ManagementStaffRequest, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	idx, ok := d.staffIdx[id]
	if !ok {
		return domain.ManagementStaffRequest{}, false
	}
	return d.staffRequests[idx], true
}

// OfficerRequestByID returns an officer request by id
func (d *Directory) OfficerRequestByID(id string) (domain.SecurityOfficerRequest, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	idx, ok := d.officerIdx[id]
	if !ok {
		return domain.SecurityOfficerRequest{}, false
	}
	return d.officerRequests[idx], true
}

// FindOfficerByCredentials scans APPROVED officers for an exact
// username+password match.
func (d *Directory) FindOfficerByCredentials(creds domain.Credentials) (domain.SecurityOfficerRequest, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for i := range d.officerRequests {
		o := d.officerRequests[i]
		if o.Status == domain.StatusApproved &&
			o.Credentials.Username == creds.Username &&
			o.Credentials.Password == creds.Password {
			return o, true
		}
	}
	return domain.SecurityOfficerRequest{}, false
}
