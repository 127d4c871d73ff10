package memstore

import (
	"log"

	"gatewise-vms/internal/core/domain"
)

// InsertResident inserts a resident record. An id is generated unless
// the caller (seeder, batch import) supplies one. The username joins
// the global namespace; approved residents enter the property+unit and
// DL indexes immediately.
func (d *Directory) InsertResident(r domain.ResidentProfile) domain.ResidentProfile {
	d.mu.Lock()
	defer d.mu.Unlock()

	if r.ID == "" {
		r.ID = d.newID("res")
	}
	if r.AllowedVisitors == nil {
		r.AllowedVisitors = []string{}
	}
	if r.InternalSecurityNotes == nil {
		r.InternalSecurityNotes = []string{}
	}

	idx := len(d.residents)
	d.residents = append(d.residents, r)
	d.residentIdx[r.ID] = idx
	d.indexResidentDL(idx)
	if r.Status == domain.StatusApproved {
		d.indexResidentUnit(idx)
	}
	d.registerUsername(r.Credentials.Username)
	return r
}

// indexResidentDL adds a resident to the DL fast-path index. DL numbers
// are not guaranteed unique (batch import mirrors the unit number), so
// the first holder keeps the slot; later duplicates are still found by
// the lookup's linear fallback. Caller holds the lock.
func (d *Directory) indexResidentDL(idx int) {
	dl := d.residents[idx].DLNumber
	if dl == "" {
		return
	}
	key := domain.Normalize(dl)
	if _, exists := d.residentByDL[key]; !exists {
		d.residentByDL[key] = idx
	}
}

// indexResidentUnit adds a resident to the property+unit index.
// The first resident registered for a unit wins, matching the legacy
// first-match scan order. Caller holds the lock.
func (d *Directory) indexResidentUnit(idx int) {
	key := unitKey(d.residents[idx].PropertyName, d.residents[idx].UnitNumber)
	if _, exists := d.residentByUnit[key]; !exists {
		d.residentByUnit[key] = idx
	}
}

// ResidentByID returns a copy of the resident with the given id
func (d *Directory) ResidentByID(id string) (domain.ResidentProfile, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	idx, ok := d.residentIdx[id]
	if !ok {
		return domain.ResidentProfile{}, false
	}
	return d.residents[idx], true
}

// Residents returns all residents in insertion order
func (d *Directory) Residents() []domain.ResidentProfile {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]domain.ResidentProfile, len(d.residents))
	copy(out, d.residents)
	return out
}

// ApprovedResidents returns all APPROVED residents
func (d *Directory) ApprovedResidents() []domain.ResidentProfile {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []domain.ResidentProfile
	for i := range d.residents {
		if d.residents[i].Status == domain.StatusApproved {
			out = append(out, d.residents[i])
		}
	}
	return out
}

// ResidentsByProperty returns residents of a property, any status
func (d *Directory) ResidentsByProperty(propertyName string) []domain.ResidentProfile {
	d.mu.RLock()
	defer d.mu.RUnlock()
	norm := domain.Normalize(propertyName)
	var out []domain.ResidentProfile
	for i := range d.residents {
		if domain.Normalize(d.residents[i].PropertyName) == norm {
			out = append(out, d.residents[i])
		}
	}
	return out
}

// ApprovedResidentByUnit resolves an APPROVED resident by
// case-insensitive property and exact unit number.
func (d *Directory) ApprovedResidentByUnit(propertyName, unitNumber string) (domain.ResidentProfile, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	idx, ok := d.residentByUnit[unitKey(propertyName, unitNumber)]
	if !ok || d.residents[idx].Status != domain.StatusApproved {
		return domain.ResidentProfile{}, false
	}
	return d.residents[idx], true
}

// LookupResidentByIDOrDOB matches an APPROVED resident in the given
// property by the trimmed, case-folded query against the DL number, or
// by the raw query against the literal date-of-birth string. At most
// one match is returned; no fuzzy matching.
func (d *Directory) LookupResidentByIDOrDOB(query, propertyName string) (domain.ResidentProfile, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	normProp := domain.Normalize(propertyName)
	normQuery := domain.Normalize(query)

	// DL index first
	if idx, ok := d.residentByDL[normQuery]; ok {
		r := d.residents[idx]
		if r.Status == domain.StatusApproved && domain.Normalize(r.PropertyName) == normProp {
			return r, true
		}
	}

	// The index holds one resident per DL; duplicates (and index misses
	// in the wrong property) resolve through the same linear scan the
	// DOB match uses.
	for i := range d.residents {
		r := d.residents[i]
		if r.Status != domain.StatusApproved || domain.Normalize(r.PropertyName) != normProp {
			continue
		}
		if domain.Normalize(r.DLNumber) == normQuery || r.DateOfBirth == query {
			return r, true
		}
	}
	return domain.ResidentProfile{}, false
}

// SetResidentStatus flips a resident's approval status by id. The flip
// is applied even when it falls outside the expected lifecycle; the
// unexpected transition is only logged, preserving the legacy behavior.
func (d *Directory) SetResidentStatus(id string, status domain.RequestStatus) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	idx, ok := d.residentIdx[id]
	if !ok {
		return false
	}
	from := d.residents[idx].Status
	if !from.CanTransition(status) && from != status {
		log.Printf("⚠️ Unexpected resident status transition %s → %s (id=%s)", from, status, id)
	}
	d.residents[idx].Status = status
	if status == domain.StatusApproved {
		d.indexResidentUnit(idx)
	}
	return true
}

// SetResidentPreferences replaces the visitor-acceptance flag and the
// allow-list for a resident.
func (d *Directory) SetResidentPreferences(id string, acceptingVisitors bool, allowedVisitors []string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	idx, ok := d.residentIdx[id]
	if !ok {
		return false
	}
	if allowedVisitors == nil {
		allowedVisitors = []string{}
	}
	d.residents[idx].AcceptingVisitors = acceptingVisitors
	d.residents[idx].AllowedVisitors = allowedVisitors
	return true
}

// ResidentProfileUpdate carries the fields a property manager may
// mutate in place. Nil fields are left untouched.
type ResidentProfileUpdate struct {
	UnitNumber          *string
	MoveInDate          *string
	LeaseExpirationDate *string
	DateOfBirth         *string
	DLNumber            *string
	Notes               *string
	Credentials         *domain.Credentials
}

// UpdateResidentProfile applies a partial update and keeps the DL,
// unit and username indexes in step with the mutated fields.
func (d *Directory) UpdateResidentProfile(id string, upd ResidentProfileUpdate) (domain.ResidentProfile, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	idx, ok := d.residentIdx[id]
	if !ok {
		return domain.ResidentProfile{}, false
	}
	r := &d.residents[idx]

	if upd.UnitNumber != nil && *upd.UnitNumber != r.UnitNumber {
		delete(d.residentByUnit, unitKey(r.PropertyName, r.UnitNumber))
		r.UnitNumber = *upd.UnitNumber
		if r.Status == domain.StatusApproved {
			d.indexResidentUnit(idx)
		}
	}
	if upd.MoveInDate != nil {
		r.MoveInDate = *upd.MoveInDate
	}
	if upd.LeaseExpirationDate != nil {
		r.LeaseExpirationDate = *upd.LeaseExpirationDate
	}
	if upd.DateOfBirth != nil {
		r.DateOfBirth = *upd.DateOfBirth
	}
	if upd.DLNumber != nil && *upd.DLNumber != r.DLNumber {
		// Only release the slot if this resident holds it; a duplicate
		// DL may have left the slot with an earlier registration
		if held, ok := d.residentByDL[domain.Normalize(r.DLNumber)]; ok && held == idx {
			delete(d.residentByDL, domain.Normalize(r.DLNumber))
		}
		r.DLNumber = *upd.DLNumber
		d.indexResidentDL(idx)
	}
	if upd.Notes != nil {
		r.Notes = *upd.Notes
	}
	if upd.Credentials != nil {
		d.unregisterUsername(r.Credentials.Username)
		r.Credentials = *upd.Credentials
		d.registerUsername(r.Credentials.Username)
	}
	return *r, true
}

// FindResidentByCredentials scans APPROVED residents for an exact
// username+password match. Credentials compare as plain text by design
// of the legacy system.
func (d *Directory) FindResidentByCredentials(creds domain.Credentials) (domain.ResidentProfile, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for i := range d.residents {
		r := d.residents[i]
		if r.Status == domain.StatusApproved &&
			r.Credentials.Username == creds.Username &&
			r.Credentials.Password == creds.Password {
			return r, true
		}
	}
	return domain.ResidentProfile{}, false
}
