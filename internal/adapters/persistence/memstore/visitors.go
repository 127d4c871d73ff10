package memstore

import (
	"time"

	"gatewise-vms/internal/core/domain"
)

// InsertVisitor inserts a visit record and returns it with its
// generated id. Visit records are append-only; checkout mutates the
// status but never removes history.
func (d *Directory) InsertVisitor(v domain.VisitorProfile) domain.VisitorProfile {
	d.mu.Lock()
	defer d.mu.Unlock()
	if v.ID == "" {
		v.ID = d.newID("vis")
	}
	d.visitorIdx[v.ID] = len(d.visitors)
	d.visitors = append(d.visitors, v)
	return v
}

// VisitorByID returns a copy of the visit with the given id
func (d *Directory) VisitorByID(id string) (domain.VisitorProfile, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	idx, ok := d.visitorIdx[id]
	if !ok {
		return domain.VisitorProfile{}, false
	}
	return d.visitors[idx], true
}

// Visitors returns the full visit history in insertion order
func (d *Directory) Visitors() []domain.VisitorProfile {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]domain.VisitorProfile, len(d.visitors))
	copy(out, d.visitors)
	return out
}

// ActiveVisitors returns all visits still checked in
func (d *Directory) ActiveVisitors() []domain.VisitorProfile {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []domain.VisitorProfile
	for i := range d.visitors {
		if d.visitors[i].Status == domain.VisitActive {
			out = append(out, d.visitors[i])
		}
	}
	return out
}

// OverstayedVisitors returns ACTIVE visits whose expiration has passed
// at the given instant.
func (d *Directory) OverstayedVisitors(now time.Time) []domain.VisitorProfile {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []domain.VisitorProfile
	for i := range d.visitors {
		if d.visitors[i].IsOverstayed(now) {
			out = append(out, d.visitors[i])
		}
	}
	return out
}

// VisitorsByResident returns the visit history for one resident
func (d *Directory) VisitorsByResident(residentID string) []domain.VisitorProfile {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []domain.VisitorProfile
	for i := range d.visitors {
		if d.visitors[i].ResidentID == residentID {
			out = append(out, d.visitors[i])
		}
	}
	return out
}

// HasActiveVisitByName reports whether an ACTIVE visit exists for the
// same first+last name at any unit or property.
func (d *Directory) HasActiveVisitByName(firstName, lastName string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	first, last := domain.Normalize(firstName), domain.Normalize(lastName)
	for i := range d.visitors {
		v := &d.visitors[i]
		if v.Status == domain.VisitActive &&
			domain.Normalize(v.FirstName) == first &&
			domain.Normalize(v.LastName) == last {
			return true
		}
	}
	return false
}

// CheckOutVisitor marks a visit CHECKED_OUT and stamps the checkout
// time. There is no guard against double checkout; a repeat call
// silently re-stamps.
func (d *Directory) CheckOutVisitor(id string, now time.Time) (domain.VisitorProfile, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	idx, ok := d.visitorIdx[id]
	if !ok {
		return domain.VisitorProfile{}, false
	}
	d.visitors[idx].Status = domain.VisitCheckedOut
	d.visitors[idx].CheckOutTime = &now
	return d.visitors[idx], true
}
