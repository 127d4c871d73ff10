// Package memstore implements the shared in-process directory store.
// All record collections live in memory and are lost on restart; there
// is intentionally no database behind this package. Lookups that the
// legacy system did with linear scans are backed by secondary indexes
// (by id, by driver's license number, by property+unit, and a global
// username set).
package memstore

import (
	"fmt"
	"sync"
	"time"

	"gatewise-vms/internal/core/domain"
)

// Directory is the single shared in-memory object graph.
// A RWMutex guards it because HTTP handlers run concurrently; no
// cross-process guarantees are provided or needed.
type Directory struct {
	mu  sync.RWMutex
	seq uint64

	residents      []domain.ResidentProfile
	residentIdx    map[string]int // id → slice index
	residentByDL   map[string]int // normalized dlNumber → slice index
	residentByUnit map[string]int // approved residents: property+unit → slice index

	visitors   []domain.VisitorProfile
	visitorIdx map[string]int

	propertyRequests []domain.PropertyRequest
	propertyIdx      map[string]int

	staffRequests []domain.ManagementStaffRequest
	staffIdx      map[string]int

	officerRequests []domain.SecurityOfficerRequest
	officerIdx      map[string]int

	maintenanceRequests []domain.MaintenanceRequest
	maintenanceIdx      map[string]int

	alertNotes []domain.AlertNote
	alertIdx   map[string]int

	residentCheckInLogs []domain.ResidentCheckInLog

	refreshTokens map[string]domain.RefreshToken // by token hash

	usernames map[string]int // normalized → holder count, global across all account kinds
}

// New creates an empty directory store
func New() *Directory {
	return &Directory{
		residentIdx:    make(map[string]int),
		residentByDL:   make(map[string]int),
		residentByUnit: make(map[string]int),
		visitorIdx:     make(map[string]int),
		propertyIdx:    make(map[string]int),
		staffIdx:       make(map[string]int),
		officerIdx:     make(map[string]int),
		maintenanceIdx: make(map[string]int),
		alertIdx:       make(map[string]int),
		refreshTokens:  make(map[string]domain.RefreshToken),
		usernames:      make(map[string]int),
	}
}

// newID generates a time-based record id. The legacy system used bare
// epoch millis; the sequence suffix keeps ids unique under concurrent
// inserts.
func (d *Directory) newID(prefix string) string {
	d.seq++
	return fmt.Sprintf("%s-%d-%d", prefix, time.Now().UnixMilli(), d.seq)
}

// unitKey builds the property+unit index key. Property names compare
// case-insensitively, unit numbers exactly.
func unitKey(propertyName, unitNumber string) string {
	return domain.Normalize(propertyName) + "\x00" + unitNumber
}

// IsUsernameTaken reports whether a username is in use anywhere —
// residents, property managers, staff and officers share one namespace.
func (d *Directory) IsUsernameTaken(username string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, taken := d.usernames[domain.Normalize(username)]
	return taken
}

// IsDLNumberTaken reports whether a driver's license number is already
// registered to any resident, regardless of approval status.
func (d *Directory) IsDLNumberTaken(dlNumber string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, taken := d.residentByDL[domain.Normalize(dlNumber)]
	return taken
}

// IsPropertyNameValid reports whether the name matches an APPROVED
// property, case-insensitively.
func (d *Directory) IsPropertyNameValid(name string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	idx, ok := d.propertyIdx2(name)
	return ok && d.propertyRequests[idx].Status == domain.StatusApproved
}

// propertyIdx2 resolves a property by normalized name. Callers hold the lock.
func (d *Directory) propertyIdx2(name string) (int, bool) {
	norm := domain.Normalize(name)
	for i := range d.propertyRequests {
		if domain.Normalize(d.propertyRequests[i].PropertyName) == norm {
			return i, true
		}
	}
	return 0, false
}

// registerUsername counts holders per name rather than storing a bare
// set: the demo rosters legitimately produce duplicate FirstLast
// credentials, and re-crediting one holder must not free the name
// while another still uses it.
func (d *Directory) registerUsername(username string) {
	if username == "" {
		return
	}
	d.usernames[domain.Normalize(username)]++
}

func (d *Directory) unregisterUsername(username string) {
	if username == "" {
		return
	}
	key := domain.Normalize(username)
	if d.usernames[key] <= 1 {
		delete(d.usernames, key)
		return
	}
	d.usernames[key]--
}
