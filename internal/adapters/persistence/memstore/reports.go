package memstore

import (
	"log"
	"time"

	"gatewise-vms/internal/core/domain"
)

// ============================================================
// Maintenance requests
// ============================================================

// InsertMaintenanceRequest inserts a maintenance report as PENDING_REVIEW
func (d *Directory) InsertMaintenanceRequest(m domain.MaintenanceRequest) domain.MaintenanceRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	if m.ID == "" {
		m.ID = d.newID("maint")
	}
	m.Status = domain.MaintenancePendingReview
	if m.ReportedAt.IsZero() {
		m.ReportedAt = time.Now()
	}
	d.maintenanceIdx[m.ID] = len(d.maintenanceRequests)
	d.maintenanceRequests = append(d.maintenanceRequests, m)
	return m
}

// MaintenanceRequests returns all maintenance reports
func (d *Directory) MaintenanceRequests() []domain.MaintenanceRequest {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]domain.MaintenanceRequest, len(d.maintenanceRequests))
	copy(out, d.maintenanceRequests)
	return out
}

// MaintenanceRequestsByProperty returns the reports for one property
func (d *Directory) MaintenanceRequestsByProperty(propertyName string) []domain.MaintenanceRequest {
	d.mu.RLock()
	defer d.mu.RUnlock()
	norm := domain.Normalize(propertyName)
	var out []domain.MaintenanceRequest
	for i := range d.maintenanceRequests {
		if domain.Normalize(d.maintenanceRequests[i].PropertyName) == norm {
			out = append(out, d.maintenanceRequests[i])
		}
	}
	return out
}

// SetMaintenanceStatus flips a report's review status and applies
// optional admin notes.
func (d *Directory) SetMaintenanceStatus(id string, status domain.MaintenanceStatus, adminNotes string) (domain.MaintenanceRequest, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	idx, ok := d.maintenanceIdx[id]
	if !ok {
		return domain.MaintenanceRequest{}, false
	}
	from := d.maintenanceRequests[idx].Status
	if !from.CanTransition(status) && from != status {
		log.Printf("⚠️ Unexpected maintenance status transition %s → %s (id=%s)", from, status, id)
	}
	d.maintenanceRequests[idx].Status = status
	if adminNotes != "" {
		d.maintenanceRequests[idx].AdminNotes = adminNotes
	}
	return d.maintenanceRequests[idx], true
}

// ============================================================
// Alert notes
// ============================================================

// InsertAlertNote inserts a security alert note as UNDER_REVIEW
func (d *Directory) InsertAlertNote(n domain.AlertNote) domain.AlertNote {
	d.mu.Lock()
	defer d.mu.Unlock()
	if n.ID == "" {
		n.ID = d.newID("alert")
	}
	n.Status = domain.AlertUnderReview
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}
	d.alertIdx[n.ID] = len(d.alertNotes)
	d.alertNotes = append(d.alertNotes, n)
	return n
}

// AlertNotes returns all alert notes
func (d *Directory) AlertNotes() []domain.AlertNote {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]domain.AlertNote, len(d.alertNotes))
	copy(out, d.alertNotes)
	return out
}

// AlertNotesByStatus returns the notes in one routing state
func (d *Directory) AlertNotesByStatus(status domain.AlertNoteStatus) []domain.AlertNote {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []domain.AlertNote
	for i := range d.alertNotes {
		if d.alertNotes[i].Status == status {
			out = append(out, d.alertNotes[i])
		}
	}
	return out
}

// SetAlertNoteStatus flips an alert note's routing status, with an
// optional edit of the note text. Archiving as STORED_INTERNAL appends
// the note text to the resident's internal security notes.
func (d *Directory) SetAlertNoteStatus(id string, status domain.AlertNoteStatus, editedDetails string) (domain.AlertNote, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	idx, ok := d.alertIdx[id]
	if !ok {
		return domain.AlertNote{}, false
	}
	from := d.alertNotes[idx].Status
	if !from.CanTransition(status) && from != status {
		log.Printf("⚠️ Unexpected alert note status transition %s → %s (id=%s)", from, status, id)
	}
	d.alertNotes[idx].Status = status
	if editedDetails != "" {
		d.alertNotes[idx].Details = editedDetails
	}
	if status == domain.AlertStoredInternal {
		if resIdx, found := d.residentIdx[d.alertNotes[idx].ResidentID]; found {
			d.residents[resIdx].InternalSecurityNotes = append(
				d.residents[resIdx].InternalSecurityNotes, d.alertNotes[idx].Details)
		}
	}
	return d.alertNotes[idx], true
}

// ============================================================
// Resident gate check-in logs
// ============================================================

// AppendResidentCheckInLog appends a gate verification audit record.
// The log is append-only and unindexed.
func (d *Directory) AppendResidentCheckInLog(entry domain.ResidentCheckInLog) domain.ResidentCheckInLog {
	d.mu.Lock()
	defer d.mu.Unlock()
	if entry.ID == "" {
		entry.ID = d.newID("res-log")
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	d.residentCheckInLogs = append(d.residentCheckInLogs, entry)
	return entry
}

// ResidentCheckInLogs returns the gate audit trail in append order
func (d *Directory) ResidentCheckInLogs() []domain.ResidentCheckInLog {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]domain.ResidentCheckInLog, len(d.residentCheckInLogs))
	copy(out, d.residentCheckInLogs)
	return out
}
