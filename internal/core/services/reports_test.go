package services

import (
	"testing"

	"gatewise-vms/internal/adapters/persistence/memstore"
	"gatewise-vms/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approvedProperty(store *memstore.Directory, name, id string) {
	store.InsertPropertyRequest(domain.PropertyRequest{
		ID:           id,
		PropertyName: name,
		Status:       domain.StatusApproved,
		Credentials:  domain.Credentials{Username: id, Password: id},
	})
}

func TestMaintenanceService_ReportAndReview(t *testing.T) {
	store := memstore.New()
	approvedProperty(store, "Casa de Esperanza", "prop-1")
	svc := NewMaintenanceService(store)

	_, err := svc.Report(MaintenanceReportInput{
		PropertyName: "Nonexistent Gardens",
		ReportedBy:   "Maria Garcia (Unit 101)",
		Type:         domain.MaintenanceLightsOut,
		Details:      "Pole light by the north gate is dark",
	})
	assert.ErrorIs(t, err, domain.ErrUnknownProperty)

	_, err = svc.Report(MaintenanceReportInput{
		PropertyName: "Casa de Esperanza",
		Type:         domain.MaintenanceLightsOut,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req, err := svc.Report(MaintenanceReportInput{
		PropertyName: "Casa de Esperanza",
		ReportedBy:   "Maria Garcia (Unit 101)",
		Type:         domain.MaintenanceBrokenFence,
		Details:      "Fence panel down behind building C",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MaintenancePendingReview, req.Status)

	reviewed, err := svc.Review(req.ID, domain.MaintenanceApproved, "Crew scheduled")
	require.NoError(t, err)
	assert.Equal(t, domain.MaintenanceApproved, reviewed.Status)
	assert.Equal(t, "Crew scheduled", reviewed.AdminNotes)

	_, err = svc.Review(req.ID, domain.MaintenanceStatus("DONE"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.Review("maint-missing", domain.MaintenanceRejected, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Len(t, svc.ListAll(), 1)
	assert.Len(t, svc.ListByProperty("casa de esperanza"), 1)
}

func TestAlertService_FileAndTriage(t *testing.T) {
	store, _ := newStoreWithResident(t, nil)
	svc := NewAlertService(store)

	_, err := svc.File(AlertNoteInput{ResidentID: "res-1", OfficerName: "Sam Cho"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.File(AlertNoteInput{
		ResidentID:      "res-1",
		Details:         "x",
		PoliceContacted: "MAYBE",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	note, err := svc.File(AlertNoteInput{
		ResidentID:   "res-1",
		ResidentName: "Maria Garcia",
		UnitNumber:   "101",
		PropertyName: "Casa de Esperanza",
		OfficerName:  "Sam Cho",
		Details:      "Loud dispute at the gate",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.AlertUnderReview, note.Status)
	// Police contact defaults to NO when omitted
	assert.Equal(t, domain.PoliceNotContacted, note.PoliceContacted)

	require.Len(t, svc.ListUnderReview(), 1)
	assert.Empty(t, svc.ListForwarded())

	triaged, err := svc.Triage(note.ID, domain.AlertStoredInternal, "Dispute resolved on scene")
	require.NoError(t, err)
	assert.Equal(t, domain.AlertStoredInternal, triaged.Status)

	// Archival copies the (edited) details onto the resident record
	r, ok := store.ResidentByID("res-1")
	require.True(t, ok)
	require.Len(t, r.InternalSecurityNotes, 1)
	assert.Equal(t, "Dispute resolved on scene", r.InternalSecurityNotes[0])

	_, err = svc.Triage(note.ID, domain.AlertNoteStatus("CLOSED"), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.Triage("alert-missing", domain.AlertForwardedToPM, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.Len(t, svc.ListAll(), 1)
}
