package services

import (
	"testing"

	"gatewise-vms/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResidentService_UpdatePreferences(t *testing.T) {
	store, _ := newStoreWithResident(t, nil)
	svc := NewResidentService(store)

	err := svc.UpdatePreferences("res-1", PreferencesInput{
		AcceptingVisitors: false,
		AllowedVisitors:   []string{"John Doe"},
	})
	require.NoError(t, err)

	r, err := svc.GetByID("res-1")
	require.NoError(t, err)
	assert.False(t, r.AcceptingVisitors)
	assert.Equal(t, []string{"John Doe"}, r.AllowedVisitors)

	assert.ErrorIs(t, svc.UpdatePreferences("res-missing", PreferencesInput{}), domain.ErrNotFound)
}

func TestResidentService_UpdateProfile_PartialAndReindex(t *testing.T) {
	store, _ := newStoreWithResident(t, nil)
	svc := NewResidentService(store)

	newDL := "X9999"
	newUnit := "202"
	r, err := svc.UpdateProfile("res-1", ProfileUpdateInput{
		DLNumber:   &newDL,
		UnitNumber: &newUnit,
	})
	require.NoError(t, err)
	assert.Equal(t, "X9999", r.DLNumber)
	assert.Equal(t, "202", r.UnitNumber)
	// Untouched fields survive a partial update
	assert.Equal(t, "Maria", r.FirstName)

	// The DL index follows the update
	got, ok := store.LookupResidentByIDOrDOB("x9999", "Casa de Esperanza")
	require.True(t, ok)
	assert.Equal(t, "res-1", got.ID)

	_, err = svc.UpdateProfile("res-missing", ProfileUpdateInput{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResidentService_BatchImport_AutoApproves(t *testing.T) {
	store, _ := newStoreWithResident(t, nil)
	svc := NewResidentService(store)

	n := svc.BatchImport("Casa de Esperanza", []BatchImportRow{
		{Unit: "301", Last: "Nguyen", First: "Linh"},
		{Unit: "302", Last: "Okafor", First: "Chidi"},
	})
	assert.Equal(t, 2, n)

	// Imported rows are APPROVED immediately: visible at the gate by
	// unit, DL mirrors the unit, FirstLast credentials work
	r, ok := store.ApprovedResidentByUnit("Casa de Esperanza", "301")
	require.True(t, ok)
	assert.Equal(t, "Linh", r.FirstName)
	assert.Equal(t, "301", r.DLNumber)

	_, ok = store.FindResidentByCredentials(domain.Credentials{Username: "ChidiOkafor", Password: "ChidiOkafor"})
	assert.True(t, ok)
}
