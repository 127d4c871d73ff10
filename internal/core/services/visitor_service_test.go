package services

import (
	"testing"
	"time"

	"gatewise-vms/internal/adapters/persistence/memstore"
	"gatewise-vms/internal/config"
	"gatewise-vms/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy() config.PolicyConfig {
	return config.PolicyConfig{
		MaxVisitHours:       72,
		DefaultVisitHours:   4,
		StreakMinGapHours:   12,
		StreakMaxGapHours:   30,
		StreakThresholdDays: 3,
	}
}

func newStoreWithResident(t *testing.T, mutate func(*domain.ResidentProfile)) (*memstore.Directory, domain.ResidentProfile) {
	t.Helper()
	store := memstore.New()
	r := domain.ResidentProfile{
		ID:                "res-1",
		PropertyName:      "Casa de Esperanza",
		UnitNumber:        "101",
		FirstName:         "Maria",
		LastName:          "Garcia",
		DateOfBirth:       "01/01/1985",
		DLNumber:          "101",
		Status:            domain.StatusApproved,
		AcceptingVisitors: true,
		Credentials:       domain.Credentials{Username: "MariaGarcia", Password: "MariaGarcia"},
	}
	if mutate != nil {
		mutate(&r)
	}
	store.InsertResident(r)
	return store, r
}

func TestVisitorService_CheckIn_ByUnitFallback(t *testing.T) {
	store, _ := newStoreWithResident(t, nil)
	svc := NewVisitorService(store, testPolicy())

	v, err := svc.CheckIn(CheckInInput{
		ResidentID:   ResidentIDLookupSentinel,
		ResidentUnit: "101",
		PropertyName: "Casa de Esperanza",
		FirstName:    "John",
		LastName:     "Doe",
		Relationship: "Friend",
	})
	require.NoError(t, err)
	assert.Equal(t, "res-1", v.ResidentID)
	assert.Equal(t, domain.VisitActive, v.Status)
	assert.False(t, v.ReEntryWithoutCheckOut)
	// Default pass length applies when no duration is requested
	assert.Equal(t, 4, v.ExpectedDurationHours)
	assert.Equal(t, 4*time.Hour, v.ExpirationTime.Sub(v.CheckInTime))
}

func TestVisitorService_CheckIn_NoResidentOnFile(t *testing.T) {
	store, _ := newStoreWithResident(t, nil)
	svc := NewVisitorService(store, testPolicy())

	_, err := svc.CheckIn(CheckInInput{
		ResidentID:   ResidentIDLookupSentinel,
		ResidentUnit: "999",
		PropertyName: "Casa de Esperanza",
		FirstName:    "John",
		LastName:     "Doe",
	})
	assert.ErrorIs(t, err, domain.ErrNoResidentOnFile)
}

func TestVisitorService_CheckIn_NotAcceptingVisitors(t *testing.T) {
	store, _ := newStoreWithResident(t, func(r *domain.ResidentProfile) {
		r.AcceptingVisitors = false
	})
	svc := NewVisitorService(store, testPolicy())

	_, err := svc.CheckIn(CheckInInput{
		ResidentID:   "res-1",
		ResidentUnit: "101",
		PropertyName: "Casa de Esperanza",
		FirstName:    "John",
		LastName:     "Doe",
	})
	assert.ErrorIs(t, err, domain.ErrNotAcceptingVisitors)
}

func TestVisitorService_CheckIn_AllowList(t *testing.T) {
	store, _ := newStoreWithResident(t, func(r *domain.ResidentProfile) {
		r.AllowedVisitors = []string{"John Doe"}
	})
	svc := NewVisitorService(store, testPolicy())

	// Listed guest passes, case- and whitespace-insensitively
	_, err := svc.CheckIn(CheckInInput{
		ResidentID:   "res-1",
		ResidentUnit: "101",
		PropertyName: "Casa de Esperanza",
		FirstName:    "  JOHN",
		LastName:     "doe ",
	})
	require.NoError(t, err)

	// Unlisted guest is refused
	_, err = svc.CheckIn(CheckInInput{
		ResidentID:   "res-1",
		ResidentUnit: "101",
		PropertyName: "Casa de Esperanza",
		FirstName:    "Jane",
		LastName:     "Smith",
	})
	assert.ErrorIs(t, err, domain.ErrVisitorNotOnGuestList)
}

func TestVisitorService_CheckIn_EmptyAllowListAdmitsAnyone(t *testing.T) {
	store, _ := newStoreWithResident(t, func(r *domain.ResidentProfile) {
		r.AllowedVisitors = []string{}
	})
	svc := NewVisitorService(store, testPolicy())

	_, err := svc.CheckIn(CheckInInput{
		ResidentID:   "res-1",
		ResidentUnit: "101",
		PropertyName: "Casa de Esperanza",
		FirstName:    "Anyone",
		LastName:     "AtAll",
	})
	assert.NoError(t, err)
}

func TestVisitorService_CheckIn_DurationCappedAt72Hours(t *testing.T) {
	store, _ := newStoreWithResident(t, nil)
	svc := NewVisitorService(store, testPolicy())

	v, err := svc.CheckIn(CheckInInput{
		ResidentID:            "res-1",
		ResidentUnit:          "101",
		PropertyName:          "Casa de Esperanza",
		FirstName:             "John",
		LastName:              "Doe",
		ExpectedDurationHours: 500,
	})
	require.NoError(t, err)
	assert.Equal(t, 72, v.ExpectedDurationHours)
	assert.Equal(t, 72*time.Hour, v.ExpirationTime.Sub(v.CheckInTime))
}

func TestVisitorService_CheckIn_ReEntryFlaggedNotBlocked(t *testing.T) {
	store, _ := newStoreWithResident(t, nil)
	svc := NewVisitorService(store, testPolicy())

	first, err := svc.CheckIn(CheckInInput{
		ResidentID:   "res-1",
		ResidentUnit: "101",
		PropertyName: "Casa de Esperanza",
		FirstName:    "John",
		LastName:     "Doe",
	})
	require.NoError(t, err)
	assert.False(t, first.ReEntryWithoutCheckOut)

	// Same name, still active elsewhere: admitted, flagged
	second, err := svc.CheckIn(CheckInInput{
		ResidentID:   "res-1",
		ResidentUnit: "101",
		PropertyName: "Casa de Esperanza",
		FirstName:    "john",
		LastName:     "DOE",
	})
	require.NoError(t, err)
	assert.True(t, second.ReEntryWithoutCheckOut)

	// After checkout the flag clears for the next visit
	_, err = svc.CheckOut(first.ID)
	require.NoError(t, err)
	_, err = svc.CheckOut(second.ID)
	require.NoError(t, err)

	third, err := svc.CheckIn(CheckInInput{
		ResidentID:   "res-1",
		ResidentUnit: "101",
		PropertyName: "Casa de Esperanza",
		FirstName:    "John",
		LastName:     "Doe",
	})
	require.NoError(t, err)
	assert.False(t, third.ReEntryWithoutCheckOut)
}

func TestVisitorService_CheckOut(t *testing.T) {
	store, _ := newStoreWithResident(t, nil)
	svc := NewVisitorService(store, testPolicy())

	v, err := svc.CheckIn(CheckInInput{
		ResidentID:   "res-1",
		ResidentUnit: "101",
		PropertyName: "Casa de Esperanza",
		FirstName:    "John",
		LastName:     "Doe",
	})
	require.NoError(t, err)

	out, err := svc.CheckOut(v.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VisitCheckedOut, out.Status)
	require.NotNil(t, out.CheckOutTime)

	assert.Empty(t, svc.ActiveVisitors())
	assert.Len(t, svc.AllVisitors(), 1, "history is append-only")

	_, err = svc.CheckOut("vis-missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVisitorService_Overstayed(t *testing.T) {
	store, _ := newStoreWithResident(t, nil)
	svc := NewVisitorService(store, testPolicy())

	// A 10-hour-old visit with a 4h pass is overstayed
	checkIn := time.Now().Add(-10 * time.Hour)
	stale := store.InsertVisitor(domain.VisitorProfile{
		ResidentID:            "res-1",
		PropertyName:          "Casa de Esperanza",
		FirstName:             "John",
		LastName:              "Doe",
		CheckInTime:           checkIn,
		ExpectedDurationHours: 4,
		ExpirationTime:        checkIn.Add(4 * time.Hour),
		Status:                domain.VisitActive,
	})

	over := svc.OverstayedVisitors()
	require.Len(t, over, 1)
	assert.Equal(t, stale.ID, over[0].ID)
	// Overstay is computed at read time; the stored status stays ACTIVE
	assert.Equal(t, domain.VisitActive, over[0].Status)

	// Checked-out visits never overstay
	_, err := svc.CheckOut(stale.ID)
	require.NoError(t, err)
	assert.Empty(t, svc.OverstayedVisitors())
}
