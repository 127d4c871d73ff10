package services

import (
	"testing"

	"gatewise-vms/internal/adapters/persistence/memstore"
	"gatewise-vms/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStoreWithProperty(t *testing.T) *memstore.Directory {
	t.Helper()
	store := memstore.New()
	store.InsertPropertyRequest(domain.PropertyRequest{
		ID:           "prop-1",
		PropertyName: "Casa de Esperanza",
		ManagerName:  "Pat Manager",
		Status:       domain.StatusApproved,
		Credentials:  domain.Credentials{Username: "pm", Password: "pm"},
	})
	return store
}

func residentInput() ResidentRegistrationInput {
	return ResidentRegistrationInput{
		PropertyName: "Casa de Esperanza",
		UnitNumber:   "205",
		FirstName:    "Carlos",
		LastName:     "Reyes",
		DateOfBirth:  "02/14/1990",
		DLNumber:     "D1234567",
		Username:     "CarlosReyes",
		Password:     "CarlosReyes",
	}
}

func TestRegistrationService_RegisterResident(t *testing.T) {
	svc := NewRegistrationService(newStoreWithProperty(t))

	r, err := svc.RegisterResident(residentInput())
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, domain.StatusPending, r.Status)
	assert.True(t, r.AcceptingVisitors)
}

func TestRegistrationService_RegisterResident_UnknownProperty(t *testing.T) {
	svc := NewRegistrationService(newStoreWithProperty(t))

	in := residentInput()
	in.PropertyName = "Nonexistent Gardens"
	_, err := svc.RegisterResident(in)
	assert.ErrorIs(t, err, domain.ErrUnknownProperty)
}

func TestRegistrationService_RegisterResident_PendingPropertyRefused(t *testing.T) {
	store := newStoreWithProperty(t)
	store.InsertPropertyRequest(domain.PropertyRequest{
		ID:           "prop-2",
		PropertyName: "Casa Nueva",
		Status:       domain.StatusPending,
		Credentials:  domain.Credentials{Username: "pm2", Password: "pm2"},
	})
	svc := NewRegistrationService(store)

	in := residentInput()
	in.PropertyName = "Casa Nueva"
	_, err := svc.RegisterResident(in)
	assert.ErrorIs(t, err, domain.ErrUnknownProperty)
}

func TestRegistrationService_RegisterResident_DuplicateDL(t *testing.T) {
	svc := NewRegistrationService(newStoreWithProperty(t))

	_, err := svc.RegisterResident(residentInput())
	require.NoError(t, err)

	in := residentInput()
	in.Username = "OtherUser"
	in.DLNumber = "d1234567" // case-insensitive clash
	_, err = svc.RegisterResident(in)
	assert.ErrorIs(t, err, domain.ErrDLNumberTaken)
}

func TestRegistrationService_UsernameSharedAcrossAccountKinds(t *testing.T) {
	svc := NewRegistrationService(newStoreWithProperty(t))

	_, err := svc.RegisterResident(residentInput())
	require.NoError(t, err)

	// An officer cannot take a username a resident already holds
	_, err = svc.RegisterOfficer(OfficerRegistrationInput{
		FirstName:   "Sam",
		LastName:    "Cho",
		BadgeNumber: "B-77",
		Username:    "CarlosReyes",
		Password:    "different",
	})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	// Property manager usernames clash too
	_, err = svc.RegisterProperty(PropertyRegistrationInput{
		PropertyName: "Casa del Sol",
		ManagerName:  "Lee Park",
		Username:     "pm",
		Password:     "x",
	})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestRegistrationService_ApproveResident_EnablesLoginAndUnitIndex(t *testing.T) {
	store := newStoreWithProperty(t)
	svc := NewRegistrationService(store)

	r, err := svc.RegisterResident(residentInput())
	require.NoError(t, err)

	// Pending residents are invisible at the gate and cannot log in
	_, ok := store.FindResidentByCredentials(domain.Credentials{Username: "CarlosReyes", Password: "CarlosReyes"})
	assert.False(t, ok)

	require.NoError(t, svc.ApproveResident(r.ID, "Pat Manager"))

	got, ok := store.FindResidentByCredentials(domain.Credentials{Username: "CarlosReyes", Password: "CarlosReyes"})
	require.True(t, ok)
	assert.Equal(t, domain.StatusApproved, got.Status)

	byUnit, ok := store.ApprovedResidentByUnit("Casa de Esperanza", "205")
	require.True(t, ok)
	assert.Equal(t, r.ID, byUnit.ID)
}

func TestRegistrationService_RejectResident(t *testing.T) {
	store := newStoreWithProperty(t)
	svc := NewRegistrationService(store)

	r, err := svc.RegisterResident(residentInput())
	require.NoError(t, err)

	require.NoError(t, svc.RejectResident(r.ID, "Pat Manager"))
	got, ok := store.ResidentByID(r.ID)
	require.True(t, ok)
	assert.Equal(t, domain.StatusRejected, got.Status)

	assert.ErrorIs(t, svc.RejectResident("res-missing", "Pat Manager"), domain.ErrNotFound)
}

func TestRegistrationService_PropertyApprovalFlow(t *testing.T) {
	store := newStoreWithProperty(t)
	svc := NewRegistrationService(store)

	p, err := svc.RegisterProperty(PropertyRegistrationInput{
		PropertyName: "Casa del Sol",
		ManagerName:  "Lee Park",
		Username:     "leepark",
		Password:     "leepark",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, p.Status)

	// Not yet a valid community for registrations
	assert.False(t, store.IsPropertyNameValid("Casa del Sol"))

	require.NoError(t, svc.ApproveProperty(p.ID))
	assert.True(t, store.IsPropertyNameValid("Casa del Sol"))

	names := map[string]bool{}
	for _, ap := range svc.ApprovedProperties() {
		names[ap.PropertyName] = true
	}
	assert.True(t, names["Casa de Esperanza"])
	assert.True(t, names["Casa del Sol"])
}

func TestRegistrationService_StaffFlow(t *testing.T) {
	store := newStoreWithProperty(t)
	svc := NewRegistrationService(store)

	_, err := svc.RegisterStaff(StaffRegistrationInput{
		PropertyName: "Nonexistent Gardens",
		FirstName:    "Ana",
		LastName:     "Luna",
		Username:     "analuna",
		Password:     "analuna",
	})
	assert.ErrorIs(t, err, domain.ErrUnknownProperty)

	st, err := svc.RegisterStaff(StaffRegistrationInput{
		PropertyName: "Casa de Esperanza",
		FirstName:    "Ana",
		LastName:     "Luna",
		Username:     "analuna",
		Password:     "analuna",
	})
	require.NoError(t, err)

	pending := svc.PendingStaffRequests("Casa de Esperanza")
	require.Len(t, pending, 1)
	assert.Equal(t, st.ID, pending[0].ID)

	require.NoError(t, svc.ApproveStaff(st.ID))
	assert.Empty(t, svc.PendingStaffRequests("Casa de Esperanza"))

	// An approved staff credential now resolves as a management login
	matches := store.FindStaffByCredentials(domain.Credentials{Username: "analuna", Password: "analuna"})
	require.Len(t, matches, 1)
	assert.Equal(t, "Casa de Esperanza", matches[0].PropertyName)
}

func TestRegistrationService_OfficerFlow(t *testing.T) {
	store := newStoreWithProperty(t)
	svc := NewRegistrationService(store)

	o, err := svc.RegisterOfficer(OfficerRegistrationInput{
		FirstName:      "Sam",
		LastName:       "Cho",
		BadgeNumber:    "B-77",
		OnDutyProperty: "Casa de Esperanza",
		Username:       "samcho",
		Password:       "samcho",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, o.Status)

	_, ok := store.FindOfficerByCredentials(domain.Credentials{Username: "samcho", Password: "samcho"})
	assert.False(t, ok)

	require.NoError(t, svc.ApproveOfficer(o.ID))
	got, ok := store.FindOfficerByCredentials(domain.Credentials{Username: "samcho", Password: "samcho"})
	require.True(t, ok)
	assert.Equal(t, "B-77", got.BadgeNumber)

	assert.ErrorIs(t, svc.ApproveOfficer("off-missing"), domain.ErrNotFound)
}
