package services

import (
	"testing"

	"gatewise-vms/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeQRPayload(t *testing.T) {
	id, ok := DecodeQRPayload(`{"id":"res-1"}`)
	require.True(t, ok)
	assert.Equal(t, "res-1", id)

	_, ok = DecodeQRPayload("D123456")
	assert.False(t, ok, "plain text is not a pass")

	_, ok = DecodeQRPayload(`{"name":"no id field"}`)
	assert.False(t, ok)

	_, ok = DecodeQRPayload(`{broken json`)
	assert.False(t, ok)
}

func TestGateService_Lookup_QRPath(t *testing.T) {
	store, _ := newStoreWithResident(t, nil)
	svc := NewGateService(store)

	r, ok := svc.Lookup(`{"id":"res-1"}`, "Casa de Esperanza")
	require.True(t, ok)
	assert.Equal(t, "res-1", r.ID)

	// Valid pass, wrong property: no match
	_, ok = svc.Lookup(`{"id":"res-1"}`, "Casa de Los Sueños")
	assert.False(t, ok)

	_, ok = svc.Lookup(`{"id":"res-missing"}`, "Casa de Esperanza")
	assert.False(t, ok)
}

func TestGateService_Lookup_QRRejectsPendingResident(t *testing.T) {
	store, _ := newStoreWithResident(t, func(r *domain.ResidentProfile) {
		r.Status = domain.StatusPending
	})
	svc := NewGateService(store)

	_, ok := svc.Lookup(`{"id":"res-1"}`, "Casa de Esperanza")
	assert.False(t, ok)
}

func TestGateService_Lookup_ManualQuery(t *testing.T) {
	store, _ := newStoreWithResident(t, nil)
	svc := NewGateService(store)

	// DL number
	r, ok := svc.Lookup("101", "casa de esperanza")
	require.True(t, ok)
	assert.Equal(t, "res-1", r.ID)

	// Literal DOB
	r, ok = svc.Lookup("01/01/1985", "Casa de Esperanza")
	require.True(t, ok)
	assert.Equal(t, "res-1", r.ID)

	_, ok = svc.Lookup("no-such-query", "Casa de Esperanza")
	assert.False(t, ok)
}

func TestGateService_LogCheckIn(t *testing.T) {
	store, _ := newStoreWithResident(t, nil)
	svc := NewGateService(store)

	granted := svc.LogCheckIn(LogCheckInInput{
		ResidentID:   "res-1",
		ResidentName: "Maria Garcia",
		PropertyName: "Casa de Esperanza",
		OfficerName:  "Sam Guard",
		Result:       domain.GateGranted,
		SearchQuery:  "101",
	})
	assert.NotEmpty(t, granted.ID)
	assert.False(t, granted.Timestamp.IsZero())

	// Denials are logged too
	svc.LogCheckIn(LogCheckInInput{
		PropertyName: "Casa de Esperanza",
		OfficerName:  "Sam Guard",
		Result:       domain.GateDenied,
		SearchQuery:  "bogus",
	})

	logs := svc.CheckInLogs()
	require.Len(t, logs, 2)
	assert.Equal(t, domain.GateGranted, logs[0].Result)
	assert.Equal(t, domain.GateDenied, logs[1].Result)
}
