package services

import (
	"testing"
	"time"

	"gatewise-vms/internal/adapters/persistence/memstore"
	"gatewise-vms/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// insertVisitAt inserts a closed visit with a fixed check-in time
func insertVisitAt(store *memstore.Directory, first, last, property string, checkIn time.Time) domain.VisitorProfile {
	return store.InsertVisitor(domain.VisitorProfile{
		ResidentID:            "res-1",
		ResidentUnit:          "101",
		PropertyName:          property,
		FirstName:             first,
		LastName:              last,
		CheckInTime:           checkIn,
		ExpectedDurationHours: 4,
		ExpirationTime:        checkIn.Add(4 * time.Hour),
		Status:                domain.VisitCheckedOut,
	})
}

// dayAt returns a fixed local wall-clock instant n days before base
func dayAt(base time.Time, daysAgo int) time.Time {
	return base.AddDate(0, 0, -daysAgo)
}

func TestPatternService_TwoDaysNoAlert(t *testing.T) {
	store, _ := newStoreWithResident(t, nil)
	svc := NewPatternService(store, testPolicy())

	base := time.Date(2024, 3, 10, 20, 0, 0, 0, time.Local)
	insertVisitAt(store, "John", "Doe", "Casa de Esperanza", dayAt(base, 1))
	insertVisitAt(store, "John", "Doe", "Casa de Esperanza", base)

	assert.Empty(t, svc.ConsecutiveVisitAlerts())
}

func TestPatternService_FiveConsecutiveDaysOneAlert(t *testing.T) {
	store, _ := newStoreWithResident(t, nil)
	svc := NewPatternService(store, testPolicy())

	base := time.Date(2024, 3, 10, 20, 0, 0, 0, time.Local)
	for daysAgo := 4; daysAgo >= 0; daysAgo-- {
		insertVisitAt(store, "John", "Doe", "Casa de Esperanza", dayAt(base, daysAgo))
	}

	alerts := svc.ConsecutiveVisitAlerts()
	require.Len(t, alerts, 1, "one alert per visitor+property, not one per day")
	assert.Equal(t, "John Doe", alerts[0].VisitorName)
	assert.Equal(t, "Maria Garcia", alerts[0].ResidentName)
	assert.Equal(t, "Casa de Esperanza", alerts[0].PropertyName)
	assert.GreaterOrEqual(t, alerts[0].ConsecutiveDays, 3)
}

func TestPatternService_SameDayRepeatsDoNotExtendStreak(t *testing.T) {
	store, _ := newStoreWithResident(t, nil)
	svc := NewPatternService(store, testPolicy())

	// Three visits on the same day plus one the next day: two distinct
	// days, below threshold.
	base := time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local)
	insertVisitAt(store, "John", "Doe", "Casa de Esperanza", base)
	insertVisitAt(store, "John", "Doe", "Casa de Esperanza", base.Add(2*time.Hour))
	insertVisitAt(store, "John", "Doe", "Casa de Esperanza", base.Add(5*time.Hour))
	insertVisitAt(store, "John", "Doe", "Casa de Esperanza", base.AddDate(0, 0, 1))

	assert.Empty(t, svc.ConsecutiveVisitAlerts())
}

func TestPatternService_GapResetsStreak(t *testing.T) {
	store, _ := newStoreWithResident(t, nil)
	svc := NewPatternService(store, testPolicy())

	// Two days, a week off, then two more days: never three in a row
	base := time.Date(2024, 3, 10, 20, 0, 0, 0, time.Local)
	insertVisitAt(store, "John", "Doe", "Casa de Esperanza", dayAt(base, 9))
	insertVisitAt(store, "John", "Doe", "Casa de Esperanza", dayAt(base, 8))
	insertVisitAt(store, "John", "Doe", "Casa de Esperanza", dayAt(base, 1))
	insertVisitAt(store, "John", "Doe", "Casa de Esperanza", base)

	assert.Empty(t, svc.ConsecutiveVisitAlerts())
}

func TestPatternService_GroupsAreNameAndPropertyScoped(t *testing.T) {
	store, _ := newStoreWithResident(t, nil)
	svc := NewPatternService(store, testPolicy())

	// Alternating properties: neither property accumulates three days
	base := time.Date(2024, 3, 10, 20, 0, 0, 0, time.Local)
	for daysAgo := 5; daysAgo >= 0; daysAgo-- {
		property := "Casa de Esperanza"
		if daysAgo%2 == 0 {
			property = "Casa de Los Sueños"
		}
		insertVisitAt(store, "John", "Doe", property, dayAt(base, daysAgo))
	}

	assert.Empty(t, svc.ConsecutiveVisitAlerts())
}

func TestPatternService_NameMatchingIsCaseInsensitive(t *testing.T) {
	store, _ := newStoreWithResident(t, nil)
	svc := NewPatternService(store, testPolicy())

	base := time.Date(2024, 3, 10, 20, 0, 0, 0, time.Local)
	insertVisitAt(store, "John", "Doe", "Casa de Esperanza", dayAt(base, 2))
	insertVisitAt(store, "JOHN", "DOE", "Casa de Esperanza", dayAt(base, 1))
	insertVisitAt(store, " john ", "doe", "Casa de Esperanza", base)

	alerts := svc.ConsecutiveVisitAlerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, 3, alerts[0].ConsecutiveDays)
}

func TestPatternService_UnknownResidentName(t *testing.T) {
	store := memstore.New()
	svc := NewPatternService(store, testPolicy())

	base := time.Date(2024, 3, 10, 20, 0, 0, 0, time.Local)
	for daysAgo := 2; daysAgo >= 0; daysAgo-- {
		insertVisitAt(store, "John", "Doe", "Casa de Esperanza", dayAt(base, daysAgo))
	}

	alerts := svc.ConsecutiveVisitAlerts()
	require.Len(t, alerts, 1)
	assert.Equal(t, "Unknown", alerts[0].ResidentName)
}
