package services

import (
	"sort"
	"time"

	"gatewise-vms/internal/adapters/persistence/memstore"
	"gatewise-vms/internal/config"
	"gatewise-vms/internal/core/domain"
)

// PatternService detects visitors returning on consecutive calendar
// days, a heuristic for unauthorized co-residency. The gap window is a
// policy parameter: a gap between distinct visit-days inside
// [StreakMinGapHours, StreakMaxGapHours] reads as "came back the next
// day"; it is deliberately approximate, not exact calendar-day
// differencing.
type PatternService struct {
	store  *memstore.Directory
	policy config.PolicyConfig
}

// NewPatternService creates a new pattern service
func NewPatternService(store *memstore.Directory, policy config.PolicyConfig) *PatternService {
	return &PatternService{store: store, policy: policy}
}

// ConsecutiveVisitAlerts scans the full visit history (active and
// closed) and emits at most one alert per (visitor name, property)
// group whose distinct visit-days form a streak of at least the
// configured threshold.
func (s *PatternService) ConsecutiveVisitAlerts() []domain.VisitorOverstayAlert {
	visits := s.store.Visitors()

	// Group by (first, last, property), case-insensitive and trimmed.
	// Key order is tracked so output is stable.
	groups := make(map[string][]domain.VisitorProfile)
	var keys []string
	for _, v := range visits {
		key := domain.Normalize(v.FirstName) + "\x00" + domain.Normalize(v.LastName) + "\x00" + domain.Normalize(v.PropertyName)
		if _, seen := groups[key]; !seen {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], v)
	}

	minGap := time.Duration(s.policy.StreakMinGapHours) * time.Hour
	maxGap := time.Duration(s.policy.StreakMaxGapHours) * time.Hour

	var alerts []domain.VisitorOverstayAlert
	emitted := make(map[string]bool) // dedup by visitor name + property

	for _, key := range keys {
		group := groups[key]
		sort.Slice(group, func(i, j int) bool {
			return group[i].CheckInTime.Before(group[j].CheckInTime)
		})

		days := distinctDays(group)
		if len(days) < s.policy.StreakThresholdDays {
			continue
		}

		streak := 1
		for i := 1; i < len(days); i++ {
			gap := days[i].Sub(days[i-1])
			switch {
			case gap >= minGap && gap <= maxGap:
				streak++
			case gap < minGap:
				// Same-day repeat: neither breaks nor extends the streak
			default:
				streak = 1
			}

			if streak >= s.policy.StreakThresholdDays {
				latest := group[len(group)-1]
				dedupKey := domain.Normalize(latest.FullName()) + "\x00" + domain.Normalize(latest.PropertyName)
				if emitted[dedupKey] {
					break
				}
				emitted[dedupKey] = true

				residentName := "Unknown"
				if res, ok := s.store.ResidentByID(latest.ResidentID); ok {
					residentName = res.FullName()
				}

				alerts = append(alerts, domain.VisitorOverstayAlert{
					ID:              "alert-pattern-" + latest.ID,
					VisitorName:     latest.FullName(),
					ResidentName:    residentName,
					UnitNumber:      latest.ResidentUnit,
					PropertyName:    latest.PropertyName,
					ConsecutiveDays: streak,
					LastCheckIn:     latest.CheckInTime,
				})
				break
			}
		}
	}

	return alerts
}

// distinctDays collects the distinct local calendar days on which a
// check-in occurred, as day-start timestamps sorted ascending.
func distinctDays(visits []domain.VisitorProfile) []time.Time {
	seen := make(map[time.Time]struct{})
	var days []time.Time
	for _, v := range visits {
		t := v.CheckInTime.Local()
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
		if _, ok := seen[day]; !ok {
			seen[day] = struct{}{}
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
