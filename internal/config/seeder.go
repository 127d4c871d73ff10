package config

import (
	"fmt"
	"log"
	"time"

	"gatewise-vms/internal/adapters/persistence/memstore"
	"gatewise-vms/internal/core/domain"
)

// Seeder populates the directory store with the demo roster.
// The data is synthetic and lives only for the lifetime of the process.
type Seeder struct {
	store *memstore.Directory
}

// NewSeeder creates a new seeder instance
func NewSeeder(store *memstore.Directory) *Seeder {
	return &Seeder{store: store}
}

var seedFirstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael", "Linda",
	"David", "Elizabeth", "William", "Barbara", "Richard", "Susan", "Joseph", "Jessica",
	"Thomas", "Sarah", "Charles", "Karen", "Christopher", "Nancy", "Daniel", "Lisa",
	"Matthew", "Betty", "Anthony", "Margaret", "Mark", "Sandra", "Steven", "Ashley",
	"Paul", "Kimberly", "Andrew", "Emily", "Joshua", "Donna", "Kenneth", "Michelle",
	"Kevin", "Carol", "Brian", "Amanda", "George", "Melissa", "Edward", "Deborah",
	"Ronald", "Stephanie", "Timothy", "Rebecca", "Jason", "Sharon", "Jeffrey", "Laura",
	"Ryan", "Cynthia", "Jacob", "Kathleen", "Gary", "Amy", "Nicholas", "Shirley",
	"Eric", "Angela", "Jonathan", "Helen", "Stephen", "Anna", "Larry", "Brenda",
	"Justin", "Pamela", "Scott", "Nicole", "Brandon", "Emma", "Benjamin", "Samantha",
}

var seedLastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Thomas",
	"Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson", "White",
	"Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson", "Walker", "Young",
	"Allen", "King", "Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores",
	"Green", "Adams", "Nelson", "Baker", "Hall", "Rivera", "Campbell", "Mitchell",
	"Carter", "Roberts", "Gomez", "Phillips", "Evans", "Turner", "Diaz", "Parker",
	"Cruz", "Edwards", "Collins", "Reyes", "Stewart", "Morris", "Morales", "Murphy",
	"Cook", "Rogers", "Gutierrez", "Ortiz", "Morgan", "Cooper", "Peterson", "Bailey",
	"Reed", "Kelly", "Howard", "Ramos", "Kim", "Cox", "Ward", "Richardson",
}

// Run seeds the demo properties and their resident rosters
func (s *Seeder) Run() error {
	log.Println("🌱 Seeding demo directory data...")

	// 1. The two demo properties share one management login
	pmCreds := domain.Credentials{Username: "user", Password: "pass"}

	s.store.InsertPropertyRequest(domain.PropertyRequest{
		ID:           "prop-esperanza",
		PropertyName: "Casa de Esperanza",
		Status:       domain.StatusApproved,
		RequestDate:  time.Now(),
		Credentials:  pmCreds,
		ManagerName:  "Lead Manager",
		ContactEmail: "esperanza@management.com",
		City:         "Los Angeles",
		State:        "CA",
	})

	s.store.InsertPropertyRequest(domain.PropertyRequest{
		ID:           "prop-suenos",
		PropertyName: "Casa de Los Sueños",
		Status:       domain.StatusApproved,
		RequestDate:  time.Now(),
		Credentials:  pmCreds,
		ManagerName:  "Lead Manager",
		ContactEmail: "suenos@management.com",
		City:         "San Diego",
		State:        "CA",
	})

	// 2. Resident roster for Casa de Esperanza (80 residents)
	s.seedRoster("Casa de Esperanza", "res-ce", 80, "", "01/01/1985",
		"2023-01-01", "2025-12-31", seedFirstNames, seedLastNames)

	// 3. Resident roster for Casa de Los Sueños (61 residents),
	// name lists reversed so the rosters differ
	s.seedRoster("Casa de Los Sueños", "res-cls", 61, "S-", "05/15/1990",
		"2022-06-01", "2024-06-01", reversed(seedFirstNames), reversed(seedLastNames))

	log.Println("✅ Demo data seeding completed")
	return nil
}

// seedRoster inserts an APPROVED resident roster. Units are laid out as
// floor+room (20 rooms per floor); the DL number mirrors the unit so
// the gate lookup demo works out of the box.
func (s *Seeder) seedRoster(propertyName, idPrefix string, count int, unitPrefix, dob, moveIn, leaseEnd string, firstNames, lastNames []string) {
	for i := 0; i < count; i++ {
		floor := i/20 + 1
		room := i%20 + 1
		unit := fmt.Sprintf("%s%d%02d", unitPrefix, floor, room)
		first := firstNames[i%len(firstNames)]
		last := lastNames[i%len(lastNames)]

		s.store.InsertResident(domain.ResidentProfile{
			ID:                  fmt.Sprintf("%s-%d", idPrefix, i),
			PropertyName:        propertyName,
			UnitNumber:          unit,
			FirstName:           first,
			LastName:            last,
			DateOfBirth:         dob,
			MoveInDate:          moveIn,
			LeaseExpirationDate: leaseEnd,
			DLNumber:            unit,
			DLImageURL:          "https://picsum.photos/400/250",
			ResidentImageURL:    fmt.Sprintf("https://i.pravatar.cc/150?u=%s-%d", idPrefix, i),
			Status:              domain.StatusApproved,
			AcceptingVisitors:   true,
			AllowedVisitors:     []string{},
			Credentials: domain.Credentials{
				Username: first + last,
				Password: first + last,
			},
			CreatedAt: time.Now(),
		})
	}
	log.Printf("   • %s: %d residents", propertyName, count)
}

func reversed(in []string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}
