package config

import (
	"testing"

	"gatewise-vms/internal/adapters/persistence/memstore"
	"gatewise-vms/internal/core/domain"
)

func TestSeeder_Run(t *testing.T) {
	store := memstore.New()
	if err := NewSeeder(store).Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	props := store.ApprovedProperties()
	if len(props) != 2 {
		t.Fatalf("approved properties = %d, want 2", len(props))
	}

	residents := store.Residents()
	if len(residents) != 141 {
		t.Fatalf("resident count = %d, want 141", len(residents))
	}
	byProperty := map[string]int{}
	for _, r := range residents {
		byProperty[r.PropertyName]++
		if r.Status != domain.StatusApproved {
			t.Fatalf("resident %s status = %s, want APPROVED", r.ID, r.Status)
		}
		if r.DLNumber != r.UnitNumber {
			t.Errorf("resident %s DL %q != unit %q", r.ID, r.DLNumber, r.UnitNumber)
		}
	}
	if byProperty["Casa de Esperanza"] != 80 {
		t.Errorf("Casa de Esperanza roster = %d, want 80", byProperty["Casa de Esperanza"])
	}
	if byProperty["Casa de Los Sueños"] != 61 {
		t.Errorf("Casa de Los Sueños roster = %d, want 61", byProperty["Casa de Los Sueños"])
	}

	// The shared management login resolves to both demo properties
	pms := store.FindPropertyManagersByCredentials(domain.Credentials{Username: "user", Password: "pass"})
	if len(pms) != 2 {
		t.Errorf("shared PM credential matches = %d, want 2", len(pms))
	}

	// Gate lookup by DL works straight off the seed (DL mirrors unit)
	r, ok := store.LookupResidentByIDOrDOB("101", "Casa de Esperanza")
	if !ok {
		t.Fatal("seeded resident not found by DL 101")
	}
	if r.UnitNumber != "101" {
		t.Errorf("unit = %q, want 101", r.UnitNumber)
	}
}
