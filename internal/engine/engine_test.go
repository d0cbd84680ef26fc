package engine

import (
	"context"
	"testing"

	"fightclub/internal/rules"
	"fightclub/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := NewService(store.NewMemStore())
	if err := svc.Seed(context.Background(), false); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return svc
}

func iptr(v int) *int { return &v }

// twoLevelRules is the minimal ladder used by the stat engine tests.
func twoLevelRules() *rules.Rules {
	return &rules.Rules{
		Levels: rules.Ladder{
			"1": {XPToNext: iptr(100), Title: "Novice"},
			"2": {XPToNext: iptr(250), Title: "Adept"},
		},
		Overflow: rules.Overflow{ResetPercent: 20, Bonus: 10},
	}
}

func testCharacter() *Character {
	return &Character{
		Name:  "Kei",
		Level: 1,
		Title: "Novice",
		XP:    XPDetails{CurrentXP: 0, XPToNext: iptr(100)},
		Health: HealthDetails{
			CurrentHealth: 50, MaxHealth: 100,
		},
		Energy: EnergyDetails{
			CurrentEnergy: 50, MaxEnergy: 100,
		},
		Abilities: map[string]int{"focus": 3, "peace": 5},
	}
}
