package engine

import (
	"context"
	"errors"
	"fmt"

	"fightclub/internal/rules"
	"fightclub/internal/store"
)

// Seed writes the default rules document and the three character records.
// Existing records are left alone unless force is set.
func (s *Service) Seed(ctx context.Context, force bool) error {
	if _, err := s.store.Get(ctx, rules.Key); errors.Is(err, store.ErrNotFound) || force {
		if err := rules.Save(ctx, s.store, rules.Defaults()); err != nil {
			return err
		}
	}

	r := rules.Load(ctx, s.store)
	for _, p := range AllPersonas() {
		key := characterKey(p)
		if _, err := s.store.Get(ctx, key); err == nil && !force {
			continue
		} else if err != nil && !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("seed %s: %w", p, err)
		}

		if err := s.saveCharacter(ctx, p, newCharacter(p, r)); err != nil {
			return err
		}
	}
	return nil
}

func newCharacter(p Persona, r *rules.Rules) *Character {
	info := p.Info()

	abilities := make(map[string]int, len(info.Abilities))
	for _, a := range info.Abilities {
		abilities[a] = 5
	}

	c := &Character{
		Name:      info.Name,
		Role:      info.Role,
		Level:     1,
		Title:     "Novice",
		XP:        XPDetails{CurrentXP: 0},
		Health:    HealthDetails{CurrentHealth: 80, MaxHealth: 100},
		Energy:    EnergyDetails{CurrentEnergy: 80, MaxEnergy: 100},
		Abilities: abilities,
	}
	if rule, ok := r.Levels.At(1); ok {
		if rule.Title != "" {
			c.Title = rule.Title
		}
		c.XP.XPToNext = rule.XPToNext
	}
	return c
}
