package engine

import (
	"github.com/sirupsen/logrus"

	"fightclub/internal/rules"
)

// ApplyDelta applies a requested stat-change bundle to a character and
// returns the bundle actually applied, which differs from the request when
// overflow redistribution fires. The character is mutated in place.
//
// Overflow is one-shot: only the stat whose requested change pushed it to or
// past its max is reset, and the cross bonus is never itself re-checked for
// overflow. A level table with no rung for the reached level means "max
// level", never an error.
func ApplyDelta(c *Character, req Delta, r *rules.Rules) Delta {
	applied := Delta{Abilities: map[string]int{}}

	if req.XP != 0 {
		c.XP.CurrentXP += req.XP
		applied.XP = req.XP

		rule, ok := r.Levels.At(c.Level)
		for ok && rule.XPToNext != nil && c.XP.CurrentXP >= *rule.XPToNext {
			c.XP.CurrentXP -= *rule.XPToNext
			c.Level++

			rule, ok = r.Levels.At(c.Level)
			if !ok {
				c.XP.XPToNext = nil
				break
			}
			if rule.Title != "" {
				c.Title = rule.Title
			}
			c.XP.XPToNext = rule.XPToNext
		}
	}

	if req.Health != 0 {
		c.Health.CurrentHealth += req.Health
		applied.Health = req.Health

		if c.Health.CurrentHealth >= c.Health.MaxHealth {
			c.Health.CurrentHealth = c.Health.MaxHealth * r.Overflow.ResetPercent / 100
			c.Energy.CurrentEnergy += r.Overflow.Bonus
			applied.Energy += r.Overflow.Bonus
		}
	}

	if req.Energy != 0 {
		c.Energy.CurrentEnergy += req.Energy
		applied.Energy += req.Energy

		if c.Energy.CurrentEnergy >= c.Energy.MaxEnergy {
			c.Energy.CurrentEnergy = c.Energy.MaxEnergy * r.Overflow.ResetPercent / 100
			c.Health.CurrentHealth += r.Overflow.Bonus
			applied.Health += r.Overflow.Bonus
		}
	}

	for ability, v := range req.Abilities {
		if v == 0 {
			continue
		}
		if _, ok := c.Abilities[ability]; !ok {
			logrus.Warnf("unknown ability %q for %s, skipping", ability, c.Name)
			continue
		}
		c.Abilities[ability] += v
		applied.Abilities[ability] = v
	}

	return applied
}
