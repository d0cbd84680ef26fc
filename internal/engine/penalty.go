package engine

import (
	"context"
	"time"

	"fightclub/internal/rules"
)

// ApplyMissedCheckinPenaltyIfDue applies the missed-checkin penalty to every
// character when the number of whole days since the last check-in has reached
// the policy threshold. A roster that has never checked in always triggers.
// Penalties bypass the overflow logic (they only decrease) and every field is
// floored at 0.
func (s *Service) ApplyMissedCheckinPenaltyIfDue(ctx context.Context, today time.Time) (bool, error) {
	r := rules.Load(ctx, s.store)

	missed, ever := s.daysSinceLastCheckin(ctx, today)
	if ever && missed < r.MissedCheckin.ThresholdDays {
		return false, nil
	}
	if !ever {
		missed = r.MissedCheckin.ThresholdDays
	}

	date := today.Format(DateFormat)
	for _, p := range AllPersonas() {
		c, err := s.Character(ctx, p)
		if err != nil {
			s.log.WithError(err).Warnf("skipping penalty for %s", p)
			continue
		}

		applied := applyPenalty(c, r.MissedCheckin)
		if err := s.saveCharacter(ctx, p, c); err != nil {
			return false, err
		}

		if _, err := s.appendHistory(ctx, HistoryEntry{
			Persona:    p,
			Event:      EventMissedCheckin,
			DaysMissed: missed,
			Delta:      applied,
			After:      c.Snapshot(),
			Date:       date,
		}); err != nil {
			return false, err
		}
	}

	if _, err := s.RecomputeSynergy(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// daysSinceLastCheckin reports the elapsed whole days, and whether any
// check-in exists at all. The stored daily-progress date is preferred; the
// check-in documents are scanned as a fallback.
func (s *Service) daysSinceLastCheckin(ctx context.Context, today time.Time) (int, bool) {
	lastStr := s.loadSynergy(ctx).DailyProgress.LastCheckin
	if lastStr == "" {
		keys, err := s.store.List(ctx, dailyPrefix)
		if err != nil || len(keys) == 0 {
			return 0, false
		}
		lastStr = keys[len(keys)-1][len(dailyPrefix):]
	}

	last, err := time.Parse(DateFormat, lastStr)
	if err != nil {
		s.log.Warnf("bad last check-in date %q", lastStr)
		return 0, false
	}

	day, _ := time.Parse(DateFormat, today.Format(DateFormat))
	return int(day.Sub(last) / (24 * time.Hour)), true
}

// applyPenalty mutates the character directly: fixed losses for xp, health
// and energy, and a proportional loss of at least 1 point per ability.
func applyPenalty(c *Character, p rules.MissedCheckin) Delta {
	applied := Delta{Abilities: map[string]int{}}

	applied.XP = -clampLoss(c.XP.CurrentXP, p.XP)
	c.XP.CurrentXP += applied.XP

	applied.Health = -clampLoss(c.Health.CurrentHealth, p.Health)
	c.Health.CurrentHealth += applied.Health

	applied.Energy = -clampLoss(c.Energy.CurrentEnergy, p.Energy)
	c.Energy.CurrentEnergy += applied.Energy

	pct := p.AbilityPercent
	if pct < 0 {
		pct = -pct
	}
	for ability, v := range c.Abilities {
		if v <= 0 {
			continue
		}
		loss := v * pct / 100
		if loss < 1 {
			loss = 1
		}
		if loss > v {
			loss = v
		}
		c.Abilities[ability] = v - loss
		applied.Abilities[ability] = -loss
	}
	return applied
}

// clampLoss turns a configured (negative) penalty into the loss actually
// taken, never more than the current value.
func clampLoss(current, penalty int) int {
	loss := penalty
	if loss < 0 {
		loss = -loss
	}
	if loss > current {
		loss = current
	}
	if loss < 0 {
		loss = 0
	}
	return loss
}
