package engine

import (
	"context"
	"errors"
	"fmt"
	"math"

	"fightclub/internal/rules"
	"fightclub/internal/store"
)

// RecomputeSynergy rebuilds the derived summary from the stored characters,
// missions and rewards. Everything is recomputed from scratch except the
// daily-progress block, which is carried through unchanged.
func (s *Service) RecomputeSynergy(ctx context.Context) (*Synergy, error) {
	prev := s.loadSynergy(ctx)
	r := rules.Load(ctx, s.store)

	syn := &Synergy{
		Categories:    map[string]float64{},
		Missions:      map[MissionStatus]int{},
		Rewards:       map[string]int{},
		DailyProgress: prev.DailyProgress,
	}

	chars := s.Characters(ctx)
	for _, c := range chars {
		syn.TotalXP += c.XP.CurrentXP
	}

	level, rule, ok := resolveLadder(r.SynergyLevels, syn.TotalXP)
	syn.Level = level
	if ok {
		syn.Chapter = rule.Chapter
		syn.Description = rule.Desc
	}
	if cur, found := r.SynergyLevels.At(level); found {
		syn.XPToNext = cur.XPToNext
	}

	for _, p := range AllPersonas() {
		c, found := chars[p]
		if !found {
			continue
		}
		mean := round2(abilityMean(c))
		syn.Categories[p.Info().Category] = mean
		syn.TotalSynergy += mean
	}
	syn.TotalSynergy = round2(syn.TotalSynergy)

	if err := s.countMissions(ctx, syn); err != nil {
		return nil, err
	}
	if err := s.countRewards(ctx, syn); err != nil {
		return nil, err
	}

	if err := store.PutJSON(ctx, s.store, synergyKey, syn); err != nil {
		return nil, fmt.Errorf("save synergy: %w", err)
	}
	return syn, nil
}

// Synergy returns the stored summary without recomputing it.
func (s *Service) Synergy(ctx context.Context) *Synergy {
	return s.loadSynergy(ctx)
}

func (s *Service) loadSynergy(ctx context.Context) *Synergy {
	var syn Synergy
	if err := store.GetJSON(ctx, s.store, synergyKey, &syn); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.log.WithError(err).Warn("synergy record unreadable, starting empty")
		}
		return &Synergy{}
	}
	return &syn
}

// resolveLadder walks a ladder with the same cascading rule as character
// level-ups, starting from level 1 with the full XP amount. ok is false when
// the ladder has no rungs at all.
func resolveLadder(l rules.Ladder, totalXP int) (int, rules.LevelRule, bool) {
	level := 1
	rule, ok := l.At(level)
	if !ok {
		return level, rules.LevelRule{}, false
	}

	xp := totalXP
	last := rule
	for ok && rule.XPToNext != nil && xp >= *rule.XPToNext {
		xp -= *rule.XPToNext
		level++
		rule, ok = l.At(level)
		if ok {
			last = rule
		}
	}
	return level, last, true
}

func abilityMean(c *Character) float64 {
	if len(c.Abilities) == 0 {
		return 0
	}
	sum := 0
	for _, v := range c.Abilities {
		sum += v
	}
	return float64(sum) / float64(len(c.Abilities))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// countMissions tallies mission records by status. Active records with no
// status count as not-started; archived records count as completed unless
// they are explicitly failed. The asymmetry is deliberate bookkeeping for
// legacy records without a status field.
func (s *Service) countMissions(ctx context.Context, syn *Synergy) error {
	activeKeys, err := s.store.List(ctx, missionActivePrefix)
	if err != nil {
		return fmt.Errorf("list active missions: %w", err)
	}
	for _, key := range activeKeys {
		var m Mission
		if err := store.GetJSON(ctx, s.store, key, &m); err != nil {
			s.log.WithError(err).Warnf("skipping mission %s", key)
			continue
		}
		status := m.Status
		if status == "" {
			status = MissionNotStarted
		}
		syn.Missions[status]++
	}

	archiveKeys, err := s.store.List(ctx, missionArchivePrefix)
	if err != nil {
		return fmt.Errorf("list archived missions: %w", err)
	}
	for _, key := range archiveKeys {
		var m Mission
		if err := store.GetJSON(ctx, s.store, key, &m); err != nil {
			s.log.WithError(err).Warnf("skipping mission %s", key)
			continue
		}
		if m.Status == MissionFailed {
			syn.Missions[MissionFailed]++
		} else {
			syn.Missions[MissionCompleted]++
		}
	}
	return nil
}

func (s *Service) countRewards(ctx context.Context, syn *Synergy) error {
	locked, err := s.store.List(ctx, rewardLockedPrefix)
	if err != nil {
		return fmt.Errorf("list locked rewards: %w", err)
	}
	unlocked, err := s.store.List(ctx, rewardUnlockedPrefix)
	if err != nil {
		return fmt.Errorf("list unlocked rewards: %w", err)
	}
	syn.Rewards["locked"] = len(locked)
	syn.Rewards["unlocked"] = len(unlocked)
	return nil
}
