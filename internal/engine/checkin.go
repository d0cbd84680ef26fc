package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"fightclub/internal/rules"
	"fightclub/internal/store"
)

// MilestoneHit records one streak milestone crossed during a check-in.
type MilestoneHit struct {
	Habit   string
	Streak  int
	XPBonus int
}

// CheckinSummary reports what one processed check-in earned.
type CheckinSummary struct {
	Date           string
	XPEarned       int
	Milestones     []MilestoneHit
	PenaltyApplied bool
}

// ProcessDailyCheckin records one day's habit results: streak bookkeeping for
// every habit, per-success XP plus milestone bonuses, and — when any XP was
// earned — the same aggregate XP bonus applied to all three characters.
// A missed-checkin penalty is settled first if one is overdue.
func (s *Service) ProcessDailyCheckin(ctx context.Context, ch Checkin) (*CheckinSummary, error) {
	date, err := time.Parse(DateFormat, ch.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid check-in date %q: %w", ch.Date, err)
	}
	for habit, outcome := range ch.Habits {
		if !outcome.IsValid() {
			return nil, fmt.Errorf("invalid outcome %q for habit %q", outcome, habit)
		}
	}
	if _, err := s.store.Get(ctx, dailyPrefix+ch.Date); err == nil {
		return nil, fmt.Errorf("check-in for %s already recorded", ch.Date)
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	penalized, err := s.ApplyMissedCheckinPenaltyIfDue(ctx, date)
	if err != nil {
		return nil, err
	}

	r := rules.Load(ctx, s.store)
	syn := s.loadSynergy(ctx)
	if syn.DailyProgress.Habits == nil {
		syn.DailyProgress.Habits = map[string]*HabitStreak{}
	}

	summary := &CheckinSummary{Date: ch.Date, PenaltyApplied: penalized}

	// Streak state mutates for every habit even when no XP comes out of it.
	for _, habit := range sortedHabits(ch.Habits) {
		st := syn.DailyProgress.Habits[habit]
		if st == nil {
			st = &HabitStreak{}
			syn.DailyProgress.Habits[habit] = st
		}

		if ch.Habits[habit] == HabitFailed {
			st.Streak = 0
			st.TotalFailure++
			continue
		}

		st.Streak++
		st.TotalSuccess++
		if st.Streak > st.BestStreak {
			st.BestStreak = st.Streak
		}

		perSuccess, ok := r.HabitRewards[habit]
		if !ok {
			s.log.Warnf("habit %q has no configured reward", habit)
		}
		summary.XPEarned += perSuccess

		// A milestone fires exactly when the streak first reaches its
		// length, never retroactively.
		if m, hit := r.MilestoneAt(st.Streak); hit {
			summary.XPEarned += m.XPBonus
			summary.Milestones = append(summary.Milestones, MilestoneHit{
				Habit:   habit,
				Streak:  st.Streak,
				XPBonus: m.XPBonus,
			})
		}
	}

	bumpCheckinStreak(&syn.DailyProgress, ch.Date)

	if err := store.PutJSON(ctx, s.store, dailyPrefix+ch.Date, ch); err != nil {
		return nil, fmt.Errorf("save check-in: %w", err)
	}
	if err := store.PutJSON(ctx, s.store, synergyKey, syn); err != nil {
		return nil, fmt.Errorf("save synergy: %w", err)
	}

	if summary.XPEarned > 0 {
		if err := s.rewardAllCharacters(ctx, r, summary); err != nil {
			return nil, err
		}
	}

	if _, err := s.RecomputeSynergy(ctx); err != nil {
		return nil, err
	}
	return summary, nil
}

// rewardAllCharacters applies the aggregate check-in XP identically to every
// character (not split) and writes the ledger entries. Already-updated
// characters keep their changes if a later one fails.
func (s *Service) rewardAllCharacters(ctx context.Context, r *rules.Rules, summary *CheckinSummary) error {
	for _, p := range AllPersonas() {
		c, err := s.Character(ctx, p)
		if err != nil {
			s.log.WithError(err).Warnf("skipping check-in reward for %s", p)
			continue
		}

		applied := ApplyDelta(c, Delta{XP: summary.XPEarned}, r)
		if err := s.saveCharacter(ctx, p, c); err != nil {
			return err
		}

		if _, err := s.appendHistory(ctx, HistoryEntry{
			Persona: p,
			Event:   EventHabitReward,
			Delta:   applied,
			After:   c.Snapshot(),
			Date:    summary.Date,
		}); err != nil {
			return err
		}

		for _, m := range summary.Milestones {
			if _, err := s.appendHistory(ctx, HistoryEntry{
				Persona: p,
				Event:   EventStreakMilestone,
				Habit:   m.Habit,
				Streak:  m.Streak,
				Delta:   Delta{XP: m.XPBonus},
				After:   c.Snapshot(),
				Date:    summary.Date,
			}); err != nil {
				return err
			}
		}
	}
	return nil
}

// bumpCheckinStreak keeps the consecutive-day counter: the streak continues
// only when the new check-in is for the day after the previous one.
func bumpCheckinStreak(dp *DailyProgress, date string) {
	if dp.LastCheckin != "" {
		last, err := time.Parse(DateFormat, dp.LastCheckin)
		if err == nil {
			cur, _ := time.Parse(DateFormat, date)
			if cur.Sub(last) == 24*time.Hour {
				dp.CheckinStreak++
				dp.TotalCheckins++
				dp.LastCheckin = date
				return
			}
		}
	}
	dp.CheckinStreak = 1
	dp.TotalCheckins++
	dp.LastCheckin = date
}

func sortedHabits(habits map[string]HabitOutcome) []string {
	names := make([]string, 0, len(habits))
	for name := range habits {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
