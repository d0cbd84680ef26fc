package engine

import (
	"context"
	"testing"

	"fightclub/internal/store"
)

// primeCheckins marks yesterday as checked in so the opportunistic penalty
// stays out of the way, and installs any prior streak state.
func primeCheckins(t *testing.T, svc *Service, lastDate string, habits map[string]*HabitStreak) {
	t.Helper()
	syn := &Synergy{DailyProgress: DailyProgress{
		LastCheckin:   lastDate,
		CheckinStreak: 1,
		TotalCheckins: 1,
		Habits:        habits,
	}}
	if err := store.PutJSON(context.Background(), svc.Store(), synergyKey, syn); err != nil {
		t.Fatalf("put synergy: %v", err)
	}
}

func TestCheckinMilestoneBonus(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	primeCheckins(t, svc, "2026-08-30", map[string]*HabitStreak{
		"workout": {Streak: 4, BestStreak: 4, TotalSuccess: 4},
	})

	summary, err := svc.ProcessDailyCheckin(ctx, Checkin{
		Date:   "2026-08-31",
		Habits: map[string]HabitOutcome{"workout": HabitSuccess},
	})
	if err != nil {
		t.Fatalf("checkin: %v", err)
	}

	// 10 per success + 20 for the streak-5 milestone.
	if summary.XPEarned != 30 {
		t.Fatalf("xp earned=%d, want 30", summary.XPEarned)
	}
	if len(summary.Milestones) != 1 || summary.Milestones[0].Streak != 5 || summary.Milestones[0].XPBonus != 20 {
		t.Fatalf("milestones=%+v, want one hit at streak 5 for 20", summary.Milestones)
	}
	if summary.PenaltyApplied {
		t.Fatalf("penalty applied, want none")
	}

	// The same aggregate lands on all three characters.
	chars := svc.Characters(ctx)
	if len(chars) != 3 {
		t.Fatalf("characters=%d, want 3", len(chars))
	}
	for _, c := range chars {
		if c.XP.CurrentXP != 30 {
			t.Fatalf("%s xp=%d, want 30", c.Name, c.XP.CurrentXP)
		}
	}

	syn := svc.Synergy(ctx)
	st := syn.DailyProgress.Habits["workout"]
	if st.Streak != 5 || st.BestStreak != 5 || st.TotalSuccess != 5 {
		t.Fatalf("streak state=%+v, want 5/5/5", st)
	}
	if syn.TotalXP != 90 {
		t.Fatalf("synergy total xp=%d, want 90", syn.TotalXP)
	}
}

func TestCheckinMilestoneFiresOnlyOnTransition(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	primeCheckins(t, svc, "2026-08-30", map[string]*HabitStreak{
		"workout": {Streak: 5, BestStreak: 5, TotalSuccess: 5},
	})

	summary, err := svc.ProcessDailyCheckin(ctx, Checkin{
		Date:   "2026-08-31",
		Habits: map[string]HabitOutcome{"workout": HabitSuccess},
	})
	if err != nil {
		t.Fatalf("checkin: %v", err)
	}
	if summary.XPEarned != 10 {
		t.Fatalf("xp earned=%d, want 10 (no milestone at streak 6)", summary.XPEarned)
	}
	if len(summary.Milestones) != 0 {
		t.Fatalf("milestones=%+v, want none", summary.Milestones)
	}
}

func TestCheckinFailureResetsStreak(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	primeCheckins(t, svc, "2026-08-30", map[string]*HabitStreak{
		"workout": {Streak: 7, BestStreak: 9, TotalSuccess: 12, TotalFailure: 2},
	})

	summary, err := svc.ProcessDailyCheckin(ctx, Checkin{
		Date:   "2026-08-31",
		Habits: map[string]HabitOutcome{"workout": HabitFailed},
	})
	if err != nil {
		t.Fatalf("checkin: %v", err)
	}
	if summary.XPEarned != 0 {
		t.Fatalf("xp earned=%d, want 0", summary.XPEarned)
	}

	st := svc.Synergy(ctx).DailyProgress.Habits["workout"]
	if st.Streak != 0 || st.BestStreak != 9 || st.TotalFailure != 3 {
		t.Fatalf("streak state=%+v, want streak 0 best 9 failures 3", st)
	}

	// No XP earned, so no character was touched and nothing hit the ledger.
	for _, c := range svc.Characters(ctx) {
		if c.XP.CurrentXP != 0 {
			t.Fatalf("%s xp=%d, want 0", c.Name, c.XP.CurrentXP)
		}
	}
	if entries := svc.History(ctx); len(entries) != 0 {
		t.Fatalf("history=%d entries, want 0", len(entries))
	}
}

func TestCheckinStreakCounter(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	primeCheckins(t, svc, "2026-08-30", nil)

	if _, err := svc.ProcessDailyCheckin(ctx, Checkin{
		Date:   "2026-08-31",
		Habits: map[string]HabitOutcome{"reading": HabitSuccess},
	}); err != nil {
		t.Fatalf("checkin day 2: %v", err)
	}
	dp := svc.Synergy(ctx).DailyProgress
	if dp.CheckinStreak != 2 || dp.TotalCheckins != 2 || dp.LastCheckin != "2026-08-31" {
		t.Fatalf("daily progress=%+v, want streak 2 total 2", dp)
	}

	// A gap resets the check-in streak but keeps the total.
	if _, err := svc.ProcessDailyCheckin(ctx, Checkin{
		Date:   "2026-09-02",
		Habits: map[string]HabitOutcome{"reading": HabitSuccess},
	}); err != nil {
		t.Fatalf("checkin after gap: %v", err)
	}
	dp = svc.Synergy(ctx).DailyProgress
	if dp.CheckinStreak != 1 || dp.TotalCheckins != 3 {
		t.Fatalf("daily progress=%+v, want streak 1 total 3", dp)
	}
}

func TestCheckinRejectsDuplicateDate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	primeCheckins(t, svc, "2026-08-30", nil)

	ch := Checkin{Date: "2026-08-31", Habits: map[string]HabitOutcome{"reading": HabitSuccess}}
	if _, err := svc.ProcessDailyCheckin(ctx, ch); err != nil {
		t.Fatalf("first checkin: %v", err)
	}
	if _, err := svc.ProcessDailyCheckin(ctx, ch); err == nil {
		t.Fatalf("expected error for duplicate check-in date")
	}
}

func TestCheckinRejectsBadInput(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, err := svc.ProcessDailyCheckin(ctx, Checkin{
		Date:   "31-08-2026",
		Habits: map[string]HabitOutcome{"reading": HabitSuccess},
	}); err == nil {
		t.Fatalf("expected error for malformed date")
	}

	if _, err := svc.ProcessDailyCheckin(ctx, Checkin{
		Date:   "2026-08-31",
		Habits: map[string]HabitOutcome{"reading": "skipped"},
	}); err == nil {
		t.Fatalf("expected error for invalid outcome")
	}
}

func TestCheckinAppliesOverduePenaltyFirst(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	primeCheckins(t, svc, "2026-08-20", nil)

	summary, err := svc.ProcessDailyCheckin(ctx, Checkin{
		Date:   "2026-08-31",
		Habits: map[string]HabitOutcome{"workout": HabitSuccess},
	})
	if err != nil {
		t.Fatalf("checkin: %v", err)
	}
	if !summary.PenaltyApplied {
		t.Fatalf("expected overdue penalty before processing the check-in")
	}

	entries := svc.History(ctx)
	// 3 penalty entries then 3 habit-reward entries.
	if len(entries) != 6 {
		t.Fatalf("history=%d entries, want 6", len(entries))
	}
	if entries[0].Event != EventMissedCheckin || entries[5].Event != EventHabitReward {
		t.Fatalf("event order=%s..%s, want penalty first", entries[0].Event, entries[5].Event)
	}
}
