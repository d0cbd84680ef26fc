package rules

import (
	"context"
	"testing"

	"fightclub/internal/store"
)

func TestLoadMissingFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	r := Load(ctx, store.NewMemStore())
	if r.Overflow.ResetPercent != 20 || r.Overflow.Bonus != 10 {
		t.Fatalf("overflow defaults=%+v", r.Overflow)
	}
	if r.MissedCheckin.ThresholdDays != 3 {
		t.Fatalf("threshold=%d, want 3", r.MissedCheckin.ThresholdDays)
	}
	if _, ok := r.Levels.At(1); !ok {
		t.Fatalf("default ladder has no level 1")
	}
}

func TestLoadMalformedFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()
	if err := s.Put(ctx, Key, []byte("{broken")); err != nil {
		t.Fatalf("put: %v", err)
	}
	r := Load(ctx, s)
	if r.Overflow.ResetPercent != 20 {
		t.Fatalf("expected defaults for malformed rules, got %+v", r.Overflow)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemStore()

	in := Defaults()
	in.Overflow.ResetPercent = 25
	in.HabitRewards["stretching"] = 3
	if err := Save(ctx, s, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out := Load(ctx, s)
	if out.Overflow.ResetPercent != 25 {
		t.Fatalf("reset percent=%d, want 25", out.Overflow.ResetPercent)
	}
	if out.HabitRewards["stretching"] != 3 {
		t.Fatalf("habit reward=%d, want 3", out.HabitRewards["stretching"])
	}

	lvl2, ok := out.Levels.At(2)
	if !ok || lvl2.XPToNext == nil || *lvl2.XPToNext != 250 {
		t.Fatalf("level 2=%+v ok=%v", lvl2, ok)
	}
	top, ok := out.Levels.At(10)
	if !ok || top.XPToNext != nil {
		t.Fatalf("top level should have no next threshold: %+v ok=%v", top, ok)
	}
}

func TestMilestoneAt(t *testing.T) {
	r := Defaults()
	if m, ok := r.MilestoneAt(5); !ok || m.XPBonus != 20 {
		t.Fatalf("milestone 5=%+v ok=%v", m, ok)
	}
	if _, ok := r.MilestoneAt(6); ok {
		t.Fatalf("milestone 6 should not exist")
	}
}
