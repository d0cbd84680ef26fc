package engine

import (
	"context"
	"reflect"
	"testing"

	"fightclub/internal/store"
)

func TestSynergyCategories(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	syn, err := svc.RecomputeSynergy(ctx)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}

	// Seeded characters have every ability at 5, one category per persona.
	want := map[string]float64{"serenity": 5, "intellect": 5, "ferocity": 5}
	if !reflect.DeepEqual(syn.Categories, want) {
		t.Fatalf("categories=%v, want %v", syn.Categories, want)
	}
	if syn.TotalSynergy != 15 {
		t.Fatalf("total synergy=%v, want 15", syn.TotalSynergy)
	}
	if syn.TotalXP != 0 || syn.Level != 1 {
		t.Fatalf("total xp=%d level=%d, want 0 and 1", syn.TotalXP, syn.Level)
	}
	if syn.Chapter != "Chapter I" {
		t.Fatalf("chapter=%q, want Chapter I", syn.Chapter)
	}
}

func TestSynergyRounding(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Give Kei an uneven ability spread: mean 41/8 = 5.125 -> 5.13.
	c, err := svc.Character(ctx, PersonaKei)
	if err != nil {
		t.Fatalf("character: %v", err)
	}
	c.Abilities["focus"] = 6
	if err := svc.saveCharacter(ctx, PersonaKei, c); err != nil {
		t.Fatalf("save: %v", err)
	}

	syn, err := svc.RecomputeSynergy(ctx)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if syn.Categories["serenity"] != 5.13 {
		t.Fatalf("serenity=%v, want 5.13", syn.Categories["serenity"])
	}
	if syn.TotalSynergy != 15.13 {
		t.Fatalf("total synergy=%v, want 15.13", syn.TotalSynergy)
	}
}

func TestSynergyLadderCascade(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// 420 XP total walks past the 300-XP first rung of the synergy ladder.
	c, err := svc.Character(ctx, PersonaTyler)
	if err != nil {
		t.Fatalf("character: %v", err)
	}
	c.XP.CurrentXP = 420
	if err := svc.saveCharacter(ctx, PersonaTyler, c); err != nil {
		t.Fatalf("save: %v", err)
	}

	syn, err := svc.RecomputeSynergy(ctx)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if syn.Level != 2 {
		t.Fatalf("level=%d, want 2", syn.Level)
	}
	if syn.Chapter != "Chapter II" {
		t.Fatalf("chapter=%q, want Chapter II", syn.Chapter)
	}
	if syn.XPToNext == nil || *syn.XPToNext != 750 {
		t.Fatalf("xp_to_next=%v, want 750", syn.XPToNext)
	}
}

func TestSynergyMissionCountDefaults(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Legacy records without a status field: active defaults to
	// not-started, archived defaults to completed.
	put := func(key string, m Mission) {
		t.Helper()
		if err := store.PutJSON(ctx, svc.Store(), key, m); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	put("missions/active/K01-meditate", Mission{Archetype: PersonaKei, Code: "K01"})
	put("missions/active/T01-lift", Mission{Archetype: PersonaTyler, Code: "T01", Status: MissionInProgress})
	put("missions/archive/M01-build", Mission{Archetype: PersonaMrRobot, Code: "M01"})
	put("missions/archive/M02-ship", Mission{Archetype: PersonaMrRobot, Code: "M02", Status: MissionFailed})
	put("missions/archive/M03-refactor", Mission{Archetype: PersonaMrRobot, Code: "M03", Status: MissionInProgress})

	syn, err := svc.RecomputeSynergy(ctx)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}

	want := map[MissionStatus]int{
		MissionNotStarted: 1,
		MissionInProgress: 1,
		MissionCompleted:  2, // archived records count as completed unless explicitly failed
		MissionFailed:     1,
	}
	if !reflect.DeepEqual(syn.Missions, want) {
		t.Fatalf("mission counts=%v, want %v", syn.Missions, want)
	}
}

func TestSynergyIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	c, err := svc.Character(ctx, PersonaMrRobot)
	if err != nil {
		t.Fatalf("character: %v", err)
	}
	c.XP.CurrentXP = 77
	if err := svc.saveCharacter(ctx, PersonaMrRobot, c); err != nil {
		t.Fatalf("save: %v", err)
	}

	first, err := svc.RecomputeSynergy(ctx)
	if err != nil {
		t.Fatalf("first recompute: %v", err)
	}
	second, err := svc.RecomputeSynergy(ctx)
	if err != nil {
		t.Fatalf("second recompute: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("recompute not idempotent:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestSynergyPreservesDailyProgress(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	dp := DailyProgress{
		LastCheckin:   "2026-08-30",
		CheckinStreak: 4,
		TotalCheckins: 12,
		Habits:        map[string]*HabitStreak{"workout": {Streak: 4, BestStreak: 6, TotalSuccess: 10, TotalFailure: 2}},
	}
	if err := store.PutJSON(ctx, svc.Store(), synergyKey, &Synergy{DailyProgress: dp}); err != nil {
		t.Fatalf("put synergy: %v", err)
	}

	syn, err := svc.RecomputeSynergy(ctx)
	if err != nil {
		t.Fatalf("recompute: %v", err)
	}
	if !reflect.DeepEqual(syn.DailyProgress, dp) {
		t.Fatalf("daily progress=%+v, want carried through %+v", syn.DailyProgress, dp)
	}
}
