package rules

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"

	"fightclub/internal/store"
)

// Key is the document the rules live under.
const Key = "rules/xp"

// LevelRule is one rung of a progression ladder. XPToNext is nil at the top
// rung: there is no further level to reach.
type LevelRule struct {
	XPToNext *int   `json:"xp_to_next_level"`
	Title    string `json:"title,omitempty"`
	Chapter  string `json:"chapter,omitempty"`
	Desc     string `json:"description,omitempty"`
}

// Ladder maps a level (as a decimal string, matching the stored JSON) to its
// rule. A missing rung means "no further level-up" rather than an error.
type Ladder map[string]LevelRule

// At returns the rule for a level, or ok=false when the ladder has no rung
// for it.
func (l Ladder) At(level int) (LevelRule, bool) {
	r, ok := l[strconv.Itoa(level)]
	return r, ok
}

// Overflow describes what happens when health or energy reaches its max:
// the stat is reset to ResetPercent of max and Bonus is added to the other.
type Overflow struct {
	ResetPercent int `json:"overflow_reset_percentage"`
	Bonus        int `json:"overflow_bonus_to_other_stat"`
}

// Milestone is a one-time bonus granted when a habit streak first reaches
// the configured length.
type Milestone struct {
	XPBonus int `json:"xp_bonus"`
}

// MissedCheckin is the penalty applied to every character once the number of
// days without a check-in reaches ThresholdDays. Stat amounts are negative;
// AbilityPercent is the per-ability proportional loss (minimum 1 point).
type MissedCheckin struct {
	ThresholdDays  int `json:"threshold_days"`
	XP             int `json:"xp"`
	Health         int `json:"health"`
	Energy         int `json:"energy"`
	AbilityPercent int `json:"ability_percent"`
}

type Rules struct {
	Levels        Ladder               `json:"levels"`
	Overflow      Overflow             `json:"health_energy_overflow"`
	HabitRewards  map[string]int       `json:"habit_rewards"`
	Milestones    map[string]Milestone `json:"streak_milestones"`
	MissedCheckin MissedCheckin        `json:"missed_checkin"`
	SynergyLevels Ladder               `json:"synergy_levels"`
}

// MilestoneAt returns the bonus for a streak length, if one is configured.
func (r *Rules) MilestoneAt(streak int) (Milestone, bool) {
	m, ok := r.Milestones[strconv.Itoa(streak)]
	return m, ok
}

// Load re-reads the rules document. A missing or malformed document degrades
// to Defaults with a warning; rules are never a reason to abort an operation.
func Load(ctx context.Context, s store.Store) *Rules {
	var r Rules
	if err := store.GetJSON(ctx, s, Key, &r); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logrus.WithError(err).Warnf("rules document %s is unreadable, using defaults", Key)
		}
		return Defaults()
	}
	if r.Overflow.ResetPercent == 0 {
		r.Overflow.ResetPercent = defaultOverflowResetPercent
	}
	if r.Overflow.Bonus == 0 {
		r.Overflow.Bonus = defaultOverflowBonus
	}
	if r.MissedCheckin.ThresholdDays == 0 {
		r.MissedCheckin.ThresholdDays = defaultPenaltyThresholdDays
	}
	return &r
}

// Save writes the rules document.
func Save(ctx context.Context, s store.Store, r *Rules) error {
	if err := store.PutJSON(ctx, s, Key, r); err != nil {
		return fmt.Errorf("save rules: %w", err)
	}
	return nil
}

const (
	defaultOverflowResetPercent = 20
	defaultOverflowBonus        = 10
	defaultPenaltyThresholdDays = 3
)

func intPtr(v int) *int { return &v }

// Defaults returns the built-in rules, also used as seed data.
func Defaults() *Rules {
	return &Rules{
		Levels: Ladder{
			"1":  {XPToNext: intPtr(100), Title: "Novice"},
			"2":  {XPToNext: intPtr(250), Title: "Adept"},
			"3":  {XPToNext: intPtr(450), Title: "Disciple"},
			"4":  {XPToNext: intPtr(700), Title: "Operative"},
			"5":  {XPToNext: intPtr(1000), Title: "Veteran"},
			"6":  {XPToNext: intPtr(1400), Title: "Elite"},
			"7":  {XPToNext: intPtr(1900), Title: "Master"},
			"8":  {XPToNext: intPtr(2500), Title: "Grandmaster"},
			"9":  {XPToNext: intPtr(3200), Title: "Legend"},
			"10": {Title: "Apex"},
		},
		Overflow: Overflow{
			ResetPercent: defaultOverflowResetPercent,
			Bonus:        defaultOverflowBonus,
		},
		HabitRewards: map[string]int{
			"workout":    10,
			"meditation": 10,
			"reading":    5,
			"deep-work":  15,
			"no-junk":    5,
		},
		Milestones: map[string]Milestone{
			"5":   {XPBonus: 20},
			"10":  {XPBonus: 50},
			"30":  {XPBonus: 150},
			"100": {XPBonus: 500},
		},
		MissedCheckin: MissedCheckin{
			ThresholdDays:  defaultPenaltyThresholdDays,
			XP:             -20,
			Health:         -10,
			Energy:         -10,
			AbilityPercent: -2,
		},
		SynergyLevels: Ladder{
			"1": {XPToNext: intPtr(300), Chapter: "Chapter I", Desc: "Three strangers sharing one body."},
			"2": {XPToNext: intPtr(750), Chapter: "Chapter II", Desc: "An uneasy truce takes hold."},
			"3": {XPToNext: intPtr(1350), Chapter: "Chapter III", Desc: "The egos begin to move as one."},
			"4": {XPToNext: intPtr(2100), Chapter: "Chapter IV", Desc: "One will, three weapons."},
			"5": {Chapter: "Chapter V", Desc: "The project is finished. You are free."},
		},
	}
}
