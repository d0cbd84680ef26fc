package engine

// DateFormat is the calendar-date layout used by every persisted record.
const DateFormat = "2006-01-02"

type XPDetails struct {
	CurrentXP int  `json:"current_xp"`
	XPToNext  *int `json:"xp_to_next_level"`
}

type HealthDetails struct {
	CurrentHealth int `json:"current_health"`
	MaxHealth     int `json:"max_health"`
}

type EnergyDetails struct {
	CurrentEnergy int `json:"current_energy"`
	MaxEnergy     int `json:"max_energy"`
}

// Character is one persona's persisted record. It is mutated exclusively by
// ApplyDelta (growth) and the missed-checkin penalty (clamped decreases).
type Character struct {
	Name      string         `json:"name"`
	Role      string         `json:"role"`
	Level     int            `json:"level"`
	Title     string         `json:"title"`
	XP        XPDetails      `json:"xp_details"`
	Health    HealthDetails  `json:"health_details"`
	Energy    EnergyDetails  `json:"energy_details"`
	Abilities map[string]int `json:"abilities"`
}

// Snapshot is the post-change state recorded on every history entry.
type Snapshot struct {
	Level     int            `json:"level"`
	Title     string         `json:"title"`
	XP        int            `json:"xp"`
	Health    int            `json:"health"`
	Energy    int            `json:"energy"`
	Abilities map[string]int `json:"abilities"`
}

func (c *Character) Snapshot() Snapshot {
	abilities := make(map[string]int, len(c.Abilities))
	for k, v := range c.Abilities {
		abilities[k] = v
	}
	return Snapshot{
		Level:     c.Level,
		Title:     c.Title,
		XP:        c.XP.CurrentXP,
		Health:    c.Health.CurrentHealth,
		Energy:    c.Energy.CurrentEnergy,
		Abilities: abilities,
	}
}

// Delta is a signed stat-change bundle: either the change a caller requests
// or the change ApplyDelta actually performed after overflow handling.
type Delta struct {
	XP        int            `json:"xp"`
	Health    int            `json:"health"`
	Energy    int            `json:"energy"`
	Abilities map[string]int `json:"abilities"`
}

func (d Delta) IsZero() bool {
	if d.XP != 0 || d.Health != 0 || d.Energy != 0 {
		return false
	}
	for _, v := range d.Abilities {
		if v != 0 {
			return false
		}
	}
	return true
}

type EventType string

const (
	EventMissionCompleted EventType = "mission-completed"
	EventMissionFailed    EventType = "mission-failed"
	EventHabitReward      EventType = "habit-reward"
	EventStreakMilestone  EventType = "streak-milestone"
	EventMissedCheckin    EventType = "missed-checkin-penalty"
)

// HistoryEntry is one immutable row of the audit ledger. Index is globally
// strictly increasing across all event types.
type HistoryEntry struct {
	Index           int       `json:"history_index"`
	Persona         Persona   `json:"alter_ego"`
	Event           EventType `json:"event"`
	Mission         string    `json:"mission_associated,omitempty"`
	Habit           string    `json:"habit,omitempty"`
	Streak          int       `json:"streak,omitempty"`
	DaysMissed      int       `json:"days_missed,omitempty"`
	RewardsUnlocked []string  `json:"rewards_unlocked,omitempty"`
	Delta           Delta     `json:"delta_changed"`
	After           Snapshot  `json:"state_after_delta_applied"`
	Date            string    `json:"date"`
}

type MissionStatus string

const (
	MissionNotStarted MissionStatus = "not-started"
	MissionInProgress MissionStatus = "in-progress"
	MissionCompleted  MissionStatus = "completed"
	MissionFailed     MissionStatus = "failed"
)

type Progress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// StatChange holds the two delta bundles a mission can fire.
type StatChange struct {
	OnComplete Delta `json:"on_complete"`
	OnFailure  Delta `json:"on_failure"`
}

type RewardRef struct {
	Type  string `json:"reward_type"`
	Title string `json:"title"`
	ID    string `json:"reward_id"`
}

type Mission struct {
	Archetype      Persona       `json:"archetype"`
	Code           string        `json:"mission_code"`
	Title          string        `json:"title"`
	Description    string        `json:"description"`
	Difficulty     string        `json:"difficulty"`
	Status         MissionStatus `json:"status"`
	Progress       Progress      `json:"progress"`
	StatChange     StatChange    `json:"archetype_stat_change"`
	Rewards        []RewardRef   `json:"reward"`
	Icon           string        `json:"mission_icon,omitempty"`
	DueDate        string        `json:"due_date,omitempty"`
	StartDate      string        `json:"start_date,omitempty"`
	CompletionDate string        `json:"completion_date,omitempty"`
}

type Reward struct {
	ID          string   `json:"reward_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	MissionIDs  []string `json:"associated_mission_ids"`
	Type        string   `json:"reward_type"`
	Locked      bool     `json:"is_locked"`
	BadgeIcon   string   `json:"badge_icon,omitempty"`
}

type HabitOutcome string

const (
	HabitSuccess HabitOutcome = "success"
	HabitFailed  HabitOutcome = "failed"
)

func (o HabitOutcome) IsValid() bool {
	return o == HabitSuccess || o == HabitFailed
}

// Checkin is one day's recorded habit results. Mood and sleep are carried
// along untouched; only Habits feeds the stat engine.
type Checkin struct {
	Date       string                  `json:"date"`
	Mood       string                  `json:"mood,omitempty"`
	SleepHours float64                 `json:"sleep_hours,omitempty"`
	Habits     map[string]HabitOutcome `json:"habits"`
}

// HabitStreak is the per-habit counter block inside the synergy record.
type HabitStreak struct {
	Streak       int `json:"streak"`
	BestStreak   int `json:"best_streak"`
	TotalSuccess int `json:"total_success"`
	TotalFailure int `json:"total_failure"`
}

// DailyProgress is the check-in aggregate. Unlike the rest of the synergy
// record it is updated in place, not recomputed.
type DailyProgress struct {
	LastCheckin   string                  `json:"last_checkin,omitempty"`
	CheckinStreak int                     `json:"checkin_streak"`
	TotalCheckins int                     `json:"total_checkins"`
	Habits        map[string]*HabitStreak `json:"habits,omitempty"`
}

// Synergy is the derived cross-character summary, recomputed wholesale on
// every stat-affecting event except for DailyProgress.
type Synergy struct {
	TotalXP       int                   `json:"total_xp"`
	Level         int                   `json:"level"`
	Chapter       string                `json:"chapter"`
	Description   string                `json:"description"`
	XPToNext      *int                  `json:"xp_to_next_level"`
	Categories    map[string]float64    `json:"categories"`
	TotalSynergy  float64               `json:"total_synergy"`
	Missions      map[MissionStatus]int `json:"missions"`
	Rewards       map[string]int        `json:"rewards"`
	DailyProgress DailyProgress         `json:"daily_progress"`
}
