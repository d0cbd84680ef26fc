package engine

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"fightclub/internal/rules"
	"fightclub/internal/store"
)

// MissionRecord pairs a mission with the store key it lives under.
type MissionRecord struct {
	Key     string
	Mission Mission
}

type CreateMissionInput struct {
	Archetype   Persona
	Title       string
	Description string
	Difficulty  string
	Total       int
	StartDate   string
	DueDate     string
	OnComplete  Delta
	OnFailure   Delta
	Rewards     []RewardRef
}

// MissionOutcome is the terminal state a mission is settled with.
type MissionOutcome string

const (
	OutcomeCompleted MissionOutcome = "completed"
	OutcomeFailed    MissionOutcome = "failed"
)

// MissionResult reports one settled mission: the stat change actually
// applied, the ledger entry written, and any rewards unlocked.
type MissionResult struct {
	Mission         Mission
	Character       *Character
	DeltaApplied    Delta
	HistoryEntry    HistoryEntry
	RewardsUnlocked []string
}

var missionCodeRe = regexp.MustCompile(`^([KMT])(\d+)-`)

// nextMissionCode scans all mission keys (active and archived) carrying the
// persona's prefix and returns prefix + (max number + 1), zero padded.
func (s *Service) nextMissionCode(ctx context.Context, p Persona) (string, error) {
	maxNum := 0
	for _, prefix := range []string{missionActivePrefix, missionArchivePrefix} {
		keys, err := s.store.List(ctx, prefix)
		if err != nil {
			return "", fmt.Errorf("list missions: %w", err)
		}
		for _, key := range keys {
			base := key[len(prefix):]
			m := missionCodeRe.FindStringSubmatch(base)
			if m == nil || m[1] != p.Info().Prefix {
				continue
			}
			n, err := strconv.Atoi(m[2])
			if err != nil {
				continue
			}
			if n > maxNum {
				maxNum = n
			}
		}
	}
	return fmt.Sprintf("%s%02d", p.Info().Prefix, maxNum+1), nil
}

// slugify turns a title into its lowercase hyphenated key form.
func slugify(title string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(title)), " ", "-")
}

func missionKey(prefix string, m *Mission) string {
	return prefix + m.Code + "-" + slugify(m.Title)
}

// CreateMission validates input at the boundary and stores a new mission in
// the active set.
func (s *Service) CreateMission(ctx context.Context, in CreateMissionInput) (*MissionRecord, error) {
	if !in.Archetype.IsValid() {
		return nil, UnknownPersonaError{Input: string(in.Archetype)}
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, errors.New("mission title is required")
	}
	if in.Total < 1 {
		return nil, fmt.Errorf("mission total must be at least 1, got %d", in.Total)
	}
	for _, d := range []string{in.StartDate, in.DueDate} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(DateFormat, d); err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", d, err)
		}
	}

	code, err := s.nextMissionCode(ctx, in.Archetype)
	if err != nil {
		return nil, err
	}

	m := Mission{
		Archetype:   in.Archetype,
		Code:        code,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Difficulty:  in.Difficulty,
		Status:      MissionNotStarted,
		Progress:    Progress{Current: 0, Total: in.Total},
		StatChange:  StatChange{OnComplete: in.OnComplete, OnFailure: in.OnFailure},
		Rewards:     in.Rewards,
		StartDate:   in.StartDate,
		DueDate:     in.DueDate,
	}

	key := missionKey(missionActivePrefix, &m)
	if err := store.PutJSON(ctx, s.store, key, m); err != nil {
		return nil, fmt.Errorf("save mission: %w", err)
	}
	return &MissionRecord{Key: key, Mission: m}, nil
}

// ListMissions returns the active or archived missions in key order.
// Unreadable records are skipped with a warning.
func (s *Service) ListMissions(ctx context.Context, archived bool) ([]MissionRecord, error) {
	prefix := missionActivePrefix
	if archived {
		prefix = missionArchivePrefix
	}
	keys, err := s.store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list missions: %w", err)
	}

	var out []MissionRecord
	for _, key := range keys {
		var m Mission
		if err := store.GetJSON(ctx, s.store, key, &m); err != nil {
			s.log.WithError(err).Warnf("skipping mission %s", key)
			continue
		}
		out = append(out, MissionRecord{Key: key, Mission: m})
	}
	return out, nil
}

// UpdateMissionProgress sets an active mission's progress counter and
// derives its status. Reaching the total does not settle the mission;
// ApplyMissionOutcome does that.
func (s *Service) UpdateMissionProgress(ctx context.Context, key string, current int) (*MissionRecord, error) {
	var m Mission
	if err := store.GetJSON(ctx, s.store, key, &m); err != nil {
		return nil, fmt.Errorf("load mission: %w", err)
	}
	if current < 0 || current > m.Progress.Total {
		return nil, fmt.Errorf("progress must be between 0 and %d, got %d", m.Progress.Total, current)
	}

	m.Progress.Current = current
	if current == 0 {
		m.Status = MissionNotStarted
	} else {
		m.Status = MissionInProgress
	}

	if err := store.PutJSON(ctx, s.store, key, m); err != nil {
		return nil, fmt.Errorf("save mission: %w", err)
	}
	return &MissionRecord{Key: key, Mission: m}, nil
}

// DeleteMission removes a mission record.
func (s *Service) DeleteMission(ctx context.Context, key string) error {
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete mission: %w", err)
	}
	return nil
}

// ApplyMissionOutcome settles an active mission: status and completion date,
// reward unlocks (completion only), the outcome's stat change through the
// stat engine, a ledger entry, the move to the archive set, and a synergy
// recompute.
func (s *Service) ApplyMissionOutcome(ctx context.Context, key string, outcome MissionOutcome) (*MissionResult, error) {
	if outcome != OutcomeCompleted && outcome != OutcomeFailed {
		return nil, fmt.Errorf("invalid mission outcome %q", outcome)
	}
	if !strings.HasPrefix(key, missionActivePrefix) {
		return nil, fmt.Errorf("mission %s is not in the active set", key)
	}

	var m Mission
	if err := store.GetJSON(ctx, s.store, key, &m); err != nil {
		return nil, fmt.Errorf("load mission: %w", err)
	}

	today := time.Now().UTC().Format(DateFormat)
	m.CompletionDate = today

	var (
		bundle Delta
		event  EventType
	)
	var unlocked []string
	if outcome == OutcomeCompleted {
		m.Status = MissionCompleted
		m.Progress.Current = m.Progress.Total
		bundle = m.StatChange.OnComplete
		event = EventMissionCompleted

		var err error
		unlocked, err = s.unlockRewardsFor(ctx, &m)
		if err != nil {
			return nil, err
		}
	} else {
		m.Status = MissionFailed
		bundle = m.StatChange.OnFailure
		event = EventMissionFailed
	}

	r := rules.Load(ctx, s.store)
	c, err := s.Character(ctx, m.Archetype)
	if err != nil {
		return nil, err
	}

	applied := ApplyDelta(c, bundle, r)
	if err := s.saveCharacter(ctx, m.Archetype, c); err != nil {
		return nil, err
	}

	entry, err := s.appendHistory(ctx, HistoryEntry{
		Persona:         m.Archetype,
		Event:           event,
		Mission:         m.Code + "-" + slugify(m.Title),
		RewardsUnlocked: unlocked,
		Delta:           applied,
		After:           c.Snapshot(),
		Date:            today,
	})
	if err != nil {
		return nil, err
	}

	// Move the record from the active set to the archive.
	if err := store.PutJSON(ctx, s.store, missionKey(missionArchivePrefix, &m), m); err != nil {
		return nil, fmt.Errorf("archive mission: %w", err)
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return nil, fmt.Errorf("remove active mission: %w", err)
	}

	if _, err := s.RecomputeSynergy(ctx); err != nil {
		return nil, err
	}

	return &MissionResult{
		Mission:         m,
		Character:       c,
		DeltaApplied:    applied,
		HistoryEntry:    entry,
		RewardsUnlocked: unlocked,
	}, nil
}
