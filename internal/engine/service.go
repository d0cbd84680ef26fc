package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"fightclub/internal/store"
)

// Document key layout. Missions and rewards move between prefixes as their
// state changes, matching the reference folder layout.
const (
	characterPrefix      = "alter-egos/"
	missionActivePrefix  = "missions/active/"
	missionArchivePrefix = "missions/archive/"
	rewardLockedPrefix   = "rewards/locked/"
	rewardUnlockedPrefix = "rewards/unlocked/"
	dailyPrefix          = "daily/"
	historyKey           = "history"
	synergyKey           = "synergy"
)

func characterKey(p Persona) string {
	return characterPrefix + string(p)
}

// Service is the stat-progression engine. All state lives in the record
// store; rules are re-read on every operation so edits to the rules document
// take effect immediately.
type Service struct {
	store store.Store
	log   logrus.FieldLogger
}

func NewService(st store.Store) *Service {
	return &Service{
		store: st,
		log:   logrus.StandardLogger(),
	}
}

func (s *Service) Store() store.Store { return s.store }

// Character loads one persona's record.
func (s *Service) Character(ctx context.Context, p Persona) (*Character, error) {
	if !p.IsValid() {
		return nil, UnknownPersonaError{Input: string(p)}
	}
	var c Character
	if err := store.GetJSON(ctx, s.store, characterKey(p), &c); err != nil {
		return nil, fmt.Errorf("load character %s: %w", p, err)
	}
	return &c, nil
}

// Characters loads the whole roster. Missing or malformed records are
// skipped with a warning; a multi-character pass never aborts because one
// persona's record is broken.
func (s *Service) Characters(ctx context.Context) map[Persona]*Character {
	out := make(map[Persona]*Character, 3)
	for _, p := range AllPersonas() {
		c, err := s.Character(ctx, p)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				s.log.WithError(err).Warnf("skipping character %s", p)
			} else {
				s.log.Warnf("character %s has no record, skipping", p)
			}
			continue
		}
		out[p] = c
	}
	return out
}

func (s *Service) saveCharacter(ctx context.Context, p Persona, c *Character) error {
	if err := store.PutJSON(ctx, s.store, characterKey(p), c); err != nil {
		return fmt.Errorf("save character %s: %w", p, err)
	}
	return nil
}
