package engine

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"fightclub/internal/store"
)

// RewardType is the cosmetic tier of a reward.
type RewardType string

const (
	RewardStreet    RewardType = "street"
	RewardVanguard  RewardType = "vanguard"
	RewardLegendary RewardType = "legendary"
	RewardApex      RewardType = "apex"
	RewardMythic    RewardType = "mythic"
)

func (t RewardType) IsValid() bool {
	switch t {
	case RewardStreet, RewardVanguard, RewardLegendary, RewardApex, RewardMythic:
		return true
	default:
		return false
	}
}

// RewardRecord pairs a reward with the store key it lives under.
type RewardRecord struct {
	Key    string
	Reward Reward
}

var rewardIDRe = regexp.MustCompile(`^R(\d+)-`)

func (s *Service) nextRewardID(ctx context.Context) (string, error) {
	maxNum := 0
	for _, prefix := range []string{rewardLockedPrefix, rewardUnlockedPrefix} {
		keys, err := s.store.List(ctx, prefix)
		if err != nil {
			return "", fmt.Errorf("list rewards: %w", err)
		}
		for _, key := range keys {
			m := rewardIDRe.FindStringSubmatch(key[len(prefix):])
			if m == nil {
				continue
			}
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if n > maxNum {
				maxNum = n
			}
		}
	}
	return fmt.Sprintf("R%02d", maxNum+1), nil
}

type CreateRewardInput struct {
	Title       string
	Description string
	Type        RewardType
	MissionIDs  []string
	BadgeIcon   string
}

// CreateReward stores a new locked reward.
func (s *Service) CreateReward(ctx context.Context, in CreateRewardInput) (*RewardRecord, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, errors.New("reward title is required")
	}
	if !in.Type.IsValid() {
		return nil, fmt.Errorf("invalid reward type %q", in.Type)
	}

	id, err := s.nextRewardID(ctx)
	if err != nil {
		return nil, err
	}

	rw := Reward{
		ID:          id,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		MissionIDs:  in.MissionIDs,
		Type:        string(in.Type),
		Locked:      true,
		BadgeIcon:   in.BadgeIcon,
	}

	key := rewardLockedPrefix + id + "-" + slugify(rw.Title)
	if err := store.PutJSON(ctx, s.store, key, rw); err != nil {
		return nil, fmt.Errorf("save reward: %w", err)
	}
	return &RewardRecord{Key: key, Reward: rw}, nil
}

// ListRewards returns the locked or unlocked rewards in key order.
func (s *Service) ListRewards(ctx context.Context, locked bool) ([]RewardRecord, error) {
	prefix := rewardUnlockedPrefix
	if locked {
		prefix = rewardLockedPrefix
	}
	keys, err := s.store.List(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list rewards: %w", err)
	}

	var out []RewardRecord
	for _, key := range keys {
		var rw Reward
		if err := store.GetJSON(ctx, s.store, key, &rw); err != nil {
			s.log.WithError(err).Warnf("skipping reward %s", key)
			continue
		}
		out = append(out, RewardRecord{Key: key, Reward: rw})
	}
	return out, nil
}

// unlockRewardsFor moves every locked reward referenced by the mission into
// the unlocked set and returns the reward ids that moved. Failed missions
// never unlock anything.
func (s *Service) unlockRewardsFor(ctx context.Context, m *Mission) ([]string, error) {
	if len(m.Rewards) == 0 {
		return nil, nil
	}

	lockedKeys, err := s.store.List(ctx, rewardLockedPrefix)
	if err != nil {
		return nil, fmt.Errorf("list locked rewards: %w", err)
	}

	var unlocked []string
	for _, ref := range m.Rewards {
		if ref.ID == "" {
			continue
		}
		for _, key := range lockedKeys {
			if !strings.HasPrefix(key[len(rewardLockedPrefix):], ref.ID+"-") {
				continue
			}
			var rw Reward
			if err := store.GetJSON(ctx, s.store, key, &rw); err != nil {
				s.log.WithError(err).Warnf("skipping reward %s", key)
				continue
			}
			rw.Locked = false

			newKey := rewardUnlockedPrefix + key[len(rewardLockedPrefix):]
			if err := store.PutJSON(ctx, s.store, newKey, rw); err != nil {
				return nil, fmt.Errorf("unlock reward %s: %w", rw.ID, err)
			}
			if err := s.store.Delete(ctx, key); err != nil {
				return nil, fmt.Errorf("remove locked reward %s: %w", rw.ID, err)
			}
			unlocked = append(unlocked, rw.ID)
		}
	}
	return unlocked, nil
}
