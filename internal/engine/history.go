package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"fightclub/internal/store"
)

// loadHistory reads the ledger. A missing or corrupt ledger starts fresh
// rather than failing the triggering operation.
func (s *Service) loadHistory(ctx context.Context) []HistoryEntry {
	body, err := s.store.Get(ctx, historyKey)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.log.WithError(err).Warn("history ledger unreadable, starting fresh")
		}
		return nil
	}
	var entries []HistoryEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		s.log.WithError(err).Warn("history ledger corrupt, starting fresh")
		return nil
	}
	return entries
}

// History returns the ledger in append order.
func (s *Service) History(ctx context.Context) []HistoryEntry {
	return s.loadHistory(ctx)
}

// appendHistory assigns the next index (max existing + 1, from 1; the index
// space is shared across all event types) and persists the entry.
func (s *Service) appendHistory(ctx context.Context, entry HistoryEntry) (HistoryEntry, error) {
	entries := s.loadHistory(ctx)

	maxIndex := 0
	for _, e := range entries {
		if e.Index > maxIndex {
			maxIndex = e.Index
		}
	}
	entry.Index = maxIndex + 1

	entries = append(entries, entry)
	if err := store.PutJSON(ctx, s.store, historyKey, entries); err != nil {
		return HistoryEntry{}, fmt.Errorf("append history: %w", err)
	}
	return entry, nil
}
