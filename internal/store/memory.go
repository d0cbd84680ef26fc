package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// MemStore is an in-memory Store used by tests.
type MemStore struct {
	docs map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{docs: make(map[string][]byte)}
}

func (s *MemStore) Get(ctx context.Context, key string) ([]byte, error) {
	body, ok := s.docs[key]
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	out := make([]byte, len(body))
	copy(out, body)
	return out, nil
}

func (s *MemStore) Put(ctx context.Context, key string, body []byte) error {
	cp := make([]byte, len(body))
	copy(cp, body)
	s.docs[key] = cp
	return nil
}

func (s *MemStore) Delete(ctx context.Context, key string) error {
	if _, ok := s.docs[key]; !ok {
		return fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	delete(s.docs, key)
	return nil
}

func (s *MemStore) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	for k := range s.docs {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
