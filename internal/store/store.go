package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when no document exists for the key.
var ErrNotFound = errors.New("document not found")

// Store is a key-addressed document store. Keys are slash-separated paths
// (e.g. "alter-egos/kei", "missions/active/K01-meditate-daily") and values
// are JSON documents. The process is the only writer; backends do no locking.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, body []byte) error
	Delete(ctx context.Context, key string) error
	// List returns all keys with the given prefix, sorted ascending.
	List(ctx context.Context, prefix string) ([]string, error)
}

// GetJSON reads the document at key and unmarshals it into v.
func GetJSON(ctx context.Context, s Store, key string, v any) error {
	body, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// PutJSON marshals v and writes it at key. Documents are indented so the
// on-disk files stay hand-editable.
func PutJSON(ctx context.Context, s Store, key string, v any) error {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.Put(ctx, key, body)
}
