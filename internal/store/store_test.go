package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	ctx := context.Background()

	fileStore, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("file store: %v", err)
	}

	sqliteStore, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("sqlite store: %v", err)
	}
	t.Cleanup(func() { _ = sqliteStore.Close() })

	return map[string]Store{
		"file":   fileStore,
		"sqlite": sqliteStore,
		"mem":    NewMemStore(),
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Get(ctx, "alter-egos/kei"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("get missing: err=%v, want ErrNotFound", err)
			}

			body := []byte(`{"name":"Kei","level":1}`)
			if err := s.Put(ctx, "alter-egos/kei", body); err != nil {
				t.Fatalf("put: %v", err)
			}
			got, err := s.Get(ctx, "alter-egos/kei")
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if string(got) != string(body) {
				t.Fatalf("get=%q, want %q", got, body)
			}

			if err := s.Put(ctx, "alter-egos/kei", []byte(`{"level":2}`)); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, err = s.Get(ctx, "alter-egos/kei")
			if err != nil {
				t.Fatalf("get after overwrite: %v", err)
			}
			if string(got) != `{"level":2}` {
				t.Fatalf("get after overwrite=%q", got)
			}

			if err := s.Delete(ctx, "alter-egos/kei"); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if err := s.Delete(ctx, "alter-egos/kei"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("delete missing: err=%v, want ErrNotFound", err)
			}
		})
	}
}

func TestListPrefix(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			keys := []string{
				"missions/active/K02-sit-still",
				"missions/active/K01-meditate",
				"missions/archive/T01-lift",
				"rewards/locked/R01-new-headphones",
			}
			for _, k := range keys {
				if err := s.Put(ctx, k, []byte(`{}`)); err != nil {
					t.Fatalf("put %s: %v", k, err)
				}
			}

			got, err := s.List(ctx, "missions/active/")
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			want := []string{"missions/active/K01-meditate", "missions/active/K02-sit-still"}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("list=%v, want %v", got, want)
			}

			got, err = s.List(ctx, "daily/")
			if err != nil {
				t.Fatalf("list empty prefix: %v", err)
			}
			if len(got) != 0 {
				t.Fatalf("list daily=%v, want empty", got)
			}
		})
	}
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	type doc struct {
		Name  string `json:"name"`
		Level int    `json:"level"`
	}
	in := doc{Name: "Tyler", Level: 3}
	if err := PutJSON(ctx, s, "alter-egos/tyler", in); err != nil {
		t.Fatalf("put json: %v", err)
	}
	var out doc
	if err := GetJSON(ctx, s, "alter-egos/tyler", &out); err != nil {
		t.Fatalf("get json: %v", err)
	}
	if out != in {
		t.Fatalf("round trip=%+v, want %+v", out, in)
	}

	if err := s.Put(ctx, "alter-egos/bad", []byte("{not json")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := GetJSON(ctx, s, "alter-egos/bad", &out); err == nil {
		t.Fatalf("expected decode error")
	}
}
