package submission_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/uam-aleman/wochenkontext/internal/submission"
)

func seed(t *testing.T, store submission.Store) {
	t.Helper()
	base := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	recs := []struct {
		level, week string
	}{
		{"aleman1", "w01"},
		{"aleman1", "w02"},
		{"aleman2", "w01"},
		{"aleman1", "w01"},
	}
	for i, r := range recs {
		err := store.Save(context.Background(), submission.Record{
			ID:        fmt.Sprintf("00000000-0000-0000-0000-00000000000%d", i+1),
			Level:     r.level,
			WeekID:    r.week,
			SessionID: r.level + "-" + r.week,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}
}

func TestMemoryStore_List(t *testing.T) {
	store := submission.NewMemoryStore()
	seed(t, store)

	tests := []struct {
		name    string
		filter  submission.Filter
		wantIDs []string
	}{
		{"all newest first", submission.Filter{}, []string{"4", "3", "2", "1"}},
		{"by level", submission.Filter{Level: "aleman1"}, []string{"4", "2", "1"}},
		{"by level and week", submission.Filter{Level: "aleman1", WeekID: "w01"}, []string{"4", "1"}},
		{"limit", submission.Filter{Limit: 2}, []string{"4", "3"}},
		{"no match", submission.Filter{WeekID: "w09"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.List(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("len(List()) = %d, want %d", len(got), len(tt.wantIDs))
			}
			for i, rec := range got {
				if want := "00000000-0000-0000-0000-00000000000" + tt.wantIDs[i]; rec.ID != want {
					t.Errorf("List()[%d].ID = %q, want %q", i, rec.ID, want)
				}
			}
		})
	}
}

func TestMemoryStore_Get(t *testing.T) {
	store := submission.NewMemoryStore()
	seed(t, store)

	rec, found, err := store.Get(context.Background(), "00000000-0000-0000-0000-000000000002")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found {
		t.Fatal("Get() should find a saved record")
	}
	if rec.WeekID != "w02" {
		t.Errorf("WeekID = %q, want w02", rec.WeekID)
	}

	if _, found, _ := store.Get(context.Background(), "missing"); found {
		t.Error("Get() should not find an unknown id")
	}
}

func TestMemoryStore_SaveRejects(t *testing.T) {
	store := submission.NewMemoryStore()
	ctx := context.Background()

	if err := store.Save(ctx, submission.Record{}); err == nil {
		t.Error("Save() without id should fail")
	}
	if err := store.Save(ctx, submission.Record{ID: "a"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := store.Save(ctx, submission.Record{ID: "a"}); err == nil {
		t.Error("Save() with a duplicate id should fail")
	}
}
