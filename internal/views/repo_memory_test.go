package views

import (
	"context"
	"testing"
	"time"
)

func TestMemoryRepoListByUserBreaksTiesByInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	at := time.Date(2026, time.May, 10, 12, 0, 0, 0, time.UTC)
	for _, v := range []View{
		{ID: "v1", UserID: "u1", AnimalID: "a1", ViewedAt: at.Add(-time.Hour)},
		{ID: "v2", UserID: "u1", AnimalID: "a2", ViewedAt: at},
		{ID: "v3", UserID: "u2", AnimalID: "a9", ViewedAt: at},
		{ID: "v4", UserID: "u1", AnimalID: "a3", ViewedAt: at},
	} {
		if err := repo.Append(ctx, v); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	list, err := repo.ListByUser(ctx, "u1", 0)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	got := make([]string, 0, len(list))
	for _, v := range list {
		got = append(got, v.ID)
	}
	want := []string{"v4", "v2", "v1"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}

	limited, err := repo.ListByUser(ctx, "u1", 1)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "v4" {
		t.Fatalf("expected latest append first, got %+v", limited)
	}
}
