package memory

import (
	"context"
	"testing"
	"time"

	"farmbook/internal/core"
)

func TestPushPullRoundTrip(t *testing.T) {
	s := New(0)
	ctx := context.Background()

	data := &core.FarmData{
		FarmName: "Hill Farm",
		Transactions: []core.Transaction{
			{ID: "t1", Description: "hay", Type: core.Expense, Amount: core.Money{Cents: 100}, Date: core.NewDate(2025, 1, 1)},
		},
	}
	if err := s.Push(ctx, "user@farm.com", data); err != nil {
		t.Fatalf("push: %v", err)
	}

	got, err := s.Pull(ctx, "user@farm.com")
	if err != nil {
		t.Fatalf("pull: %v", err)
	}
	if got == nil || got.FarmName != "Hill Farm" || len(got.Transactions) != 1 {
		t.Fatalf("unexpected snapshot %+v", got)
	}
}

func TestPullUnknownIdentityIsNil(t *testing.T) {
	s := New(0)
	got, err := s.Pull(context.Background(), "nobody@farm.com")
	if err != nil {
		t.Fatalf("pull: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil snapshot, got %+v", got)
	}
}

func TestLastWriteWins(t *testing.T) {
	s := New(0)
	ctx := context.Background()
	if err := s.Push(ctx, "u", &core.FarmData{FarmName: "First"}); err != nil {
		t.Fatalf("push: %v", err)
	}
	if err := s.Push(ctx, "u", &core.FarmData{FarmName: "Second"}); err != nil {
		t.Fatalf("push: %v", err)
	}
	got, err := s.Pull(ctx, "u")
	if err != nil {
		t.Fatalf("pull: %v", err)
	}
	if got.FarmName != "Second" {
		t.Fatalf("expected Second, got %q", got.FarmName)
	}
}

func TestPushIsADeepCopy(t *testing.T) {
	s := New(0)
	ctx := context.Background()
	data := &core.FarmData{FarmName: "Original"}
	if err := s.Push(ctx, "u", data); err != nil {
		t.Fatalf("push: %v", err)
	}
	data.FarmName = "tampered"
	got, _ := s.Pull(ctx, "u")
	if got.FarmName != "Original" {
		t.Fatalf("store shares state with the caller")
	}
}

func TestLatencyHonorsContext(t *testing.T) {
	s := New(time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := s.Push(ctx, "u", &core.FarmData{}); err == nil {
		t.Fatalf("expected context error")
	}
}
