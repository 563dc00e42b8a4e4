package ledger

import (
	"context"
	"errors"
	"testing"

	"bvox-ledger-go/internal/models"
	"bvox-ledger-go/internal/store"

	"github.com/shopspring/decimal"
)

func TestGetUser_NotFound(t *testing.T) {
	s := newTestService(t)

	_, err := s.GetUser(context.Background(), "missing")
	if !errors.Is(err, store.ErrUserNotFound) {
		t.Fatalf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestUpsertUser_PreservesBalancesOnUpdate(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	seedUser(t, s, "user1", map[string]decimal.Decimal{
		"usdt": decimal.NewFromInt(100),
	})

	_, err := s.UpsertUser(ctx, models.User{
		Id:       "user1",
		Username: "Renamed",
		Email:    "renamed@example.com",
	})
	if err != nil {
		t.Fatalf("UpsertUser failed: %v", err)
	}

	user, err := s.GetUser(ctx, "user1")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if user.Username != "Renamed" {
		t.Errorf("Expected username Renamed, got %s", user.Username)
	}
	if !user.Balances["usdt"].Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected balance 100 preserved, got %s", user.Balances["usdt"].String())
	}
}

func TestSetBalances_Overwrites(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	seedUser(t, s, "user1", map[string]decimal.Decimal{
		"usdt": decimal.NewFromInt(100),
		"btc":  decimal.NewFromInt(2),
	})

	user, err := s.SetBalances(ctx, "user1", map[string]decimal.Decimal{
		"eth": decimal.NewFromInt(5),
	})
	if err != nil {
		t.Fatalf("SetBalances failed: %v", err)
	}

	if len(user.Balances) != 1 {
		t.Errorf("Expected 1 asset after overwrite, got %d", len(user.Balances))
	}
	if !user.Balances["eth"].Equal(decimal.NewFromInt(5)) {
		t.Errorf("Expected eth balance 5, got %s", user.Balances["eth"].String())
	}
}

func TestSetBalances_UserNotFound(t *testing.T) {
	s := newTestService(t)

	_, err := s.SetBalances(context.Background(), "missing", map[string]decimal.Decimal{})
	if !errors.Is(err, store.ErrUserNotFound) {
		t.Fatalf("Expected ErrUserNotFound, got %v", err)
	}
}

func TestApplyDeltas_IdempotentPerRecord(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	seedUser(t, s, "user1", nil)

	deltas := []BalanceDelta{{Coin: "usdt", Amount: decimal.NewFromInt(100)}}
	if err := s.applyDeltas(ctx, "user1", "rec-1", deltas); err != nil {
		t.Fatalf("First applyDeltas failed: %v", err)
	}
	if err := s.applyDeltas(ctx, "user1", "rec-1", deltas); err != nil {
		t.Fatalf("Replayed applyDeltas failed: %v", err)
	}

	got := balanceOf(t, s, "user1", "usdt")
	if !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected balance 100 after replay, got %s", got.String())
	}
}

func TestApplyDeltas_ClampsEachAssetAtZero(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	seedUser(t, s, "user1", map[string]decimal.Decimal{
		"btc": decimal.NewFromInt(1),
	})

	deltas := []BalanceDelta{
		{Coin: "btc", Amount: decimal.NewFromInt(-5)},
		{Coin: "eth", Amount: decimal.NewFromInt(3)},
	}
	if err := s.applyDeltas(ctx, "user1", "rec-2", deltas); err != nil {
		t.Fatalf("applyDeltas failed: %v", err)
	}

	btc := balanceOf(t, s, "user1", "btc")
	if !btc.Equal(decimal.Zero) {
		t.Errorf("Expected btc clamped to 0, got %s", btc.String())
	}
	eth := balanceOf(t, s, "user1", "eth")
	if !eth.Equal(decimal.NewFromInt(3)) {
		t.Errorf("Expected eth balance 3, got %s", eth.String())
	}
}

func TestApplyDeltas_DistinctRecordsAccumulate(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	seedUser(t, s, "user1", nil)

	for i, recordId := range []string{"rec-a", "rec-b", "rec-c"} {
		deltas := []BalanceDelta{{Coin: "usdt", Amount: decimal.NewFromInt(int64(i + 1))}}
		if err := s.applyDeltas(ctx, "user1", recordId, deltas); err != nil {
			t.Fatalf("applyDeltas %s failed: %v", recordId, err)
		}
	}

	got := balanceOf(t, s, "user1", "usdt")
	if !got.Equal(decimal.NewFromInt(6)) {
		t.Errorf("Expected balance 6, got %s", got.String())
	}
}
