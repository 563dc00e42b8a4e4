package sqlitestore

import (
	"context"
	"path/filepath"
	"testing"

	"bvox-ledger-go/internal/models"

	"github.com/shopspring/decimal"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoad_AbsentCollectionIsEmpty(t *testing.T) {
	s := newTestStore(t)

	var users []models.User
	if err := s.Load(context.Background(), "users", &users); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if users != nil {
		t.Errorf("Expected nil slice for absent collection, got %v", users)
	}
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	in := []models.WithdrawalRecord{
		{Id: "w1", UserId: "user1", Coin: "usdt", Quantity: decimal.NewFromInt(40), Status: models.StatusPending},
	}
	if err := s.Save(ctx, "withdrawals_records", in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	var out []models.WithdrawalRecord
	if err := s.Load(ctx, "withdrawals_records", &out); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(out))
	}
	if !out[0].Quantity.Equal(decimal.NewFromInt(40)) {
		t.Errorf("Expected quantity 40, got %s", out[0].Quantity.String())
	}
}

func TestSave_UpsertsSingleRow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "users", []models.User{{Id: "u1"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Save(ctx, "users", []models.User{{Id: "u2"}, {Id: "u3"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	var out []models.User
	if err := s.Load(ctx, "users", &out); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("Expected 2 users after overwrite, got %d", len(out))
	}

	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM collections WHERE name = 'users'").Scan(&count); err != nil {
		t.Fatalf("Count query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected a single row per collection, got %d", count)
	}
}

func TestCollectionsAreIndependent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "topup_records", []models.TopupRecord{{Id: "t1"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Save(ctx, "exchange_records", []models.ExchangeRecord{{Id: "e1"}, {Id: "e2"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	var topups []models.TopupRecord
	if err := s.Load(ctx, "topup_records", &topups); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(topups) != 1 || topups[0].Id != "t1" {
		t.Errorf("Unexpected topups: %v", topups)
	}

	var exchanges []models.ExchangeRecord
	if err := s.Load(ctx, "exchange_records", &exchanges); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(exchanges) != 2 {
		t.Errorf("Expected 2 exchanges, got %d", len(exchanges))
	}
}

func TestNew_EmptyPathRejected(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("Expected error for empty database path")
	}
}
