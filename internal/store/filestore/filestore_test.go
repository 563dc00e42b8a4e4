package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"bvox-ledger-go/internal/models"

	"github.com/shopspring/decimal"
)

func TestLoad_AbsentCollectionIsEmpty(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	var records []models.TopupRecord
	if err := s.Load(context.Background(), "topup_records", &records); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if records != nil {
		t.Errorf("Expected nil slice for absent collection, got %v", records)
	}
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()
	ctx := context.Background()

	in := []models.TopupRecord{
		{Id: "a", UserId: "user1", Coin: "usdt", Amount: decimal.NewFromInt(100), Status: models.StatusPending},
		{Id: "b", UserId: "user2", Coin: "btc", Amount: decimal.NewFromFloat(0.5), Status: models.StatusApproved},
	}
	if err := s.Save(ctx, "topup_records", in); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	var out []models.TopupRecord
	if err := s.Load(ctx, "topup_records", &out); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(out))
	}
	if out[0].Id != "a" || out[1].Id != "b" {
		t.Errorf("Record order not preserved: %s, %s", out[0].Id, out[1].Id)
	}
	if !out[1].Amount.Equal(decimal.NewFromFloat(0.5)) {
		t.Errorf("Expected amount 0.5, got %s", out[1].Amount.String())
	}
}

func TestSave_OverwritesWholeCollection(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()
	ctx := context.Background()

	first := []models.User{{Id: "u1"}, {Id: "u2"}}
	if err := s.Save(ctx, "users", first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	second := []models.User{{Id: "u3"}}
	if err := s.Save(ctx, "users", second); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	var out []models.User
	if err := s.Load(ctx, "users", &out); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(out) != 1 || out[0].Id != "u3" {
		t.Errorf("Expected only u3 after overwrite, got %v", out)
	}
}

func TestSave_NoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	if err := s.Save(context.Background(), "users", []models.User{{Id: "u1"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".json" {
			t.Errorf("Unexpected leftover file: %s", e.Name())
		}
	}
}

func TestNew_EmptyDirRejected(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("Expected error for empty data directory")
	}
}
