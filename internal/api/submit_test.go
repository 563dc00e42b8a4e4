package api

import (
	"context"
	"errors"
	"testing"

	"bvox-ledger-go/internal/ledger"
	"bvox-ledger-go/internal/models"
	"bvox-ledger-go/internal/store"
	"bvox-ledger-go/internal/store/filestore"

	"github.com/shopspring/decimal"
)

func newTestLedgerService(t *testing.T) *LedgerService {
	t.Helper()

	fs, err := filestore.New(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create test store: %v", err)
	}
	return NewLedgerService(ledger.NewService(fs), []string{"usdt", "btc", "eth"})
}

func validationField(t *testing.T, err error) string {
	t.Helper()

	var verr *store.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	return verr.Field
}

func TestSubmitTopup_Valid(t *testing.T) {
	svc := newTestLedgerService(t)

	rec, err := svc.SubmitTopup(context.Background(), models.TopupSubmission{
		UserId:   "user1",
		Coin:     "usdt",
		Address:  "0xabc",
		PhotoUrl: "https://example.com/r.png",
		Amount:   decimal.NewFromInt(100),
	})
	if err != nil {
		t.Fatalf("SubmitTopup failed: %v", err)
	}
	if rec.Status != models.StatusPending {
		t.Errorf("Expected pending, got %s", rec.Status)
	}
}

func TestSubmitTopup_ValidationFields(t *testing.T) {
	svc := newTestLedgerService(t)
	ctx := context.Background()
	valid := models.TopupSubmission{
		UserId:   "user1",
		Coin:     "usdt",
		Address:  "0xabc",
		PhotoUrl: "https://example.com/r.png",
		Amount:   decimal.NewFromInt(100),
	}

	cases := []struct {
		name      string
		mutate    func(*models.TopupSubmission)
		wantField string
	}{
		{"missing user", func(s *models.TopupSubmission) { s.UserId = "" }, "user_id"},
		{"missing coin", func(s *models.TopupSubmission) { s.Coin = "" }, "coin"},
		{"unsupported coin", func(s *models.TopupSubmission) { s.Coin = "doge" }, "coin"},
		{"missing address", func(s *models.TopupSubmission) { s.Address = "" }, "address"},
		{"missing photo", func(s *models.TopupSubmission) { s.PhotoUrl = "" }, "photo_url"},
		{"zero amount", func(s *models.TopupSubmission) { s.Amount = decimal.Zero }, "amount"},
		{"negative amount", func(s *models.TopupSubmission) { s.Amount = decimal.NewFromInt(-5) }, "amount"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := valid
			tc.mutate(&sub)
			_, err := svc.SubmitTopup(ctx, sub)
			if got := validationField(t, err); got != tc.wantField {
				t.Errorf("Expected field %s, got %s", tc.wantField, got)
			}
		})
	}
}

func TestSubmitWithdrawal_ValidationFields(t *testing.T) {
	svc := newTestLedgerService(t)
	ctx := context.Background()

	_, err := svc.SubmitWithdrawal(ctx, models.WithdrawalSubmission{
		UserId:   "user1",
		Coin:     "doge",
		Address:  "0xdef",
		Quantity: decimal.NewFromInt(10),
	})
	if got := validationField(t, err); got != "coin" {
		t.Errorf("Expected field coin, got %s", got)
	}

	_, err = svc.SubmitWithdrawal(ctx, models.WithdrawalSubmission{
		UserId:  "user1",
		Coin:    "usdt",
		Address: "0xdef",
	})
	if got := validationField(t, err); got != "quantity" {
		t.Errorf("Expected field quantity, got %s", got)
	}
}

func TestSubmitExchange_ValidationFields(t *testing.T) {
	svc := newTestLedgerService(t)
	ctx := context.Background()

	_, err := svc.SubmitExchange(ctx, models.ExchangeSubmission{
		UserId:     "user1",
		FromCoin:   "eth",
		ToCoin:     "xrp",
		FromAmount: decimal.NewFromInt(1),
		ToAmount:   decimal.NewFromInt(500),
	})
	if got := validationField(t, err); got != "to_coin" {
		t.Errorf("Expected field to_coin, got %s", got)
	}

	_, err = svc.SubmitExchange(ctx, models.ExchangeSubmission{
		UserId:     "user1",
		FromCoin:   "eth",
		ToCoin:     "usdt",
		FromAmount: decimal.NewFromInt(1),
	})
	if got := validationField(t, err); got != "to_amount" {
		t.Errorf("Expected field to_amount, got %s", got)
	}
}

func TestSubmitExchange_ValidDoesNotTouchBalances(t *testing.T) {
	svc := newTestLedgerService(t)
	ctx := context.Background()

	if _, err := svc.RegisterUser(ctx, models.Registration{Address: "0xwallet"}); err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}
	users, err := svc.ListUsers(ctx)
	if err != nil || len(users) != 1 {
		t.Fatalf("Expected 1 user, got %d (err %v)", len(users), err)
	}

	rec, err := svc.SubmitExchange(ctx, models.ExchangeSubmission{
		UserId:     users[0].Id,
		FromCoin:   "eth",
		ToCoin:     "usdt",
		FromAmount: decimal.NewFromInt(1),
		ToAmount:   decimal.NewFromInt(1200),
	})
	if err != nil {
		t.Fatalf("SubmitExchange failed: %v", err)
	}
	if rec.Status != models.StatusPending {
		t.Errorf("Expected pending, got %s", rec.Status)
	}

	balances, err := svc.GetUserBalances(ctx, users[0].Id)
	if err != nil {
		t.Fatalf("GetUserBalances failed: %v", err)
	}
	for _, b := range balances {
		if !b.Balance.Equal(decimal.Zero) {
			t.Errorf("Expected zero balance for %s before approval, got %s", b.Asset, b.Balance.String())
		}
	}
}

func TestGetUserBalances_SortedByAsset(t *testing.T) {
	svc := newTestLedgerService(t)
	ctx := context.Background()

	if _, err := svc.RegisterUser(ctx, models.Registration{Address: "0xwallet"}); err != nil {
		t.Fatalf("RegisterUser failed: %v", err)
	}
	users, _ := svc.ListUsers(ctx)

	_, err := svc.SetUserBalances(ctx, users[0].Id, map[string]decimal.Decimal{
		"usdt": decimal.NewFromInt(100),
		"btc":  decimal.NewFromInt(1),
		"eth":  decimal.NewFromInt(5),
	})
	if err != nil {
		t.Fatalf("SetUserBalances failed: %v", err)
	}

	balances, err := svc.GetUserBalances(ctx, users[0].Id)
	if err != nil {
		t.Fatalf("GetUserBalances failed: %v", err)
	}
	want := []string{"btc", "eth", "usdt"}
	if len(balances) != len(want) {
		t.Fatalf("Expected %d balances, got %d", len(want), len(balances))
	}
	for i, asset := range want {
		if balances[i].Asset != asset {
			t.Errorf("Position %d: expected %s, got %s", i, asset, balances[i].Asset)
		}
	}
}
