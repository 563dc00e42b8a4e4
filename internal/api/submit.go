package api

import (
	"context"
	"fmt"
	"sort"

	"bvox-ledger-go/internal/models"
	"bvox-ledger-go/internal/store"

	"go.uber.org/zap"
)

// SubmitTopup validates and records a deposit request. The record is created
// pending; no balance changes until an admin approves it.
func (s *LedgerService) SubmitTopup(ctx context.Context, sub models.TopupSubmission) (*models.TopupRecord, error) {
	if sub.UserId == "" {
		return nil, store.NewValidationError("user_id", "required")
	}
	if sub.Coin == "" {
		return nil, store.NewValidationError("coin", "required")
	}
	if !s.supportedAsset(sub.Coin) {
		return nil, store.NewValidationError("coin", fmt.Sprintf("unsupported asset code %q", sub.Coin))
	}
	if sub.Address == "" {
		return nil, store.NewValidationError("address", "required")
	}
	if sub.PhotoUrl == "" {
		return nil, store.NewValidationError("photo_url", "required")
	}
	if !sub.Amount.IsPositive() {
		return nil, store.NewValidationError("amount", "must be greater than zero")
	}

	return s.ledger.CreateTopup(ctx, sub)
}

// SubmitWithdrawal validates and records a withdrawal request.
func (s *LedgerService) SubmitWithdrawal(ctx context.Context, sub models.WithdrawalSubmission) (*models.WithdrawalRecord, error) {
	if sub.UserId == "" {
		return nil, store.NewValidationError("user_id", "required")
	}
	if sub.Coin == "" {
		return nil, store.NewValidationError("coin", "required")
	}
	if !s.supportedAsset(sub.Coin) {
		return nil, store.NewValidationError("coin", fmt.Sprintf("unsupported asset code %q", sub.Coin))
	}
	if sub.Address == "" {
		return nil, store.NewValidationError("address", "required")
	}
	if !sub.Quantity.IsPositive() {
		return nil, store.NewValidationError("quantity", "must be greater than zero")
	}

	return s.ledger.CreateWithdrawal(ctx, sub)
}

// SubmitExchange validates and records an exchange request. Both leg amounts
// come from the caller; rates are externally supplied inputs.
func (s *LedgerService) SubmitExchange(ctx context.Context, sub models.ExchangeSubmission) (*models.ExchangeRecord, error) {
	if sub.UserId == "" {
		return nil, store.NewValidationError("user_id", "required")
	}
	if sub.FromCoin == "" {
		return nil, store.NewValidationError("from_coin", "required")
	}
	if !s.supportedAsset(sub.FromCoin) {
		return nil, store.NewValidationError("from_coin", fmt.Sprintf("unsupported asset code %q", sub.FromCoin))
	}
	if sub.ToCoin == "" {
		return nil, store.NewValidationError("to_coin", "required")
	}
	if !s.supportedAsset(sub.ToCoin) {
		return nil, store.NewValidationError("to_coin", fmt.Sprintf("unsupported asset code %q", sub.ToCoin))
	}
	if !sub.FromAmount.IsPositive() {
		return nil, store.NewValidationError("from_amount", "must be greater than zero")
	}
	if !sub.ToAmount.IsPositive() {
		return nil, store.NewValidationError("to_amount", "must be greater than zero")
	}

	return s.ledger.CreateExchange(ctx, sub)
}

// GetUserTopups returns a user's topup records, unfiltered by status.
func (s *LedgerService) GetUserTopups(ctx context.Context, userId string) ([]models.TopupRecord, error) {
	if userId == "" {
		return nil, store.NewValidationError("user_id", "required")
	}
	return s.ledger.ListTopupsByUser(ctx, userId)
}

// GetUserWithdrawals returns a user's withdrawal records.
func (s *LedgerService) GetUserWithdrawals(ctx context.Context, userId string) ([]models.WithdrawalRecord, error) {
	if userId == "" {
		return nil, store.NewValidationError("user_id", "required")
	}
	return s.ledger.ListWithdrawalsByUser(ctx, userId)
}

// GetUserExchanges returns a user's exchange records.
func (s *LedgerService) GetUserExchanges(ctx context.Context, userId string) ([]models.ExchangeRecord, error) {
	if userId == "" {
		return nil, store.NewValidationError("user_id", "required")
	}
	return s.ledger.ListExchangesByUser(ctx, userId)
}

// GetUserBalances returns all asset balances for a user.
func (s *LedgerService) GetUserBalances(ctx context.Context, userId string) ([]models.UserBalance, error) {
	if userId == "" {
		return nil, store.NewValidationError("user_id", "required")
	}

	balances, err := s.ledger.GetBalances(ctx, userId)
	if err != nil {
		zap.L().Error("Failed to get user balances", zap.String("user_id", userId), zap.Error(err))
		return nil, err
	}

	out := make([]models.UserBalance, 0, len(balances))
	for asset, balance := range balances {
		out = append(out, models.UserBalance{Asset: asset, Balance: balance})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Asset < out[j].Asset })
	return out, nil
}
