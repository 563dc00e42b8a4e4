package api

import (
	"context"

	"bvox-ledger-go/internal/models"
	"bvox-ledger-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ListAllRecords returns records of a kind as the unified view, for
// administrative inspection. An empty status returns every record; a
// pending status returns the review queue (pending and processing).
func (s *LedgerService) ListAllRecords(ctx context.Context, kind models.RecordKind, status string) ([]models.Transaction, error) {
	st, err := parseStatusFilter(status)
	if err != nil {
		return nil, err
	}
	return s.ledger.SearchTransactions(ctx, "", kindType(kind), st)
}

func parseStatusFilter(status string) (models.RecordStatus, error) {
	if status == "" {
		return "", nil
	}
	st, ok := models.ParseRecordStatus(status)
	if !ok {
		return "", store.NewValidationError("status", "must be pending, processing, approved or rejected")
	}
	return st, nil
}

func kindType(kind models.RecordKind) string {
	switch kind {
	case models.KindTopup:
		return models.TxTypeDeposit
	case models.KindWithdrawal:
		return models.TxTypeWithdrawal
	default:
		return models.TxTypeExchange
	}
}

// Approve finalizes a record as approved, applying its balance delta.
func (s *LedgerService) Approve(ctx context.Context, kind models.RecordKind, recordId string) (*models.Transaction, error) {
	if recordId == "" {
		return nil, store.NewValidationError("record_id", "required")
	}
	tx, err := s.ledger.Approve(ctx, kind, recordId)
	if err != nil {
		zap.L().Warn("Approval failed",
			zap.String("kind", string(kind)),
			zap.String("record_id", recordId),
			zap.Error(err))
		return nil, err
	}
	return tx, nil
}

// Reject finalizes a record as rejected. Balances are never touched.
func (s *LedgerService) Reject(ctx context.Context, kind models.RecordKind, recordId string) (*models.Transaction, error) {
	if recordId == "" {
		return nil, store.NewValidationError("record_id", "required")
	}
	tx, err := s.ledger.Reject(ctx, kind, recordId)
	if err != nil {
		zap.L().Warn("Rejection failed",
			zap.String("kind", string(kind)),
			zap.String("record_id", recordId),
			zap.Error(err))
		return nil, err
	}
	return tx, nil
}

// Delete removes a record without reversing any applied balance delta.
func (s *LedgerService) Delete(ctx context.Context, kind models.RecordKind, recordId string) error {
	if recordId == "" {
		return store.NewValidationError("record_id", "required")
	}
	return s.ledger.DeleteRecord(ctx, kind, recordId)
}

// SetUserBalances overwrites all asset quantities for one user. Asset codes
// must be in the supported set; quantities must not be negative.
func (s *LedgerService) SetUserBalances(ctx context.Context, userId string, balances map[string]decimal.Decimal) (*models.User, error) {
	if userId == "" {
		return nil, store.NewValidationError("user_id", "required")
	}
	for asset, quantity := range balances {
		if !s.supportedAsset(asset) {
			return nil, store.NewValidationError("balances", "unsupported asset code "+asset)
		}
		if quantity.IsNegative() {
			return nil, store.NewValidationError("balances", "negative quantity for "+asset)
		}
	}
	return s.ledger.SetBalances(ctx, userId, balances)
}

// ListTransactions returns the aggregated feed, newest first.
func (s *LedgerService) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	return s.ledger.ListTransactions(ctx)
}

// SearchTransactions filters the aggregated feed by user, type and/or status.
func (s *LedgerService) SearchTransactions(ctx context.Context, userId, txType, status string) ([]models.Transaction, error) {
	st, err := parseStatusFilter(status)
	if err != nil {
		return nil, err
	}
	return s.ledger.SearchTransactions(ctx, userId, txType, st)
}

// GetUserStats returns the admin detail view of one user: identity plus
// per-kind and per-status record counts.
func (s *LedgerService) GetUserStats(ctx context.Context, userId string) (*models.UserStats, error) {
	if userId == "" {
		return nil, store.NewValidationError("user_id", "required")
	}
	return s.ledger.GetUserStats(ctx, userId)
}

// GetTransactionDetail finds one record across all collections.
func (s *LedgerService) GetTransactionDetail(ctx context.Context, recordId string) (*models.Transaction, error) {
	if recordId == "" {
		return nil, store.NewValidationError("record_id", "required")
	}
	return s.ledger.GetTransactionDetail(ctx, recordId)
}
