package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"bvox-ledger-go/internal/models"
	"bvox-ledger-go/internal/store"
)

func topupView(r models.TopupRecord) models.Transaction {
	return models.Transaction{
		Id:        r.Id,
		Type:      models.TxTypeDeposit,
		UserId:    r.UserId,
		Status:    r.Status,
		Coin:      r.Coin,
		Address:   r.Address,
		PhotoUrl:  r.PhotoUrl,
		Amount:    &r.Amount,
		CreatedAt: r.CreatedAt,
	}
}

func withdrawalView(r models.WithdrawalRecord) models.Transaction {
	return models.Transaction{
		Id:        r.Id,
		Type:      models.TxTypeWithdrawal,
		UserId:    r.UserId,
		Status:    r.Status,
		Coin:      r.Coin,
		Address:   r.Address,
		Amount:    &r.Quantity,
		CreatedAt: r.CreatedAt,
	}
}

func exchangeView(r models.ExchangeRecord) models.Transaction {
	return models.Transaction{
		Id:         r.Id,
		Type:       models.TxTypeExchange,
		UserId:     r.UserId,
		Status:     r.Status,
		FromCoin:   r.FromCoin,
		ToCoin:     r.ToCoin,
		FromAmount: &r.FromAmount,
		ToAmount:   &r.ToAmount,
		CreatedAt:  r.CreatedAt,
	}
}

func (s *Service) unionTransactions(ctx context.Context) ([]models.Transaction, error) {
	topups, err := s.ListAllTopups(ctx)
	if err != nil {
		return nil, err
	}
	withdrawals, err := s.ListAllWithdrawals(ctx)
	if err != nil {
		return nil, err
	}
	exchanges, err := s.ListAllExchanges(ctx)
	if err != nil {
		return nil, err
	}

	all := make([]models.Transaction, 0, len(topups)+len(withdrawals)+len(exchanges))
	for _, r := range topups {
		all = append(all, topupView(r))
	}
	for _, r := range withdrawals {
		all = append(all, withdrawalView(r))
	}
	for _, r := range exchanges {
		all = append(all, exchangeView(r))
	}
	return all, nil
}

// ListTransactions unions the three record collections into one feed tagged
// by type, newest first. The feed is recomputed on every call; the
// aggregator owns no state.
func (s *Service) ListTransactions(ctx context.Context) ([]models.Transaction, error) {
	all, err := s.unionTransactions(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}

// statusMatches applies the status filter. A pending filter also matches
// processing records; both sit in the review queue awaiting an admin.
func statusMatches(status, filter models.RecordStatus) bool {
	if filter == models.StatusPending {
		return status == models.StatusPending || status == models.StatusProcessing
	}
	return status == filter
}

// SearchTransactions applies equality filters over the unioned feed. Empty
// filter values match everything.
func (s *Service) SearchTransactions(ctx context.Context, userId, txType string, status models.RecordStatus) ([]models.Transaction, error) {
	all, err := s.ListTransactions(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.Transaction
	for _, tx := range all {
		if userId != "" && tx.UserId != userId {
			continue
		}
		if txType != "" && tx.Type != txType {
			continue
		}
		if status != "" && !statusMatches(tx.Status, status) {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

// GetUserStats tallies a user's records across all collections for the
// admin detail view.
func (s *Service) GetUserStats(ctx context.Context, userId string) (*models.UserStats, error) {
	user, err := s.GetUser(ctx, userId)
	if err != nil {
		return nil, err
	}

	txs, err := s.SearchTransactions(ctx, userId, "", "")
	if err != nil {
		return nil, err
	}

	stats := models.UserStats{User: *user}
	for _, tx := range txs {
		switch tx.Type {
		case models.TxTypeDeposit:
			stats.Deposits++
		case models.TxTypeWithdrawal:
			stats.Withdrawals++
		case models.TxTypeExchange:
			stats.Exchanges++
		}
		switch tx.Status {
		case models.StatusApproved:
			stats.Approved++
		case models.StatusRejected:
			stats.Rejected++
		default:
			stats.Pending++
		}
	}
	return &stats, nil
}

// GetTransactionDetail scans all three collections for the record id.
func (s *Service) GetTransactionDetail(ctx context.Context, recordId string) (*models.Transaction, error) {
	for _, kind := range []models.RecordKind{models.KindTopup, models.KindWithdrawal, models.KindExchange} {
		tx, err := s.FindRecord(ctx, kind, recordId)
		if err == nil {
			return tx, nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: transaction %s", store.ErrNotFound, recordId)
}
