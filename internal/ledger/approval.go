package ledger

import (
	"context"
	"fmt"

	"bvox-ledger-go/internal/models"
	"bvox-ledger-go/internal/store"

	"go.uber.org/zap"
)

// Approve transitions a pending or processing record to approved and applies
// its balance delta exactly once. The collection lock is held for the whole
// load-check-apply-save sequence, so concurrent approvals of the same record
// serialize and the loser hits the terminal guard. If the referenced user
// does not exist the approval fails and the record stays untouched.
//
// Write order matters: balances (with the record id logged in the same user
// document) are persisted before the status flip. A crash in between leaves
// a pending record whose delta is already marked applied; retrying the
// approval skips the delta and completes the status write.
func (s *Service) Approve(ctx context.Context, kind models.RecordKind, recordId string) (*models.Transaction, error) {
	mu := s.recordLock(kind)
	mu.Lock()
	defer mu.Unlock()

	var tx *models.Transaction
	var err error
	switch kind {
	case models.KindTopup:
		tx, err = s.approveTopup(ctx, recordId)
	case models.KindWithdrawal:
		tx, err = s.approveWithdrawal(ctx, recordId)
	case models.KindExchange:
		tx, err = s.approveExchange(ctx, recordId)
	default:
		return nil, fmt.Errorf("%w: unknown record kind %q", store.ErrNotFound, kind)
	}
	if err != nil {
		return nil, err
	}

	zap.L().Info("Record approved",
		zap.String("kind", string(kind)),
		zap.String("record_id", recordId),
		zap.String("user_id", tx.UserId))
	return tx, nil
}

func (s *Service) approveTopup(ctx context.Context, recordId string) (*models.Transaction, error) {
	records, err := s.loadTopups(ctx)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range records {
		if records[i].Id == recordId {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: topup %s", store.ErrNotFound, recordId)
	}
	if records[idx].Status.IsTerminal() {
		return nil, fmt.Errorf("%w: topup %s is %s", store.ErrAlreadyFinalized, recordId, records[idx].Status)
	}

	deltas := []BalanceDelta{{Coin: records[idx].Coin, Amount: records[idx].Amount}}
	if err := s.applyDeltas(ctx, records[idx].UserId, recordId, deltas); err != nil {
		return nil, err
	}

	records[idx].Status = models.StatusApproved
	if err := s.os.Save(ctx, store.CollectionTopups, records); err != nil {
		return nil, err
	}
	tx := topupView(records[idx])
	return &tx, nil
}

func (s *Service) approveWithdrawal(ctx context.Context, recordId string) (*models.Transaction, error) {
	records, err := s.loadWithdrawals(ctx)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range records {
		if records[i].Id == recordId {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: withdrawal %s", store.ErrNotFound, recordId)
	}
	if records[idx].Status.IsTerminal() {
		return nil, fmt.Errorf("%w: withdrawal %s is %s", store.ErrAlreadyFinalized, recordId, records[idx].Status)
	}

	deltas := []BalanceDelta{{Coin: records[idx].Coin, Amount: records[idx].Quantity.Neg()}}
	if err := s.applyDeltas(ctx, records[idx].UserId, recordId, deltas); err != nil {
		return nil, err
	}

	records[idx].Status = models.StatusApproved
	if err := s.os.Save(ctx, store.CollectionWithdrawals, records); err != nil {
		return nil, err
	}
	tx := withdrawalView(records[idx])
	return &tx, nil
}

func (s *Service) approveExchange(ctx context.Context, recordId string) (*models.Transaction, error) {
	records, err := s.loadExchanges(ctx)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range records {
		if records[i].Id == recordId {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: exchange %s", store.ErrNotFound, recordId)
	}
	if records[idx].Status.IsTerminal() {
		return nil, fmt.Errorf("%w: exchange %s is %s", store.ErrAlreadyFinalized, recordId, records[idx].Status)
	}

	// Both legs go through one user-document save: debit and credit apply
	// together or neither does.
	deltas := []BalanceDelta{
		{Coin: records[idx].FromCoin, Amount: records[idx].FromAmount.Neg()},
		{Coin: records[idx].ToCoin, Amount: records[idx].ToAmount},
	}
	if err := s.applyDeltas(ctx, records[idx].UserId, recordId, deltas); err != nil {
		return nil, err
	}

	records[idx].Status = models.StatusApproved
	if err := s.os.Save(ctx, store.CollectionExchanges, records); err != nil {
		return nil, err
	}
	tx := exchangeView(records[idx])
	return &tx, nil
}

// Reject transitions a pending or processing record to rejected. No balance
// is ever touched on rejection.
func (s *Service) Reject(ctx context.Context, kind models.RecordKind, recordId string) (*models.Transaction, error) {
	mu := s.recordLock(kind)
	mu.Lock()
	defer mu.Unlock()

	var tx *models.Transaction
	switch kind {
	case models.KindTopup:
		records, err := s.loadTopups(ctx)
		if err != nil {
			return nil, err
		}
		idx := -1
		for i := range records {
			if records[i].Id == recordId {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("%w: topup %s", store.ErrNotFound, recordId)
		}
		if records[idx].Status.IsTerminal() {
			return nil, fmt.Errorf("%w: topup %s is %s", store.ErrAlreadyFinalized, recordId, records[idx].Status)
		}
		records[idx].Status = models.StatusRejected
		if err := s.os.Save(ctx, store.CollectionTopups, records); err != nil {
			return nil, err
		}
		v := topupView(records[idx])
		tx = &v
	case models.KindWithdrawal:
		records, err := s.loadWithdrawals(ctx)
		if err != nil {
			return nil, err
		}
		idx := -1
		for i := range records {
			if records[i].Id == recordId {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("%w: withdrawal %s", store.ErrNotFound, recordId)
		}
		if records[idx].Status.IsTerminal() {
			return nil, fmt.Errorf("%w: withdrawal %s is %s", store.ErrAlreadyFinalized, recordId, records[idx].Status)
		}
		records[idx].Status = models.StatusRejected
		if err := s.os.Save(ctx, store.CollectionWithdrawals, records); err != nil {
			return nil, err
		}
		v := withdrawalView(records[idx])
		tx = &v
	case models.KindExchange:
		records, err := s.loadExchanges(ctx)
		if err != nil {
			return nil, err
		}
		idx := -1
		for i := range records {
			if records[i].Id == recordId {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("%w: exchange %s", store.ErrNotFound, recordId)
		}
		if records[idx].Status.IsTerminal() {
			return nil, fmt.Errorf("%w: exchange %s is %s", store.ErrAlreadyFinalized, recordId, records[idx].Status)
		}
		records[idx].Status = models.StatusRejected
		if err := s.os.Save(ctx, store.CollectionExchanges, records); err != nil {
			return nil, err
		}
		v := exchangeView(records[idx])
		tx = &v
	default:
		return nil, fmt.Errorf("%w: unknown record kind %q", store.ErrNotFound, kind)
	}

	zap.L().Info("Record rejected",
		zap.String("kind", string(kind)),
		zap.String("record_id", recordId),
		zap.String("user_id", tx.UserId))
	return tx, nil
}

// DeleteRecord removes a record from its collection unconditionally. Any
// balance delta already applied is NOT reversed: deletion is cleanup, not a
// compensating transaction.
func (s *Service) DeleteRecord(ctx context.Context, kind models.RecordKind, recordId string) error {
	mu := s.recordLock(kind)
	mu.Lock()
	defer mu.Unlock()

	switch kind {
	case models.KindTopup:
		records, err := s.loadTopups(ctx)
		if err != nil {
			return err
		}
		kept := records[:0]
		found := false
		for _, r := range records {
			if r.Id == recordId {
				found = true
				continue
			}
			kept = append(kept, r)
		}
		if !found {
			return fmt.Errorf("%w: topup %s", store.ErrNotFound, recordId)
		}
		if err := s.os.Save(ctx, store.CollectionTopups, kept); err != nil {
			return err
		}
	case models.KindWithdrawal:
		records, err := s.loadWithdrawals(ctx)
		if err != nil {
			return err
		}
		kept := records[:0]
		found := false
		for _, r := range records {
			if r.Id == recordId {
				found = true
				continue
			}
			kept = append(kept, r)
		}
		if !found {
			return fmt.Errorf("%w: withdrawal %s", store.ErrNotFound, recordId)
		}
		if err := s.os.Save(ctx, store.CollectionWithdrawals, kept); err != nil {
			return err
		}
	case models.KindExchange:
		records, err := s.loadExchanges(ctx)
		if err != nil {
			return err
		}
		kept := records[:0]
		found := false
		for _, r := range records {
			if r.Id == recordId {
				found = true
				continue
			}
			kept = append(kept, r)
		}
		if !found {
			return fmt.Errorf("%w: exchange %s", store.ErrNotFound, recordId)
		}
		if err := s.os.Save(ctx, store.CollectionExchanges, kept); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: unknown record kind %q", store.ErrNotFound, kind)
	}

	zap.L().Info("Record deleted",
		zap.String("kind", string(kind)),
		zap.String("record_id", recordId))
	return nil
}
