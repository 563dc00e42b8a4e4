package ledger

import (
	"context"
	"fmt"
	"time"

	"bvox-ledger-go/internal/models"
	"bvox-ledger-go/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *Service) loadTopups(ctx context.Context) ([]models.TopupRecord, error) {
	var records []models.TopupRecord
	if err := s.os.Load(ctx, store.CollectionTopups, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Service) loadWithdrawals(ctx context.Context) ([]models.WithdrawalRecord, error) {
	var records []models.WithdrawalRecord
	if err := s.os.Load(ctx, store.CollectionWithdrawals, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Service) loadExchanges(ctx context.Context) ([]models.ExchangeRecord, error) {
	var records []models.ExchangeRecord
	if err := s.os.Load(ctx, store.CollectionExchanges, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CreateTopup persists a new pending topup record and returns it.
func (s *Service) CreateTopup(ctx context.Context, sub models.TopupSubmission) (*models.TopupRecord, error) {
	record := models.TopupRecord{
		Id:        uuid.New().String(),
		UserId:    sub.UserId,
		Coin:      sub.Coin,
		Address:   sub.Address,
		PhotoUrl:  sub.PhotoUrl,
		Amount:    sub.Amount,
		Status:    models.StatusPending,
		CreatedAt: time.Now().UTC(),
	}

	s.topupsMu.Lock()
	defer s.topupsMu.Unlock()

	records, err := s.loadTopups(ctx)
	if err != nil {
		return nil, err
	}
	records = append(records, record)
	if err := s.os.Save(ctx, store.CollectionTopups, records); err != nil {
		return nil, err
	}

	zap.L().Info("Topup record created",
		zap.String("record_id", record.Id),
		zap.String("user_id", record.UserId),
		zap.String("coin", record.Coin),
		zap.String("amount", record.Amount.String()))
	return &record, nil
}

// CreateWithdrawal persists a new pending withdrawal record and returns it.
func (s *Service) CreateWithdrawal(ctx context.Context, sub models.WithdrawalSubmission) (*models.WithdrawalRecord, error) {
	record := models.WithdrawalRecord{
		Id:        uuid.New().String(),
		UserId:    sub.UserId,
		Coin:      sub.Coin,
		Address:   sub.Address,
		Quantity:  sub.Quantity,
		Status:    models.StatusPending,
		CreatedAt: time.Now().UTC(),
	}

	s.withdrawalsMu.Lock()
	defer s.withdrawalsMu.Unlock()

	records, err := s.loadWithdrawals(ctx)
	if err != nil {
		return nil, err
	}
	records = append(records, record)
	if err := s.os.Save(ctx, store.CollectionWithdrawals, records); err != nil {
		return nil, err
	}

	zap.L().Info("Withdrawal record created",
		zap.String("record_id", record.Id),
		zap.String("user_id", record.UserId),
		zap.String("coin", record.Coin),
		zap.String("quantity", record.Quantity.String()))
	return &record, nil
}

// CreateExchange persists a new pending exchange record and returns it.
func (s *Service) CreateExchange(ctx context.Context, sub models.ExchangeSubmission) (*models.ExchangeRecord, error) {
	record := models.ExchangeRecord{
		Id:         uuid.New().String(),
		UserId:     sub.UserId,
		FromCoin:   sub.FromCoin,
		ToCoin:     sub.ToCoin,
		FromAmount: sub.FromAmount,
		ToAmount:   sub.ToAmount,
		Status:     models.StatusPending,
		CreatedAt:  time.Now().UTC(),
	}

	s.exchangesMu.Lock()
	defer s.exchangesMu.Unlock()

	records, err := s.loadExchanges(ctx)
	if err != nil {
		return nil, err
	}
	records = append(records, record)
	if err := s.os.Save(ctx, store.CollectionExchanges, records); err != nil {
		return nil, err
	}

	zap.L().Info("Exchange record created",
		zap.String("record_id", record.Id),
		zap.String("user_id", record.UserId),
		zap.String("from_coin", record.FromCoin),
		zap.String("to_coin", record.ToCoin))
	return &record, nil
}

// ListTopupsByUser returns a user's topup records in insertion order.
func (s *Service) ListTopupsByUser(ctx context.Context, userId string) ([]models.TopupRecord, error) {
	s.topupsMu.RLock()
	defer s.topupsMu.RUnlock()

	records, err := s.loadTopups(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.TopupRecord
	for _, r := range records {
		if r.UserId == userId {
			out = append(out, r)
		}
	}
	return out, nil
}

// ListWithdrawalsByUser returns a user's withdrawal records in insertion order.
func (s *Service) ListWithdrawalsByUser(ctx context.Context, userId string) ([]models.WithdrawalRecord, error) {
	s.withdrawalsMu.RLock()
	defer s.withdrawalsMu.RUnlock()

	records, err := s.loadWithdrawals(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.WithdrawalRecord
	for _, r := range records {
		if r.UserId == userId {
			out = append(out, r)
		}
	}
	return out, nil
}

// ListExchangesByUser returns a user's exchange records in insertion order.
func (s *Service) ListExchangesByUser(ctx context.Context, userId string) ([]models.ExchangeRecord, error) {
	s.exchangesMu.RLock()
	defer s.exchangesMu.RUnlock()

	records, err := s.loadExchanges(ctx)
	if err != nil {
		return nil, err
	}
	var out []models.ExchangeRecord
	for _, r := range records {
		if r.UserId == userId {
			out = append(out, r)
		}
	}
	return out, nil
}

// ListAllTopups returns every topup record (admin view).
func (s *Service) ListAllTopups(ctx context.Context) ([]models.TopupRecord, error) {
	s.topupsMu.RLock()
	defer s.topupsMu.RUnlock()
	return s.loadTopups(ctx)
}

// ListAllWithdrawals returns every withdrawal record (admin view).
func (s *Service) ListAllWithdrawals(ctx context.Context) ([]models.WithdrawalRecord, error) {
	s.withdrawalsMu.RLock()
	defer s.withdrawalsMu.RUnlock()
	return s.loadWithdrawals(ctx)
}

// ListAllExchanges returns every exchange record (admin view).
func (s *Service) ListAllExchanges(ctx context.Context) ([]models.ExchangeRecord, error) {
	s.exchangesMu.RLock()
	defer s.exchangesMu.RUnlock()
	return s.loadExchanges(ctx)
}

// FindRecord looks up a record by kind and id, returned as the unified
// transaction view.
func (s *Service) FindRecord(ctx context.Context, kind models.RecordKind, recordId string) (*models.Transaction, error) {
	mu := s.recordLock(kind)
	mu.RLock()
	defer mu.RUnlock()

	switch kind {
	case models.KindTopup:
		records, err := s.loadTopups(ctx)
		if err != nil {
			return nil, err
		}
		for i := range records {
			if records[i].Id == recordId {
				tx := topupView(records[i])
				return &tx, nil
			}
		}
	case models.KindWithdrawal:
		records, err := s.loadWithdrawals(ctx)
		if err != nil {
			return nil, err
		}
		for i := range records {
			if records[i].Id == recordId {
				tx := withdrawalView(records[i])
				return &tx, nil
			}
		}
	case models.KindExchange:
		records, err := s.loadExchanges(ctx)
		if err != nil {
			return nil, err
		}
		for i := range records {
			if records[i].Id == recordId {
				tx := exchangeView(records[i])
				return &tx, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s %s", store.ErrNotFound, kind, recordId)
}
