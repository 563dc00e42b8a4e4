package ledger

import (
	"sync"

	"bvox-ledger-go/internal/models"
	"bvox-ledger-go/internal/store"

	"go.uber.org/zap"
)

// Service is the ledger and approval engine. Every persisted collection is a
// whole document in the object store, so the unit of atomicity is the full
// collection: each collection gets its own lock and every load-mutate-save
// runs under it. Lock order is always record collection before users.
type Service struct {
	os store.ObjectStore

	topupsMu      sync.RWMutex
	withdrawalsMu sync.RWMutex
	exchangesMu   sync.RWMutex
	usersMu       sync.RWMutex
}

func NewService(os store.ObjectStore) *Service {
	return &Service{os: os}
}

// recordLock returns the lock guarding the collection for kind.
func (s *Service) recordLock(kind models.RecordKind) *sync.RWMutex {
	switch kind {
	case models.KindTopup:
		return &s.topupsMu
	case models.KindWithdrawal:
		return &s.withdrawalsMu
	default:
		return &s.exchangesMu
	}
}

func (s *Service) Close() {
	if err := s.os.Close(); err != nil {
		zap.L().Warn("Failed to close object store", zap.Error(err))
	}
}
