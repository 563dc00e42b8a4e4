package api

import (
	"context"
	"fmt"

	"bvox-ledger-go/internal/ledger"
)

// LedgerService is the validation boundary in front of the ledger engine.
// Submissions are checked field by field here; the ledger below assumes
// well-formed input.
type LedgerService struct {
	ledger *ledger.Service
	assets map[string]bool
}

// NewLedgerService wires the ledger engine with the supported asset codes.
func NewLedgerService(l *ledger.Service, assetCodes []string) *LedgerService {
	assets := make(map[string]bool, len(assetCodes))
	for _, code := range assetCodes {
		assets[code] = true
	}
	return &LedgerService{ledger: l, assets: assets}
}

func (s *LedgerService) supportedAsset(code string) bool {
	return s.assets[code]
}

func (s *LedgerService) HealthCheck(ctx context.Context) error {
	if _, err := s.ledger.ListUsers(ctx); err != nil {
		return fmt.Errorf("storage health check failed: %w", err)
	}
	return nil
}
