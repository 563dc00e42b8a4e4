package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bvox-ledger-go/internal/models"
	"bvox-ledger-go/internal/store"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BalanceDelta is a signed quantity applied to one asset of a user's
// balances upon approval.
type BalanceDelta struct {
	Coin   string
	Amount decimal.Decimal
}

func (s *Service) loadUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.os.Load(ctx, store.CollectionUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func findUser(users []models.User, userId string) int {
	for i := range users {
		if users[i].Id == userId {
			return i
		}
	}
	return -1
}

// GetUser returns the user with the given id.
func (s *Service) GetUser(ctx context.Context, userId string) (*models.User, error) {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	idx := findUser(users, userId)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", store.ErrUserNotFound, userId)
	}
	user := users[idx]
	return &user, nil
}

// ListUsers returns every user in the directory.
func (s *Service) ListUsers(ctx context.Context) ([]models.User, error) {
	s.usersMu.RLock()
	defer s.usersMu.RUnlock()
	return s.loadUsers(ctx)
}

// UpsertUser inserts the user or replaces the stored entry with the same id.
func (s *Service) UpsertUser(ctx context.Context, user models.User) (*models.User, error) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user.UpdatedAt = now
	if user.Balances == nil {
		user.Balances = map[string]decimal.Decimal{}
	}

	idx := findUser(users, user.Id)
	if idx < 0 {
		user.CreatedAt = now
		users = append(users, user)
	} else {
		// Balances and the applied log are owned by the approval workflow;
		// an upsert never resets them.
		user.CreatedAt = users[idx].CreatedAt
		user.Balances = users[idx].Balances
		user.AppliedRecords = users[idx].AppliedRecords
		users[idx] = user
	}

	if err := s.os.Save(ctx, store.CollectionUsers, users); err != nil {
		return nil, err
	}

	zap.L().Info("User upserted",
		zap.String("user_id", user.Id),
		zap.String("username", user.Username))
	return &user, nil
}

// UpsertUserByWallet inserts the user or, when a user with the same wallet
// address already exists (case-insensitive), updates that identity in place.
// Lookup and write run under one lock, so two concurrent registrations of
// the same wallet resolve to a single user id.
func (s *Service) UpsertUserByWallet(ctx context.Context, user models.User) (*models.User, error) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user.UpdatedAt = now
	if user.Balances == nil {
		user.Balances = map[string]decimal.Decimal{}
	}

	idx := -1
	for i := range users {
		if strings.EqualFold(users[i].WalletAddress, user.WalletAddress) {
			idx = i
			break
		}
	}
	if idx >= 0 {
		existing := users[idx]
		user.Id = existing.Id
		user.CreatedAt = existing.CreatedAt
		user.Balances = existing.Balances
		user.AppliedRecords = existing.AppliedRecords
		if user.Username == "" {
			user.Username = existing.Username
		}
		if user.Email == "" {
			user.Email = existing.Email
		}
	} else {
		user.CreatedAt = now
	}
	if user.Username == "" {
		user.Username = "User"
	}
	if idx >= 0 {
		users[idx] = user
	} else {
		users = append(users, user)
	}

	if err := s.os.Save(ctx, store.CollectionUsers, users); err != nil {
		return nil, err
	}

	zap.L().Info("User upserted by wallet",
		zap.String("user_id", user.Id),
		zap.String("wallet_address", user.WalletAddress),
		zap.Bool("existing", idx >= 0))
	return &user, nil
}

// GetBalances returns the user's full asset map.
func (s *Service) GetBalances(ctx context.Context, userId string) (map[string]decimal.Decimal, error) {
	user, err := s.GetUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	return user.Balances, nil
}

// SetBalances overwrites all asset quantities for one user (administrative
// direct-set). The applied-record log is left intact.
func (s *Service) SetBalances(ctx context.Context, userId string, balances map[string]decimal.Decimal) (*models.User, error) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return nil, err
	}
	idx := findUser(users, userId)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", store.ErrUserNotFound, userId)
	}

	users[idx].Balances = balances
	users[idx].UpdatedAt = time.Now().UTC()
	if err := s.os.Save(ctx, store.CollectionUsers, users); err != nil {
		return nil, err
	}

	user := users[idx]
	zap.L().Info("User balances set directly",
		zap.String("user_id", userId),
		zap.Int("assets", len(balances)))
	return &user, nil
}

// applyDeltas adds the signed deltas to the user's balances, clamping each
// resulting quantity at zero, and persists the user list in a single save.
// The write is keyed by recordId: a record whose deltas already reached this
// user is skipped, so replays after a crash between the balance save and the
// record-status save cannot double-apply. All deltas land in one document
// write, so an exchange's debit and credit apply together or not at all.
func (s *Service) applyDeltas(ctx context.Context, userId, recordId string, deltas []BalanceDelta) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return err
	}
	idx := findUser(users, userId)
	if idx < 0 {
		return fmt.Errorf("%w: %s", store.ErrUserNotFound, userId)
	}

	if users[idx].DeltaApplied(recordId) {
		zap.L().Warn("Balance delta already applied, skipping",
			zap.String("user_id", userId),
			zap.String("record_id", recordId))
		return nil
	}

	if users[idx].Balances == nil {
		users[idx].Balances = map[string]decimal.Decimal{}
	}
	for _, d := range deltas {
		next := users[idx].Balances[d.Coin].Add(d.Amount)
		if next.IsNegative() {
			zap.L().Warn("Balance clamped to zero on over-debit",
				zap.String("user_id", userId),
				zap.String("coin", d.Coin),
				zap.String("delta", d.Amount.String()))
			next = decimal.Zero
		}
		users[idx].Balances[d.Coin] = next
	}
	users[idx].AppliedRecords = append(users[idx].AppliedRecords, recordId)
	users[idx].UpdatedAt = time.Now().UTC()

	if err := s.os.Save(ctx, store.CollectionUsers, users); err != nil {
		return err
	}

	for _, d := range deltas {
		zap.L().Info("Balance delta applied",
			zap.String("user_id", userId),
			zap.String("record_id", recordId),
			zap.String("coin", d.Coin),
			zap.String("delta", d.Amount.String()),
			zap.String("new_balance", users[idx].Balances[d.Coin].String()))
	}
	return nil
}
