package api

import (
	"context"
	"strings"

	"bvox-ledger-go/internal/models"
	"bvox-ledger-go/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RegisterUser upserts a user from a wallet-connect registration. No
// signature verification happens here; the wallet layer is an external
// collaborator and the address is taken at face value. The wallet dedupe
// runs inside the ledger's locked upsert: a returning wallet keeps its
// identity, and concurrent registrations of one wallet yield one user.
func (s *LedgerService) RegisterUser(ctx context.Context, reg models.Registration) (*models.User, error) {
	if reg.Address == "" {
		return nil, store.NewValidationError("address", "required")
	}

	candidate := models.User{
		Id:            uuid.New().String(),
		Username:      reg.Username,
		Email:         reg.Email,
		WalletAddress: reg.Address,
		ChainId:       reg.ChainId,
	}

	user, err := s.ledger.UpsertUserByWallet(ctx, candidate)
	if err != nil {
		return nil, err
	}

	zap.L().Info("User registered",
		zap.String("user_id", user.Id),
		zap.String("wallet_address", reg.Address))
	return user, nil
}

// GetUser returns one user by id.
func (s *LedgerService) GetUser(ctx context.Context, userId string) (*models.User, error) {
	if userId == "" {
		return nil, store.NewValidationError("user_id", "required")
	}
	return s.ledger.GetUser(ctx, userId)
}

// ListUsers returns admin summaries of every user.
func (s *LedgerService) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	users, err := s.ledger.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, summary(u))
	}
	return out, nil
}

// SearchUsers matches the term against user ids and usernames,
// case-insensitively for usernames.
func (s *LedgerService) SearchUsers(ctx context.Context, term string) ([]models.UserSummary, error) {
	users, err := s.ledger.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	lower := strings.ToLower(term)
	var out []models.UserSummary
	for _, u := range users {
		if strings.Contains(u.Id, term) || strings.Contains(strings.ToLower(u.Username), lower) {
			out = append(out, summary(u))
		}
	}
	return out, nil
}

func summary(u models.User) models.UserSummary {
	username := u.Username
	if username == "" {
		username = "User"
	}
	email := u.Email
	if email == "" {
		email = "N/A"
	}
	return models.UserSummary{Id: u.Id, Username: username, Email: email}
}
