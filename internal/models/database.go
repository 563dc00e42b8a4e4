package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordStatus is the lifecycle state of a financial record.
type RecordStatus string

const (
	StatusPending    RecordStatus = "pending"
	StatusProcessing RecordStatus = "processing"
	StatusApproved   RecordStatus = "approved"
	StatusRejected   RecordStatus = "rejected"
)

// IsTerminal reports whether the status permits no further transitions.
func (s RecordStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// RecordKind identifies a record collection.
type RecordKind string

const (
	KindTopup      RecordKind = "topup"
	KindWithdrawal RecordKind = "withdrawal"
	KindExchange   RecordKind = "exchange"
)

// ParseRecordStatus validates a status string coming from a caller.
func ParseRecordStatus(status string) (RecordStatus, bool) {
	switch RecordStatus(status) {
	case StatusPending, StatusProcessing, StatusApproved, StatusRejected:
		return RecordStatus(status), true
	}
	return "", false
}

// ParseRecordKind validates a kind string coming from a caller.
func ParseRecordKind(kind string) (RecordKind, bool) {
	switch RecordKind(kind) {
	case KindTopup, KindWithdrawal, KindExchange:
		return RecordKind(kind), true
	}
	return "", false
}

// User represents a user in the system. Balances is the per-asset quantity
// map mutated only by the approval workflow and admin direct-set.
// AppliedRecords lists the record ids whose balance deltas have already been
// applied to this user; it is saved in the same document write as the
// balance change so delta application stays at-most-once per record.
type User struct {
	Id             string                     `json:"id"`
	Username       string                     `json:"username"`
	Email          string                     `json:"email"`
	WalletAddress  string                     `json:"wallet_address,omitempty"`
	ChainId        string                     `json:"chain_id,omitempty"`
	Balances       map[string]decimal.Decimal `json:"balances"`
	AppliedRecords []string                   `json:"applied_records,omitempty"`
	CreatedAt      time.Time                  `json:"created_at"`
	UpdatedAt      time.Time                  `json:"updated_at"`
}

// DeltaApplied reports whether recordId's balance delta already hit this user.
func (u *User) DeltaApplied(recordId string) bool {
	for _, id := range u.AppliedRecords {
		if id == recordId {
			return true
		}
	}
	return false
}

// TopupRecord is a user-submitted deposit awaiting review.
type TopupRecord struct {
	Id        string          `json:"id"`
	UserId    string          `json:"user_id"`
	Coin      string          `json:"coin"`
	Address   string          `json:"address"`
	PhotoUrl  string          `json:"photo_url"`
	Amount    decimal.Decimal `json:"amount"`
	Status    RecordStatus    `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// WithdrawalRecord is a user-submitted withdrawal awaiting review.
type WithdrawalRecord struct {
	Id        string          `json:"id"`
	UserId    string          `json:"user_id"`
	Coin      string          `json:"coin"`
	Address   string          `json:"address"`
	Quantity  decimal.Decimal `json:"quantity"`
	Status    RecordStatus    `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// ExchangeRecord is a user-submitted currency exchange awaiting review.
// Amounts on both legs are externally supplied; no rate sourcing happens here.
type ExchangeRecord struct {
	Id         string          `json:"id"`
	UserId     string          `json:"user_id"`
	FromCoin   string          `json:"from_coin"`
	ToCoin     string          `json:"to_coin"`
	FromAmount decimal.Decimal `json:"from_amount"`
	ToAmount   decimal.Decimal `json:"to_amount"`
	Status     RecordStatus    `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}
