package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction type tags used by the aggregated administrative feed.
// Topup records surface as "deposit" there, matching the admin UI wording.
const (
	TxTypeDeposit    = "deposit"
	TxTypeWithdrawal = "withdrawal"
	TxTypeExchange   = "exchange"
)

// Transaction is the unified read-only view over the three record
// collections, produced fresh on every aggregator call. Amount fields are
// pointers so fields foreign to a record kind stay out of the JSON entirely.
type Transaction struct {
	Id         string           `json:"id"`
	Type       string           `json:"type"`
	UserId     string           `json:"user_id"`
	Status     RecordStatus     `json:"status"`
	Coin       string           `json:"coin,omitempty"`
	Address    string           `json:"address,omitempty"`
	PhotoUrl   string           `json:"photo_url,omitempty"`
	Amount     *decimal.Decimal `json:"amount,omitempty"`
	FromCoin   string           `json:"from_coin,omitempty"`
	ToCoin     string           `json:"to_coin,omitempty"`
	FromAmount *decimal.Decimal `json:"from_amount,omitempty"`
	ToAmount   *decimal.Decimal `json:"to_amount,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}

// TopupSubmission carries a user's deposit request into the ledger engine.
type TopupSubmission struct {
	UserId   string          `json:"user_id"`
	Coin     string          `json:"coin"`
	Address  string          `json:"address"`
	PhotoUrl string          `json:"photo_url"`
	Amount   decimal.Decimal `json:"amount"`
}

// WithdrawalSubmission carries a user's withdrawal request.
type WithdrawalSubmission struct {
	UserId   string          `json:"user_id"`
	Coin     string          `json:"coin"`
	Address  string          `json:"address"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ExchangeSubmission carries a user's exchange request. Both amounts are
// supplied by the caller; rates are not sourced here.
type ExchangeSubmission struct {
	UserId     string          `json:"user_id"`
	FromCoin   string          `json:"from_coin"`
	ToCoin     string          `json:"to_coin"`
	FromAmount decimal.Decimal `json:"from_amount"`
	ToAmount   decimal.Decimal `json:"to_amount"`
}

// Registration is the wallet-connect upsert payload.
type Registration struct {
	Address   string `json:"address"`
	ChainId   string `json:"chain_id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Session   string `json:"session"`
	Token     string `json:"token"`
	Ip        string `json:"ip"`
	UserAgent string `json:"user_agent"`
}

// UserBalance represents a user's balance for a specific asset.
type UserBalance struct {
	Asset   string          `json:"asset"`
	Balance decimal.Decimal `json:"balance"`
}

// UserSummary is the admin listing view of a user.
type UserSummary struct {
	Id       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserStats is the admin detail view: the user plus counts of their
// activity across all record collections. Pending counts the review queue,
// so it includes processing records.
type UserStats struct {
	User        User `json:"user"`
	Deposits    int  `json:"deposits"`
	Withdrawals int  `json:"withdrawals"`
	Exchanges   int  `json:"exchanges"`
	Pending     int  `json:"pending"`
	Approved    int  `json:"approved"`
	Rejected    int  `json:"rejected"`
}
