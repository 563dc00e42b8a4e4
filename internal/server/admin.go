package server

import (
	"net/http"

	"bvox-ledger-go/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if users == nil {
		users = []models.UserSummary{}
	}
	js(w, http.StatusOK, users)
}

func (h *Handler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SearchTerm string `json:"searchTerm"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	users, err := h.svc.SearchUsers(r.Context(), req.SearchTerm)
	if err != nil {
		writeError(w, err)
		return
	}
	if users == nil {
		users = []models.UserSummary{}
	}
	js(w, http.StatusOK, users)
}

func (h *Handler) GetBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.svc.GetUserBalances(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	js(w, http.StatusOK, balances)
}

func (h *Handler) SetBalances(w http.ResponseWriter, r *http.Request) {
	var balances map[string]decimal.Decimal
	if err := decode(r, &balances); err != nil {
		writeError(w, err)
		return
	}
	user, err := h.svc.SetUserBalances(r.Context(), chi.URLParam(r, "userId"), balances)
	if err != nil {
		writeError(w, err)
		return
	}
	js(w, http.StatusOK, user)
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	userId := q.Get("user_id")
	txType := q.Get("type")
	status := q.Get("status")

	var (
		txs []models.Transaction
		err error
	)
	if userId == "" && txType == "" && status == "" {
		txs, err = h.svc.ListTransactions(r.Context())
	} else {
		txs, err = h.svc.SearchTransactions(r.Context(), userId, txType, status)
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	js(w, http.StatusOK, txs)
}

func (h *Handler) UserStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.GetUserStats(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	js(w, http.StatusOK, stats)
}

func (h *Handler) TransactionDetail(w http.ResponseWriter, r *http.Request) {
	tx, err := h.svc.GetTransactionDetail(r.Context(), chi.URLParam(r, "recordId"))
	if err != nil {
		writeError(w, err)
		return
	}
	js(w, http.StatusOK, tx)
}
