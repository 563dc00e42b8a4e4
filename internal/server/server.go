package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"bvox-ledger-go/internal/api"
	"bvox-ledger-go/internal/models"
	"bvox-ledger-go/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	svc *api.LedgerService
}

func New(svc *api.LedgerService) *Handler {
	return &Handler{svc: svc}
}

type errResp struct {
	Error string `json:"error"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", h.Register)

		r.Post("/topups", h.SubmitTopup)
		r.Get("/topups", h.ListUserTopups)
		r.Post("/withdrawals", h.SubmitWithdrawal)
		r.Get("/withdrawals", h.ListUserWithdrawals)
		r.Post("/exchanges", h.SubmitExchange)
		r.Get("/exchanges", h.ListUserExchanges)

		r.Get("/users/{userId}/balances", h.GetBalances)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/users", h.ListUsers)
			r.Post("/users/search", h.SearchUsers)
			r.Get("/users/{userId}/stats", h.UserStats)
			r.Put("/users/{userId}/balances", h.SetBalances)

			r.Get("/records/{kind}", h.ListRecords)
			r.Post("/records/{kind}/{recordId}/approve", h.Approve)
			r.Post("/records/{kind}/{recordId}/reject", h.Reject)
			r.Delete("/records/{kind}/{recordId}", h.DeleteRecord)

			r.Get("/transactions", h.ListTransactions)
			r.Get("/transactions/{recordId}", h.TransactionDetail)
		})
	})
}

func js(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("Failed to encode response", zap.Error(err))
	}
}

// writeError maps the ledger error taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		js(w, http.StatusBadRequest, errResp{Error: verr.Error()})
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrUserNotFound):
		js(w, http.StatusNotFound, errResp{Error: err.Error()})
	case errors.Is(err, store.ErrAlreadyFinalized):
		js(w, http.StatusConflict, errResp{Error: err.Error()})
	default:
		zap.L().Error("Request failed", zap.Error(err))
		js(w, http.StatusInternalServerError, errResp{Error: "internal error"})
	}
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return store.NewValidationError("body", "malformed JSON")
	}
	return nil
}

func recordKind(r *http.Request) (models.RecordKind, bool) {
	return models.ParseRecordKind(chi.URLParam(r, "kind"))
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.HealthCheck(r.Context()); err != nil {
		js(w, http.StatusServiceUnavailable, errResp{Error: "storage unavailable"})
		return
	}
	js(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var reg models.Registration
	if err := decode(r, &reg); err != nil {
		writeError(w, err)
		return
	}
	reg.Ip = r.RemoteAddr
	reg.UserAgent = r.UserAgent()

	user, err := h.svc.RegisterUser(r.Context(), reg)
	if err != nil {
		writeError(w, err)
		return
	}
	js(w, http.StatusOK, user)
}
