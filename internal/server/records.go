package server

import (
	"net/http"

	"bvox-ledger-go/internal/models"
	"bvox-ledger-go/internal/store"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) SubmitTopup(w http.ResponseWriter, r *http.Request) {
	var sub models.TopupSubmission
	if err := decode(r, &sub); err != nil {
		writeError(w, err)
		return
	}
	record, err := h.svc.SubmitTopup(r.Context(), sub)
	if err != nil {
		writeError(w, err)
		return
	}
	js(w, http.StatusCreated, record)
}

func (h *Handler) ListUserTopups(w http.ResponseWriter, r *http.Request) {
	userId := r.URL.Query().Get("user_id")
	records, err := h.svc.GetUserTopups(r.Context(), userId)
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []models.TopupRecord{}
	}
	js(w, http.StatusOK, records)
}

func (h *Handler) SubmitWithdrawal(w http.ResponseWriter, r *http.Request) {
	var sub models.WithdrawalSubmission
	if err := decode(r, &sub); err != nil {
		writeError(w, err)
		return
	}
	record, err := h.svc.SubmitWithdrawal(r.Context(), sub)
	if err != nil {
		writeError(w, err)
		return
	}
	js(w, http.StatusCreated, record)
}

func (h *Handler) ListUserWithdrawals(w http.ResponseWriter, r *http.Request) {
	userId := r.URL.Query().Get("user_id")
	records, err := h.svc.GetUserWithdrawals(r.Context(), userId)
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []models.WithdrawalRecord{}
	}
	js(w, http.StatusOK, records)
}

func (h *Handler) SubmitExchange(w http.ResponseWriter, r *http.Request) {
	var sub models.ExchangeSubmission
	if err := decode(r, &sub); err != nil {
		writeError(w, err)
		return
	}
	record, err := h.svc.SubmitExchange(r.Context(), sub)
	if err != nil {
		writeError(w, err)
		return
	}
	js(w, http.StatusCreated, record)
}

func (h *Handler) ListUserExchanges(w http.ResponseWriter, r *http.Request) {
	userId := r.URL.Query().Get("user_id")
	records, err := h.svc.GetUserExchanges(r.Context(), userId)
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []models.ExchangeRecord{}
	}
	js(w, http.StatusOK, records)
}

func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	kind, ok := recordKind(r)
	if !ok {
		writeError(w, store.NewValidationError("kind", "must be topup, withdrawal or exchange"))
		return
	}
	records, err := h.svc.ListAllRecords(r.Context(), kind, r.URL.Query().Get("status"))
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []models.Transaction{}
	}
	js(w, http.StatusOK, records)
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	kind, ok := recordKind(r)
	if !ok {
		writeError(w, store.NewValidationError("kind", "must be topup, withdrawal or exchange"))
		return
	}
	tx, err := h.svc.Approve(r.Context(), kind, chi.URLParam(r, "recordId"))
	if err != nil {
		writeError(w, err)
		return
	}
	js(w, http.StatusOK, tx)
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	kind, ok := recordKind(r)
	if !ok {
		writeError(w, store.NewValidationError("kind", "must be topup, withdrawal or exchange"))
		return
	}
	tx, err := h.svc.Reject(r.Context(), kind, chi.URLParam(r, "recordId"))
	if err != nil {
		writeError(w, err)
		return
	}
	js(w, http.StatusOK, tx)
}

func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	kind, ok := recordKind(r)
	if !ok {
		writeError(w, store.NewValidationError("kind", "must be topup, withdrawal or exchange"))
		return
	}
	if err := h.svc.Delete(r.Context(), kind, chi.URLParam(r, "recordId")); err != nil {
		writeError(w, err)
		return
	}
	js(w, http.StatusOK, map[string]string{"status": "deleted"})
}
