package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/google/uuid"
)

func (s *Server) handleCreateDeposit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccountID int64 `json:"account_id"`
		Amount    int64 `json:"amount"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	tx, err := s.journal.CreateDeposit(r.Context(), req.AccountID, req.Amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if s.metrics != nil {
		s.metrics.DepositsCreated.Inc()
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"txid":              tx.TxID,
		"payment_reference": tx.PaymentReference,
		"expires_at":        tx.ExpiresAt,
	})
}

func (s *Server) handleConfirmDeposit(w http.ResponseWriter, r *http.Request) {
	txid := mux.Vars(r)["txid"]
	if _, err := uuid.Parse(txid); err != nil {
		writeError(w, http.StatusBadRequest, "invalid txid")
		return
	}

	status, err := s.journal.ConfirmDeposit(r.Context(), txid)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": status})
}

func (s *Server) handleCreateWithdraw(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccountID int64 `json:"account_id"`
		Amount    int64 `json:"amount"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	tx, err := s.journal.CreateWithdraw(r.Context(), req.AccountID, req.Amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	estimated := ""
	if tx.Metadata != nil {
		if v, ok := tx.Metadata["estimated_time"].(string); ok {
			estimated = v
		}
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"txid":           tx.TxID,
		"status":         tx.Status,
		"estimated_time": estimated,
	})
}
