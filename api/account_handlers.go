package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	return id, err == nil && id > 0
}

func queryLimit(r *http.Request, fallback, max int) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > max {
		return fallback
	}
	return limit
}

func (s *Server) handleRegisterAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	account, err := s.accounts.Register(r.Context(), req.Username)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, account)
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	account, err := s.accounts.GetAccount(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, account)
}

func (s *Server) handleGetLedger(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	entries, err := s.accounts.GetLedger(r.Context(), id, queryLimit(r, 50, 200))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) handleGetTransactions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	txs, err := s.journal.GetTransactions(r.Context(), id, queryLimit(r, 50, 200))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"transactions": txs})
}

func (s *Server) handleGetBets(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	bets, err := s.betting.GetBets(r.Context(), id, queryLimit(r, 50, 200))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"bets": bets})
}

func (s *Server) handleAdminCredit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UsernameOrID string `json:"username_or_id"`
		Amount       int64  `json:"amount"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	newBalance, err := s.accounts.CreditAccount(r.Context(), req.UsernameOrID, req.Amount)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"new_balance": newBalance})
}
