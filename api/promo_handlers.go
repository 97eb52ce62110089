package api

import (
	"net/http"
)

func (s *Server) handleRedeemPromo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccountID int64  `json:"account_id"`
		Code      string `json:"code"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.promos.Redeem(r.Context(), req.AccountID, req.Code)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"bonus_credited": result.BonusCredited,
		"new_balance":    result.NewBalance,
	})
}
