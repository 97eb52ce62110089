package api

import (
	"net/http"
)

func (s *Server) handleCrashBet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccountID   int64   `json:"account_id"`
		Stake       int64   `json:"stake"`
		AutoCashout float64 `json:"auto_cashout"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	roundID, err := s.engine.PlaceBet(r.Context(), req.AccountID, req.Stake, req.AutoCashout)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"round_id": roundID})
}

func (s *Server) handleCrashCashout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccountID int64 `json:"account_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	result, err := s.engine.Cashout(r.Context(), req.AccountID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"round_id":   result.RoundID,
		"multiplier": result.Multiplier,
		"payout":     result.Payout,
	})
}

func (s *Server) handleCrashRound(w http.ResponseWriter, r *http.Request) {
	snap, err := s.engine.Snapshot(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleCrashHistory(w http.ResponseWriter, r *http.Request) {
	rounds, err := s.rounds.GetRecent(r.Context(), queryLimit(r, 20, 100))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"rounds": rounds})
}
