package api

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

func (s *Server) handlePlaceBet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccountID int64  `json:"account_id"`
		MatchID   int64  `json:"match_id"`
		Outcome   string `json:"outcome"`
		Stake     int64  `json:"stake"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	bet, err := s.betting.PlaceBet(r.Context(), req.AccountID, req.MatchID, req.Outcome, req.Stake)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, bet)
}

func (s *Server) handleListMatches(w http.ResponseWriter, r *http.Request) {
	includeSettled := r.URL.Query().Get("include_settled") == "true"

	matches, err := s.matches.ListMatches(r.Context(), includeSettled, queryLimit(r, 50, 200))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"matches": matches})
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid match id")
		return
	}

	// Serve cached fixtures when possible; the cache is invalidated on
	// settlement so stale odds never outlive a result.
	if s.matchCache != nil {
		if match, err := s.matchCache.Get(r.Context(), id); err == nil && match != nil {
			writeJSON(w, http.StatusOK, match)
			return
		} else if err != nil {
			log.WithError(err).Warn("Match cache read failed")
		}
	}

	match, err := s.matches.GetMatch(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if s.matchCache != nil {
		if err := s.matchCache.Set(r.Context(), match); err != nil {
			log.WithError(err).Warn("Match cache write failed")
		}
	}

	writeJSON(w, http.StatusOK, match)
}

func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		HomeTeam  string             `json:"home_team"`
		AwayTeam  string             `json:"away_team"`
		Outcomes  map[string]float64 `json:"outcomes"`
		MatchDate time.Time          `json:"match_date"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	match, err := s.matches.CreateMatch(r.Context(), req.HomeTeam, req.AwayTeam, req.Outcomes, req.MatchDate)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, match)
}

func (s *Server) handleSettleMatch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid match id")
		return
	}

	var req struct {
		WinningOutcome string `json:"winning_outcome"`
		ScoreHome      *int   `json:"score_home"`
		ScoreAway      *int   `json:"score_away"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	start := time.Now()
	result, err := s.settlement.Settle(r.Context(), id, req.WinningOutcome, req.ScoreHome, req.ScoreAway)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if s.metrics != nil {
		s.metrics.SettlementDuration.Observe(time.Since(start).Seconds())
	}

	if s.matchCache != nil {
		s.matchCache.Invalidate(r.Context(), id)
	}

	writeJSON(w, http.StatusOK, result)
}
