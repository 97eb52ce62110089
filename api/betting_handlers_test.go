package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"betsim/config"
	"betsim/domain/entities"
	"betsim/domain/interfaces"
	"betsim/infrastructure/observability"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSettlementService struct {
	result *interfaces.SettlementResult
	err    error
}

func (s *stubSettlementService) Settle(ctx context.Context, matchID int64, winningOutcome string, scoreHome, scoreAway *int) (*interfaces.SettlementResult, error) {
	return s.result, s.err
}

func settleRequest(matchID string) *http.Request {
	body := bytes.NewBufferString(`{"winning_outcome":"home"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/matches/"+matchID+"/settle", body)
	return mux.SetURLVars(req, map[string]string{"id": matchID})
}

func TestHandleSettleMatch_RecordsDuration(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	metrics := observability.NewMetrics()
	server := NewServer(config.Get(), ServerDeps{
		Settlement: &stubSettlementService{
			result: &interfaces.SettlementResult{MatchID: 5, WinningOutcome: "home"},
		},
		Metrics: metrics,
	})

	rec := httptest.NewRecorder()
	server.handleSettleMatch(rec, settleRequest("5"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint64(1), settlementSampleCount(t, metrics))
}

func TestHandleSettleMatch_FailureNotRecorded(t *testing.T) {
	config.SetTestConfig(config.NewTestConfig())
	defer config.ResetConfig()

	metrics := observability.NewMetrics()
	server := NewServer(config.Get(), ServerDeps{
		Settlement: &stubSettlementService{err: entities.ErrAlreadySettled},
		Metrics:    metrics,
	})

	rec := httptest.NewRecorder()
	server.handleSettleMatch(rec, settleRequest("5"))

	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, uint64(0), settlementSampleCount(t, metrics))
}

func settlementSampleCount(t *testing.T, metrics *observability.Metrics) uint64 {
	t.Helper()
	families, err := metrics.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "betsim_settlement_duration_seconds" {
			return mf.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	return 0
}
