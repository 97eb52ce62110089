package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"betsim/config"
	"betsim/crash"
	"betsim/domain/interfaces"
	"betsim/infrastructure"
	"betsim/infrastructure/observability"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
)

// Server is the public HTTP API
type Server struct {
	accounts   interfaces.AccountService
	journal    interfaces.JournalService
	betting    interfaces.BettingService
	settlement interfaces.SettlementService
	matches    interfaces.MatchService
	promos     interfaces.PromoService
	engine     *crash.Engine
	rounds     interfaces.CrashRoundRepository
	matchCache *infrastructure.MatchCache
	metrics    *observability.Metrics
	adminToken string
	httpServer *http.Server
}

// ServerDeps bundles the service dependencies for the API server
type ServerDeps struct {
	Accounts   interfaces.AccountService
	Journal    interfaces.JournalService
	Betting    interfaces.BettingService
	Settlement interfaces.SettlementService
	Matches    interfaces.MatchService
	Promos     interfaces.PromoService
	Engine     *crash.Engine
	Rounds     interfaces.CrashRoundRepository
	MatchCache *infrastructure.MatchCache
	Metrics    *observability.Metrics
}

// NewServer creates the API server
func NewServer(cfg *config.Config, deps ServerDeps) *Server {
	return &Server{
		accounts:   deps.Accounts,
		journal:    deps.Journal,
		betting:    deps.Betting,
		settlement: deps.Settlement,
		matches:    deps.Matches,
		promos:     deps.Promos,
		engine:     deps.Engine,
		rounds:     deps.Rounds,
		matchCache: deps.MatchCache,
		metrics:    deps.Metrics,
		adminToken: cfg.AdminToken,
	}
}

// Start blocks serving HTTP until the server is shut down
func (s *Server) Start(port string) error {
	router := mux.NewRouter()
	router.Use(s.loggingMiddleware)

	router.HandleFunc("/health", s.handleHealth).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/accounts", s.handleRegisterAccount).Methods("POST")
	api.HandleFunc("/accounts/{id}", s.handleGetAccount).Methods("GET")
	api.HandleFunc("/accounts/{id}/ledger", s.handleGetLedger).Methods("GET")
	api.HandleFunc("/accounts/{id}/transactions", s.handleGetTransactions).Methods("GET")
	api.HandleFunc("/accounts/{id}/bets", s.handleGetBets).Methods("GET")

	api.HandleFunc("/deposits", s.handleCreateDeposit).Methods("POST")
	api.HandleFunc("/deposits/{txid}/confirm", s.handleConfirmDeposit).Methods("POST")
	api.HandleFunc("/withdrawals", s.handleCreateWithdraw).Methods("POST")

	api.HandleFunc("/matches", s.handleListMatches).Methods("GET")
	api.HandleFunc("/matches", s.requireAdmin(s.handleCreateMatch)).Methods("POST")
	api.HandleFunc("/matches/{id}", s.handleGetMatch).Methods("GET")
	api.HandleFunc("/matches/{id}/settle", s.requireAdmin(s.handleSettleMatch)).Methods("POST")
	api.HandleFunc("/bets", s.handlePlaceBet).Methods("POST")

	api.HandleFunc("/admin/credit", s.requireAdmin(s.handleAdminCredit)).Methods("POST")
	api.HandleFunc("/promos/redeem", s.handleRedeemPromo).Methods("POST")

	api.HandleFunc("/crash/bets", s.handleCrashBet).Methods("POST")
	api.HandleFunc("/crash/cashout", s.handleCrashCashout).Methods("POST")
	api.HandleFunc("/crash/round", s.handleCrashRound).Methods("GET")
	api.HandleFunc("/crash/history", s.handleCrashHistory).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	s.httpServer = &http.Server{
		Addr:         ":" + port,
		Handler:      c.Handler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.WithField("addr", s.httpServer.Addr).Info("API server listening")
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

// requireAdmin gates privileged routes behind the admin bearer token
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.adminToken == "" || r.Header.Get("Authorization") != "Bearer "+s.adminToken {
			writeError(w, http.StatusForbidden, "admin token required")
			return
		}
		next(w, r)
	}
}

// statusRecorder captures the response code for logging and metrics
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tmpl, err := current.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}

		if s.metrics != nil {
			s.metrics.HTTPRequestDuration.
				WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).
				Observe(elapsed.Seconds())
		}

		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": elapsed,
		}).Debug("HTTP request")
	})
}
