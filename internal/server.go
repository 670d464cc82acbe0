package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/dkovacev/ironlog/internal/config"
	"github.com/dkovacev/ironlog/internal/db"
	"github.com/dkovacev/ironlog/internal/extract"
	"github.com/dkovacev/ironlog/internal/middleware"
	"github.com/dkovacev/ironlog/internal/telemetry/metrics"
	"github.com/dkovacev/ironlog/internal/telemetry/tracing"
	"github.com/dkovacev/ironlog/internal/workout"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config *config.Config
	dbPool *pgxpool.Pool

	workoutRepo    *workout.Repo
	ingestHandler  *extract.Handler
	statsHandler   *workout.StatsHandler
	entriesHandler *workout.EntriesHandler

	// telemetry
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config       *config.Config
	GeminiAPIKey string
	VersionInfo  string
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.Config.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}
	if err := db.EnsureSchema(ctx, dbPool); err != nil {
		log.Warnf("failed to ensure db schema: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("ironlog", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	otelShutdown, err := tracing.Setup(ctx, params.Config.TracingEnabled, "ironlog-backend")
	if err != nil {
		return nil, fmt.Errorf("tracing setup: %w", err)
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   2 * time.Minute,
	}

	geminiClient := extract.NewGeminiClient(extract.GeminiConfig{
		BaseURL:         params.Config.GeminiBaseURL,
		APIKey:          params.GeminiAPIKey,
		Model:           params.Config.GeminiModel,
		Temperature:     params.Config.GeminiTemperature,
		MaxOutputTokens: params.Config.GeminiMaxOutputTokens,
	}, tracedHttpClient)

	workoutRepo := workout.NewRepo(dbPool)
	extractService := extract.NewService(geminiClient, metricsManager)

	return &Server{
		config:         params.Config,
		dbPool:         dbPool,
		versionInfo:    params.VersionInfo,
		workoutRepo:    workoutRepo,
		ingestHandler:  extract.NewHandler(extractService, workoutRepo),
		statsHandler:   workout.NewStatsHandler(workoutRepo),
		entriesHandler: workout.NewEntriesHandler(workoutRepo),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	r.HandleFunc("/ingest/preview", s.ingestHandler.HandlePreview).Methods("POST", "OPTIONS").Name("ingest-preview")
	r.HandleFunc("/ingest", s.ingestHandler.HandleIngest).Methods("POST", "OPTIONS").Name("ingest")
	r.HandleFunc("/ingest/csv", s.ingestHandler.HandleCSV).Methods("POST", "OPTIONS").Name("ingest-csv")

	r.HandleFunc("/entry/{id}", s.entriesHandler.HandleGet).Methods("GET", "OPTIONS").Name("entry-get")
	r.HandleFunc("/entry/{id}", s.entriesHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("entry-delete")

	r.HandleFunc("/stats/volume/{exercise}", s.statsHandler.HandleVolume).Methods("GET", "OPTIONS").Name("stats-volume")
	r.HandleFunc("/stats/progression/{exercise}", s.statsHandler.HandleProgression).Methods("GET", "OPTIONS").Name("stats-progression")
	r.HandleFunc("/stats/overload/{exercise}", s.statsHandler.HandleOverload).Methods("GET", "OPTIONS").Name("stats-overload")

	r.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(s.versionInfo))
	}).Methods("GET").Name("version")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(_ context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
