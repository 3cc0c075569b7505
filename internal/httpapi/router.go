// Package httpapi exposes the engine-condition operations over JSON/HTTP.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/miradorstack/engine-condition/internal/config"
	"github.com/miradorstack/engine-condition/internal/models"
)

const apiPrefix = "/api/v1"

// Evaluator is the subset of the condition service used by the HTTP layer.
type Evaluator interface {
	Catalog() *models.SensorCatalog
	Sensors() []models.SensorSpec
	Advisories(reading models.SensorReading) ([]models.Advisory, error)
	Assess(reading models.SensorReading) (models.Assessment, error)
	Health() map[string]interface{}
}

// NewRouter registers every route on a fresh router.
func NewRouter(svc Evaluator, logger *slog.Logger) *mux.Router {
	if logger == nil {
		logger = slog.Default()
	}
	h := &handler{svc: svc, logger: logger}

	r := mux.NewRouter()
	r.Use(func(next http.Handler) http.Handler { return WrapWithLogging(logger, next) })

	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)

	// Full paths on the root router so a method mismatch answers 405.
	r.HandleFunc(apiPrefix+"/sensors", h.listSensors).Methods(http.MethodGet)
	r.HandleFunc(apiPrefix+"/sensors/defaults", h.defaultReading).Methods(http.MethodGet)
	r.HandleFunc(apiPrefix+"/advisories", h.advisories).Methods(http.MethodPost)
	r.HandleFunc(apiPrefix+"/predict", h.predict).Methods(http.MethodPost)
	r.HandleFunc(apiPrefix+"/chart", h.chart).Methods(http.MethodGet)

	return r
}

// NewHandler wraps the router with panic recovery and, when origins are
// configured, CORS.
func NewHandler(cfg config.ServerConfig, svc Evaluator, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	var h http.Handler = NewRouter(svc, logger)
	if len(cfg.CORSOrigins) > 0 {
		h = handlers.CORS(
			handlers.AllowedOrigins(cfg.CORSOrigins),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
			handlers.AllowedHeaders([]string{"Content-Type"}),
		)(h)
	}
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{logger: logger}),
		handlers.PrintRecoveryStack(false),
	)(h)
}

// NewServer builds the HTTP server for cfg.HTTPAddress.
func NewServer(cfg config.ServerConfig, svc Evaluator, logger *slog.Logger) *http.Server {
	return &http.Server{
		Addr:              cfg.HTTPAddress,
		Handler:           NewHandler(cfg, svc, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
	}
}
