package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/miradorstack/engine-condition/internal/api"
	"github.com/miradorstack/engine-condition/internal/chart"
	"github.com/miradorstack/engine-condition/internal/format"
	"github.com/miradorstack/engine-condition/internal/models"
	"github.com/miradorstack/engine-condition/internal/services"
)

const (
	maxBodyBytes  = 64 << 10
	maxChartWidth = 200
)

type handler struct {
	svc    Evaluator
	logger *slog.Logger
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type advisoriesResponse struct {
	Advisories []models.Advisory `json:"advisories"`
}

type sensorView struct {
	models.SensorSpec
	Default float64 `json:"default"`
}

type sensorsResponse struct {
	Sensors []sensorView `json:"sensors"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto HTTP status codes.
func (h *handler) writeError(w http.ResponseWriter, err error) {
	var (
		fieldErr *api.FieldError
		rangeErr *models.RangeError
	)
	switch {
	case errors.As(err, &fieldErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Field: fieldErr.Key})
	case errors.As(err, &rangeErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Field: rangeErr.Field.Key()})
	case errors.Is(err, services.ErrClassifierUnavailable), errors.Is(err, services.ErrCatalogUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: err.Error()})
	default:
		h.logger.Error("request failed", slog.Any("error", err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func (h *handler) health(w http.ResponseWriter, _ *http.Request) {
	body := h.svc.Health()
	status := http.StatusOK
	if body["status"] != "SERVING" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, body)
}

func (h *handler) listSensors(w http.ResponseWriter, _ *http.Request) {
	specs := h.svc.Sensors()
	resp := sensorsResponse{Sensors: make([]sensorView, 0, len(specs))}
	for _, spec := range specs {
		resp.Sensors = append(resp.Sensors, sensorView{SensorSpec: spec, Default: spec.Default()})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) defaultReading(w http.ResponseWriter, _ *http.Request) {
	catalog := h.svc.Catalog()
	if catalog == nil {
		h.writeError(w, services.ErrCatalogUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, catalog.DefaultReading())
}

func (h *handler) advisories(w http.ResponseWriter, r *http.Request) {
	reading, err := decodeReading(w, r)
	if err != nil {
		services.RecordRejected(services.OpAdvise, err)
		h.writeError(w, err)
		return
	}
	advisories, err := h.svc.Advisories(reading)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, advisoriesResponse{Advisories: advisories})
}

func (h *handler) predict(w http.ResponseWriter, r *http.Request) {
	reading, err := decodeReading(w, r)
	if err != nil {
		services.RecordRejected(services.OpPredict, err)
		h.writeError(w, err)
		return
	}
	assessment, err := h.svc.Assess(reading)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, assessment)
}

// chart renders the input bar chart as text. Fields absent from the query
// fall back to their catalog midpoint.
func (h *handler) chart(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	catalog := h.svc.Catalog()
	if catalog == nil {
		h.writeError(w, services.ErrCatalogUnavailable)
		return
	}

	reading, err := readingFromQuery(query, catalog.DefaultReading())
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := catalog.Validate(reading); err != nil {
		h.writeError(w, err)
		return
	}

	width := format.DefaultBarWidth
	if raw := query.Get("width"); raw != "" {
		width, err = strconv.Atoi(raw)
		if err != nil || width < 1 || width > maxChartWidth {
			h.writeError(w, api.NewFieldError("width", fmt.Sprintf("must be an integer between 1 and %d", maxChartWidth)))
			return
		}
	}
	mode := format.ASCII
	if strings.EqualFold(query.Get("format"), "markdown") {
		mode = format.Markdown
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(format.BarChart(chart.Build(reading, catalog), width, mode) + "\n"))
}

// decodeReading reads a flat JSON object keyed by field name. Every field is
// required, null counts as missing and keys must match exactly.
func decodeReading(w http.ResponseWriter, r *http.Request) (models.SensorReading, error) {
	var body map[string]*float64
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		return models.SensorReading{}, api.NewFieldError("body", "invalid JSON: "+err.Error())
	}

	if unknown := api.UnknownKeys(body); len(unknown) > 0 {
		return models.SensorReading{}, api.NewFieldError(strings.Join(unknown, ","), "unknown sensor field")
	}

	values := make([]float64, models.FieldCount)
	for _, field := range models.Fields() {
		v := body[field.Key()]
		if v == nil {
			return models.SensorReading{}, api.NewFieldError(field.Key(), "is required")
		}
		values[field] = *v
	}
	return models.ReadingFromValues(values)
}

func readingFromQuery(query url.Values, defaults models.SensorReading) (models.SensorReading, error) {
	reading := defaults
	for _, field := range models.Fields() {
		raw := strings.TrimSpace(query.Get(field.Key()))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return models.SensorReading{}, api.NewFieldError(field.Key(), "must be a number")
		}
		reading = reading.With(field, v)
	}
	return reading, nil
}
