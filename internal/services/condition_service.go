package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/miradorstack/engine-condition/internal/advisor"
	"github.com/miradorstack/engine-condition/internal/api"
	"github.com/miradorstack/engine-condition/internal/chart"
	"github.com/miradorstack/engine-condition/internal/classifier"
	"github.com/miradorstack/engine-condition/internal/grpc/enginev1"
	"github.com/miradorstack/engine-condition/internal/metrics"
	"github.com/miradorstack/engine-condition/internal/models"
	"github.com/miradorstack/engine-condition/internal/utils"
)

// Operation labels shared by metrics and logs.
const (
	OpAdvise  = "advise"
	OpPredict = "predict"
)

var (
	// ErrClassifierUnavailable is returned when no classifier was injected.
	ErrClassifierUnavailable = errors.New("classifier not configured")
	// ErrCatalogUnavailable is returned when no sensor catalog was injected.
	ErrCatalogUnavailable = errors.New("sensor catalog not configured")
)

// RecordRejected accounts for a reading refused before it reached the service,
// such as a request with a missing or non-numeric field. Surfaces call it on
// decode failures so every transport counts rejections alike.
func RecordRejected(op string, err error) {
	var fieldErr *api.FieldError
	if errors.As(err, &fieldErr) {
		if field, ok := models.FieldByKey(fieldErr.Key); ok {
			metrics.ObserveRejection(field)
		}
	}
	metrics.ObserveEvaluation(op, metrics.OutcomeRejected)
}

// ConditionService implements the gRPC EngineCondition service and the domain
// operations shared with the HTTP API and CLI.
type ConditionService struct {
	enginev1.UnimplementedEngineConditionServer

	logger     *slog.Logger
	catalog    *models.SensorCatalog
	advisor    *advisor.Advisor
	classifier classifier.Classifier
	latency    *utils.LatencyWindow
	now        func() time.Time
	newID      func() string
}

// NewConditionService constructs the service facade. The classifier is loaded
// once by the caller and shared read-only across requests.
func NewConditionService(logger *slog.Logger, catalog *models.SensorCatalog, adv *advisor.Advisor, clf classifier.Classifier) *ConditionService {
	if logger == nil {
		logger = slog.Default()
	}
	if adv == nil {
		adv = advisor.Default(logger)
	}
	return &ConditionService{
		logger:     logger,
		catalog:    catalog,
		advisor:    adv,
		classifier: clf,
		latency:    utils.NewLatencyWindow(0),
		now:        func() time.Time { return time.Now().UTC() },
		newID:      func() string { return uuid.New().String() },
	}
}

// Catalog exposes the sensor catalog.
func (s *ConditionService) Catalog() *models.SensorCatalog {
	return s.catalog
}

// Sensors returns the catalog specs in field order.
func (s *ConditionService) Sensors() []models.SensorSpec {
	if s.catalog == nil {
		return nil
	}
	return s.catalog.Specs()
}

func (s *ConditionService) validate(op string, reading models.SensorReading) error {
	if s.catalog == nil {
		return nil
	}
	if err := s.catalog.Validate(reading); err != nil {
		var rangeErr *models.RangeError
		if errors.As(err, &rangeErr) {
			metrics.ObserveRejection(rangeErr.Field)
		}
		metrics.ObserveEvaluation(op, metrics.OutcomeRejected)
		s.logger.Debug("reading rejected", slog.String("operation", op), slog.Any("error", err))
		return utils.NewAppError("validate reading", utils.KindInput, "reading rejected", err)
	}
	return nil
}

// Advisories validates the reading and returns the triggered advisories in
// rule-table order.
func (s *ConditionService) Advisories(reading models.SensorReading) ([]models.Advisory, error) {
	if err := s.validate(OpAdvise, reading); err != nil {
		return nil, err
	}
	advisories := s.advisor.Evaluate(reading)
	metrics.ObserveAdvisories(advisories)
	metrics.ObserveEvaluation(OpAdvise, metrics.OutcomeSuccess)
	return advisories, nil
}

// Assess validates the reading, then runs the advisor and the classifier and
// builds the input chart. Nothing is cached; every call recomputes in full.
func (s *ConditionService) Assess(reading models.SensorReading) (models.Assessment, error) {
	if err := s.validate(OpPredict, reading); err != nil {
		return models.Assessment{}, err
	}
	if s.classifier == nil {
		metrics.ObserveEvaluation(OpPredict, metrics.OutcomeError)
		return models.Assessment{}, ErrClassifierUnavailable
	}

	start := time.Now()
	advisories := s.advisor.Evaluate(reading)
	verdict, err := s.classifier.Classify(reading)
	duration := time.Since(start)
	if err != nil {
		metrics.ObserveEvaluation(OpPredict, metrics.OutcomeError)
		s.logger.Error("classification failed", slog.Any("error", err))
		return models.Assessment{}, fmt.Errorf("classify reading: %w", err)
	}
	metrics.ObserveAdvisories(advisories)
	metrics.ObservePrediction(duration, verdict)
	s.latency.Observe(duration)
	metrics.ObserveEvaluation(OpPredict, metrics.OutcomeSuccess)

	assessment := models.Assessment{
		ID:             s.newID(),
		Reading:        reading,
		Advisories:     advisories,
		Verdict:        verdict,
		VerdictMessage: verdict.Message(),
		Chart:          chart.Build(reading, s.catalog),
		CreatedAt:      s.now(),
	}

	attrs := []any{
		slog.String("assessment_id", assessment.ID),
		slog.String("verdict", verdict.String()),
		slog.Int("advisories", len(advisories)),
		slog.Duration("duration", duration),
	}
	if verdict == models.VerdictAbnormal {
		s.logger.Warn("engine condition needs investigation", attrs...)
	} else {
		s.logger.Debug("engine condition assessed", attrs...)
	}
	return assessment, nil
}

// GetAdvisories is the gRPC form of Advisories.
func (s *ConditionService) GetAdvisories(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	reading, err := api.FromProtoReading(req)
	if err != nil {
		RecordRejected(OpAdvise, err)
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	advisories, err := s.Advisories(reading)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	resp, err := api.ToProtoAdvisories(advisories)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode advisories: %v", err))
	}
	return resp, nil
}

// PredictCondition is the gRPC form of Assess.
func (s *ConditionService) PredictCondition(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	reading, err := api.FromProtoReading(req)
	if err != nil {
		RecordRejected(OpPredict, err)
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	s.logger.Debug("PredictCondition called")

	assessment, err := s.Assess(reading)
	if err != nil {
		switch {
		case utils.IsKind(err, utils.KindInput):
			return nil, status.Error(codes.InvalidArgument, err.Error())
		case errors.Is(err, ErrClassifierUnavailable):
			return nil, status.Error(codes.FailedPrecondition, err.Error())
		default:
			return nil, status.Error(codes.Internal, fmt.Sprintf("prediction failed: %v", err))
		}
	}
	resp, err := api.ToProtoAssessment(assessment)
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode assessment: %v", err))
	}
	return resp, nil
}

// ListSensors returns the catalog.
func (s *ConditionService) ListSensors(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	if s.catalog == nil {
		return nil, status.Error(codes.FailedPrecondition, ErrCatalogUnavailable.Error())
	}
	resp, err := api.ToProtoSensors(s.catalog.Specs())
	if err != nil {
		return nil, status.Error(codes.Internal, fmt.Sprintf("encode sensors: %v", err))
	}
	return resp, nil
}

// Health summarises readiness and recent classification latency.
func (s *ConditionService) Health() map[string]interface{} {
	state := "SERVING"
	if s.classifier == nil || s.catalog == nil {
		state = "NOT_SERVING"
	}
	return map[string]interface{}{
		"status":             state,
		"recent_predictions": float64(s.latency.Len()),
		"latency_p50_ms":     float64(s.latency.Percentile(50).Microseconds()) / 1000,
		"latency_p95_ms":     float64(s.latency.Percentile(95).Microseconds()) / 1000,
	}
}

// HealthCheck returns the current health state.
func (s *ConditionService) HealthCheck(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return structpb.NewStruct(s.Health())
}
