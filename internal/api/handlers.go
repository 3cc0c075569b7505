package api

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/miradorstack/engine-condition/internal/models"
	"github.com/miradorstack/engine-condition/internal/utils"
)

// FieldError reports a request field that is missing, unknown or not a number.
type FieldError struct {
	Key string
	Msg string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Key, e.Msg)
}

// NewFieldError wraps a FieldError as an input-kind AppError.
func NewFieldError(key, msg string) error {
	return utils.NewAppError("decode reading", utils.KindInput, "invalid sensor reading", &FieldError{Key: key, Msg: msg})
}

// UnknownKeys returns, sorted, every key that is not an exact field key.
func UnknownKeys[V any](fields map[string]V) []string {
	unknown := make([]string, 0)
	for key := range fields {
		if _, ok := models.FieldByKey(key); !ok {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// FromProtoReading maps a Struct keyed by field name into a SensorReading.
// Every field is required and keys must match exactly; range checks are left
// to the sensor catalog.
func FromProtoReading(req *structpb.Struct) (models.SensorReading, error) {
	if req == nil {
		return models.SensorReading{}, NewFieldError("body", "request is nil")
	}
	fields := req.GetFields()

	if unknown := UnknownKeys(fields); len(unknown) > 0 {
		return models.SensorReading{}, NewFieldError(strings.Join(unknown, ","), "unknown sensor field")
	}

	values := make([]float64, models.FieldCount)
	for _, field := range models.Fields() {
		v, ok := fields[field.Key()]
		if !ok || v == nil {
			return models.SensorReading{}, NewFieldError(field.Key(), "is required")
		}
		num, ok := v.GetKind().(*structpb.Value_NumberValue)
		if !ok {
			return models.SensorReading{}, NewFieldError(field.Key(), "must be a number")
		}
		values[field] = num.NumberValue
	}
	return models.ReadingFromValues(values)
}

// ToProtoReading converts a reading into its keyed Struct form.
func ToProtoReading(r models.SensorReading) *structpb.Struct {
	values := r.Values()
	out := &structpb.Struct{Fields: make(map[string]*structpb.Value, models.FieldCount)}
	for _, field := range models.Fields() {
		out.Fields[field.Key()] = structpb.NewNumberValue(values[field])
	}
	return out
}

func advisoryList(advisories []models.Advisory) []interface{} {
	out := make([]interface{}, 0, len(advisories))
	for _, adv := range advisories {
		out = append(out, map[string]interface{}{
			"rule_id": adv.RuleID,
			"field":   adv.Field.Key(),
			"message": adv.Message,
		})
	}
	return out
}

// ToProtoAdvisories wraps an advisory list in a response Struct.
func ToProtoAdvisories(advisories []models.Advisory) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"advisories": advisoryList(advisories),
	})
}

// ToProtoAssessment converts a predict result into the gRPC representation.
func ToProtoAssessment(a models.Assessment) (*structpb.Struct, error) {
	bars := make([]interface{}, 0, len(a.Chart.Bars))
	for _, bar := range a.Chart.Bars {
		bars = append(bars, map[string]interface{}{
			"field": bar.Field.Key(),
			"label": bar.Label,
			"value": bar.Value,
		})
	}
	createdAt := timestamppb.New(a.CreatedAt)
	if err := createdAt.CheckValid(); err != nil {
		return nil, fmt.Errorf("created_at: %w", err)
	}
	out, err := structpb.NewStruct(map[string]interface{}{
		"id":              a.ID,
		"verdict":         a.Verdict.String(),
		"verdict_message": a.VerdictMessage,
		"advisories":      advisoryList(a.Advisories),
		"chart": map[string]interface{}{
			"title": a.Chart.Title,
			"bars":  bars,
		},
		"created_at": createdAt.AsTime().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, err
	}
	out.Fields["reading"] = structpb.NewStructValue(ToProtoReading(a.Reading))
	return out, nil
}

// ToProtoSensors lists catalog specs in field order.
func ToProtoSensors(specs []models.SensorSpec) (*structpb.Struct, error) {
	list := make([]interface{}, 0, len(specs))
	for _, spec := range specs {
		list = append(list, map[string]interface{}{
			"field":       spec.Field.Key(),
			"label":       spec.Label,
			"description": spec.Description,
			"min":         spec.Min,
			"max":         spec.Max,
			"step":        spec.Step,
			"default":     spec.Default(),
		})
	}
	return structpb.NewStruct(map[string]interface{}{"sensors": list})
}
