package models

import (
	"errors"
	"fmt"
	"math"
)

// SensorSpec describes the configured domain and presentation of one field.
type SensorSpec struct {
	Field       Field   `json:"field"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Step        float64 `json:"step"`
}

// Default is the midpoint of the configured bounds.
func (s SensorSpec) Default() float64 {
	return (s.Min + s.Max) / 2
}

// Contains reports whether v is finite and inside [Min, Max].
func (s SensorSpec) Contains(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v >= s.Min && v <= s.Max
}

func (s SensorSpec) validate() error {
	if !s.Field.Valid() {
		return fmt.Errorf("invalid field %d", int(s.Field))
	}
	for name, v := range map[string]float64{"min": s.Min, "max": s.Max, "step": s.Step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s: %s must be finite", s.Field, name)
		}
	}
	if s.Min >= s.Max {
		return fmt.Errorf("%s: min %v must be below max %v", s.Field, s.Min, s.Max)
	}
	if s.Step <= 0 {
		return fmt.Errorf("%s: step must be positive", s.Field)
	}
	if s.Label == "" {
		return fmt.Errorf("%s: label is required", s.Field)
	}
	if s.Description == "" {
		return fmt.Errorf("%s: description is required", s.Field)
	}
	return nil
}

// RangeError reports a reading value outside its configured bounds.
type RangeError struct {
	Field Field
	Value float64
	Min   float64
	Max   float64
}

func (e *RangeError) Error() string {
	if math.IsNaN(e.Value) || math.IsInf(e.Value, 0) {
		return fmt.Sprintf("%s: value %v is not a finite number", e.Field, e.Value)
	}
	return fmt.Sprintf("%s: value %v outside [%v, %v]", e.Field, e.Value, e.Min, e.Max)
}

// ErrIncompleteCatalog is returned when a catalog does not cover every field.
var ErrIncompleteCatalog = errors.New("sensor catalog must define every field exactly once")

// SensorCatalog holds one validated spec per field, in field order.
type SensorCatalog struct {
	specs [FieldCount]SensorSpec
}

// NewSensorCatalog validates specs and orders them by field. Every field must
// appear exactly once.
func NewSensorCatalog(specs []SensorSpec) (*SensorCatalog, error) {
	if len(specs) != FieldCount {
		return nil, fmt.Errorf("%w: got %d entries", ErrIncompleteCatalog, len(specs))
	}
	var (
		catalog SensorCatalog
		seen    [FieldCount]bool
	)
	for _, spec := range specs {
		if err := spec.validate(); err != nil {
			return nil, err
		}
		if seen[spec.Field] {
			return nil, fmt.Errorf("%w: %s repeated", ErrIncompleteCatalog, spec.Field)
		}
		seen[spec.Field] = true
		catalog.specs[spec.Field] = spec
	}
	return &catalog, nil
}

// DefaultSensorSpecs returns the stock bounds and descriptions for every field.
func DefaultSensorSpecs() []SensorSpec {
	return []SensorSpec{
		{Field: FieldEngineRPM, Label: "Engine RPM", Description: "Revolution per minute of the engine.", Min: 61.0, Max: 3000.0, Step: 1.0},
		{Field: FieldLubOilPressure, Label: "Lub Oil Pressure", Description: "Pressure of the lubricating oil.", Min: 0.003384, Max: 7.265566, Step: 0.01},
		{Field: FieldFuelPressure, Label: "Fuel Pressure", Description: "Pressure of the fuel.", Min: 0.003187, Max: 21.138326, Step: 0.01},
		{Field: FieldCoolantPressure, Label: "Coolant Pressure", Description: "Pressure of the coolant.", Min: 0.002483, Max: 7.478505, Step: 0.01},
		{Field: FieldLubOilTemp, Label: "Lub Oil Temperature", Description: "Temperature of the lubricating oil.", Min: 71.321974, Max: 89.580796, Step: 0.01},
		{Field: FieldCoolantTemp, Label: "Coolant Temperature", Description: "Temperature of the coolant.", Min: 61.673325, Max: 195.527912, Step: 0.01},
		{Field: FieldTemperatureDifference, Label: "Temperature Difference", Description: "Temperature difference between components.", Min: -22.669427, Max: 119.008526, Step: 0.01},
	}
}

// Specs returns the specs in field order.
func (c *SensorCatalog) Specs() []SensorSpec {
	return append([]SensorSpec(nil), c.specs[:]...)
}

// Spec returns the spec for f.
func (c *SensorCatalog) Spec(f Field) (SensorSpec, bool) {
	if !f.Valid() {
		return SensorSpec{}, false
	}
	return c.specs[f], true
}

// DefaultReading places every field at the midpoint of its bounds.
func (c *SensorCatalog) DefaultReading() SensorReading {
	var values [FieldCount]float64
	for i, spec := range c.specs {
		values[i] = spec.Default()
	}
	reading, _ := ReadingFromValues(values[:])
	return reading
}

// Validate checks every value in field order and returns a *RangeError for the
// first one that is non-finite or outside its bounds.
func (c *SensorCatalog) Validate(r SensorReading) error {
	values := r.Values()
	for i, spec := range c.specs {
		if !spec.Contains(values[i]) {
			return &RangeError{Field: spec.Field, Value: values[i], Min: spec.Min, Max: spec.Max}
		}
	}
	return nil
}
