package models

import (
	"fmt"
	"strings"
)

// Field identifies one position of a SensorReading. The numeric value is the
// position the classifier sees, so the constants must never be reordered.
type Field int

const (
	FieldEngineRPM Field = iota
	FieldLubOilPressure
	FieldFuelPressure
	FieldCoolantPressure
	FieldLubOilTemp
	FieldCoolantTemp
	FieldTemperatureDifference
)

// FieldCount is the fixed arity of a SensorReading.
const FieldCount = 7

var fieldKeys = [FieldCount]string{
	"engine_rpm",
	"lub_oil_pressure",
	"fuel_pressure",
	"coolant_pressure",
	"lub_oil_temp",
	"coolant_temp",
	"temperature_difference",
}

// Fields returns every field in reading order.
func Fields() []Field {
	fields := make([]Field, FieldCount)
	for i := range fields {
		fields[i] = Field(i)
	}
	return fields
}

// FieldKeys returns the snake_case keys in reading order.
func FieldKeys() []string {
	return append([]string(nil), fieldKeys[:]...)
}

// Valid reports whether f names one of the seven positions.
func (f Field) Valid() bool {
	return f >= 0 && int(f) < FieldCount
}

// Key returns the stable snake_case name used in config, rule packs and APIs.
func (f Field) Key() string {
	if !f.Valid() {
		return fmt.Sprintf("field(%d)", int(f))
	}
	return fieldKeys[f]
}

func (f Field) String() string {
	return f.Key()
}

// ParseField resolves a key such as "coolant_temp" into its Field.
func ParseField(key string) (Field, error) {
	normalised := strings.ToLower(strings.TrimSpace(key))
	for i, k := range fieldKeys {
		if k == normalised {
			return Field(i), nil
		}
	}
	return 0, fmt.Errorf("unknown sensor field %q", key)
}

// FieldByKey resolves an exact wire key. Unlike ParseField it neither trims
// nor folds case, so request payloads cannot carry two spellings of a field.
func FieldByKey(key string) (Field, bool) {
	for i, k := range fieldKeys {
		if k == key {
			return Field(i), true
		}
	}
	return 0, false
}

// MarshalText encodes the field as its key.
func (f Field) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("invalid sensor field %d", int(f))
	}
	return []byte(f.Key()), nil
}

// UnmarshalText decodes a field key.
func (f *Field) UnmarshalText(text []byte) error {
	parsed, err := ParseField(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// SensorReading is one set of engine sensor values.
type SensorReading struct {
	EngineRPM             float64 `json:"engine_rpm" yaml:"engine_rpm"`
	LubOilPressure        float64 `json:"lub_oil_pressure" yaml:"lub_oil_pressure"`
	FuelPressure          float64 `json:"fuel_pressure" yaml:"fuel_pressure"`
	CoolantPressure       float64 `json:"coolant_pressure" yaml:"coolant_pressure"`
	LubOilTemp            float64 `json:"lub_oil_temp" yaml:"lub_oil_temp"`
	CoolantTemp           float64 `json:"coolant_temp" yaml:"coolant_temp"`
	TemperatureDifference float64 `json:"temperature_difference" yaml:"temperature_difference"`
}

// ReadingFromValues builds a reading from a positional vector in field order.
func ReadingFromValues(values []float64) (SensorReading, error) {
	if len(values) != FieldCount {
		return SensorReading{}, fmt.Errorf("sensor reading needs %d values, got %d", FieldCount, len(values))
	}
	return SensorReading{
		EngineRPM:             values[FieldEngineRPM],
		LubOilPressure:        values[FieldLubOilPressure],
		FuelPressure:          values[FieldFuelPressure],
		CoolantPressure:       values[FieldCoolantPressure],
		LubOilTemp:            values[FieldLubOilTemp],
		CoolantTemp:           values[FieldCoolantTemp],
		TemperatureDifference: values[FieldTemperatureDifference],
	}, nil
}

// Values returns the reading as a positional vector in field order.
func (r SensorReading) Values() [FieldCount]float64 {
	return [FieldCount]float64{
		r.EngineRPM,
		r.LubOilPressure,
		r.FuelPressure,
		r.CoolantPressure,
		r.LubOilTemp,
		r.CoolantTemp,
		r.TemperatureDifference,
	}
}

// Value returns the value stored at field f. Unknown fields yield zero.
func (r SensorReading) Value(f Field) float64 {
	if !f.Valid() {
		return 0
	}
	return r.Values()[f]
}

// With returns a copy of r with field f set to v.
func (r SensorReading) With(f Field, v float64) SensorReading {
	if !f.Valid() {
		return r
	}
	values := r.Values()
	values[f] = v
	out, _ := ReadingFromValues(values[:])
	return out
}
