package models

import (
	"errors"
	"math"
	"testing"
)

func defaultCatalog(t *testing.T) *SensorCatalog {
	t.Helper()
	catalog, err := NewSensorCatalog(DefaultSensorSpecs())
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	return catalog
}

func TestDefaultReadingIsMidpoint(t *testing.T) {
	catalog := defaultCatalog(t)
	reading := catalog.DefaultReading()
	if reading.EngineRPM != 1530.5 {
		t.Fatalf("expected rpm midpoint 1530.5, got %v", reading.EngineRPM)
	}
	for _, spec := range catalog.Specs() {
		if got := reading.Value(spec.Field); got != (spec.Min+spec.Max)/2 {
			t.Fatalf("%s: expected midpoint, got %v", spec.Field, got)
		}
	}
	if err := catalog.Validate(reading); err != nil {
		t.Fatalf("default reading must validate: %v", err)
	}
}

func TestValidateAcceptsBounds(t *testing.T) {
	catalog := defaultCatalog(t)
	for _, spec := range catalog.Specs() {
		for _, v := range []float64{spec.Min, spec.Max} {
			reading := catalog.DefaultReading().With(spec.Field, v)
			if err := catalog.Validate(reading); err != nil {
				t.Fatalf("%s=%v should be accepted: %v", spec.Field, v, err)
			}
		}
	}
}

func TestValidateRejectsOutOfRange(t *testing.T) {
	catalog := defaultCatalog(t)
	cases := []struct {
		field Field
		value float64
	}{
		{FieldEngineRPM, 60},
		{FieldFuelPressure, 21.2},
		{FieldTemperatureDifference, -30},
		{FieldCoolantTemp, math.NaN()},
		{FieldLubOilTemp, math.Inf(1)},
	}
	for _, tc := range cases {
		reading := catalog.DefaultReading().With(tc.field, tc.value)
		err := catalog.Validate(reading)
		var rangeErr *RangeError
		if !errors.As(err, &rangeErr) {
			t.Fatalf("%s=%v: expected RangeError, got %v", tc.field, tc.value, err)
		}
		if rangeErr.Field != tc.field {
			t.Fatalf("expected field %s, got %s", tc.field, rangeErr.Field)
		}
	}
}

func TestNewSensorCatalogRejectsMalformed(t *testing.T) {
	cases := map[string]func([]SensorSpec) []SensorSpec{
		"missing field": func(s []SensorSpec) []SensorSpec { return s[:6] },
		"duplicate field": func(s []SensorSpec) []SensorSpec {
			s[6].Field = FieldEngineRPM
			return s
		},
		"inverted bounds": func(s []SensorSpec) []SensorSpec {
			s[2].Min, s[2].Max = s[2].Max, s[2].Min
			return s
		},
		"zero step": func(s []SensorSpec) []SensorSpec {
			s[3].Step = 0
			return s
		},
		"nan bound": func(s []SensorSpec) []SensorSpec {
			s[4].Max = math.NaN()
			return s
		},
		"empty description": func(s []SensorSpec) []SensorSpec {
			s[5].Description = ""
			return s
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := NewSensorCatalog(mutate(DefaultSensorSpecs())); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestSpecsFollowFieldOrder(t *testing.T) {
	specs := DefaultSensorSpecs()
	specs[0], specs[6] = specs[6], specs[0]
	catalog, err := NewSensorCatalog(specs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, spec := range catalog.Specs() {
		if spec.Field != Field(i) {
			t.Fatalf("position %d holds %s", i, spec.Field)
		}
	}
}
