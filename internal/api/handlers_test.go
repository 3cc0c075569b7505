package api

import (
	"errors"
	"testing"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/miradorstack/engine-condition/internal/models"
	"github.com/miradorstack/engine-condition/internal/utils"
)

func sampleReading() models.SensorReading {
	return models.SensorReading{
		EngineRPM:             700,
		LubOilPressure:        2.49,
		FuelPressure:          11.79,
		CoolantPressure:       3.17,
		LubOilTemp:            84.14,
		CoolantTemp:           81.63,
		TemperatureDifference: 2.51,
	}
}

func TestFromProtoReadingRoundTrip(t *testing.T) {
	reading := sampleReading()
	got, err := FromProtoReading(ToProtoReading(reading))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != reading {
		t.Fatalf("unexpected reading %+v", got)
	}
}

func TestFromProtoReadingMissingField(t *testing.T) {
	req := ToProtoReading(sampleReading())
	delete(req.Fields, "coolant_temp")

	_, err := FromProtoReading(req)
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected field error, got %v", err)
	}
	if fieldErr.Key != "coolant_temp" || fieldErr.Msg != "is required" {
		t.Fatalf("unexpected field error %+v", fieldErr)
	}
}

func TestFromProtoReadingRejectsUnknownAndNonNumeric(t *testing.T) {
	req := ToProtoReading(sampleReading())
	req.Fields["oil_level"] = structpb.NewNumberValue(1)
	if _, err := FromProtoReading(req); err == nil {
		t.Fatalf("expected unknown key to be rejected")
	}

	req = ToProtoReading(sampleReading())
	req.Fields["engine_rpm"] = structpb.NewStringValue("fast")
	_, err := FromProtoReading(req)
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) || fieldErr.Key != "engine_rpm" {
		t.Fatalf("expected engine_rpm type error, got %v", err)
	}

	if _, err := FromProtoReading(nil); err == nil {
		t.Fatalf("expected nil request to fail")
	}
}

func TestToProtoAssessment(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	assessment := models.Assessment{
		ID:             "assessment-1",
		Reading:        sampleReading(),
		Advisories:     []models.Advisory{{RuleID: "low-engine-rpm", Field: models.FieldEngineRPM, Message: "rpm low"}},
		Verdict:        models.VerdictAbnormal,
		VerdictMessage: models.VerdictAbnormal.Message(),
		Chart: models.Chart{
			Title: "Input Sensor Values",
			Bars:  []models.ChartBar{{Field: models.FieldEngineRPM, Label: "Engine RPM", Value: 700}},
		},
		CreatedAt: now,
	}

	out, err := ToProtoAssessment(assessment)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	fields := out.GetFields()
	if fields["verdict"].GetStringValue() != "abnormal" {
		t.Fatalf("unexpected verdict %v", fields["verdict"])
	}
	if fields["created_at"].GetStringValue() != "2024-05-01T12:00:00Z" {
		t.Fatalf("unexpected timestamp %v", fields["created_at"])
	}
	advisories := fields["advisories"].GetListValue().GetValues()
	if len(advisories) != 1 || advisories[0].GetStructValue().GetFields()["field"].GetStringValue() != "engine_rpm" {
		t.Fatalf("unexpected advisories %v", advisories)
	}
	bars := fields["chart"].GetStructValue().GetFields()["bars"].GetListValue().GetValues()
	if len(bars) != 1 || bars[0].GetStructValue().GetFields()["value"].GetNumberValue() != 700 {
		t.Fatalf("unexpected bars %v", bars)
	}
	if fields["reading"].GetStructValue().GetFields()["fuel_pressure"].GetNumberValue() != 11.79 {
		t.Fatalf("reading not echoed: %v", fields["reading"])
	}
}

func TestToProtoSensorsCarriesDefault(t *testing.T) {
	out, err := ToProtoSensors(models.DefaultSensorSpecs())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	sensors := out.GetFields()["sensors"].GetListValue().GetValues()
	if len(sensors) != models.FieldCount {
		t.Fatalf("expected %d sensors, got %d", models.FieldCount, len(sensors))
	}
	rpm := sensors[0].GetStructValue().GetFields()
	if rpm["field"].GetStringValue() != "engine_rpm" || rpm["default"].GetNumberValue() != 1530.5 {
		t.Fatalf("unexpected rpm entry %v", rpm)
	}
}

func TestFromProtoReadingRequiresExactKeys(t *testing.T) {
	req := ToProtoReading(sampleReading())
	req.Fields["ENGINE_RPM"] = structpb.NewNumberValue(500)

	_, err := FromProtoReading(req)
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) || fieldErr.Key != "ENGINE_RPM" || fieldErr.Msg != "unknown sensor field" {
		t.Fatalf("expected second spelling to be refused, got %v", err)
	}

	req = ToProtoReading(sampleReading())
	req.Fields["Engine_RPM"] = req.Fields["engine_rpm"]
	delete(req.Fields, "engine_rpm")
	_, err = FromProtoReading(req)
	if !errors.As(err, &fieldErr) || fieldErr.Key != "Engine_RPM" {
		t.Fatalf("expected mixed-case key reported as unknown, got %v", err)
	}
	if !utils.IsKind(err, utils.KindInput) {
		t.Fatalf("expected input error kind, got %v", err)
	}
}

func TestToProtoAssessmentRejectsUnrepresentableTime(t *testing.T) {
	assessment := models.Assessment{
		ID:        "assessment-1",
		Reading:   sampleReading(),
		Verdict:   models.VerdictNormal,
		CreatedAt: time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	if _, err := ToProtoAssessment(assessment); err == nil {
		t.Fatalf("expected created_at beyond year 9999 to be rejected")
	}
}
