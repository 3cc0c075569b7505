package chart

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/miradorstack/engine-condition/internal/models"
)

func TestBuildKeepsFieldOrderAndLabels(t *testing.T) {
	catalog, err := models.NewSensorCatalog(models.DefaultSensorSpecs())
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	reading, _ := models.ReadingFromValues([]float64{1500, 2, 3, 4, 80, 90, 10})

	got := Build(reading, catalog)
	if got.Title != Title {
		t.Fatalf("unexpected title %q", got.Title)
	}
	labels := make([]string, 0, len(got.Bars))
	values := make([]float64, 0, len(got.Bars))
	for _, bar := range got.Bars {
		labels = append(labels, bar.Label)
		values = append(values, bar.Value)
	}
	wantLabels := []string{
		"Engine RPM", "Lub Oil Pressure", "Fuel Pressure", "Coolant Pressure",
		"Lub Oil Temperature", "Coolant Temperature", "Temperature Difference",
	}
	if diff := cmp.Diff(wantLabels, labels); diff != "" {
		t.Fatalf("labels (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{1500, 2, 3, 4, 80, 90, 10}, values); diff != "" {
		t.Fatalf("values (-want +got):\n%s", diff)
	}
}

func TestBuildWithoutCatalogFallsBackToKeys(t *testing.T) {
	got := Build(models.SensorReading{}, nil)
	if got.Bars[6].Label != "temperature_difference" {
		t.Fatalf("expected key label, got %q", got.Bars[6].Label)
	}
}
