package format

import (
	"strings"
	"testing"

	"github.com/miradorstack/engine-condition/internal/models"
)

func TestBarScalesToLargestValue(t *testing.T) {
	cases := []struct {
		v, maxAbs float64
		width     int
		want      string
	}{
		{10, 10, 4, "████"},
		{5, 10, 4, "██"},
		{-5, 10, 4, "▒▒"},
		{0.01, 10, 4, "█"},
		{0, 10, 4, ""},
		{3, 0, 4, ""},
	}
	for _, tc := range cases {
		if got := Bar(tc.v, tc.maxAbs, tc.width); got != tc.want {
			t.Fatalf("Bar(%v, %v, %d) = %q, want %q", tc.v, tc.maxAbs, tc.width, got, tc.want)
		}
	}
}

func TestBarChartListsEveryInput(t *testing.T) {
	chart := models.Chart{
		Title: "Input Sensor Values",
		Bars: []models.ChartBar{
			{Field: models.FieldEngineRPM, Label: "Engine RPM", Value: 1500},
			{Field: models.FieldTemperatureDifference, Label: "Temperature Difference", Value: -12.5},
		},
	}
	out := BarChart(chart, 20, ASCII)
	for _, want := range []string{"Input Sensor Values", "Engine RPM", "1500.00", "Temperature Difference", "-12.50", strings.Repeat("█", 20)} {
		if !strings.Contains(out, want) {
			t.Fatalf("chart missing %q:\n%s", want, out)
		}
	}
}

func TestSensorTableMarkdown(t *testing.T) {
	out := SensorTable(models.DefaultSensorSpecs(), Markdown)
	if !strings.HasPrefix(strings.TrimSpace(out), "|") && !strings.HasPrefix(strings.TrimSpace(out), "#") {
		t.Fatalf("expected markdown output:\n%s", out)
	}
	if !strings.Contains(out, "engine_rpm") {
		t.Fatalf("expected markdown row for engine_rpm:\n%s", out)
	}
	if !strings.Contains(out, "Pressure of the fuel.") {
		t.Fatalf("expected descriptions:\n%s", out)
	}
}

func TestAdvisoriesEmpty(t *testing.T) {
	if got := Advisories(nil); got != "No sensor advisories.\n" {
		t.Fatalf("unexpected output %q", got)
	}
	got := Advisories([]models.Advisory{{Message: "a"}, {Message: "b"}})
	if got != "- a\n- b\n" {
		t.Fatalf("unexpected output %q", got)
	}
}
