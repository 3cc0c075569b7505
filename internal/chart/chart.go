// Package chart turns a reading into the labelled bar series shown next to a verdict.
package chart

import "github.com/miradorstack/engine-condition/internal/models"

// Title heads every input chart.
const Title = "Input Sensor Values"

// Build returns one bar per field in field order, labelled from the catalog.
func Build(reading models.SensorReading, catalog *models.SensorCatalog) models.Chart {
	values := reading.Values()
	bars := make([]models.ChartBar, 0, models.FieldCount)
	for _, field := range models.Fields() {
		label := field.Key()
		if catalog != nil {
			if spec, ok := catalog.Spec(field); ok {
				label = spec.Label
			}
		}
		bars = append(bars, models.ChartBar{Field: field, Label: label, Value: values[field]})
	}
	return models.Chart{Title: Title, Bars: bars}
}
