package advisor

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/miradorstack/engine-condition/internal/models"
)

// Comparison is the strict inequality a rule applies to its field.
type Comparison string

const (
	// Below triggers when the value is strictly less than the threshold.
	Below Comparison = "below"
	// Above triggers when the value is strictly greater than the threshold.
	Above Comparison = "above"
)

// Rule is one entry of the threshold table.
type Rule struct {
	ID        string       `yaml:"id"`
	Field     models.Field `yaml:"field"`
	When      Comparison   `yaml:"when"`
	Threshold float64      `yaml:"threshold"`
	Message   string       `yaml:"message"`
}

// UnmarshalYAML requires an explicit field; the zero Field is engine_rpm, so
// an omitted key would otherwise bind the rule to the wrong sensor.
func (r *Rule) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		ID        string        `yaml:"id"`
		Field     *models.Field `yaml:"field"`
		When      Comparison    `yaml:"when"`
		Threshold float64       `yaml:"threshold"`
		Message   string        `yaml:"message"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if raw.Field == nil {
		return fmt.Errorf("rule %q: field is required", raw.ID)
	}
	*r = Rule{
		ID:        raw.ID,
		Field:     *raw.Field,
		When:      raw.When,
		Threshold: raw.Threshold,
		Message:   raw.Message,
	}
	return nil
}

// Triggered reports whether the reading crosses this rule's threshold.
// NaN never triggers.
func (r Rule) Triggered(reading models.SensorReading) bool {
	v := reading.Value(r.Field)
	switch r.When {
	case Below:
		return v < r.Threshold
	case Above:
		return v > r.Threshold
	default:
		return false
	}
}

// Advisory renders the advisory emitted when the rule triggers.
func (r Rule) Advisory() models.Advisory {
	return models.Advisory{RuleID: r.ID, Field: r.Field, Message: r.Message}
}

func (r Rule) validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("rule id is required")
	}
	if !r.Field.Valid() {
		return fmt.Errorf("rule %s: invalid field", r.ID)
	}
	if r.When != Below && r.When != Above {
		return fmt.Errorf("rule %s: comparison must be %q or %q, got %q", r.ID, Below, Above, r.When)
	}
	if math.IsNaN(r.Threshold) || math.IsInf(r.Threshold, 0) {
		return fmt.Errorf("rule %s: threshold must be finite", r.ID)
	}
	if strings.TrimSpace(r.Message) == "" {
		return fmt.Errorf("rule %s: message is required", r.ID)
	}
	return nil
}

// DefaultRules is the stock threshold table, in evaluation order.
func DefaultRules() []Rule {
	return []Rule{
		{
			ID:        "low-engine-rpm",
			Field:     models.FieldEngineRPM,
			When:      Below,
			Threshold: 1266,
			Message:   "⚠️ Engine RPM is too low. This may cause stalling or performance issues.",
		},
		{
			ID:        "low-lub-oil-pressure",
			Field:     models.FieldLubOilPressure,
			When:      Below,
			Threshold: 1.0,
			Message:   "🛢️ Low Lubricating Oil Pressure detected — check for possible leaks or pump issues.",
		},
		{
			ID:        "low-fuel-pressure",
			Field:     models.FieldFuelPressure,
			When:      Below,
			Threshold: 1.0,
			Message:   "⛽ Fuel Pressure is unusually low. Engine may not get enough fuel.",
		},
		{
			ID:        "low-coolant-pressure",
			Field:     models.FieldCoolantPressure,
			When:      Below,
			Threshold: 1.0,
			Message:   "🌡️ Coolant Pressure is low. Risk of engine overheating.",
		},
		{
			ID:        "high-lub-oil-temp",
			Field:     models.FieldLubOilTemp,
			When:      Above,
			Threshold: 85,
			Message:   "🔥 Lubricating Oil Temperature is high. May indicate overheating.",
		},
		{
			ID:        "high-coolant-temp",
			Field:     models.FieldCoolantTemp,
			When:      Above,
			Threshold: 150,
			Message:   "🔥 Coolant Temperature is very high. Stop engine immediately to prevent damage.",
		},
		{
			ID:        "high-temperature-difference",
			Field:     models.FieldTemperatureDifference,
			When:      Above,
			Threshold: 80,
			Message:   "⚠️ High Temperature Difference detected — uneven heating could cause mechanical stress.",
		},
		{
			ID:        "high-fuel-pressure",
			Field:     models.FieldFuelPressure,
			When:      Above,
			Threshold: 19.72,
			Message:   "⛽ Fuel Pressure is unusually high.",
		},
	}
}
