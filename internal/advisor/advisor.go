package advisor

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/miradorstack/engine-condition/internal/models"
	"github.com/miradorstack/engine-condition/internal/utils"
)

// Advisor evaluates an ordered threshold table against sensor readings.
// It is immutable after construction and safe for concurrent use.
type Advisor struct {
	rules  []Rule
	logger *slog.Logger
}

// RulePackFile is the YAML root structure of a rule pack.
type RulePackFile struct {
	Rules []Rule `yaml:"rules"`
}

// New validates rules and builds an Advisor that evaluates them in the given order.
func New(rules []Rule, logger *slog.Logger) (*Advisor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	seen := make(map[string]struct{}, len(rules))
	for i, rule := range rules {
		if err := rule.validate(); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		if _, dup := seen[rule.ID]; dup {
			return nil, fmt.Errorf("rule %d: duplicate id %q", i, rule.ID)
		}
		seen[rule.ID] = struct{}{}
	}
	return &Advisor{rules: append([]Rule(nil), rules...), logger: logger}, nil
}

// Default builds an Advisor over DefaultRules.
func Default(logger *slog.Logger) *Advisor {
	adv, err := New(DefaultRules(), logger)
	if err != nil {
		panic(fmt.Sprintf("default rule table invalid: %v", err))
	}
	return adv
}

// Load returns an Advisor for the rule pack at path, or the default table when
// path is empty. A configured path that cannot be read is a configuration error.
func Load(path string, logger *slog.Logger) (*Advisor, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if path == "" {
		logger.Debug("no rule pack configured, using default threshold table", slog.Int("rules", len(DefaultRules())))
		return Default(logger), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, utils.NewAppError("load rule pack", utils.KindConfig, path, err)
	}
	var pack RulePackFile
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return nil, utils.NewAppError("load rule pack", utils.KindConfig, "parse "+path, err)
	}
	if len(pack.Rules) == 0 {
		return nil, utils.NewAppError("load rule pack", utils.KindConfig, path, fmt.Errorf("no rules defined"))
	}
	adv, err := New(pack.Rules, logger)
	if err != nil {
		return nil, utils.NewAppError("load rule pack", utils.KindConfig, path, err)
	}
	logger.Info("rule pack loaded", slog.String("path", path), slog.Int("rules", len(pack.Rules)))
	return adv, nil
}

// Evaluate runs every rule in table order and returns the advisories that
// triggered. Rules never suppress each other. The result is never nil.
func (a *Advisor) Evaluate(reading models.SensorReading) []models.Advisory {
	advisories := make([]models.Advisory, 0, len(a.rules))
	for _, rule := range a.rules {
		if rule.Triggered(reading) {
			advisories = append(advisories, rule.Advisory())
		}
	}
	return advisories
}

// Rules returns a copy of the table in evaluation order.
func (a *Advisor) Rules() []Rule {
	return append([]Rule(nil), a.rules...)
}
