package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/miradorstack/engine-condition/internal/models"
	"github.com/miradorstack/engine-condition/internal/utils"
)

// Config captures the settings required to boot the engine-condition service.
type Config struct {
	Server  ServerConfig            `yaml:"server"`
	Logging LoggingConfig           `yaml:"logging"`
	Model   ModelConfig             `yaml:"model"`
	Rules   RulesConfig             `yaml:"rules"`
	Sensors map[string]SensorConfig `yaml:"sensors"`
}

// ServerConfig controls listener behaviour.
type ServerConfig struct {
	GRPCAddress     string        `yaml:"grpcAddress"`
	HTTPAddress     string        `yaml:"httpAddress"`
	MetricsAddress  string        `yaml:"metricsAddress"`
	GracefulTimeout time.Duration `yaml:"gracefulTimeout"`
	CORSOrigins     []string      `yaml:"corsOrigins"`
}

// LoggingConfig controls structured logging.
type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// ModelConfig points at the trained classifier artifact.
type ModelConfig struct {
	Path string `yaml:"path"`
}

// RulesConfig controls rule-pack loading for the advisor. An empty path
// selects the built-in threshold table.
type RulesConfig struct {
	Path string `yaml:"path"`
}

// SensorConfig is one catalog entry keyed by field name. An entry in the
// config file replaces the default entry for that field wholesale.
type SensorConfig struct {
	Label       string  `yaml:"label"`
	Description string  `yaml:"description"`
	Min         float64 `yaml:"min"`
	Max         float64 `yaml:"max"`
	Step        float64 `yaml:"step"`
}

// LoadEnvFile populates the process environment from a dotenv file. Variables
// already set win over the file.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return utils.NewAppError("load env file", utils.KindConfig, path, err)
	}
	return nil
}

// Load initialises Config from a YAML file and optional environment overrides,
// then validates it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("ENGINE_CONDITION_CONFIG")
	}

	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, utils.NewAppError("load config", utils.KindConfig, "config file "+path+" not found", err)
			}
			return nil, utils.NewAppError("load config", utils.KindConfig, "read config", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, utils.NewAppError("load config", utils.KindConfig, "parse config", err)
		}
	}

	applyEnvOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate fails fast on settings that would otherwise surface after listeners open.
func (c *Config) Validate() error {
	if _, err := c.SensorCatalog(); err != nil {
		return err
	}
	if c.Model.Path == "" {
		return utils.NewAppError("validate config", utils.KindConfig, "model.path is required", nil)
	}
	if c.Server.GracefulTimeout <= 0 {
		return utils.NewAppError("validate config", utils.KindConfig, "server.gracefulTimeout must be positive", nil)
	}
	return nil
}

// SensorCatalog builds the validated catalog from the sensors section. Every
// field must be configured and no unknown keys are allowed.
func (c *Config) SensorCatalog() (*models.SensorCatalog, error) {
	specs := make([]models.SensorSpec, 0, len(c.Sensors))
	for key, sc := range c.Sensors {
		field, err := models.ParseField(key)
		if err != nil {
			return nil, utils.NewAppError("validate config", utils.KindConfig, "sensors", err)
		}
		specs = append(specs, models.SensorSpec{
			Field:       field,
			Label:       sc.Label,
			Description: sc.Description,
			Min:         sc.Min,
			Max:         sc.Max,
			Step:        sc.Step,
		})
	}
	for _, key := range models.FieldKeys() {
		if _, ok := c.Sensors[key]; !ok {
			return nil, utils.NewAppError("validate config", utils.KindConfig, "sensors", fmt.Errorf("missing entry for %s", key))
		}
	}
	catalog, err := models.NewSensorCatalog(specs)
	if err != nil {
		return nil, utils.NewAppError("validate config", utils.KindConfig, "sensors", err)
	}
	return catalog, nil
}

func defaultConfig() Config {
	return Config{
		Server: ServerConfig{
			GRPCAddress:     ":50061",
			HTTPAddress:     ":8080",
			MetricsAddress:  ":2112",
			GracefulTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{Level: "info", JSON: false},
		Model:   ModelConfig{Path: "configs/model/engine-condition.yaml"},
		Rules:   RulesConfig{},
		Sensors: defaultSensors(),
	}
}

func defaultSensors() map[string]SensorConfig {
	out := make(map[string]SensorConfig, models.FieldCount)
	for _, spec := range models.DefaultSensorSpecs() {
		out[spec.Field.Key()] = SensorConfig{
			Label:       spec.Label,
			Description: spec.Description,
			Min:         spec.Min,
			Max:         spec.Max,
			Step:        spec.Step,
		}
	}
	return out
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ENGINE_CONDITION_GRPC_ADDRESS"); v != "" {
		cfg.Server.GRPCAddress = v
	}
	if v := os.Getenv("ENGINE_CONDITION_HTTP_ADDRESS"); v != "" {
		cfg.Server.HTTPAddress = v
	}
	if v := os.Getenv("ENGINE_CONDITION_METRICS_ADDRESS"); v != "" {
		cfg.Server.MetricsAddress = v
	}
	if v := os.Getenv("ENGINE_CONDITION_GRACEFUL_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.GracefulTimeout = d
		}
	}
	if v := os.Getenv("ENGINE_CONDITION_CORS_ORIGINS"); v != "" {
		var origins []string
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
		cfg.Server.CORSOrigins = origins
	}
	if v := os.Getenv("ENGINE_CONDITION_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("ENGINE_CONDITION_LOG_FORMAT"); v == "json" {
		cfg.Logging.JSON = true
	}
	if v := os.Getenv("ENGINE_CONDITION_MODEL_PATH"); v != "" {
		cfg.Model.Path = v
	}
	if v := os.Getenv("ENGINE_CONDITION_RULES_PATH"); v != "" {
		cfg.Rules.Path = v
	}
}
