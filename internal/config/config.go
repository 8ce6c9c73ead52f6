package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Corpus CorpusConfig `yaml:"corpus" mapstructure:"corpus"`
	Gate   GateConfig   `yaml:"gate" mapstructure:"gate"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Watch  WatchConfig  `yaml:"watch" mapstructure:"watch"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// CorpusConfig locates the read-only inputs.
type CorpusConfig struct {
	Dir          string `yaml:"dir" mapstructure:"dir"`
	MetadataPath string `yaml:"metadata_path" mapstructure:"metadata_path"`
}

// GateConfig holds the run-level policy values. The thresholds and the
// lexicon/weight tables are tuned constants, kept configurable rather than
// hard-coded.
type GateConfig struct {
	ConfidenceThreshold int    `yaml:"confidence_threshold" mapstructure:"confidence_threshold"`
	TripThreshold       int    `yaml:"trip_threshold" mapstructure:"trip_threshold"`
	Region              string `yaml:"region" mapstructure:"region"`
	LexiconPath         string `yaml:"lexicon_path" mapstructure:"lexicon_path"`
	WeightsPath         string `yaml:"weights_path" mapstructure:"weights_path"`
}

// OutputConfig locates the files the gate writes.
type OutputConfig struct {
	ReportPath     string `yaml:"report_path" mapstructure:"report_path"`
	ErrorLogPath   string `yaml:"error_log_path" mapstructure:"error_log_path"`
	AlertDir       string `yaml:"alert_dir" mapstructure:"alert_dir"`
	CheckpointPath string `yaml:"checkpoint_path" mapstructure:"checkpoint_path"`
}

// StoreConfig configures the run-history database.
type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	DebounceMS int `yaml:"debounce_ms" mapstructure:"debounce_ms"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEXGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("corpus.dir", "corpus")
	v.SetDefault("corpus.metadata_path", "corpus/metadata.json")
	v.SetDefault("gate.confidence_threshold", 70)
	v.SetDefault("gate.trip_threshold", 3)
	v.SetDefault("output.report_path", "out/validation-report.json")
	v.SetDefault("output.error_log_path", "out/validation-errors.json")
	v.SetDefault("output.alert_dir", "out/alerts")
	v.SetDefault("output.checkpoint_path", "out/circuit-breaker.json")
	v.SetDefault("store.path", "out/lexgate.db")
	v.SetDefault("watch.debounce_ms", 500)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the values a run depends on.
func (c *Config) Validate() error {
	if c.Corpus.Dir == "" {
		return eris.New("config: corpus.dir is required")
	}
	if c.Gate.ConfidenceThreshold < 0 || c.Gate.ConfidenceThreshold > 100 {
		return eris.Errorf("config: gate.confidence_threshold must be 0-100 (got %d)", c.Gate.ConfidenceThreshold)
	}
	if c.Gate.TripThreshold < 1 {
		return eris.Errorf("config: gate.trip_threshold must be >= 1 (got %d)", c.Gate.TripThreshold)
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
