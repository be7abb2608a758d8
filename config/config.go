package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig   `mapstructure:"server"`
	Store       StoreConfig    `mapstructure:"store"`
	Database    DatabaseConfig `mapstructure:"database"`
	Game        GameConfig     `mapstructure:"game"`
	Bench       BenchConfig    `mapstructure:"bench"`
	Logging     LoggingConfig  `mapstructure:"logging"`
	Metrics     MetricsConfig  `mapstructure:"metrics"`
	Tracing     TracingConfig  `mapstructure:"tracing"`
	Security    SecurityConfig `mapstructure:"security"`
	Environment string         `mapstructure:"environment"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// StoreConfig selects where finished matches are archived.
type StoreConfig struct {
	// Type is either "memory" or "postgres".
	Type string `mapstructure:"type"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Database        string        `mapstructure:"database"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	MigrateOnStart  bool          `mapstructure:"migrate_on_start"`
}

type GameConfig struct {
	// DefaultStrategy is the AI used for seats not occupied by a
	// human: "random" or "greedy".
	DefaultStrategy string `mapstructure:"default_strategy"`
	// MaxLiveGames caps concurrently running games; zero is
	// unlimited.
	MaxLiveGames int `mapstructure:"max_live_games"`
}

type BenchConfig struct {
	WarmupRounds int           `mapstructure:"warmup_rounds"`
	MinRounds    int           `mapstructure:"min_rounds"`
	MaxTime      time.Duration `mapstructure:"max_time"`
	ReportDir    string        `mapstructure:"report_dir"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type TracingConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	JaegerURL  string  `mapstructure:"jaeger_url"`
	SampleRate float64 `mapstructure:"sample_rate"`
}

type SecurityConfig struct {
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Rate    int           `mapstructure:"rate"`
	Period  time.Duration `mapstructure:"period"`
}

func LoadConfig(configPath string) (*Config, error) {
	setDefaults()

	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.SetConfigName("gouji")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/gouji/")
		viper.AddConfigPath("$HOME/.gouji/")
	}

	viper.SetEnvPrefix("GOUJI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.idle_timeout", "120s")
	viper.SetDefault("server.shutdown_timeout", "30s")

	viper.SetDefault("store.type", "memory")

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.database", "gouji")
	viper.SetDefault("database.username", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", "1h")
	viper.SetDefault("database.conn_max_idle_time", "30m")
	viper.SetDefault("database.migrate_on_start", true)

	viper.SetDefault("game.default_strategy", "random")
	viper.SetDefault("game.max_live_games", 0)

	viper.SetDefault("bench.warmup_rounds", 5)
	viper.SetDefault("bench.min_rounds", 20)
	viper.SetDefault("bench.max_time", "10s")
	viper.SetDefault("bench.report_dir", "reports")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
	viper.SetDefault("logging.output", "stdout")

	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.path", "/metrics")

	viper.SetDefault("tracing.enabled", false)
	viper.SetDefault("tracing.jaeger_url", "http://localhost:14268/api/traces")
	viper.SetDefault("tracing.sample_rate", 1.0)

	viper.SetDefault("security.rate_limit.enabled", true)
	viper.SetDefault("security.rate_limit.rate", 300)
	viper.SetDefault("security.rate_limit.period", "1m")

	viper.SetDefault("environment", "development")
}

func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Store.Type != "memory" && config.Store.Type != "postgres" {
		return fmt.Errorf("invalid store type: %s", config.Store.Type)
	}

	if config.Store.Type == "postgres" {
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if config.Database.Database == "" {
			return fmt.Errorf("database name is required")
		}
		if config.Database.Port <= 0 || config.Database.Port > 65535 {
			return fmt.Errorf("invalid database port: %d", config.Database.Port)
		}
	}

	if config.Game.DefaultStrategy != "random" && config.Game.DefaultStrategy != "greedy" {
		return fmt.Errorf("invalid default strategy: %s", config.Game.DefaultStrategy)
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	isValidLevel := false
	for _, level := range validLevels {
		if config.Logging.Level == level {
			isValidLevel = true
			break
		}
	}
	if !isValidLevel {
		return fmt.Errorf("invalid logging level: %s", config.Logging.Level)
	}

	if config.Logging.Format != "json" && config.Logging.Format != "console" {
		return fmt.Errorf("invalid logging format: %s", config.Logging.Format)
	}

	if config.Bench.MinRounds < 1 {
		return fmt.Errorf("bench min rounds must be at least 1: %d", config.Bench.MinRounds)
	}

	return nil
}

func (c *Config) GetDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.Username,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
