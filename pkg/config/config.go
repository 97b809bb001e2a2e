package config

import "time"

type Config struct {
	App           AppConfig           `mapstructure:"app"`
	HTTP          HTTPConfig          `mapstructure:"http"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Queue         QueueConfig         `mapstructure:"queue"`
	OpenTelemetry OpenTelemetryConfig `mapstructure:"opentelemetry"`
	Prometheus    PrometheusConfig    `mapstructure:"prometheus"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Finance       FinanceConfig       `mapstructure:"finance"`
	Environment   EnvironmentConfig   `mapstructure:"environment"`
	Cache         CacheConfig         `mapstructure:"cache"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type HTTPConfig struct {
	Port           int           `mapstructure:"port"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
	LogQueries      bool          `mapstructure:"log_queries"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	MaxRetries   int           `mapstructure:"max_retries"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// QueueConfig selects the event transport. Provider is "nats" or "rabbitmq";
// an empty provider disables event publication entirely.
type QueueConfig struct {
	Provider      string        `mapstructure:"provider"`
	URL           string        `mapstructure:"url"`
	MaxReconnects int           `mapstructure:"max_reconnects"`
	ReconnectWait time.Duration `mapstructure:"reconnect_wait"`
}

type OpenTelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
	ServiceName    string `mapstructure:"service_name"`
}

type PrometheusConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// FinanceConfig carries the engine constants that are configuration, not
// per-project parameters.
type FinanceConfig struct {
	DecommissionProbability float64             `mapstructure:"decommission_probability"`
	FailureAnnualIncrease   float64             `mapstructure:"failure_annual_increase"`
	SeasonalFactors         map[string]float64  `mapstructure:"seasonal_factors"` // month number -> multiplier
	SeverityEnabled         bool                `mapstructure:"severity_enabled"`
	SeverityTiers           SeverityTiersConfig `mapstructure:"severity_tiers"`
}

type SeverityTiersConfig struct {
	Minor       SeverityTierConfig `mapstructure:"minor"`
	Major       SeverityTierConfig `mapstructure:"major"`
	Replacement SeverityTierConfig `mapstructure:"replacement"`
}

type SeverityTierConfig struct {
	ProbabilityPct float64 `mapstructure:"probability_pct"`
	CostPct        float64 `mapstructure:"cost_pct"`
	DowntimeDays   int     `mapstructure:"downtime_days"`
}

type EnvironmentConfig struct {
	DefaultElectricityEmissionFactor float64 `mapstructure:"default_electricity_emission_factor"` // gCO2/kWh
	DefaultFuelEmissionFactor        float64 `mapstructure:"default_fuel_emission_factor"`        // gCO2/kWh equivalent
	DefaultRenewablePct              float64 `mapstructure:"default_renewable_pct"`
}

type CacheConfig struct {
	MetricsTTL      time.Duration `mapstructure:"metrics_ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}
