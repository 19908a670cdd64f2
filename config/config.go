package config

import (
	"log/slog"
	"net"
	"net/url"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/viper"
)

const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

type APIConfig struct {
	BaseURL       string `mapstructure:"base_url"`
	Timeout       string `mapstructure:"timeout"`
	HealthTimeout string `mapstructure:"health_timeout"`
}

type BreakerConfig struct {
	FailureThreshold int    `mapstructure:"failure_threshold"`
	RecoveryTimeout  string `mapstructure:"recovery_timeout"`
}

type CacheConfig struct {
	TTL  string `mapstructure:"ttl"`
	Size int    `mapstructure:"size"`
}

type RetryConfig struct {
	MaxRetries int    `mapstructure:"max_retries"`
	BaseDelay  string `mapstructure:"base_delay"`
	MaxDelay   string `mapstructure:"max_delay"`
}

type MonitorConfig struct {
	Address       string `mapstructure:"address"`
	ProbeInterval string `mapstructure:"probe_interval"`
}

type ServerConfig struct {
	Environment string `mapstructure:"environment"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Breaker BreakerConfig `mapstructure:"breaker"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Retry   RetryConfig   `mapstructure:"retry"`
	Monitor MonitorConfig `mapstructure:"monitor"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
}

func Load() (*Config, error) {
	viper.SetDefault("api.base_url", "http://localhost:8000")
	viper.SetDefault("api.timeout", "10s")
	viper.SetDefault("api.health_timeout", "5s")
	viper.SetDefault("breaker.failure_threshold", 5)
	viper.SetDefault("breaker.recovery_timeout", "60s")
	viper.SetDefault("cache.ttl", "30s")
	viper.SetDefault("cache.size", 256)
	viper.SetDefault("retry.max_retries", 3)
	viper.SetDefault("retry.base_delay", "500ms")
	viper.SetDefault("retry.max_delay", "8s")
	viper.SetDefault("monitor.address", ":8090")
	viper.SetDefault("monitor.probe_interval", "30s")
	viper.SetDefault("server.environment", EnvDev)
	viper.SetDefault("logging.level", LogLevelInfo)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("failed to read config file", slog.String("error", err.Error()))
			return nil, err
		}
		slog.Info("config file not found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", slog.String("file", viper.ConfigFileUsed()))
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		slog.Error("failed to unmarshal config", slog.String("error", err.Error()))
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.API,
			validation.Required,
			validation.By(func(value interface{}) error {
				ac, ok := value.(APIConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be an APIConfig")
				}
				return validation.ValidateStruct(&ac,
					validation.Field(&ac.BaseURL,
						validation.Required,
						validation.By(validateServerURL),
					),
					validation.Field(&ac.Timeout,
						validation.Required,
						validation.By(validateDuration),
					),
					validation.Field(&ac.HealthTimeout,
						validation.Required,
						validation.By(validateDuration),
					),
				)
			}),
		),
		validation.Field(&c.Breaker,
			validation.Required,
			validation.By(func(value interface{}) error {
				bc, ok := value.(BreakerConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a BreakerConfig")
				}
				return validation.ValidateStruct(&bc,
					validation.Field(&bc.FailureThreshold,
						validation.Required,
						validation.Min(1),
					),
					validation.Field(&bc.RecoveryTimeout,
						validation.Required,
						validation.By(validateDuration),
					),
				)
			}),
		),
		validation.Field(&c.Cache,
			validation.Required,
			validation.By(func(value interface{}) error {
				cc, ok := value.(CacheConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a CacheConfig")
				}
				return validation.ValidateStruct(&cc,
					validation.Field(&cc.TTL,
						validation.Required,
						validation.By(validateDuration),
					),
					validation.Field(&cc.Size,
						validation.Required,
						validation.Min(1),
					),
				)
			}),
		),
		validation.Field(&c.Retry,
			validation.Required,
			validation.By(func(value interface{}) error {
				rc, ok := value.(RetryConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a RetryConfig")
				}
				return validation.ValidateStruct(&rc,
					validation.Field(&rc.MaxRetries,
						validation.Min(0),
					),
					validation.Field(&rc.BaseDelay,
						validation.Required,
						validation.By(validateDuration),
					),
					validation.Field(&rc.MaxDelay,
						validation.Required,
						validation.By(validateDuration),
					),
				)
			}),
		),
		validation.Field(&c.Monitor,
			validation.Required,
			validation.By(func(value interface{}) error {
				mc, ok := value.(MonitorConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a MonitorConfig")
				}
				return validation.ValidateStruct(&mc,
					validation.Field(&mc.Address,
						validation.Required,
						validation.By(validateHostPort),
					),
					validation.Field(&mc.ProbeInterval,
						validation.Required,
						validation.By(validateDuration),
					),
				)
			}),
		),
		validation.Field(&c.Server,
			validation.Required,
			validation.By(func(value interface{}) error {
				sc, ok := value.(ServerConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a ServerConfig")
				}
				return validation.ValidateStruct(&sc,
					validation.Field(&sc.Environment,
						validation.Required,
						validation.In(EnvDev, EnvStaging, EnvProd),
					),
				)
			}),
		),
		validation.Field(&c.Logging,
			validation.Required,
			validation.By(func(value interface{}) error {
				lc, ok := value.(LoggingConfig)
				if !ok {
					return validation.NewError("validation_invalid_type", "must be a LoggingConfig")
				}
				return validation.ValidateStruct(&lc,
					validation.Field(&lc.Level,
						validation.Required,
						validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
					),
				)
			}),
		),
	)
}

func validateHostPort(value interface{}) error {
	addr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return validation.NewError("validation_invalid_hostport", "must be in host:port format")
	}

	if port == "" {
		return validation.NewError("validation_invalid_port", "port cannot be empty")
	}

	if host != "" {
		if err := is.Host.Validate(host); err != nil {
			return validation.NewError("validation_invalid_host", "invalid host")
		}
	}

	return nil
}

func validateDuration(value interface{}) error {
	durationStr, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	if _, err := time.ParseDuration(durationStr); err != nil {
		return validation.NewError("validation_invalid_duration", "must be a valid duration (e.g., 2s, 5m, 1h)")
	}

	return nil
}

func validateServerURL(value interface{}) error {
	serverURL, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	if serverURL == "" {
		return validation.NewError("validation_empty_url", "server URL cannot be empty")
	}

	parsedURL, err := url.Parse(serverURL)
	if err != nil {
		return validation.NewError("validation_invalid_url", "must be a valid URL")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return validation.NewError("validation_invalid_scheme", "URL must use http or https scheme")
	}

	if parsedURL.Host == "" {
		return validation.NewError("validation_missing_host", "URL must have a host")
	}

	return nil
}
