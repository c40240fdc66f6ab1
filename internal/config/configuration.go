// Package config loads runtime settings from defaults, an optional YAML file
// and YTSTREAM_* environment variables, in increasing precedence.
package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const envPrefix = "YTSTREAM"

type Config struct {
	// Extraction
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
	ClientOrder    []string      `mapstructure:"client_order"`
	ClientSkip     []string      `mapstructure:"client_skip"`
	TablesFile     string        `mapstructure:"tables_file" validate:"omitempty,file"`
	ProxyURL       string        `mapstructure:"proxy_url" validate:"omitempty,url"`
	Platform       string        `mapstructure:"platform" validate:"omitempty,oneof=adaptive dash split android progressive muxed ios unknown"`

	// Logging
	LogLevel string `mapstructure:"log_level" validate:"oneof=trace debug info warn error"`

	// HTTP API
	ListenAddr         string `mapstructure:"listen_addr" validate:"required,hostname_port"`
	RateLimitPerMinute int    `mapstructure:"rate_limit_per_minute" validate:"gte=1"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("request_timeout", 12*time.Second)
	v.SetDefault("log_level", "info")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("rate_limit_per_minute", 60)
	v.SetDefault("platform", "unknown")
}

// bindEnv registers every mapstructure key so AutomaticEnv also covers keys
// without a default.
func bindEnv(v *viper.Viper, c Config) error {
	typ := reflect.TypeOf(c)
	for i := 0; i < typ.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("mapstructure")
		if tag == "" {
			continue
		}
		if err := v.BindEnv(tag); err != nil {
			return fmt.Errorf("bind env %s: %w", tag, err)
		}
	}
	return nil
}

// Load reads configuration. path may be empty; a missing explicit path is an
// error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := bindEnv(v, Config{}); err != nil {
		return nil, err
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ClientOrder = splitList(cfg.ClientOrder)
	cfg.ClientSkip = splitList(cfg.ClientSkip)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg after normalizing the platform name, which accepts the
// same aliases as the platform hint parser.
func Validate(cfg *Config) error {
	cfg.Platform = strings.ToLower(strings.TrimSpace(cfg.Platform))
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	return nil
}

// splitList accepts both YAML lists and comma separated env values.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
