package env

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Config struct {
	App struct {
		Name string `mapstructure:"name"`
	} `mapstructure:"app"`
	Web struct {
		Port    int  `mapstructure:"port"`
		Prefork bool `mapstructure:"prefork"`
		Cors    struct {
			AllowOrigins string `mapstructure:"allow_origins"`
		} `mapstructure:"cors"`
	} `mapstructure:"web"`
	Events struct {
		Port int    `mapstructure:"port"`
		Path string `mapstructure:"path"`
	} `mapstructure:"events"`
	JWT struct {
		Secret            string        `mapstructure:"secret"`
		BlacklistFallback time.Duration `mapstructure:"blacklist_fallback"`
	} `mapstructure:"jwt"`
	Backend struct {
		BaseURL string        `mapstructure:"base_url"`
		Timeout time.Duration `mapstructure:"timeout"`
	} `mapstructure:"backend"`
	Session struct {
		TTL time.Duration `mapstructure:"ttl"`
	} `mapstructure:"session"`
	Log struct {
		Level int `mapstructure:"level"`
	} `mapstructure:"log"`
	Redis struct {
		Address  string `mapstructure:"address"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
		Pool     struct {
			Size        int `mapstructure:"size"`
			MinIdle     int `mapstructure:"min_idle"`
			MaxIdle     int `mapstructure:"max_idle"`
			Lifetime    int `mapstructure:"lifetime"`
			IdleTimeout int `mapstructure:"idle_timeout"`
		} `mapstructure:"pool"`
	} `mapstructure:"redis"`
	Database struct {
		DSN  string `mapstructure:"dsn"`
		Pool struct {
			Idle     int `mapstructure:"idle"`
			Max      int `mapstructure:"max"`
			Lifetime int `mapstructure:"lifetime"`
		} `mapstructure:"pool"`
		Log struct {
			Level int `mapstructure:"level"`
		} `mapstructure:"log"`
	} `mapstructure:"database"`
	Monitoring struct {
		Otel struct {
			Host string `mapstructure:"host"`
		} `mapstructure:"otel"`
	} `mapstructure:"monitoring"`
}

// GetAccessSecret returns the HMAC secret shared with the CRM backend.
func (c *Config) GetAccessSecret() string {
	return c.JWT.Secret
}

// GetBlacklistFallback is the blacklist TTL used when a token's expiry
// cannot be read.
func (c *Config) GetBlacklistFallback() time.Duration {
	if c.JWT.BlacklistFallback <= 0 {
		return 24 * time.Hour
	}
	return c.JWT.BlacklistFallback
}

// GetBackendTimeout is the per-request timeout towards the CRM backend.
func (c *Config) GetBackendTimeout() time.Duration {
	if c.Backend.Timeout <= 0 {
		return 10 * time.Second
	}
	return c.Backend.Timeout
}

// GetSessionTTL is how long an idle permission edit session survives.
func (c *Config) GetSessionTTL() time.Duration {
	if c.Session.TTL <= 0 {
		return 30 * time.Minute
	}
	return c.Session.TTL
}

// durationHook decodes duration fields from either a bare number of
// seconds (3600) or a Go duration string ("30m").
func durationHook() mapstructure.DecodeHookFuncType {
	durationType := reflect.TypeOf(time.Duration(0))

	return func(_ reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != durationType {
			return data, nil
		}

		switch v := data.(type) {
		case int:
			return time.Duration(v) * time.Second, nil
		case int64:
			return time.Duration(v) * time.Second, nil
		case uint64:
			return time.Duration(v) * time.Second, nil
		case float64:
			return time.Duration(v * float64(time.Second)), nil
		case string:
			if seconds, err := strconv.ParseInt(v, 10, 64); err == nil {
				return time.Duration(seconds) * time.Second, nil
			}
			return time.ParseDuration(v)
		}
		return data, nil
	}
}

// NewConfig reads config.yml from the given file, or from ./ and ./../
// when no path is passed.
func NewConfig(path ...string) *Config {
	config := viper.New()

	// Set configuration file details
	if len(path) > 0 && path[0] != "" {
		config.SetConfigFile(path[0])
	} else {
		config.SetConfigName("config")
		config.SetConfigType("yml")
		config.AddConfigPath("./../")
		config.AddConfigPath("./")
	}

	// Read the configuration file
	if err := config.ReadInConfig(); err != nil {
		panic(fmt.Errorf("fatal error reading config file: %w", err))
	}

	// Unmarshal into the Config struct
	cfg := new(Config)
	if err := config.Unmarshal(cfg, viper.DecodeHook(durationHook())); err != nil {
		panic(fmt.Errorf("fatal error unmarshaling config: %w", err))
	}

	return cfg
}
