package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. SCHENGEN_API_BASE_URL.
const EnvPrefix = "SCHENGEN"

type Config struct {
	API    APIConfig    `mapstructure:"api"`
	Demo   DemoConfig   `mapstructure:"demo"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	UI     UIConfig     `mapstructure:"ui"`
}

// APIConfig describes the upstream travel API and the query it is sent.
type APIConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	Citizenship  string        `mapstructure:"citizenship"`
	Residence    string        `mapstructure:"residence"`
	Pincode      string        `mapstructure:"pincode"`
	Enterprise   bool          `mapstructure:"enterprise"`
	Purpose      string        `mapstructure:"purpose"`
	Travellers   int           `mapstructure:"travellers"`
	WithAllSlots bool          `mapstructure:"with_all_slots"`
	CitiesWise   bool          `mapstructure:"cities_wise"`
	Prefetch     int           `mapstructure:"prefetch_workers"`
}

type DemoConfig struct {
	Force bool   `mapstructure:"force"`
	File  string `mapstructure:"file"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type UIConfig struct {
	Theme string `mapstructure:"theme"`
}

// Dir is where the config file and the TUI log live by default.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".schengen"), nil
}

// New returns a viper instance with defaults and env binding applied.
// Callers may bind flags onto it before calling Load.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("api.base_url", "")
	v.SetDefault("api.timeout", "15s")
	v.SetDefault("api.citizenship", "IN")
	v.SetDefault("api.residence", "IN")
	v.SetDefault("api.pincode", "")
	v.SetDefault("api.enterprise", false)
	v.SetDefault("api.purpose", "tourism")
	v.SetDefault("api.travellers", 1)
	v.SetDefault("api.with_all_slots", true)
	v.SetDefault("api.cities_wise", true)
	v.SetDefault("api.prefetch_workers", 4)
	v.SetDefault("demo.force", false)
	v.SetDefault("demo.file", "")
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("ui.theme", "classic")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file and unmarshals v into a Config.
// An explicit file that cannot be read is an error; the default file is
// optional.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	} else if dir, err := Dir(); err == nil {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.API.BaseURL), "/")
	cfg.API.Citizenship = strings.ToUpper(cfg.API.Citizenship)
	cfg.API.Residence = strings.ToUpper(cfg.API.Residence)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the dashboard cannot run with.
func (c *Config) Validate() error {
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	if c.API.Travellers < 1 {
		return fmt.Errorf("api.travellers must be at least 1, got %d", c.API.Travellers)
	}
	if c.API.Prefetch < 1 {
		return fmt.Errorf("api.prefetch_workers must be at least 1, got %d", c.API.Prefetch)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be \"text\" or \"json\", got %q", c.Log.Format)
	}
	return nil
}

// Addr is the listen address of the web dashboard.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
