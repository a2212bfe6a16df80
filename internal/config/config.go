package config

import (
	"log"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"taskflow/internal/model"
)

type Config struct {
	Port          string        `mapstructure:"port"`
	DBPath        string        `mapstructure:"db_path"`
	CORSOrigins   []string      `mapstructure:"cors_origins"`
	CustomMinutes int           `mapstructure:"custom_minutes"`
	Notify        string        `mapstructure:"notify"`
	TickInterval  time.Duration `mapstructure:"tick_interval"`
}

// Loader reads configuration from defaults, an optional taskflow.yaml and
// the environment, in increasing priority.
type Loader struct {
	v *viper.Viper
}

var envBindings = map[string]string{
	"port":           "PORT",
	"db_path":        "DB_PATH",
	"cors_origins":   "CORS_ORIGINS",
	"custom_minutes": "CUSTOM_MINUTES",
	"notify":         "NOTIFY",
	"tick_interval":  "TICK_INTERVAL",
}

func NewLoader(configPath string) *Loader {
	v := viper.New()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("taskflow")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/taskflow")
	}

	v.SetDefault("port", "8080")
	v.SetDefault("db_path", "./data/taskflow.db")
	v.SetDefault("cors_origins", "http://localhost:5173,http://127.0.0.1:5173")
	v.SetDefault("custom_minutes", model.DefaultCustomMinutes)
	v.SetDefault("notify", "log")
	v.SetDefault("tick_interval", "1s")

	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}
	return &Loader{v: v}
}

// Load reads the config file when one exists. A missing file is not an error.
func (l *Loader) Load() (Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, errors.Wrap(err, "read config")
		}
	}
	return l.decode()
}

// ConfigFile is the file in use, empty when running on defaults and env.
func (l *Loader) ConfigFile() string {
	return l.v.ConfigFileUsed()
}

// Watch calls onChange with the re-read config whenever the config file is
// written. It does nothing when no file is in use.
func (l *Loader) Watch(onChange func(Config)) {
	if l.ConfigFile() == "" {
		return
	}
	l.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := l.decode()
		if err != nil {
			log.Printf("reload config %s: %v", e.Name, err)
			return
		}
		log.Printf("config reloaded from %s", e.Name)
		onChange(cfg)
	})
	l.v.WatchConfig()
}

func (l *Loader) decode() (Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	return cfg.normalize(), nil
}

func (c Config) normalize() Config {
	c.CORSOrigins = cleanList(c.CORSOrigins)
	if c.TickInterval <= 0 {
		log.Printf("Warning: tick_interval %s too low, using 1s", c.TickInterval)
		c.TickInterval = time.Second
	}
	if c.CustomMinutes != model.ClampCustomMinutes(c.CustomMinutes) {
		log.Printf("Warning: custom_minutes %d out of range, clamping", c.CustomMinutes)
		c.CustomMinutes = model.ClampCustomMinutes(c.CustomMinutes)
	}
	c.Notify = strings.ToLower(strings.TrimSpace(c.Notify))
	return c
}

func cleanList(values []string) []string {
	items := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				items = append(items, trimmed)
			}
		}
	}
	return items
}
