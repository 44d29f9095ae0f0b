// Package config loads and validates the CLI configuration from disk
// and the environment.
package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type IConfig interface {
	Validate() []error
}

type GlobalConfig struct {
	API     *APIConfig     `json:"api" yaml:"api"`
	Session *SessionConfig `json:"session" yaml:"session"`
	Log     *LogConfig     `json:"log" yaml:"log"`
}

func (g *GlobalConfig) Validate() []error {
	var errs = make([]error, 0)
	if g.API != nil {
		if es := g.API.Validate(); len(es) > 0 {
			errs = append(errs, es...)
		}
	}
	if g.Session != nil {
		if es := g.Session.Validate(); len(es) > 0 {
			errs = append(errs, es...)
		}
	}
	if g.Log != nil {
		if es := g.Log.Validate(); len(es) > 0 {
			errs = append(errs, es...)
		}
	}
	return errs
}

func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		API:     NewDefaultAPIConfig(),
		Session: NewDefaultSessionConfig(),
		Log:     NewDefaultLogConfig(),
	}
}

// TryLoadFromDisk reads the config file at configFilePath, layering
// environment variables over it, and unmarshals onto the defaults.
func TryLoadFromDisk(configFilePath string) (*GlobalConfig, error) {
	_, err := os.Stat(configFilePath)
	if err != nil {
		return nil, err
	}
	dir, file := filepath.Split(configFilePath)
	fileType := filepath.Ext(file)
	viper.AddConfigPath(dir)
	viper.SetConfigName(strings.TrimSuffix(file, fileType))
	viper.SetConfigType(strings.TrimPrefix(fileType, "."))
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := viper.ReadInConfig(); err != nil {
		if errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
		return nil, errors.Errorf("parsing config file failed: %s", err.Error())
	}
	cfg := NewDefaultGlobalConfig()
	if err := viper.Unmarshal(cfg, func(config *mapstructure.DecoderConfig) {
		config.TagName = strings.TrimPrefix(fileType, ".")
	}); err != nil {
		return nil, err
	}
	return cfg, nil
}

// APIConfig points the client at the ParcelShield server.
type APIConfig struct {
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`
	// TimeoutSeconds bounds every request, uploads included.
	TimeoutSeconds int `json:"timeoutSeconds" yaml:"timeoutSeconds"`
}

func (a *APIConfig) Validate() []error {
	var errs = make([]error, 0)
	if a.BaseURL == "" {
		errs = append(errs, errors.Errorf("api.baseUrl must not be empty"))
		return errs
	}
	parsed, err := url.Parse(a.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		errs = append(errs, errors.Errorf("api.baseUrl %q is not an absolute URL", a.BaseURL))
	}
	if a.TimeoutSeconds <= 0 {
		errs = append(errs, errors.Errorf("api.timeoutSeconds must be positive, got %d", a.TimeoutSeconds))
	}
	return errs
}

func NewDefaultAPIConfig() *APIConfig {
	return &APIConfig{
		BaseURL:        "http://localhost:8000/api",
		TimeoutSeconds: 30,
	}
}

func (a *APIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}

// SessionConfig locates the durable client-state file.
type SessionConfig struct {
	StatePath string `json:"statePath" yaml:"statePath"`
}

func (s *SessionConfig) Validate() []error {
	var errs = make([]error, 0)
	if s.StatePath == "" {
		errs = append(errs, errors.Errorf("session.statePath must not be empty"))
		return errs
	}

	dir := filepath.Dir(s.StatePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		errs = append(errs, errors.Errorf("creating session state dir failed: %v", err))
	}
	return errs
}

func NewDefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		StatePath: "./data/shieldkit-state.json",
	}
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

var logLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

func (l *LogConfig) Validate() []error {
	var errs = make([]error, 0)
	if !logLevels[l.Level] {
		errs = append(errs, errors.Errorf("log.level %q is not one of debug, info, warn, error", l.Level))
	}
	return errs
}

func NewDefaultLogConfig() *LogConfig {
	return &LogConfig{Level: "info"}
}
