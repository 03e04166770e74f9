// Package config loads and stores CLI configuration.
//
// Settings come, in increasing priority, from built-in defaults, config.yaml in
// the XDG config dir, a .env file in the working directory, and HELPDESK_*
// environment variables. Only non-secret settings are kept in the file; the
// credential itself goes to the OS keychain.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"helpdesk/cli/internal/xdg"
)

// EnvPrefix prefixes every environment variable read by the CLI.
const EnvPrefix = "HELPDESK"

// Config holds non-sensitive CLI settings.
type Config struct {
	BaseURL   string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout" yaml:"timeout"`
	Log       LogConfig     `mapstructure:"log" yaml:"log"`
	Keyring   KeyringConfig `mapstructure:"keyring" yaml:"keyring"`
	Endpoints Endpoints     `mapstructure:"endpoints" yaml:"endpoints"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// KeyringConfig selects where the credential is persisted.
type KeyringConfig struct {
	// Backends restricts the keyring backends, in preference order.
	Backends []string `mapstructure:"backends" yaml:"backends"`
	// FileDir is the directory of the encrypted file backend.
	FileDir string `mapstructure:"file_dir" yaml:"file_dir"`
	// Password unlocks the file backend without prompting.
	Password string `mapstructure:"password" yaml:"-"`
}

// Endpoints contains REST API endpoint paths relative to BaseURL.
type Endpoints struct {
	Login          string `mapstructure:"login" yaml:"login"`                     // e.g., "/api/auth/login"
	Register       string `mapstructure:"register" yaml:"register"`               // e.g., "/api/auth/register"
	StudentQueries string `mapstructure:"student_queries" yaml:"student_queries"` // e.g., "/api/queries/student"
	SchoolQueries  string `mapstructure:"school_queries" yaml:"school_queries"`   // e.g., "/api/queries/school"
	Ask            string `mapstructure:"ask" yaml:"ask"`                         // e.g., "/api/queries/ask"
	Answer         string `mapstructure:"answer" yaml:"answer"`                   // e.g., "/api/queries/answer"
}

// DefaultEndpoints returns the paths served by the helpdesk backend.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Login:          "/api/auth/login",
		Register:       "/api/auth/register",
		StudentQueries: "/api/queries/student",
		SchoolQueries:  "/api/queries/school",
		Ask:            "/api/queries/ask",
		Answer:         "/api/queries/answer",
	}
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:   "http://localhost:8080",
		Timeout:   15 * time.Second,
		Log:       LogConfig{Level: "warn", Format: "console"},
		Endpoints: DefaultEndpoints(),
	}
}

// Loader reads configuration through viper.
type Loader struct {
	v *viper.Viper
	// Dir is the directory holding config.yaml.
	Dir string
	// EnvFile is an optional dotenv file loaded before reading the environment.
	EnvFile string
}

// NewLoader returns a loader rooted at dir. An empty dir resolves to the XDG config dir.
func NewLoader(dir string) (*Loader, error) {
	if dir == "" {
		d, err := xdg.ConfigDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return &Loader{v: viper.New(), Dir: dir, EnvFile: ".env"}, nil
}

// Path returns the config file path.
func (l *Loader) Path() string {
	return filepath.Join(l.Dir, "config.yaml")
}

// Load reads configuration; a missing file yields defaults.
func (l *Loader) Load() (Config, error) {
	if l.EnvFile != "" {
		if _, err := os.Stat(l.EnvFile); err == nil {
			if err := godotenv.Load(l.EnvFile); err != nil {
				return Config{}, fmt.Errorf("load %s: %w", l.EnvFile, err)
			}
		}
	}

	v := l.v
	setDefaults(v, Default())
	v.SetConfigFile(l.Path())
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Set stores a single key in config.yaml, keeping every other value in the file.
// Environment overrides are not written back.
func (l *Loader) Set(key string, value string) error {
	if _, known := Keys()[key]; !known {
		return fmt.Errorf("unknown config key %q", key)
	}

	file := viper.New()
	file.SetConfigFile(l.Path())
	file.SetConfigType("yaml")
	if err := file.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read config: %w", err)
	}
	if key == "keyring.backends" {
		file.Set(key, splitList(value))
	} else {
		file.Set(key, value)
	}

	// Validate the merged result before touching the file.
	merged := viper.New()
	setDefaults(merged, Default())
	if err := merged.MergeConfigMap(file.AllSettings()); err != nil {
		return err
	}
	var c Config
	if err := merged.Unmarshal(&c); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(l.Dir, 0o700); err != nil {
		return err
	}
	return file.WriteConfigAs(l.Path())
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Settings returns every resolved setting keyed by its dotted name.
func (l *Loader) Settings() map[string]any {
	return l.v.AllSettings()
}

// Keys lists the settable configuration keys with a short description.
func Keys() map[string]string {
	return map[string]string{
		"base_url":                  "backend base URL",
		"timeout":                   "per-request timeout, e.g. 15s",
		"log.level":                 "debug, info, warn or error",
		"log.format":                "console or json",
		"keyring.backends":          "comma separated keyring backends",
		"keyring.file_dir":          "directory of the file keyring",
		"endpoints.login":           "login path",
		"endpoints.register":        "registration path",
		"endpoints.student_queries": "own queries path",
		"endpoints.school_queries":  "department queries path",
		"endpoints.ask":             "submit query path",
		"endpoints.answer":          "answer query path prefix",
	}
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("timeout", d.Timeout)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("keyring.backends", []string{})
	v.SetDefault("keyring.file_dir", "")
	v.SetDefault("keyring.password", "")
	v.SetDefault("endpoints.login", d.Endpoints.Login)
	v.SetDefault("endpoints.register", d.Endpoints.Register)
	v.SetDefault("endpoints.student_queries", d.Endpoints.StudentQueries)
	v.SetDefault("endpoints.school_queries", d.Endpoints.SchoolQueries)
	v.SetDefault("endpoints.ask", d.Endpoints.Ask)
	v.SetDefault("endpoints.answer", d.Endpoints.Answer)
}

// Validate checks the settings that would otherwise fail on first use.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base_url must be an absolute URL (got: %q)", c.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url scheme must be http or https (got: %s)", u.Scheme)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive (got: %s)", c.Timeout)
	}
	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "error", "fatal", "disabled":
	default:
		return fmt.Errorf("log.level must be one of [trace debug info warn error fatal disabled] (got: %s)", c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "pretty", "json":
	default:
		return fmt.Errorf("log.format must be one of [console pretty json] (got: %s)", c.Log.Format)
	}
	return nil
}
