package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/redactbot/pkg/redactbot/internalerr"
)

// Environment variables that override the config file.
const (
	EnvConsumerKey    = "REDACTBOT_CONSUMER_KEY"
	EnvConsumerSecret = "REDACTBOT_CONSUMER_SECRET"
	EnvTokenKey       = "REDACTBOT_TOKEN_KEY"
	EnvTokenSecret    = "REDACTBOT_TOKEN_SECRET"
	EnvDatabase       = "REDACTBOT_DATABASE"
	EnvLogLevel       = "LOGLEVEL"
)

// DefaultAPIBase is the REST API the bot talks to.
const DefaultAPIBase = "https://api.twitter.com/1.1"

// Config is the bot configuration.
type Config struct {
	Keywords      []string       `yaml:"keywords"`
	Authorization *Authorization `yaml:"authorization"`

	RedactWordRatio float64 `yaml:"redact_word_ratio"`
	RedactNounRatio float64 `yaml:"redact_noun_ratio"`
	JiggleRate      float64 `yaml:"jiggle_rate"`

	RetryLimit int           `yaml:"retry_limit"`
	RetryDelay time.Duration `yaml:"retry_delay"`

	// Optional resources; relative paths are resolved against the config
	// file's directory.
	Thesaurus string `yaml:"thesaurus"`
	Stoplist  string `yaml:"stoplist"`
	Phrases   string `yaml:"phrases"`
	Database  string `yaml:"database"`

	APIBase  string `yaml:"api_base"`
	LogLevel string `yaml:"log_level"`
}

// Authorization holds the OAuth 1.0a credentials.
type Authorization struct {
	ConsumerKey    string `yaml:"consumer_key"`
	ConsumerSecret string `yaml:"consumer_secret"`
	TokenKey       string `yaml:"token_key"`
	TokenSecret    string `yaml:"token_secret"`
}

// MissingCredentialError names a credential absent from an otherwise
// present authorization block.
type MissingCredentialError struct {
	Name string
}

func (e *MissingCredentialError) Error() string {
	return fmt.Sprintf("required authorization item %q missing", e.Name)
}

// Check reports ErrNoAuthorization when a is nil, and a
// *MissingCredentialError for the first empty item otherwise.
func (a *Authorization) Check() error {
	if a == nil {
		return internalerr.ErrNoAuthorization
	}
	items := []struct{ name, value string }{
		{"consumer_key", a.ConsumerKey},
		{"consumer_secret", a.ConsumerSecret},
		{"token_key", a.TokenKey},
		{"token_secret", a.TokenSecret},
	}
	for _, it := range items {
		if strings.TrimSpace(it.value) == "" {
			return &MissingCredentialError{Name: it.name}
		}
	}
	return nil
}

// DefaultKeywords seed the search when the config names none.
var DefaultKeywords = []string{"suspicious", "weird", "strange", "odd", "unusual", "creepy"}

// Default returns the built-in configuration. It has no credentials.
func Default() *Config {
	return &Config{
		Keywords:        append([]string(nil), DefaultKeywords...),
		RedactWordRatio: 0.3,
		RedactNounRatio: 0.7,
		JiggleRate:      0.2,
		RetryLimit:      5,
		RetryDelay:      2 * time.Second,
		APIBase:         DefaultAPIBase,
		LogLevel:        "info",
	}
}

// Load reads the YAML config at path on top of Default and applies
// environment overrides. The result is validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(cfg.Keywords) == 0 {
		cfg.Keywords = append([]string(nil), DefaultKeywords...)
	}

	cfg.resolvePaths(filepath.Dir(path))
	cfg.ApplyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from the environment. lookup is usually
// os.LookupEnv. Setting any credential variable creates the authorization
// block if the file had none.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	creds := []struct {
		env string
		set func(*Authorization, string)
	}{
		{EnvConsumerKey, func(a *Authorization, v string) { a.ConsumerKey = v }},
		{EnvConsumerSecret, func(a *Authorization, v string) { a.ConsumerSecret = v }},
		{EnvTokenKey, func(a *Authorization, v string) { a.TokenKey = v }},
		{EnvTokenSecret, func(a *Authorization, v string) { a.TokenSecret = v }},
	}
	for _, cr := range creds {
		v, ok := lookup(cr.env)
		if !ok || v == "" {
			continue
		}
		if c.Authorization == nil {
			c.Authorization = &Authorization{}
		}
		cr.set(c.Authorization, v)
	}

	if v, ok := lookup(EnvDatabase); ok && v != "" {
		c.Database = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
}

// Validate checks ratios, retry settings and the log level.
func (c *Config) Validate() error {
	var errs []error
	ratios := []struct {
		name  string
		value float64
	}{
		{"redact_word_ratio", c.RedactWordRatio},
		{"redact_noun_ratio", c.RedactNounRatio},
		{"jiggle_rate", c.JiggleRate},
	}
	for _, r := range ratios {
		if math.IsNaN(r.value) || r.value < 0 || r.value > 1 {
			errs = append(errs, fmt.Errorf("%s %v not in [0,1]", r.name, r.value))
		}
	}
	if c.RetryLimit < 0 {
		errs = append(errs, fmt.Errorf("retry_limit %d is negative", c.RetryLimit))
	}
	if c.RetryDelay < 0 {
		errs = append(errs, fmt.Errorf("retry_delay %v is negative", c.RetryDelay))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", internalerr.ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func (c *Config) resolvePaths(dir string) {
	for _, p := range []*string{&c.Thesaurus, &c.Stoplist, &c.Phrases, &c.Database} {
		if *p == "" || filepath.IsAbs(*p) || *p == ":memory:" {
			continue
		}
		*p = filepath.Join(dir, *p)
	}
}
