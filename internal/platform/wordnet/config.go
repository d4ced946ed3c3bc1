package wordnet

import (
	"fmt"
	"net/url"

	"github.com/artisanalfutures/craftgraph/internal/platform/envutil"
)

type Config struct {
	URL            string `yaml:"url"`
	Lexicon        string `yaml:"lexicon"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type ConfigErrorCode string

const (
	ConfigErrorMissingURL ConfigErrorCode = "missing_url"
	ConfigErrorInvalidURL ConfigErrorCode = "invalid_url"
)

type ConfigError struct {
	Code  ConfigErrorCode
	Value string
	Cause error
}

func (e *ConfigError) Error() string {
	if e == nil {
		return "invalid wordnet config"
	}
	switch e.Code {
	case ConfigErrorMissingURL:
		return "WORDNET_URL is required"
	case ConfigErrorInvalidURL:
		return fmt.Sprintf(
			"invalid WORDNET_URL=%q; expected absolute URL like http://wordnet:8080",
			e.Value,
		)
	default:
		return "invalid wordnet config"
	}
}

func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func ResolveConfigFromEnv() Config {
	return Config{
		URL:            envutil.String("WORDNET_URL", ""),
		Lexicon:        envutil.String("WORDNET_LEXICON", "oewn:2021"),
		TimeoutSeconds: envutil.Int("WORDNET_TIMEOUT_SECONDS", 10),
	}
}

func ValidateConfig(cfg Config) error {
	if cfg.URL == "" {
		return &ConfigError{Code: ConfigErrorMissingURL}
	}
	parsed, err := url.Parse(cfg.URL)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return &ConfigError{Code: ConfigErrorInvalidURL, Value: cfg.URL, Cause: err}
	}
	return nil
}
