// Package config loads the client configuration.
//
// Sources, by increasing priority:
//  1. built-in defaults;
//  2. YAML file (--config flag or WFI_CONFIG);
//  3. WFI_* environment variables;
//  4. command-line flags, applied by the caller through Override.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is the config file looked up when no path is given.
const DefaultPath = "wfi.yaml"

// Options holds the configuration values for the client.
type Options struct {
	// BaseURL is the API origin including its path prefix, e.g. http://host/api.
	BaseURL string `yaml:"base_url" env:"WFI_BASE_URL" env-default:"http://localhost:8000/api"`

	// TokenFile is where the session token is persisted between runs.
	TokenFile string `yaml:"token_file" env:"WFI_TOKEN_FILE"`

	// Timeout bounds every HTTP request made by the client.
	Timeout time.Duration `yaml:"timeout" env:"WFI_TIMEOUT" env-default:"15s"`

	// LogLevel is the minimum zap level ("debug", "info", "warn", "error").
	LogLevel string `yaml:"log_level" env:"WFI_LOG_LEVEL" env-default:"warn"`

	// CAFile is an optional PEM bundle trusted for the API origin.
	CAFile string `yaml:"ca_file" env:"WFI_CA_FILE"`

	// PageSizes overrides the per-view page sizes.
	PageSizes PageSizes `yaml:"page_sizes"`
}

// PageSizes are the page sizes of the paginated views.
type PageSizes struct {
	News    int `yaml:"news" env:"WFI_NEWS_PAGE_SIZE" env-default:"10"`
	Reports int `yaml:"reports" env:"WFI_REPORTS_PAGE_SIZE" env-default:"10"`
	Cards   int `yaml:"cards" env:"WFI_CARDS_PAGE_SIZE" env-default:"12"`
}

// Overrides carries flag values; empty fields leave the loaded value alone.
type Overrides struct {
	BaseURL   string
	TokenFile string
	LogLevel  string
	Timeout   time.Duration
}

// Load reads the configuration. path may be empty, in which case WFI_CONFIG
// and then DefaultPath are tried; a missing default file is not an error.
func Load(path string) (*Options, error) {
	var opts Options

	explicit := path != ""
	if !explicit {
		if p := os.Getenv("WFI_CONFIG"); p != "" {
			path, explicit = p, true
		} else {
			path = DefaultPath
		}
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &opts); err != nil {
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}
	} else {
		if explicit {
			return nil, fmt.Errorf("config file %q: %w", path, err)
		}
		if err := cleanenv.ReadEnv(&opts); err != nil {
			return nil, fmt.Errorf("read env: %w", err)
		}
	}

	if opts.TokenFile == "" {
		tf, err := defaultTokenFile()
		if err != nil {
			return nil, err
		}
		opts.TokenFile = tf
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &opts, nil
}

// Override applies non-empty flag values on top of the loaded options.
func (o *Options) Override(ov Overrides) {
	if ov.BaseURL != "" {
		o.BaseURL = ov.BaseURL
	}
	if ov.TokenFile != "" {
		o.TokenFile = ov.TokenFile
	}
	if ov.LogLevel != "" {
		o.LogLevel = ov.LogLevel
	}
	if ov.Timeout > 0 {
		o.Timeout = ov.Timeout
	}
}

// Validate checks the values that the client cannot work without.
func (o *Options) Validate() error {
	if o.BaseURL == "" {
		return errors.New("base_url is required")
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", o.Timeout)
	}
	if o.PageSizes.News < 1 || o.PageSizes.Reports < 1 || o.PageSizes.Cards < 1 {
		return errors.New("page sizes must be at least 1")
	}
	return nil
}

func defaultTokenFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".wfi", "token.json"), nil
}
