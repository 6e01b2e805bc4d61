// Package config loads client settings from a YAML or TOML file and
// NAMECHEAP_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"net/netip"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/datum-labs/namecheap"
)

// Defaults.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultTimeout   = 30 * time.Second
)

// Environment variables. API user and key also accept a _FILE suffix.
const (
	EnvAPIUser   = "NAMECHEAP_API_USER"
	EnvAPIKey    = "NAMECHEAP_API_KEY"
	EnvUserName  = "NAMECHEAP_USERNAME"
	EnvClientIP  = "NAMECHEAP_CLIENT_IP"
	EnvEndpoint  = "NAMECHEAP_ENDPOINT"
	EnvSandbox   = "NAMECHEAP_SANDBOX"
	EnvLogLevel  = "NAMECHEAP_LOG_LEVEL"
	EnvLogFormat = "NAMECHEAP_LOG_FORMAT"
)

// ErrUnknownContact is returned by Contact for a name not in the config.
var ErrUnknownContact = errors.New("unknown contact")

// Config is the resolved configuration.
type Config struct {
	APIUser   string
	APIKey    string
	UserName  string
	ClientIP  string
	Endpoint  string
	Sandbox   bool
	Timeout   time.Duration
	UserAgent string

	LogLevel  string
	LogFormat string

	Contacts map[string]*namecheap.Contact
}

// ValidationError collects every configuration problem found by Load.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration error: %s", e.Errors[0])
	}
	return fmt.Sprintf("configuration errors:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Override adjusts a Config after the file and environment are applied and
// before it is validated, e.g. from command line flags.
type Override func(*Config)

// Load reads path (skipped when empty), applies environment overrides, the
// given overrides and defaults, and validates the result.
func Load(path string, overrides ...Override) (*Config, error) {
	cfg := &Config{
		Timeout:   DefaultTimeout,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Contacts:  map[string]*namecheap.Contact{},
	}

	var errs []string
	if path != "" {
		fc, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		errs = append(errs, cfg.applyFile(fc)...)
	}
	errs = append(errs, cfg.applyEnv()...)
	for _, o := range overrides {
		o(cfg)
	}

	if cfg.UserName == "" {
		cfg.UserName = cfg.APIUser
	}
	errs = append(errs, cfg.validate()...)
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return cfg, nil
}

func (c *Config) applyFile(fc *FileConfig) []string {
	var errs []string
	if api := fc.API; api != nil {
		c.APIUser = api.User
		c.APIKey = api.Key
		c.UserName = api.UserName
		c.ClientIP = api.ClientIP
		c.Endpoint = api.Endpoint
		c.UserAgent = api.UserAgent
		if api.Sandbox != nil {
			c.Sandbox = *api.Sandbox
		}
		if api.Timeout != "" {
			d, err := time.ParseDuration(api.Timeout)
			if err != nil {
				errs = append(errs, fmt.Sprintf("api.timeout: invalid duration %q", api.Timeout))
			} else {
				c.Timeout = d
			}
		}
	}
	if lg := fc.Logging; lg != nil {
		if lg.Level != "" {
			c.LogLevel = lg.Level
		}
		if lg.Format != "" {
			c.LogFormat = lg.Format
		}
	}
	for name, contact := range fc.Contacts {
		if contact == nil {
			errs = append(errs, fmt.Sprintf("contacts.%s: empty contact", name))
			continue
		}
		c.Contacts[name] = contact
	}
	return errs
}

func (c *Config) applyEnv() []string {
	var errs []string
	set := func(dst *string, value string) {
		if value != "" {
			*dst = value
		}
	}
	set(&c.APIUser, getEnvOrFile(EnvAPIUser))
	set(&c.APIKey, getEnvOrFile(EnvAPIKey))
	set(&c.UserName, getEnv(EnvUserName))
	set(&c.ClientIP, getEnv(EnvClientIP))
	set(&c.Endpoint, getEnv(EnvEndpoint))
	set(&c.LogLevel, getEnv(EnvLogLevel))
	set(&c.LogFormat, getEnv(EnvLogFormat))

	if v := getEnv(EnvSandbox); v != "" {
		b, ok := parseBool(v)
		if !ok {
			errs = append(errs, fmt.Sprintf("%s: invalid boolean %q", EnvSandbox, v))
		} else {
			c.Sandbox = b
		}
	}
	return errs
}

func (c *Config) validate() []string {
	var errs []string
	if c.APIUser == "" {
		errs = append(errs, "api user is required (api.user or "+EnvAPIUser+")")
	}
	if c.APIKey == "" {
		errs = append(errs, "api key is required (api.key or "+EnvAPIKey+")")
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Sprintf("timeout must be positive, got %s", c.Timeout))
	}
	if c.ClientIP != "" {
		if _, err := netip.ParseAddr(c.ClientIP); err != nil {
			errs = append(errs, fmt.Sprintf("client ip %q is not an IP address", c.ClientIP))
		}
	}
	if c.Endpoint != "" {
		u, err := url.Parse(c.Endpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Sprintf("endpoint %q must be an absolute http(s) URL", c.Endpoint))
		}
	}

	c.LogLevel = strings.ToLower(c.LogLevel)
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid log level %q (must be debug, info, warn, or error)", c.LogLevel))
	}
	c.LogFormat = strings.ToLower(c.LogFormat)
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("invalid log format %q (must be text or json)", c.LogFormat))
	}

	for _, name := range c.ContactNames() {
		if err := c.Contacts[name].Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("contacts.%s: %v", name, err))
		}
	}
	return errs
}

// ContactNames returns the configured contact names, sorted.
func (c *Config) ContactNames() []string {
	names := make([]string, 0, len(c.Contacts))
	for name := range c.Contacts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Contact returns the named contact.
func (c *Config) Contact(name string) (*namecheap.Contact, error) {
	contact, ok := c.Contacts[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownContact, "%q", name)
	}
	return contact, nil
}

// ClientOptions converts the configuration into client options. An explicit
// endpoint wins over the sandbox flag.
func (c *Config) ClientOptions(logger *slog.Logger) []namecheap.Option {
	opts := []namecheap.Option{
		namecheap.WithUserName(c.UserName),
		namecheap.WithTimeout(c.Timeout),
		namecheap.WithLogger(logger),
	}
	if c.Sandbox {
		opts = append(opts, namecheap.WithSandbox())
	}
	if c.Endpoint != "" {
		opts = append(opts, namecheap.WithEndpoint(c.Endpoint))
	}
	if c.ClientIP != "" {
		opts = append(opts, namecheap.WithClientIP(c.ClientIP))
	}
	if c.UserAgent != "" {
		opts = append(opts, namecheap.WithUserAgent(c.UserAgent))
	}
	return opts
}

// NewClient builds a client from the configuration.
func (c *Config) NewClient(logger *slog.Logger) *namecheap.Client {
	return namecheap.New(c.APIUser, c.APIKey, c.ClientOptions(logger)...)
}

// String summarises the configuration with the API key redacted.
func (c *Config) String() string {
	key := ""
	if c.APIKey != "" {
		key = "[REDACTED]"
	}
	return fmt.Sprintf("Config{APIUser: %q, APIKey: %s, UserName: %q, Endpoint: %q, Sandbox: %t, Timeout: %s, Contacts: %d}",
		c.APIUser, key, c.UserName, c.Endpoint, c.Sandbox, c.Timeout, len(c.Contacts))
}
