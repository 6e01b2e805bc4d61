package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/datum-labs/namecheap"
)

// FileConfig is the on-disk configuration, in YAML or TOML.
type FileConfig struct {
	API      *FileAPIConfig                `yaml:"api,omitempty" toml:"api"`
	Logging  *FileLoggingConfig            `yaml:"logging,omitempty" toml:"logging"`
	Contacts map[string]*namecheap.Contact `yaml:"contacts,omitempty" toml:"contacts"`
}

// FileAPIConfig holds credentials and transport settings.
type FileAPIConfig struct {
	User      string `yaml:"user,omitempty" toml:"user"`
	Key       string `yaml:"key,omitempty" toml:"key"`
	UserName  string `yaml:"username,omitempty" toml:"username"`   // defaults to user
	ClientIP  string `yaml:"client_ip,omitempty" toml:"client_ip"` // discovered when empty
	Endpoint  string `yaml:"endpoint,omitempty" toml:"endpoint"`
	Sandbox   *bool  `yaml:"sandbox,omitempty" toml:"sandbox"`
	Timeout   string `yaml:"timeout,omitempty" toml:"timeout"` // Go duration, e.g. "30s"
	UserAgent string `yaml:"user_agent,omitempty" toml:"user_agent"`
}

// FileLoggingConfig holds logging settings.
type FileLoggingConfig struct {
	Level  string `yaml:"level,omitempty" toml:"level"`   // debug, info, warn, error
	Format string `yaml:"format,omitempty" toml:"format"` // text, json
}

// envVarPattern matches ${VAR} or ${VAR:-default}.
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// InterpolateEnvVars replaces ${VAR} and ${VAR:-default} with environment
// values. Unset variables without a default become empty.
func InterpolateEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		if value := os.Getenv(groups[1]); value != "" {
			return value
		}
		if len(groups) >= 3 {
			return groups[2]
		}
		return ""
	})
}

func (c *FileConfig) interpolateEnvVars() {
	if c.API != nil {
		for _, p := range []*string{
			&c.API.User, &c.API.Key, &c.API.UserName, &c.API.ClientIP,
			&c.API.Endpoint, &c.API.Timeout, &c.API.UserAgent,
		} {
			*p = InterpolateEnvVars(*p)
		}
	}
	if c.Logging != nil {
		c.Logging.Level = InterpolateEnvVars(c.Logging.Level)
		c.Logging.Format = InterpolateEnvVars(c.Logging.Format)
	}
	for _, contact := range c.Contacts {
		if contact == nil {
			continue
		}
		for _, p := range []*string{
			&contact.OrganizationName, &contact.JobTitle, &contact.FirstName,
			&contact.LastName, &contact.Address1, &contact.Address2,
			&contact.City, &contact.StateProvince, &contact.StateProvinceChoice,
			&contact.PostalCode, &contact.Country, &contact.Phone,
			&contact.PhoneExt, &contact.Fax, &contact.EmailAddress,
		} {
			*p = InterpolateEnvVars(*p)
		}
	}
}

// LoadFile reads a configuration file. ".toml" files are parsed as TOML,
// anything else as YAML. ${VAR} references are interpolated after parsing.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}

	var cfg FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "parsing TOML config")
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "parsing YAML config")
		}
	}

	cfg.interpolateEnvVars()
	return &cfg, nil
}
