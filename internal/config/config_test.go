package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/datum-labs/namecheap"
)

// clearEnv blanks every NAMECHEAP_* variable for the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		EnvAPIUser, EnvAPIKey, EnvUserName, EnvClientIP, EnvEndpoint,
		EnvSandbox, EnvLogLevel, EnvLogFormat,
		EnvAPIUser + "_FILE", EnvAPIKey + "_FILE",
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const yamlConfig = `
api:
  user: acme
  key: ${TEST_NAMECHEAP_KEY:-fallback-key}
  client_ip: 203.0.113.20
  sandbox: true
  timeout: 45s
logging:
  level: DEBUG
  format: json
contacts:
  default:
    first_name: John
    last_name: Doe
    address1: 8939 S.cross Blvd
    city: Phoenix
    state_province: AZ
    postal_code: "85284"
    country: US
    phone: "+001.6613102107"
    email_address: ${TEST_NAMECHEAP_EMAIL:-john@example.com}
`

func TestLoad_MinimalEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIUser, "alice")
	t.Setenv(EnvAPIKey, "k")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIUser != "alice" || cfg.UserName != "alice" {
		t.Fatalf("user/username: %+v", cfg)
	}
	if cfg.Timeout != DefaultTimeout || cfg.LogLevel != DefaultLogLevel || cfg.LogFormat != DefaultLogFormat {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.Sandbox || cfg.Endpoint != "" || len(cfg.Contacts) != 0 {
		t.Fatalf("unexpected values: %+v", cfg)
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEST_NAMECHEAP_EMAIL", "ops@example.com")
	path := writeFile(t, "namecheap.yaml", yamlConfig)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIKey != "fallback-key" {
		t.Fatalf("default interpolation: %q", cfg.APIKey)
	}
	if !cfg.Sandbox || cfg.Timeout != 45*time.Second || cfg.ClientIP != "203.0.113.20" {
		t.Fatalf("api section: %+v", cfg)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Fatalf("logging: %q %q", cfg.LogLevel, cfg.LogFormat)
	}
	contact, err := cfg.Contact("default")
	if err != nil {
		t.Fatalf("Contact: %v", err)
	}
	if contact.EmailAddress != "ops@example.com" || contact.PostalCode != "85284" {
		t.Fatalf("contact: %+v", contact)
	}
	if _, err := cfg.Contact("billing"); !errors.Is(err, ErrUnknownContact) {
		t.Fatalf("want ErrUnknownContact, got %v", err)
	}
}

func TestLoad_TOMLFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "namecheap.toml", `
[api]
user = "acme"
key = "k"
username = "customer"
endpoint = "https://api.example.test/xml.response"

[logging]
level = "warn"

[contacts.tech]
first_name = "Jane"
last_name = "Roe"
address1 = "1 Main St"
city = "Austin"
state_province = "TX"
postal_code = "73301"
country = "US"
phone = "+001.5125550100"
email_address = "jane@example.com"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UserName != "customer" || cfg.Endpoint != "https://api.example.test/xml.response" {
		t.Fatalf("api: %+v", cfg)
	}
	if cfg.LogLevel != "warn" || cfg.LogFormat != DefaultLogFormat {
		t.Fatalf("logging: %q %q", cfg.LogLevel, cfg.LogFormat)
	}
	if names := cfg.ContactNames(); len(names) != 1 || names[0] != "tech" {
		t.Fatalf("contacts: %v", names)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	secret := writeFile(t, "key", "from-secret-file\n")
	t.Setenv(EnvAPIKey+"_FILE", secret)
	t.Setenv(EnvAPIKey, "from-env")
	t.Setenv(EnvSandbox, "off")
	t.Setenv(EnvLogFormat, "text")

	cfg, err := Load(writeFile(t, "c.yml", yamlConfig))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIKey != "from-secret-file" {
		t.Fatalf("_FILE should win: %q", cfg.APIKey)
	}
	if cfg.Sandbox {
		t.Fatalf("sandbox override ignored")
	}
	if cfg.LogFormat != "text" {
		t.Fatalf("log format override ignored: %q", cfg.LogFormat)
	}
}

func TestLoad_ValidationCollectsErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvSandbox, "maybe")
	t.Setenv(EnvClientIP, "not-an-ip")
	t.Setenv(EnvEndpoint, "ftp://example.com")
	t.Setenv(EnvLogLevel, "loud")
	path := writeFile(t, "bad.yaml", `
api:
  timeout: soon
contacts:
  broken:
    first_name: X
`)

	_, err := Load(path)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want *ValidationError, got %T %v", err, err)
	}
	for _, want := range []string{
		"api.timeout", EnvSandbox, "api user is required", "api key is required",
		"client ip", "endpoint", "invalid log level", "contacts.broken: last_name is required",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error lacks %q:\n%v", want, err)
		}
	}
}

func TestLoad_OverridesValidated(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIUser, "acme")
	t.Setenv(EnvAPIKey, "k")
	t.Setenv(EnvLogLevel, "loud")

	cfg, err := Load("", func(c *Config) { c.LogLevel = "DEBUG" })
	if err != nil {
		t.Fatalf("override should replace the bad env level: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level: %q", cfg.LogLevel)
	}

	_, err = Load("", func(c *Config) { c.LogLevel = "verbose" }, func(c *Config) { c.LogFormat = "xml" })
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("want *ValidationError, got %T %v", err, err)
	}
	for _, want := range []string{`invalid log level "verbose"`, `invalid log format "xml"`} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error lacks %q:\n%v", want, err)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("want error for missing file")
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(writeFile(t, "bad.toml", "[api\nuser=")); err == nil {
		t.Fatalf("want TOML parse error")
	}
	if _, err := Load(writeFile(t, "bad.yaml", "api: [unclosed")); err == nil {
		t.Fatalf("want YAML parse error")
	}
}

func TestClientOptions(t *testing.T) {
	cfg := &Config{
		APIUser:  "acme",
		APIKey:   "k",
		UserName: "customer",
		Sandbox:  true,
		Endpoint: "https://api.example.test/xml.response",
		Timeout:  time.Second,
	}
	c := cfg.NewClient(nil)
	if c.Endpoint() != cfg.Endpoint {
		t.Fatalf("explicit endpoint should win over sandbox: %s", c.Endpoint())
	}
	if c.UserName() != "customer" {
		t.Fatalf("username: %q", c.UserName())
	}

	cfg.Endpoint = ""
	if c := cfg.NewClient(nil); c.Endpoint() != namecheap.SandboxEndpoint {
		t.Fatalf("sandbox endpoint: %s", c.Endpoint())
	}
}

func TestConfig_StringRedactsKey(t *testing.T) {
	cfg := &Config{APIUser: "acme", APIKey: "super-secret"}
	s := cfg.String()
	if strings.Contains(s, "super-secret") || !strings.Contains(s, "[REDACTED]") {
		t.Fatalf("key not redacted: %s", s)
	}
}

func TestValidationError_Single(t *testing.T) {
	err := &ValidationError{Errors: []string{"only one"}}
	if err.Error() != "configuration error: only one" {
		t.Fatalf("got %q", err.Error())
	}
}
