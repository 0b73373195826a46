// Package config loads the formbind runtime configuration from an optional
// YAML file overlaid with FORMBIND_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/goliatone/go-formbind/internal/formdata"
	"github.com/goliatone/go-formbind/pkg/client"
	"github.com/goliatone/go-formbind/pkg/security"
)

// EnvPrefix namespaces environment overrides, e.g. FORMBIND_SERVER_ADDR.
const EnvPrefix = "FORMBIND"

type ServerConfig struct {
	Addr            string        `mapstructure:"addr" yaml:"addr"`
	BasePath        string        `mapstructure:"base_path" yaml:"base_path"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes" yaml:"max_body_bytes"`
	ProblemDetails  bool          `mapstructure:"problem_details" yaml:"problem_details"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// ManifestConfig points at a manifest file, a manifest directory, or an
// OpenAPI document (file or URL).
type ManifestConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

type ClientConfig struct {
	BaseURL       string        `mapstructure:"base_url" yaml:"base_url"`
	RetryAttempts uint          `mapstructure:"retry_attempts" yaml:"retry_attempts"`
	RetryDelay    time.Duration `mapstructure:"retry_delay" yaml:"retry_delay"`
	Timeout       time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// TokenConfig maps a bearer token onto an identity.
//
// WARNING: tokens are secrets and should be supplied through the environment
// or a protected file.
type TokenConfig struct {
	Token       string                        `mapstructure:"token" yaml:"token"`
	Principal   string                        `mapstructure:"principal" yaml:"principal"`
	Permissions []security.Permission         `mapstructure:"permissions" yaml:"permissions"`
	Resources   []security.ResourcePermission `mapstructure:"resources" yaml:"resources"`
}

type SecurityConfig struct {
	// Permission guards the permissions resource.
	Permission string        `mapstructure:"permission" yaml:"permission"`
	Tokens     []TokenConfig `mapstructure:"tokens" yaml:"tokens"`
}

// Config wraps the entire runtime configuration.
type Config struct {
	Server   ServerConfig      `mapstructure:"server" yaml:"server"`
	Manifest ManifestConfig    `mapstructure:"manifest" yaml:"manifest"`
	Client   ClientConfig      `mapstructure:"client" yaml:"client"`
	Headers  map[string]string `mapstructure:"headers" yaml:"headers"`
	Security SecurityConfig    `mapstructure:"security" yaml:"security"`

	v *viper.Viper
}

var defaults = map[string]any{
	"server.addr":             ":8080",
	"server.base_path":        "",
	"server.max_body_bytes":   formdata.DefaultMaxBytes,
	"server.problem_details":  false,
	"server.shutdown_timeout": 5 * time.Second,
	"manifest.path":           "",
	"client.base_url":         "",
	"client.retry_attempts":   3,
	"client.retry_delay":      100 * time.Millisecond,
	"client.timeout":          10 * time.Second,
	"security.permission":     "api-permission-webapp",
}

// Load reads filePath when it exists and overlays environment variables. An
// empty or missing path yields the defaults plus the environment.
func Load(filePath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if filePath != "" {
		v.SetConfigFile(filePath)
		if _, err := os.Stat(filePath); !errors.Is(err, fs.ErrNotExist) {
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("config: read %s: %w", filePath, err)
			}
		}
	}

	cfg := &Config{v: v}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.normalise(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalise() error {
	base := strings.TrimRight(strings.TrimSpace(c.Server.BasePath), "/")
	if base != "" && !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	c.Server.BasePath = base

	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("config: server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes)
	}
	if c.Client.RetryAttempts == 0 {
		return fmt.Errorf("config: client.retry_attempts must be at least 1")
	}

	seen := make(map[string]struct{}, len(c.Security.Tokens))
	for i, token := range c.Security.Tokens {
		if strings.TrimSpace(token.Token) == "" {
			return fmt.Errorf("config: security.tokens[%d] has an empty token", i)
		}
		if _, dup := seen[token.Token]; dup {
			return fmt.Errorf("config: security.tokens[%d] repeats a token", i)
		}
		seen[token.Token] = struct{}{}
	}
	return nil
}

// Properties resolves ${key} header expressions against the full
// configuration, so ${headers.value} reads the headers.value entry.
func (c *Config) Properties() client.ConfigProperties {
	return client.NewConfigProperties(c.v)
}

// Resolver builds the bearer-token resolver for the configured identities.
// Each identity carries its resources under security.AttributePermissions.
func (c *Config) Resolver() *security.TokenResolver {
	tokens := make(map[string]security.Identity, len(c.Security.Tokens))
	for _, token := range c.Security.Tokens {
		principal := token.Principal
		if principal == "" {
			principal = "anonymous"
		}
		resources := append([]security.ResourcePermission{}, token.Resources...)
		tokens[token.Token] = security.NewIdentity(principal,
			security.WithPermissions(token.Permissions...),
			security.WithAttribute(security.AttributePermissions, resources),
		)
	}
	return security.NewTokenResolver(tokens)
}
