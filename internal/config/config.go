// Package config loads the skill configuration from the Lambda environment.
package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// Defaults for the remote Wake-on-LAN service.
const (
	DefaultWakeURL   = "http://snackk-media.ddns.net:80/send-wol/"
	DefaultStatusURL = "http://snackk-media.ddns.net:80/status/"
	DefaultTimeout   = 10 * time.Second
)

// Config is built once per container and shared by every invocation.
type Config struct {
	Username string
	Password string

	// PasswordParameter names an SSM parameter that holds the password.
	// When set it takes precedence over WOL_PASSWORD.
	PasswordParameter string

	WakeURL   string
	StatusURL string
	Timeout   time.Duration

	Logging LoggingConfig
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level  string
	Format string
}

// ParameterGetter is the subset of the SSM client used to fetch secrets.
type ParameterGetter interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Load reads the environment and, if configured, fetches the password from SSM.
func Load(ctx context.Context) (*Config, error) {
	cfg, err := FromEnv(os.Getenv)
	if err != nil {
		return nil, err
	}

	if cfg.PasswordParameter == "" {
		return cfg, nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if err := cfg.ResolvePassword(ctx, ssm.NewFromConfig(awsCfg)); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Username:          getenv("WOL_USERNAME"),
		Password:          getenv("WOL_PASSWORD"),
		PasswordParameter: getenv("WOL_PASSWORD_PARAMETER"),
		WakeURL:           DefaultWakeURL,
		StatusURL:         DefaultStatusURL,
		Timeout:           DefaultTimeout,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if v := getenv("WOL_WAKE_URL"); v != "" {
		cfg.WakeURL = v
	}
	if v := getenv("WOL_STATUS_URL"); v != "" {
		cfg.StatusURL = v
	}
	if v := getenv("WOL_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid WOL_TIMEOUT %q: %w", v, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("WOL_TIMEOUT must be positive, got %s", d)
		}
		cfg.Timeout = d
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration. Credentials are deliberately not
// required: a request without them is rejected by the remote service.
func (c *Config) Validate() error {
	var errs []string

	if c.WakeURL == "" {
		errs = append(errs, "wake URL is required")
	}
	if c.StatusURL == "" {
		errs = append(errs, "status URL is required")
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("unknown log format %q", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}

// HasCredentials reports whether both Basic auth values are set.
func (c *Config) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}

// ResolvePassword replaces Password with the decrypted SSM parameter value.
func (c *Config) ResolvePassword(ctx context.Context, client ParameterGetter) error {
	out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(c.PasswordParameter),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("failed to read parameter %s: %w", c.PasswordParameter, err)
	}
	if out.Parameter == nil || out.Parameter.Value == nil {
		return fmt.Errorf("parameter %s has no value", c.PasswordParameter)
	}

	c.Password = aws.ToString(out.Parameter.Value)
	return nil
}
