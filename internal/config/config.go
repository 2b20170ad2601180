package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Version information - set by GoReleaser during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// GetVersionInfo returns a formatted version string
func GetVersionInfo() string {
	return fmt.Sprintf("bouncer-login version %s, commit %s, built at %s", version, commit, date)
}

// CallbackPath is the route the provider redirects back to. The absolute form
// (see Config.CallbackURL) must match the redirect URI registered with Bouncer.
const CallbackPath = "/auth/callback"

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	OAuth   OAuthConfig   `mapstructure:"oauth"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// BaseURL is the externally reachable URL of this app, for deployments
	// behind a proxy. Empty means derive it from Host and Port.
	BaseURL string `mapstructure:"base_url"`
}

type LoggingConfig struct {
	Level             string `mapstructure:"level"`
	Format            string `mapstructure:"format"`
	Color             bool   `mapstructure:"color"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type OAuthConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	// AuthURL, TokenURL and ProfileURL override the provider's default
	// endpoints. Leave empty to talk to bouncer.io.
	AuthURL    string        `mapstructure:"auth_url"`
	TokenURL   string        `mapstructure:"token_url"`
	ProfileURL string        `mapstructure:"profile_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// RegisterFlags declares the command line flags on the given flag set
// (without parsing)
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("host", "", "Interface to bind the HTTP listener to")
	flags.Int("port", 0, "Port for the HTTP listener")
	flags.String("base-url", "", "Public base URL used when building the OAuth callback")
}

func Load(flags *pflag.FlagSet) (*Config, error) {
	viper.Reset() // Ensure clean state

	viper.SetEnvPrefix("BOUNCER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	// Bouncer hands out credentials under these exact names; honor them in
	// addition to the BOUNCER_OAUTH_* forms the replacer produces.
	for key, envVar := range map[string]string{
		"oauth.client_id":     "BOUNCER_CLIENT_ID",
		"oauth.client_secret": "BOUNCER_CLIENT_SECRET",
	} {
		if err := viper.BindEnv(key, envVar); err != nil {
			return nil, err
		}
	}

	if flags != nil {
		if err := viper.BindPFlags(flags); err != nil {
			return nil, err
		}
	}

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 6543)
	viper.SetDefault("server.base_url", "")
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
	viper.SetDefault("logging.color", true)
	viper.SetDefault("logging.disable_stacktrace", false)
	viper.SetDefault("oauth.client_id", "")
	viper.SetDefault("oauth.client_secret", "")
	viper.SetDefault("oauth.auth_url", "")
	viper.SetDefault("oauth.token_url", "")
	viper.SetDefault("oauth.profile_url", "")
	viper.SetDefault("oauth.timeout", "10s")

	// config.yaml is optional; everything has a default or an env form
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/bouncer-login")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Flags win over file and environment
	if host := viper.GetString("host"); host != "" {
		config.Server.Host = host
	}
	if port := viper.GetInt("port"); port != 0 {
		config.Server.Port = port
	}
	if baseURL := viper.GetString("base-url"); baseURL != "" {
		config.Server.BaseURL = baseURL
	}

	if config.OAuth.ClientID == "" || config.OAuth.ClientSecret == "" {
		return nil, fmt.Errorf("client credentials are required, please set BOUNCER_CLIENT_ID and BOUNCER_CLIENT_SECRET environment variables or oauth.client_id/oauth.client_secret in config.yaml")
	}

	return &config, nil
}

// PublicBaseURL returns the externally reachable base URL of this app. When
// server.base_url is unset it falls back to the listen address, mapping
// wildcard hosts to localhost so the result stays usable in a browser.
func (c *Config) PublicBaseURL() string {
	if c.Server.BaseURL != "" {
		return strings.TrimRight(c.Server.BaseURL, "/")
	}
	host := c.Server.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%d", host, c.Server.Port)
}

// CallbackURL returns the absolute redirect URI registered with the provider.
func (c *Config) CallbackURL() string {
	return c.PublicBaseURL() + CallbackPath
}
