// Package config handles the configuration directory, config.yaml and
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	// AppName is the application directory name.
	AppName = "planify"

	// ConfigFile is the settings filename inside the config directory.
	ConfigFile = "config.yaml"

	// EnvFile is the optional dotenv file loaded before reading settings.
	EnvFile = ".env"

	// EnvPrefix prefixes environment overrides (PLANIFY_FIREBASE_API_KEY).
	EnvPrefix = "PLANIFY"

	// DefaultQuotesURL is the public quote API.
	DefaultQuotesURL = "https://zenquotes.io/api/random"
)

// FirebaseConfig identifies the hosted backend project.
type FirebaseConfig struct {
	APIKey          string `mapstructure:"api_key"`
	ProjectID       string `mapstructure:"project_id"`
	TasksCollection string `mapstructure:"tasks_collection"`
}

// GoogleConfig configures federated sign-in.
type GoogleConfig struct {
	// ClientFile is the OAuth desktop client JSON, relative to the config dir.
	ClientFile string `mapstructure:"client_file"`
}

// QuotesConfig configures the quote API.
type QuotesConfig struct {
	URL string `mapstructure:"url"`
}

// NotificationConfig configures reminders.
type NotificationConfig struct {
	Enabled      bool `mapstructure:"enabled"`
	DelaySeconds int  `mapstructure:"delay_seconds"`
	Repeat       bool `mapstructure:"repeat"`
}

// KeyringConfig selects where the session is stored.
type KeyringConfig struct {
	// Backend is "" for the OS default, or "file" for an encrypted file
	// under the config dir.
	Backend string `mapstructure:"backend"`
}

// Config holds paths, flags and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string `mapstructure:"-"`

	// Debug enables debug logging.
	Debug bool `mapstructure:"-"`

	// Quiet suppresses informational output.
	Quiet bool `mapstructure:"-"`

	Firebase      FirebaseConfig     `mapstructure:"firebase"`
	Google        GoogleConfig       `mapstructure:"google"`
	Quotes        QuotesConfig       `mapstructure:"quotes"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Keyring       KeyringConfig      `mapstructure:"keyring"`
	Locale        string             `mapstructure:"locale"`
	Theme         string             `mapstructure:"theme"`
}

// Default returns the built-in settings for dir without reading any file.
func Default(dir string) *Config {
	return &Config{
		Dir: dir,
		Firebase: FirebaseConfig{
			TasksCollection: "tasks",
		},
		Google: GoogleConfig{
			ClientFile: "oauth_client.json",
		},
		Quotes: QuotesConfig{
			URL: DefaultQuotesURL,
		},
		Notifications: NotificationConfig{
			Enabled:      true,
			DelaySeconds: 2,
		},
		Locale: systemLocale(),
		Theme:  "auto",
	}
}

// New loads configuration from configDir, or the default directory if
// configDir is empty. A missing config.yaml is not an error.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	cfg := Default(dir)

	if err := loadEnvFiles(filepath.Join(dir, EnvFile), EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(cfg.Path())
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("firebase.api_key", cfg.Firebase.APIKey)
	v.SetDefault("firebase.project_id", cfg.Firebase.ProjectID)
	v.SetDefault("firebase.tasks_collection", cfg.Firebase.TasksCollection)
	v.SetDefault("google.client_file", cfg.Google.ClientFile)
	v.SetDefault("quotes.url", cfg.Quotes.URL)
	v.SetDefault("notifications.enabled", cfg.Notifications.Enabled)
	v.SetDefault("notifications.delay_seconds", cfg.Notifications.DelaySeconds)
	v.SetDefault("notifications.repeat", cfg.Notifications.Repeat)
	v.SetDefault("keyring.backend", cfg.Keyring.Backend)
	v.SetDefault("locale", cfg.Locale)
	v.SetDefault("theme", cfg.Theme)

	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return nil, fmt.Errorf("reading config %s: %w", cfg.Path(), err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", cfg.Path(), err)
	}
	if cfg.Notifications.DelaySeconds < 0 {
		return nil, fmt.Errorf("notifications.delay_seconds must not be negative")
	}
	return cfg, nil
}

// loadEnvFiles loads each dotenv file that exists. Variables already set in
// the environment win.
func loadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// systemLocale reads the POSIX locale variables.
func systemLocale() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return "en"
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// Path returns the path to config.yaml.
func (c *Config) Path() string {
	return filepath.Join(c.Dir, ConfigFile)
}

// OAuthClientPath returns the path to the Google OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	if filepath.IsAbs(c.Google.ClientFile) {
		return c.Google.ClientFile
	}
	return filepath.Join(c.Dir, c.Google.ClientFile)
}

// KeyringDir returns the directory used by the file keyring backend.
func (c *Config) KeyringDir() string {
	return filepath.Join(c.Dir, "keyring")
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasBackend reports whether the Firebase project is configured.
func (c *Config) HasBackend() bool {
	return c.Firebase.APIKey != "" && c.Firebase.ProjectID != ""
}

// SaveLocale writes the locale selection into config.yaml, keeping the
// other keys in the file as they are.
func (c *Config) SaveLocale(tag string) error {
	if err := c.EnsureDir(); err != nil {
		return fmt.Errorf("creating config directory %s: %w", c.Dir, err)
	}

	v := viper.New()
	v.SetConfigFile(c.Path())
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return fmt.Errorf("reading config %s: %w", c.Path(), err)
	}

	v.Set("locale", tag)
	if err := v.WriteConfigAs(c.Path()); err != nil {
		return fmt.Errorf("writing config to %s: %w", c.Path(), err)
	}
	c.Locale = tag
	return nil
}
