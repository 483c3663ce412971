// Package config persists user-facing settings for mise in a JSON file
// under the home directory. The stored bearer token is the only piece of
// session state that survives a restart.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
)

// DefaultBackendURL is used when no backend has been configured.
const DefaultBackendURL = "http://localhost:8080"

// BackendURLEnv overrides the configured backend URL when set.
const BackendURLEnv = "MISE_BACKEND_URL"

// Config holds the application configuration
type Config struct {
	BackendURL string `json:"backend_url,omitempty"`

	// Authenticated variant. When AuthEnabled is false the token is
	// never attached and the login flow is unavailable.
	AuthEnabled  bool   `json:"auth_enabled,omitempty"`
	BearerToken  string `json:"bearer_token,omitempty"`
	AccountEmail string `json:"account_email,omitempty"`

	Theme                string `json:"theme,omitempty"`
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty"`

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".mise"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or creates a new one if it doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from an explicit path. Used by tests.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{
		filePath: path,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.BackendURL != "" {
		u, err := url.Parse(c.BackendURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("invalid backend_url: %q", c.BackendURL)
		}
	}

	if c.BearerToken != "" && !c.AuthEnabled {
		return fmt.Errorf("bearer_token set but auth_enabled is false")
	}

	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	dir := filepath.Dir(c.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	// The token is a credential, so keep the file private.
	return os.WriteFile(c.filePath, data, 0600)
}

// GetBackendURL returns the effective backend URL: environment override,
// then configured value, then the default.
func (c *Config) GetBackendURL() string {
	if env := os.Getenv(BackendURLEnv); env != "" {
		return env
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.BackendURL != "" {
		return c.BackendURL
	}
	return DefaultBackendURL
}

// SetBackendURL sets the configured backend URL
func (c *Config) SetBackendURL(u string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.BackendURL = u
}

// IsAuthEnabled returns whether the authenticated variant is active
func (c *Config) IsAuthEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AuthEnabled
}

// SetAuthEnabled toggles the authenticated variant
func (c *Config) SetAuthEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.AuthEnabled = enabled
	if !enabled {
		c.BearerToken = ""
		c.AccountEmail = ""
	}
}

// GetBearerToken returns the stored credential, or empty string if none
func (c *Config) GetBearerToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.BearerToken
}

// SetBearerToken stores the credential
func (c *Config) SetBearerToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.BearerToken = token
}

// ClearCredentials removes the stored token and account email.
// Called on forced logout when the backend rejects the credential.
func (c *Config) ClearCredentials() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.BearerToken = ""
	c.AccountEmail = ""
}

// GetAccountEmail returns the logged-in account email, or empty string
func (c *Config) GetAccountEmail() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AccountEmail
}

// SetAccountEmail stores the logged-in account email
func (c *Config) SetAccountEmail(email string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.AccountEmail = email
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// Delete removes the config file from disk. Used by the clean command.
func Delete() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
