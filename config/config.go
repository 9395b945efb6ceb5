package config

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	_ "github.com/joho/godotenv/autoload"
	"gopkg.in/yaml.v3"
)

const appDirName = "ruddit"

type Config struct {
	Reddit   RedditConfig  `yaml:"reddit"`
	Gemini   GeminiConfig  `yaml:"gemini"`
	Defaults DefaultConfig `yaml:"defaults"`
	Leads    LeadsConfig   `yaml:"leads"`
	Filters  FilterConfig  `yaml:"filters"`
	Exports  ExportConfig  `yaml:"exports"`
	LogLevel string        `yaml:"log_level"`
}

type RedditConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	UserAgent    string `yaml:"user_agent"`
	ProxyURL     string `yaml:"proxy_url"`
}

type GeminiConfig struct {
	APIKey      string `yaml:"api_key"`
	Model       string `yaml:"model"`
	MaxAttempts int    `yaml:"max_attempts"`
}

type DefaultConfig struct {
	Subreddit string `yaml:"subreddit"`
	Sort      string `yaml:"sort"`
}

type LeadsConfig struct {
	Keywords        []string `yaml:"keywords"`
	BrandedKeywords []string `yaml:"branded_keywords"`
	Sentiments      []string `yaml:"sentiments"`
	Match           string   `yaml:"match"`
	Languages       []string `yaml:"languages"`
	Prefilter       bool     `yaml:"prefilter"`
}

// FilterConfig narrows sitewide search results by subreddit before
// anything is stored. Exclusions win over inclusions.
type FilterConfig struct {
	Subreddits        []string `yaml:"subreddits"`
	ExcludeSubreddits []string `yaml:"exclude_subreddits"`
}

type ExportConfig struct {
	Dir    string `yaml:"dir"`
	Strict bool   `yaml:"strict"`
}

// Dir returns the application directory under the user config dir,
// creating it if needed. The settings file and the database both live here.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	dir := filepath.Join(base, appDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create app dir: %w", err)
	}
	return dir, nil
}

func SettingsPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings.yaml"), nil
}

func DatabasePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "ruddit.db"), nil
}

// Load reads the settings file, creating it with defaults on first run.
// Environment variables override file values for secrets so credentials
// can be kept out of the settings file entirely.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = SettingsPath()
		if err != nil {
			return nil, err
		}
		if err := writeDefault(path); err != nil {
			return nil, err
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings file: %w", err)
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing settings file: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func defaultConfig() *Config {
	return &Config{
		Reddit: RedditConfig{
			UserAgent: "ruddit/0.2 by ruddit",
		},
		Gemini: GeminiConfig{
			Model:       "gemini-2.0-flash",
			MaxAttempts: 2,
		},
		Defaults: DefaultConfig{
			Subreddit: "supplychain",
			Sort:      "hot",
		},
		Leads: LeadsConfig{
			Sentiments: []string{"neutral"},
			Match:      "OR",
		},
		LogLevel: "INFO",
	}
}

func (c *Config) applyEnv() {
	c.Reddit.ClientID = loadOptional("RUDDIT_REDDIT_CLIENT_ID", c.Reddit.ClientID)
	c.Reddit.ClientSecret = loadOptional("RUDDIT_REDDIT_CLIENT_SECRET", c.Reddit.ClientSecret)
	c.Reddit.ProxyURL = loadOptional("RUDDIT_PROXY_URL", c.Reddit.ProxyURL)
	c.Gemini.APIKey = loadOptional("RUDDIT_GEMINI_API_KEY", c.Gemini.APIKey)
}

func (c *Config) applyDefaults() {
	if c.Defaults.Subreddit == "" {
		c.Defaults.Subreddit = "supplychain"
	}
	if c.Defaults.Sort == "" {
		c.Defaults.Sort = "hot"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.0-flash"
	}
	if c.Gemini.MaxAttempts <= 0 {
		c.Gemini.MaxAttempts = 2
	}
	if c.Leads.Match == "" {
		c.Leads.Match = "OR"
	}
}

func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func loadOptional(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

const defaultSettings = `reddit:
  client_id: "your_api_id_here"
  client_secret: "your_api_secret_here"
  user_agent: "ruddit/0.2 by ruddit"
gemini:
  api_key: "your_api_key_here"
  model: "gemini-2.0-flash"
  max_attempts: 2
defaults:
  subreddit: "supplychain"
  sort: "hot"
leads:
  keywords: []
  branded_keywords: []
  sentiments: ["neutral"]
  match: "OR"
  languages: []
  prefilter: false
filters:
  subreddits: []
  exclude_subreddits: []
exports:
  dir: ""
  strict: false
log_level: "INFO"
`

func writeDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte(defaultSettings), 0o600)
}

// OpenInEditor opens the settings file with the platform default handler.
func OpenInEditor() error {
	path, err := SettingsPath()
	if err != nil {
		return err
	}
	if err := writeDefault(path); err != nil {
		return err
	}
	return openPath(path)
}

// OpenAppDir opens the directory holding the settings file and the database.
func OpenAppDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return openPath(dir)
}

func openPath(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/C", "start", "", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	return cmd.Start()
}
