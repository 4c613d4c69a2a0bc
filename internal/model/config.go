package model

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config is the immutable per-process configuration. It is constructed
// once by LoadConfig and passed by parameter; nothing reads it from
// ambient globals.
type Config struct {
	// SpaceURL is the root URL of the tracker space
	// (e.g. https://example.backlog.com). Mandatory.
	SpaceURL string

	// APIKey is the tracker API credential. Mandatory.
	APIKey string

	// ProjectKeys restricts the dashboard to these project keys when
	// non-empty (comma-delimited in env/file form).
	ProjectKeys []string

	// MemberKeys restricts issues to these assignee ids when
	// non-empty. The values are passed to the API verbatim.
	MemberKeys []string

	// IssueCount caps the number of issues fetched per run.
	IssueCount int

	// Port is the HTTP listen port for the dashboard server.
	Port int

	// StaticDir is the directory holding the built dashboard frontend.
	StaticDir string

	// OpenBrowser controls whether startup opens the dashboard in the
	// default browser.
	OpenBrowser bool

	// LogLevel is the logrus level name (debug, info, warn, error).
	LogLevel string
}

const (
	defaultIssueCount = 100
	defaultPort       = 3001
)

// LoadConfig reads configuration from BACKLOG_* environment variables,
// optionally overridden by a YAML file at path (pass "" to skip the
// file). Missing mandatory fields are reported as errors, never
// defaulted.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("backlog")
	v.AutomaticEnv()

	// Defaults register the keys with viper so AutomaticEnv can
	// resolve them during Unmarshal.
	v.SetDefault("space_url", "")
	v.SetDefault("api_key", "")
	v.SetDefault("project_keys", "")
	v.SetDefault("member_keys", "")
	v.SetDefault("issue_count", defaultIssueCount)
	v.SetDefault("port", defaultPort)
	v.SetDefault("static_dir", "web/dist")
	v.SetDefault("open_browser", true)
	v.SetDefault("log_level", "info")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(*os.PathError); ok {
				// Absent file falls back to env/defaults.
			} else if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	cfg := &Config{
		SpaceURL:    strings.TrimRight(v.GetString("space_url"), "/"),
		APIKey:      v.GetString("api_key"),
		ProjectKeys: splitList(v.GetString("project_keys")),
		MemberKeys:  splitList(v.GetString("member_keys")),
		IssueCount:  v.GetInt("issue_count"),
		Port:        v.GetInt("port"),
		StaticDir:   v.GetString("static_dir"),
		OpenBrowser: v.GetBool("open_browser"),
		LogLevel:    v.GetString("log_level"),
	}

	if cfg.IssueCount <= 0 {
		cfg.IssueCount = defaultIssueCount
	}
	if cfg.Port <= 0 {
		cfg.Port = defaultPort
	}

	return cfg, nil
}

// Validate checks the mandatory fields. A missing space URL or API key
// is a fatal configuration error.
func (c *Config) Validate() error {
	if c.SpaceURL == "" {
		return fmt.Errorf("configuration error: space URL is not set (BACKLOG_SPACE_URL)")
	}
	if c.APIKey == "" {
		return fmt.Errorf("configuration error: API key is not set (BACKLOG_API_KEY)")
	}
	return nil
}

// splitList parses a comma-delimited list, trimming whitespace and
// dropping empty entries.
func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
