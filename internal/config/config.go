package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/viper"

	"proximity-route-service/internal/domain"
	"proximity-route-service/internal/search"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Graph    GraphConfig    `mapstructure:"graph"`
	Search   SearchConfig   `mapstructure:"search"`
	Registry RegistryConfig `mapstructure:"registry"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
}

type GraphConfig struct {
	// Distance cutoff for edge formation, in kilometers.
	ThresholdKm float64 `mapstructure:"threshold_km"`
	Indexed     bool    `mapstructure:"indexed"`
}

type SearchConfig struct {
	// Default start identifier.
	Origin string `mapstructure:"origin"`
	// Default traversal discipline: bfs or dfs.
	Strategy string `mapstructure:"strategy"`
	// How parents are recorded: frontier (default) or last-recorded, the
	// overwrite-on-discovery rule of the reference route picker.
	ParentRule string `mapstructure:"parent_rule"`
	BatchLimit int    `mapstructure:"batch_limit"`
}

// Registry sources.
const (
	SourceFile     = "file"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
)

type RegistryConfig struct {
	Source      string `mapstructure:"source"`
	Path        string `mapstructure:"path"`
	SQLitePath  string `mapstructure:"sqlite_path"`
	DatabaseURL string `mapstructure:"database_url"`
}

// Load reads configuration from defaults, an optional config.yaml and
// ROUTEFINDER_* environment variables, in increasing precedence.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_header_timeout", 5*time.Second)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("graph.threshold_km", 1.0)
	v.SetDefault("graph.indexed", false)
	v.SetDefault("search.origin", "A")
	v.SetDefault("search.strategy", "bfs")
	v.SetDefault("search.parent_rule", "frontier")
	v.SetDefault("search.batch_limit", 8)
	v.SetDefault("registry.source", SourceFile)
	v.SetDefault("registry.path", "data/seeds/locations.json")
	v.SetDefault("registry.sqlite_path", "data/app.db")
	v.SetDefault("registry.database_url", "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// ROUTEFINDER_GRAPH_THRESHOLD_KM -> graph.threshold_km
	v.SetEnvPrefix("ROUTEFINDER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate reports every malformed setting at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server timeouts must be positive")
	}
	if math.IsNaN(c.Graph.ThresholdKm) || math.IsInf(c.Graph.ThresholdKm, 0) || c.Graph.ThresholdKm < 0 {
		errs = append(errs, fmt.Sprintf("graph.threshold_km must be a non-negative number, got %v", c.Graph.ThresholdKm))
	}
	if strings.TrimSpace(c.Search.Origin) == "" {
		errs = append(errs, "search.origin is required")
	}
	if _, err := search.ParseStrategy(c.Search.Strategy); err != nil {
		errs = append(errs, fmt.Sprintf("search.strategy must be bfs or dfs, got %q", c.Search.Strategy))
	}
	if _, err := search.ParseParentRule(c.Search.ParentRule); err != nil {
		errs = append(errs, fmt.Sprintf("search.parent_rule must be frontier or last-recorded, got %q", c.Search.ParentRule))
	}
	if c.Search.BatchLimit <= 0 {
		errs = append(errs, "search.batch_limit must be positive")
	}

	switch c.Registry.Source {
	case SourceFile:
		if c.Registry.Path == "" {
			errs = append(errs, "registry.path is required for source=file")
		}
	case SourceSQLite:
		if c.Registry.SQLitePath == "" {
			errs = append(errs, "registry.sqlite_path is required for source=sqlite")
		}
	case SourcePostgres:
		if c.Registry.DatabaseURL == "" {
			errs = append(errs, "registry.database_url is required for source=postgres")
		}
	default:
		errs = append(errs, fmt.Sprintf("registry.source must be file, sqlite or postgres, got %q", c.Registry.Source))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %w:\n  - %s", domain.ErrInvalidConfig, strings.Join(errs, "\n  - "))
	}
	return nil
}

// DefaultStrategy returns the parsed search.strategy. Call after Validate.
func (c *Config) DefaultStrategy() search.Strategy {
	s, _ := search.ParseStrategy(c.Search.Strategy)
	return s
}

// DefaultParentRule returns the parsed search.parent_rule. Call after Validate.
func (c *Config) DefaultParentRule() search.ParentRule {
	r, _ := search.ParseParentRule(c.Search.ParentRule)
	return r
}
