package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aaronzipp/scoreboards/internal/surface"
)

// Config holds application configuration.
type Config struct {
	Server ServerConfig
	Host   HostConfig
	Board  BoardConfig
	Debug  bool
}

// ServerConfig holds demo server settings.
type ServerConfig struct {
	Addr      string
	PublicURL string `mapstructure:"public_url"`
}

// HostConfig selects the capability tier.
type HostConfig struct {
	Version string
}

// BoardConfig holds the defaults new lobbies start with.
type BoardConfig struct {
	Title           string
	TabHealth       string `mapstructure:"tab_health"`
	BelowNameHealth bool   `mapstructure:"below_name_health"`
}

// Load reads .env, an optional TOML file and the environment. Env var
// overrides use prefix SCOREBOARDS_, e.g. SCOREBOARDS_SERVER_ADDR.
func Load() (Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.public_url", "http://localhost:8080")
	v.SetDefault("host.version", "1.20")
	v.SetDefault("board.title", "&e&lScoreboard")
	v.SetDefault("board.tab_health", "none")
	v.SetDefault("board.below_name_health", false)
	v.SetDefault("debug", false)

	v.SetConfigType("toml")
	if path := os.Getenv("SCOREBOARDS_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix("SCOREBOARDS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Version parses the configured host version.
func (c Config) Version() (surface.Version, error) {
	return surface.ParseVersion(c.Host.Version)
}

// HealthStyle parses the configured tab health style.
func (c Config) HealthStyle() (surface.HealthStyle, error) {
	return surface.ParseHealthStyle(c.Board.TabHealth)
}
