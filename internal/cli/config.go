package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	lgerrors "github.com/matzehuels/levelgraph/pkg/errors"
	"github.com/matzehuels/levelgraph/pkg/pipeline"
)

// envPrefix namespaces environment overrides (LEVELGRAPH_RANKDIR, ...).
const envPrefix = "LEVELGRAPH"

// Config holds user preferences shared by all commands. Values are layered:
// defaults, then config.toml, then LEVELGRAPH_* variables (including those
// loaded from the dotenv file). Command-line flags win over all of them.
type Config struct {
	Formats  string  `mapstructure:"formats" json:"formats" validate:"required"`
	RankDir  string  `mapstructure:"rankdir" json:"rankdir" validate:"oneof=TB LR BT RL"`
	Detailed bool    `mapstructure:"detailed" json:"detailed"`
	Scale    float64 `mapstructure:"scale" json:"scale" validate:"gt=0,lte=8"`
	CacheDir string  `mapstructure:"cache_dir" json:"cache_dir"`
	NoCache  bool    `mapstructure:"no_cache" json:"no_cache"`
	LogLevel string  `mapstructure:"log_level" json:"log_level" validate:"oneof=debug info warn error"`
}

func defaultConfig() Config {
	return Config{
		Formats:  pipeline.DefaultFormat,
		RankDir:  pipeline.DefaultRankDir,
		Scale:    pipeline.DefaultScale,
		LogLevel: "info",
	}
}

// loadConfig resolves the layered configuration. An explicit configFile must
// exist; the default location is optional. A missing envFile is ignored.
func loadConfig(configFile, envFile string) (Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return Config{}, fmt.Errorf("load %s: %w", envFile, err)
			}
		}
	}

	v := viper.New()
	def := defaultConfig()
	v.SetDefault("formats", def.Formats)
	v.SetDefault("rankdir", def.RankDir)
	v.SetDefault("detailed", def.Detailed)
	v.SetDefault("scale", def.Scale)
	v.SetDefault("cache_dir", def.CacheDir)
	v.SetDefault("no_cache", def.NoCache)
	v.SetDefault("log_level", def.LogLevel)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigType("toml")
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, lgerrors.Wrap(lgerrors.ErrCodeInvalidPath, err, "read config %s", configFile)
		}
	} else if dir, err := configDir(); err == nil {
		v.SetConfigName("config")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config in %s: %w", dir, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.RankDir = strings.ToUpper(cfg.RankDir)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if cfg.CacheDir != "" {
		cfg.CacheDir = filepath.Clean(os.ExpandEnv(cfg.CacheDir))
	}

	if err := lgerrors.ValidateStruct(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
