package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"pogomcp/internal/domain"
)

// Config is the resolved daemon configuration. Precedence: flags, then
// POGOMCP_* environment variables, then the YAML config file, then defaults.
type Config struct {
	DataDir         string
	FreshnessWindow time.Duration
	WatchDataDir    bool
	LogLevel        string
	Observability   ObservabilityConfig
}

type ObservabilityConfig struct {
	ListenAddress string
	EnableMetrics bool
	EnableHealthz bool
}

func newConfigViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	setConfigDefaults(v)
	v.SetEnvPrefix("POGOMCP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("dataDir", domain.DefaultDataDir)
	v.SetDefault("freshnessWindow", domain.DefaultFreshnessWindow)
	v.SetDefault("watchDataDir", domain.DefaultWatchDataDir)
	v.SetDefault("logLevel", domain.DefaultLogLevel)
	v.SetDefault("observability.listenAddress", domain.DefaultObservabilityListenAddress)
	v.SetDefault("observability.enableMetrics", domain.DefaultObservabilityMetrics)
	v.SetDefault("observability.enableHealthz", domain.DefaultObservabilityHealthz)
}

// LoadConfig resolves the configuration. path may be empty (no config file);
// flags may be nil.
func LoadConfig(path string, flags *pflag.FlagSet) (Config, error) {
	v := newConfigViper()
	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := Config{
		DataDir:         v.GetString("dataDir"),
		FreshnessWindow: v.GetDuration("freshnessWindow"),
		WatchDataDir:    v.GetBool("watchDataDir"),
		LogLevel:        v.GetString("logLevel"),
		Observability: ObservabilityConfig{
			ListenAddress: v.GetString("observability.listenAddress"),
			EnableMetrics: v.GetBool("observability.enableMetrics"),
			EnableHealthz: v.GetBool("observability.enableHealthz"),
		},
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.DataDir == "" {
		return domain.E(domain.CodeInvalidArgument, "config.validate", "dataDir is required", nil)
	}
	if c.FreshnessWindow <= 0 {
		return domain.E(domain.CodeInvalidArgument, "config.validate",
			fmt.Sprintf("freshnessWindow must be positive, got %s", c.FreshnessWindow), nil)
	}
	return nil
}
