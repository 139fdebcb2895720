package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config carries everything the API binary needs at startup. Values come
// from config.yaml when present and are overridable via environment
// variables (STAFFHUB_DATABASE_URL and friends).
type Config struct {
	ListenAddr string `mapstructure:"listen_addr"`
	Database   struct {
		URL string `mapstructure:"url"`
	} `mapstructure:"database"`
	Auth struct {
		Secret   string        `mapstructure:"secret"`
		Issuer   string        `mapstructure:"issuer"`
		TokenTTL time.Duration `mapstructure:"token_ttl"`
	} `mapstructure:"auth"`
	Redis struct {
		Addr     string `mapstructure:"addr"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Storage struct {
		Dir     string `mapstructure:"dir"`
		BaseURL string `mapstructure:"base_url"`
	} `mapstructure:"storage"`
	RateLimit struct {
		Burst  int `mapstructure:"burst"`
		PerSec int `mapstructure:"per_sec"`
	} `mapstructure:"rate_limit"`
}

// Load reads config.yaml plus environment overrides. Missing file is fine;
// a missing auth secret is not, but that is enforced where the secret is
// first used, not here.
func Load() (Config, error) {
	viper.SetDefault("listen_addr", ":8080")
	viper.SetDefault("auth.issuer", "staffhub")
	viper.SetDefault("auth.token_ttl", 15*time.Minute)
	viper.SetDefault("storage.dir", "data/uploads")
	// Must match the path the API serves stored images from.
	viper.SetDefault("storage.base_url", "/images")
	viper.SetDefault("rate_limit.burst", 20)
	viper.SetDefault("rate_limit.per_sec", 10)

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	_ = viper.ReadInConfig()

	viper.SetEnvPrefix("staffhub")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	_ = viper.BindEnv("listen_addr", "STAFFHUB_LISTEN_ADDR")
	_ = viper.BindEnv("database.url", "STAFFHUB_DATABASE_URL")
	_ = viper.BindEnv("auth.secret", "STAFFHUB_AUTH_SECRET")
	_ = viper.BindEnv("auth.issuer", "STAFFHUB_AUTH_ISSUER")
	_ = viper.BindEnv("redis.addr", "STAFFHUB_REDIS_ADDR")
	_ = viper.BindEnv("redis.password", "STAFFHUB_REDIS_PASSWORD")
	_ = viper.BindEnv("storage.dir", "STAFFHUB_STORAGE_DIR")
	_ = viper.BindEnv("storage.base_url", "STAFFHUB_STORAGE_BASE_URL")

	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}
