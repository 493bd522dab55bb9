package bootstrap

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort      string        `mapstructure:"SERVER_PORT"`
	IsLocalCors     bool          `mapstructure:"LOCAL_CORS"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	RedisUrl        string        `mapstructure:"REDIS_URL"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int           `mapstructure:"REDIS_DB"`
	JournalKey      string        `mapstructure:"JOURNAL_KEY"`
	JournalLimit    int           `mapstructure:"JOURNAL_LIMIT"`
	StartFen        string        `mapstructure:"START_FEN"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

var defaults = map[string]any{
	"SERVER_PORT":      "8000",
	"LOCAL_CORS":       true,
	"LOG_LEVEL":        "info",
	"REDIS_URL":        "",
	"REDIS_PASSWORD":   "",
	"REDIS_DB":         0,
	"JOURNAL_KEY":      "resty_chess:journal",
	"JOURNAL_LIMIT":    500,
	"START_FEN":        "",
	"SHUTDOWN_TIMEOUT": 5 * time.Second,
}

// Setup reads cfgPath (a dotenv file) if it exists, then lets environment
// variables override it. Unset keys take their defaults.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		v.SetConfigType("env")
		err := v.ReadInConfig()
		var notFound viper.ConfigFileNotFoundError
		if err != nil && !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config

	err := v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
