package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Telegram   TelegramConfig   `yaml:"telegram" mapstructure:"telegram"`
	ServerChan ServerChanConfig `yaml:"serverchan" mapstructure:"serverchan"`
	DingTalk   DingTalkConfig   `yaml:"dingtalk" mapstructure:"dingtalk"`
	Weather    WeatherConfig    `yaml:"weather" mapstructure:"weather"`
	Stocks     StocksConfig     `yaml:"stocks" mapstructure:"stocks"`
	Gold       GoldConfig       `yaml:"gold" mapstructure:"gold"`
	HTTP       HTTPConfig       `yaml:"http" mapstructure:"http"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Timezone   string           `yaml:"timezone" mapstructure:"timezone"`
}

// TelegramConfig holds Telegram bot credentials.
type TelegramConfig struct {
	BotToken string `yaml:"bot_token" mapstructure:"bot_token"`
	ChatID   string `yaml:"chat_id" mapstructure:"chat_id"`
}

// ServerChanConfig holds the WeChat ServerChan send key.
type ServerChanConfig struct {
	SendKey string `yaml:"send_key" mapstructure:"send_key"`
}

// DingTalkConfig holds the DingTalk robot webhook settings.
type DingTalkConfig struct {
	WebhookURL string `yaml:"webhook_url" mapstructure:"webhook_url"`
	Secret     string `yaml:"secret" mapstructure:"secret"`
}

// WeatherConfig configures the weather section.
type WeatherConfig struct {
	City      string  `yaml:"city" mapstructure:"city"`
	Latitude  float64 `yaml:"latitude" mapstructure:"latitude"`
	Longitude float64 `yaml:"longitude" mapstructure:"longitude"`
}

// HasCoordinates reports whether explicit coordinates are configured,
// which skips the geocoding lookup.
func (w WeatherConfig) HasCoordinates() bool {
	return w.Latitude != 0 || w.Longitude != 0
}

// StocksConfig configures the A-share section.
type StocksConfig struct {
	// Codes is a comma or whitespace separated ticker list.
	Codes string `yaml:"codes" mapstructure:"codes"`
}

// GoldConfig configures the gold section. Holding and cost fields are
// optional; zero means unset.
type GoldConfig struct {
	HoldingGrams   float64 `yaml:"holding_grams" mapstructure:"holding_grams"`
	TotalCostCNY   float64 `yaml:"total_cost_cny" mapstructure:"total_cost_cny"`
	CostPerGramCNY float64 `yaml:"cost_per_gram_cny" mapstructure:"cost_per_gram_cny"`
}

// HTTPConfig configures outbound HTTP behavior.
type HTTPConfig struct {
	TimeoutSecs int `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRetries  int `yaml:"max_retries" mapstructure:"max_retries"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// HasTelegram reports whether both Telegram credentials are present.
func (c *Config) HasTelegram() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// HasServerChan reports whether the ServerChan send key is present.
func (c *Config) HasServerChan() bool {
	return c.ServerChan.SendKey != ""
}

// HasDingTalk reports whether the DingTalk webhook is present.
func (c *Config) HasDingTalk() bool {
	return c.DingTalk.WebhookURL != ""
}

// ValidateChannels checks that at least one delivery channel is fully
// configured. Called before any network activity when not in dry-run.
func (c *Config) ValidateChannels() error {
	if c.HasTelegram() || c.HasServerChan() || c.HasDingTalk() {
		return nil
	}
	if c.Telegram.BotToken != "" || c.Telegram.ChatID != "" {
		return eris.New("config: telegram needs both bot_token and chat_id")
	}
	return eris.New("config: no delivery channel configured; set telegram (bot_token + chat_id), serverchan.send_key, or dingtalk.webhook_url")
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("BRIEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults. Credential keys default to empty so AutomaticEnv can
	// surface them through Unmarshal.
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")
	v.SetDefault("serverchan.send_key", "")
	v.SetDefault("dingtalk.webhook_url", "")
	v.SetDefault("dingtalk.secret", "")
	v.SetDefault("weather.latitude", 0.0)
	v.SetDefault("weather.longitude", 0.0)
	v.SetDefault("gold.holding_grams", 0.0)
	v.SetDefault("gold.total_cost_cny", 0.0)
	v.SetDefault("gold.cost_per_gram_cny", 0.0)
	v.SetDefault("timezone", "Asia/Shanghai")
	v.SetDefault("weather.city", "Shanghai")
	v.SetDefault("stocks.codes", "600519,000001,300750")
	v.SetDefault("http.timeout_secs", 20)
	v.SetDefault("http.max_retries", 3)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
