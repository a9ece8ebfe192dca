// Package config loads the settings file, the .env file and secret
// environment overrides into one validated Config.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "settings.yaml"

type Model struct {
	Market            string  `yaml:"market" default:"SPY" validate:"required"`
	Cash              string  `yaml:"cash" default:"SHY" validate:"required,nefield=Market"`
	TailingWindow     int     `yaml:"tailing_window" default:"200" validate:"gt=0"`
	LookbackDays      int     `yaml:"lookback_days" default:"730" validate:"gt=0"`
	MacroIndicator    string  `yaml:"macro_indicator" default:"RRSFS" validate:"required"`
	MacroLookbackDays int     `yaml:"macro_lookback_days" default:"600" validate:"gte=366"`
	Weight            float64 `yaml:"weight" default:"1.0" validate:"gt=0,lte=1"`
}

type Alpaca struct {
	ApiKey    string `yaml:"api_key"`
	ApiSecret string `yaml:"api_secret"`
	Endpoint  string `yaml:"endpoint" default:"https://paper-api.alpaca.markets"`
	DataFeed  string `yaml:"data_feed" default:"iex" validate:"oneof=iex sip"`
}

type MarketData struct {
	Provider string `yaml:"provider" default:"alpaca" validate:"oneof=alpaca yahoo csv"`
	CsvPath  string `yaml:"csv_path" validate:"required_if=Provider csv"`
}

type Fred struct {
	ApiKey  string `yaml:"api_key"`
	BaseUrl string `yaml:"base_url" default:"https://api.stlouisfed.org"`
}

type Db struct {
	Url       string `yaml:"url"`
	Host      string `yaml:"host" default:"localhost"`
	Port      string `yaml:"port" default:"5432"`
	User      string `yaml:"user" default:"postgres"`
	Password  string `yaml:"password"`
	Database  string `yaml:"database" default:"postgres"`
	EnableSsl bool   `yaml:"enable_ssl"`
}

func (t Db) ToConnectionStr() string {
	if t.Url != "" {
		return t.Url
	}
	x := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s",
		t.Host, t.Port, t.User, t.Password, t.Database)
	if !t.EnableSsl {
		x += " sslmode=disable"
	}
	return x
}

type Email struct {
	Enabled     bool     `yaml:"enabled"`
	Region      string   `yaml:"region" default:"us-east-1"`
	FromAddress string   `yaml:"from_address" validate:"omitempty,email"`
	ToAddresses []string `yaml:"to_addresses" validate:"dive,email"`
}

type Metrics struct {
	PushgatewayUrl string `yaml:"pushgateway_url" validate:"omitempty,url"`
	Job            string `yaml:"job" default:"trendalgo"`
}

type Api struct {
	Port      int    `yaml:"port" default:"3009" validate:"gt=0"`
	JwtSecret string `yaml:"jwt_secret"`
}

type Config struct {
	Env        string     `yaml:"env" default:"dev"`
	LiveTrade  bool       `yaml:"live_trade"`
	Model      Model      `yaml:"model"`
	Alpaca     Alpaca     `yaml:"alpaca"`
	MarketData MarketData `yaml:"market_data"`
	Fred       Fred       `yaml:"fred"`
	Db         Db         `yaml:"db"`
	Email      Email      `yaml:"email"`
	Metrics    Metrics    `yaml:"metrics"`
	Api        Api        `yaml:"api"`
	SentryDsn  string     `yaml:"sentry_dsn"`
}

// LoadDotEnv copies the given env files, or .env when none are given,
// into the process environment. Variables already set win. It has to run
// before logger.Init so TREND_ENV from the file picks the log format.
func LoadDotEnv(paths ...string) {
	_ = godotenv.Load(paths...)
}

// Load reads the .env file if present, then the YAML settings file at
// path, then applies environment overrides. A missing settings file is
// not an error; defaults and environment still apply.
func Load(path string) (*Config, error) {
	LoadDotEnv()

	if path == "" {
		path = os.Getenv("TREND_CONFIG_FILE")
	}
	if path == "" {
		path = DefaultPath
	}

	cfg := &Config{}
	b, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("set config defaults: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func applyEnv(c *Config) error {
	envStrings := map[string]*string{
		"TREND_ENV":           &c.Env,
		"ALPACA_KEY_ID":       &c.Alpaca.ApiKey,
		"ALPACA_SECRET_KEY":   &c.Alpaca.ApiSecret,
		"ALPACA_BASE_URL":     &c.Alpaca.Endpoint,
		"FRED_API_KEY":        &c.Fred.ApiKey,
		"FROM_ADDRESS":        &c.Email.FromAddress,
		"AWS_SES_REGION_NAME": &c.Email.Region,
		"DATABASE_URL":        &c.Db.Url,
		"PUSHGATEWAY_URL":     &c.Metrics.PushgatewayUrl,
		"API_JWT_SECRET":      &c.Api.JwtSecret,
		"SENTRY_DSN":          &c.SentryDsn,
	}
	for key, dest := range envStrings {
		if v := os.Getenv(key); v != "" {
			*dest = v
		}
	}

	if v := os.Getenv("TO_ADDRESSES"); v != "" {
		c.Email.ToAddresses = splitList(v)
	}

	envBools := map[string]*bool{
		"LIVE_TRADE":      &c.LiveTrade,
		"EMAIL_POSITIONS": &c.Email.Enabled,
	}
	for key, dest := range envBools {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			continue
		}
		b, err := ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dest = b
	}

	return nil
}

func splitList(in string) []string {
	out := []string{}
	for _, s := range strings.Split(in, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ParseBool accepts true/t/1/on and false/f/0, case-insensitive
func ParseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "t", "1", "on":
		return true, nil
	case "false", "f", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid literal for boolean: %q", value)
}

var validate = validator.New()

// Validate checks struct tags, then the rules that depend on the run mode
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if c.LiveTrade && (c.Alpaca.ApiKey == "" || c.Alpaca.ApiSecret == "") {
		return fmt.Errorf("alpaca api key and secret are required when live_trade is enabled")
	}
	if c.Email.Enabled && (c.Email.FromAddress == "" || len(c.Email.ToAddresses) == 0) {
		return fmt.Errorf("email from and to addresses are required when email is enabled")
	}
	return nil
}
