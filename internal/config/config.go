package config

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type PostgresConfig struct {
	DSN             string
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SecurityConfig struct {
	JWTSecret      string
	JWTTTL         time.Duration
	SigninAttempts int
	SigninWindow   time.Duration
	ResetTokenTTL  time.Duration
}

type WorkdayConfig struct {
	Timezone        string
	StaleSessionAge time.Duration
}

type MailConfig struct {
	SMTPHost string
	SMTPPort int
	Username string
	Password string
	From     string
	ResetURL string
}

type ReportsConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
}

type AppConfig struct {
	Environment      string
	HTTP             HTTPConfig
	Postgres         PostgresConfig
	Redis            RedisConfig
	Security         SecurityConfig
	Workday          WorkdayConfig
	Mail             MailConfig
	Reports          ReportsConfig
	AllowCORSOrigins []string
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	v.SetEnvPrefix("ATTENDANCE")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 5000)
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "15s")
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("postgres.maxopen", 30)
	v.SetDefault("postgres.maxidle", 10)
	v.SetDefault("postgres.connmaxlifetime", "30m")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("security.jwtttl", "1h")
	v.SetDefault("security.signinattempts", 10)
	v.SetDefault("security.signinwindow", "15m")
	v.SetDefault("security.resettokenttl", "1h")

	v.SetDefault("workday.timezone", "Asia/Jakarta")
	v.SetDefault("workday.stalesessionage", "16h")

	v.SetDefault("mail.smtpport", 587)

	v.SetDefault("reports.bucket", "attendance-reports")
	v.SetDefault("reports.usessl", false)
	v.SetDefault("reports.region", "us-east-1")
}
