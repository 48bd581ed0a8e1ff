package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env        string `env:"ENV" env-required:"true"`
	LogLevel   string `env:"LOG_LEVEL" env-default:"info" env-description:"logging level, debug, info, etc."`
	HttpServer HttpServer
	Database   Database
	Limiter    Limiter
	Auth       AuthConfig
	SMTP       SMTPConfig
	Email      EmailConfig
	Cache      Cache
	OTP        OTPConfig
	Worker     WorkerConfig
}

type HttpServer struct {
	Port           string        `env:"HTTP_PORT" env-default:"5000"`
	Timeout        time.Duration `env:"HTTP_TIMEOUT" env-default:"15s"`
	IdleTimeout    time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	SwaggerEnabled bool          `env:"HTTP_SWAGGER_ENABLED" env-default:"false"`
	MetricsEnabled bool          `env:"HTTP_METRICS_ENABLED" env-default:"true"`
	AllowedOrigins []string      `env:"HTTP_CORS_ALLOWED_ORIGINS" env-default:"http://localhost:3000,http://localhost:5173"`
}

type Database struct {
	Net                string        `env:"DB_NET" env-default:"tcp"`
	Server             string        `env:"DB_SERVER" env-required:"true"`
	DBName             string        `env:"DB_NAME" env-required:"true"`
	User               string        `env:"DB_USER" env-required:"true"`
	Password           string        `env:"DB_PASSWORD" env-required:"true"`
	TimeZone           string        `env:"DB_TIMEZONE" env-default:"UTC"`
	Timeout            time.Duration `env:"DB_TIMEOUT" env-default:"2s"`
	MaxIdleConnections int           `env:"DB_MAX_IDLE_CONNECTIONS" env-default:"40"`
	MaxOpenConnections int           `env:"DB_MAX_OPEN_CONNECTIONS" env-default:"40"`
	MigrateOnStart     bool          `env:"DB_MIGRATE_ON_START" env-default:"false"`
}

type Limiter struct {
	RPS   int           `env:"LIMITER_RPS" env-default:"10"`
	Burst int           `env:"LIMITER_BURST" env-default:"20"`
	TTL   time.Duration `env:"LIMITER_TTL" env-default:"10m"`
}

type AuthConfig struct {
	JWT        JWTConfig
	BcryptCost int `env:"AUTH_BCRYPT_COST" env-default:"12"`
}

type JWTConfig struct {
	AccessTokenTTL time.Duration `env:"JWT_ACCESS_TOKEN_TTL" env-default:"24h"`
	SigningKey     string        `env:"JWT_SIGNING_KEY" env-required:"true"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST" env-default:"smtp.gmail.com"`
	Port     int    `env:"SMTP_PORT" env-default:"587"`
	From     string `env:"SMTP_FROM" env-required:"true"`
	Pass     string `env:"SMTP_PASS" env-required:"true"`
	FromName string `env:"SMTP_FROM_NAME" env-default:"FirstLight Apartments"`
}

type EmailConfig struct {
	Enabled     bool          `env:"EMAIL_ENABLED" env-default:"false"`
	ClientURL   string        `env:"CLIENT_URL" env-default:"http://localhost:3000"`
	SendTimeout time.Duration `env:"EMAIL_SEND_TIMEOUT" env-default:"10s"`
}

type OTPConfig struct {
	CodeLength        int           `env:"OTP_CODE_LENGTH" env-default:"6"`
	Validity          time.Duration `env:"OTP_VALIDITY" env-default:"10m"`
	TwoFactorValidity time.Duration `env:"OTP_TWO_FACTOR_VALIDITY" env-default:"5m"`
	Cooldown          time.Duration `env:"OTP_COOLDOWN" env-default:"60s"`
	HourlyLimit       int           `env:"OTP_HOURLY_LIMIT" env-default:"5"`
	StatsWindow       time.Duration `env:"OTP_STATS_WINDOW" env-default:"1h"`
	CooldownStore     string        `env:"OTP_COOLDOWN_STORE" env-default:"memory" env-description:"one of memory/redis"`
	Retention         time.Duration `env:"OTP_RETENTION" env-default:"24h" env-description:"how long expired codes are kept before the reaper deletes them"`
	ReaperCron        string        `env:"OTP_REAPER_CRON" env-default:"*/30 * * * *"`
	ExposeCode        bool          `env:"OTP_EXPOSE_CODE" env-default:"false" env-description:"return raw codes in API responses, ignored in production"`
}

type WorkerConfig struct {
	Concurrency int    `env:"WORKER_CONCURRENCY" env-default:"5"`
	MetricsPort string `env:"WORKER_METRICS_PORT" env-default:"9100"`
}

type Cache struct {
	Type  string `env:"REDIS_TYPE" env-default:"redis" env-description:"specifies provider, one of redis/redisCluster"`
	Redis struct {
		Address  string `env:"REDIS_ADDR" env-default:"localhost:6379" env-description:"redis host:port single instance"`
		Password string `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize int    `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
	RedisCluster struct {
		Addresses []string `env:"REDIS_CLUSTER_ADDRS" env-default:"" env-description:"redis cluster nodes: ['172.27.29.90:7000','172.27.29.91:7001'', '172.27.29.92:7002'']"`
		Password  string   `env:"REDIS_PASSWORD" env-default:"" env-description:"redis password if exists"`
		PoolSize  int      `env:"REDIS_POOL_SIZE" env-default:"70" env-description:"max tcp connections pool size"`
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func MustLoad() *Config {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config from environment: %s", err)
	}

	return &cfg
}
