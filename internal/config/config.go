package config

import (
	"bytes"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppCfg struct {
	Name string
	Env  string
	Host string
	Port int
}

type LogCfg struct {
	Level string
}

type DBCfg struct {
	// UseRealBackend selects whether the primary store is attempted at all.
	UseRealBackend bool
	Driver         string
	DSN            string
	MaxOpen        int
	MaxIdle        int
	AutoMigrate    bool
}

// PrimaryEnabled reports whether operations should try the primary store. A
// missing DSN counts as the toggle being off.
func (d DBCfg) PrimaryEnabled() bool {
	return d.UseRealBackend && strings.TrimSpace(d.DSN) != ""
}

type AuthCfg struct {
	JwtSecret   string
	TokenTTLSec int
}

type RedisCfg struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
}

type MQCfg struct {
	URL      string
	Exchange string
}

type S3Cfg struct {
	Endpoint         string
	Region           string
	AccessKey        string
	SecretKey        string
	Bucket           string
	UsePathStyle     bool
	PresignExpireSec int
	SSE              string
}

type TelemetryCfg struct {
	Enabled      bool
	OtlpEndpoint string
	SampleRatio  float64
}

type CorsCfg struct {
	AllowOrigins []string
}

type ClientCfg struct {
	BaseURL string
	Token   string
}

type Config struct {
	App       AppCfg
	Log       LogCfg
	Database  DBCfg
	Auth      AuthCfg
	Redis     RedisCfg
	RabbitMQ  MQCfg
	S3        S3Cfg
	Telemetry TelemetryCfg
	Cors      CorsCfg
	Client    ClientCfg
}

func Load() (*Config, error) {
	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	base := viper.New()
	base.SetConfigName("config")
	base.SetConfigType("yaml")
	base.AddConfigPath("./configs")
	base.AddConfigPath(".")
	base.AutomaticEnv()
	base.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	base.SetEnvPrefix("APP") // e.g. APP_DATABASE_DSN -> database.dsn

	setDefaults(base)

	if err := base.ReadInConfig(); err == nil {
		// expand ${ENV} once before parsing
		path := base.ConfigFileUsed()
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		expanded := os.ExpandEnv(string(raw))

		v := viper.New()
		v.SetConfigType("yaml")
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return nil, err
		}
		v.AutomaticEnv()
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.SetEnvPrefix("APP")
		setDefaults(v)

		cfg := new(Config)
		if err := v.Unmarshal(&cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	// no file: env + defaults only
	cfg := new(Config)
	if err := base.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "projectpulse")
	v.SetDefault("app.env", "debug")
	v.SetDefault("app.host", "0.0.0.0")
	v.SetDefault("app.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("database.useRealBackend", false)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.maxOpen", 20)
	v.SetDefault("database.maxIdle", 5)
	v.SetDefault("database.autoMigrate", false)
	v.SetDefault("auth.jwtSecret", "")
	v.SetDefault("auth.tokenTTLSec", 86400)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.poolSize", 10)
	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("rabbitmq.exchange", "projectpulse.activity")
	v.SetDefault("s3.region", "auto")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.usePathStyle", true)
	v.SetDefault("s3.presignExpireSec", 900)
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.otlpEndpoint", "")
	v.SetDefault("telemetry.sampleRatio", 1.0)
	v.SetDefault("cors.allowOrigins", []string{"*"})
	v.SetDefault("client.baseURL", "http://localhost:8080/api/v1")
	v.SetDefault("client.token", "")
}
