package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost     string
	ServicePort     int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string

	JwtKey      string
	JwtIssuer   string
	JwtAudience string
	JwtTTL      time.Duration

	RedisEndpoint string
	RedisPassword string
	RedisDB       int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	OtelEndpoint    string
	OtelServiceName string
}

var envBindings = map[string]string{
	"ServiceHost":     "SERVICE_HOST",
	"ServicePort":     "SERVICE_PORT",
	"CORSOrigins":     "CORS_ORIGINS",
	"JwtKey":          "JWT_KEY",
	"JwtIssuer":       "JWT_ISSUER",
	"JwtAudience":     "JWT_AUDIENCE",
	"JwtTTL":          "JWT_TTL",
	"RedisEndpoint":   "REDIS_ENDPOINT",
	"RedisPassword":   "REDIS_PASSWORD",
	"RedisDB":         "REDIS_DB",
	"MinioEndpoint":   "MINIO_ENDPOINT",
	"MinioAccessKey":  "MINIO_ACCESS_KEY",
	"MinioSecretKey":  "MINIO_SECRET_KEY",
	"MinioBucket":     "MINIO_BUCKET",
	"MinioUseSSL":     "MINIO_USE_SSL",
	"OtelEndpoint":    "OTEL_EXPORTER_OTLP_ENDPOINT",
	"OtelServiceName": "OTEL_SERVICE_NAME",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ServiceHost", "0.0.0.0")
	v.SetDefault("ServicePort", 8080)
	v.SetDefault("ReadTimeout", 15*time.Second)
	v.SetDefault("WriteTimeout", 15*time.Second)
	v.SetDefault("ShutdownTimeout", 10*time.Second)
	v.SetDefault("CORSOrigins", []string{"http://localhost:4200"})
	v.SetDefault("JwtIssuer", "ship_berth")
	v.SetDefault("JwtAudience", "ship_berth_client")
	v.SetDefault("JwtTTL", 2*time.Hour)
	v.SetDefault("MinioBucket", "ship-berth-img")
	v.SetDefault("OtelServiceName", "ship_berth")
}

func NewConfig() (*Config, error) {
	configName := "config"
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	// Чтение .env
	if err := godotenv.Load(); err != nil {
		logrus.Warn("Error loading .env file, using environment")
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		logrus.Warnf("config file %s.toml not found, using defaults", configName)
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.JwtKey == "" {
		return nil, errors.New("JWT_KEY is not set")
	}

	logrus.Info("config parsed")
	return cfg, nil
}
