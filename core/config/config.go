package config

import (
	"fmt"

	"gradinvite/core/constants"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Mail     MailConfig
	Storage  StorageConfig
}

type AppConfig struct {
	Env     string
	BaseURL string // public origin used to build invite links
	Worker  bool   // also run the background task worker in this process
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

type SessionConfig struct {
	Secret   string
	TTLHours int
}

type MailConfig struct {
	Transport          string // "smtp" or "http"
	Host               string
	Port               int
	Username           string
	Password           string
	FromName           string
	FromAddress        string
	WebhookURL         string
	SendTimeoutSeconds int
}

type StorageConfig struct {
	Endpoint      string
	Region        string
	Bucket        string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

var instance *Config

// Load reads configuration from environment (with .env support) into the
// process-wide instance. Must be called once before Get.
func Load() error {
	// .env is optional, env vars win
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_BASE_URL", "http://localhost:7070")
	v.SetDefault("APP_WORKER", false)

	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 7070)

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "gradinvite")
	v.SetDefault("DB_SSLMODE", constants.DatabaseSSLMode)
	v.SetDefault("DB_MAX_OPEN_CONNS", constants.DatabaseMaxOpenConns)
	v.SetDefault("DB_MAX_IDLE_CONNS", constants.DatabaseMaxIdleConns)
	v.SetDefault("DB_CONN_MAX_LIFETIME", constants.DatabaseConnMaxLifetime)

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("SESSION_TTL_HOURS", constants.SessionTTLHours)

	v.SetDefault("MAIL_TRANSPORT", "smtp")
	v.SetDefault("MAIL_HOST", "localhost")
	v.SetDefault("MAIL_PORT", 587)
	v.SetDefault("MAIL_USERNAME", "")
	v.SetDefault("MAIL_PASSWORD", "")
	v.SetDefault("MAIL_FROM_NAME", "Graduation Committee")
	v.SetDefault("MAIL_FROM_ADDRESS", "")
	v.SetDefault("MAIL_WEBHOOK_URL", "")
	v.SetDefault("MAIL_SEND_TIMEOUT", 10)

	v.SetDefault("STORAGE_ENDPOINT", "")
	v.SetDefault("STORAGE_REGION", "us-east-1")
	v.SetDefault("STORAGE_BUCKET", "")
	v.SetDefault("STORAGE_ACCESS_KEY", "")
	v.SetDefault("STORAGE_SECRET_KEY", "")
	v.SetDefault("STORAGE_PUBLIC_BASE_URL", "")

	cfg := &Config{
		App: AppConfig{
			Env:     v.GetString("APP_ENV"),
			BaseURL: v.GetString("APP_BASE_URL"),
			Worker:  v.GetBool("APP_WORKER"),
		},
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetInt("DB_CONN_MAX_LIFETIME"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Session: SessionConfig{
			Secret:   v.GetString("SESSION_SECRET"),
			TTLHours: v.GetInt("SESSION_TTL_HOURS"),
		},
		Mail: MailConfig{
			Transport:          v.GetString("MAIL_TRANSPORT"),
			Host:               v.GetString("MAIL_HOST"),
			Port:               v.GetInt("MAIL_PORT"),
			Username:           v.GetString("MAIL_USERNAME"),
			Password:           v.GetString("MAIL_PASSWORD"),
			FromName:           v.GetString("MAIL_FROM_NAME"),
			FromAddress:        v.GetString("MAIL_FROM_ADDRESS"),
			WebhookURL:         v.GetString("MAIL_WEBHOOK_URL"),
			SendTimeoutSeconds: v.GetInt("MAIL_SEND_TIMEOUT"),
		},
		Storage: StorageConfig{
			Endpoint:      v.GetString("STORAGE_ENDPOINT"),
			Region:        v.GetString("STORAGE_REGION"),
			Bucket:        v.GetString("STORAGE_BUCKET"),
			AccessKey:     v.GetString("STORAGE_ACCESS_KEY"),
			SecretKey:     v.GetString("STORAGE_SECRET_KEY"),
			PublicBaseURL: v.GetString("STORAGE_PUBLIC_BASE_URL"),
		},
	}

	if cfg.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}

	instance = cfg
	return nil
}

func Get() *Config {
	return instance
}

func GetSafe() (*Config, bool) {
	if instance == nil {
		return nil, false
	}
	return instance, true
}
