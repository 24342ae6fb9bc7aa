package config

import (
	"errors"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv        string
	Port          string
	DBUser        string
	DBPassword    string
	DBHost        string
	DBPort        string
	DBName        string
	JWTSecret     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	FeeRuleTTL    time.Duration
	AdminFee      float64 // biaya administrasi default per kunjungan
}

var (
	cfg  *Config
	once sync.Once
)

// LoadConfig membaca konfigurasi sekali dari environment (dan .env bila ada).
func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Warn().Msg(".env file not found, relying on environment variables")
		}
		cfg = fromEnv()
	})
	return cfg
}

func fromEnv() *Config {
	return &Config{
		AppEnv:        getEnv("APP_ENV", "development"),
		Port:          getEnv("PORT", "8080"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBHost:        getEnv("DB_HOST", "127.0.0.1"),
		DBPort:        getEnv("DB_PORT", "3306"),
		DBName:        os.Getenv("DB_NAME"),
		JWTSecret:     os.Getenv("JWT_SECRET_KEY"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		FeeRuleTTL:    time.Duration(getEnvInt("FEE_RULE_CACHE_TTL", 300)) * time.Second,
		AdminFee:      getEnvFloat("ADMIN_FEE", 0),
	}
}

func (c *Config) IsDev() bool {
	return c.AppEnv == "development"
}

// Validate menolak konfigurasi yang tidak bisa dipakai untuk menjalankan server.
func (c *Config) Validate() error {
	if c.DBName == "" {
		return errors.New("DB_NAME is required")
	}
	if c.JWTSecret == "" && !c.IsDev() {
		return errors.New("JWT_SECRET_KEY is required outside development")
	}
	if c.AdminFee < 0 {
		return errors.New("ADMIN_FEE cannot be negative")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return def
}
