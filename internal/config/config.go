package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ErrMissingBackend 后端连接参数缺失
var ErrMissingBackend = errors.New("缺少后端连接配置")

// Config 应用配置
type Config struct {
	Env           string
	Port          string
	BackendURL    string // 关系型后端（PostgreSQL）连接地址
	BackendAPIKey string // 后端密钥，同时用于签名本地会话

	CatalogBaseURL  string
	CatalogTimeout  time.Duration
	CatalogCacheTTL time.Duration

	SessionTTL  time.Duration
	SessionFile string

	AuthRateLimitRPS   float64
	AuthRateLimitBurst int
}

// Load 加载配置
// BACKEND_URL 与 BACKEND_API_KEY 为必填项，缺失时返回错误
func Load() (*Config, error) {
	backendURL := os.Getenv("BACKEND_URL")
	backendKey := os.Getenv("BACKEND_API_KEY")
	if backendURL == "" || backendKey == "" {
		return nil, fmt.Errorf("%w: 请设置 BACKEND_URL 和 BACKEND_API_KEY", ErrMissingBackend)
	}

	timeoutSec := getEnvInt("CATALOG_TIMEOUT_SECONDS", 10)
	cacheMin := getEnvInt("CATALOG_CACHE_MINUTES", 5)
	ttlHours := getEnvInt("SESSION_TTL_HOURS", 24)
	rps := getEnvFloat("AUTH_RATE_LIMIT_RPS", 1)
	burst := getEnvInt("AUTH_RATE_LIMIT_BURST", 5)

	if timeoutSec <= 0 {
		timeoutSec = 10
	}
	if ttlHours <= 0 {
		ttlHours = 24
	}
	if cacheMin < 0 {
		cacheMin = 0
	}

	return &Config{
		Env:                getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "5005"),
		BackendURL:         backendURL,
		BackendAPIKey:      backendKey,
		CatalogBaseURL:     getEnv("CATALOG_BASE_URL", "https://api.imdbapi.dev"),
		CatalogTimeout:     time.Duration(timeoutSec) * time.Second,
		CatalogCacheTTL:    time.Duration(cacheMin) * time.Minute,
		SessionTTL:         time.Duration(ttlHours) * time.Hour,
		SessionFile:        getEnv("SESSION_FILE", defaultSessionFile()),
		AuthRateLimitRPS:   rps,
		AuthRateLimitBurst: burst,
	}, nil
}

// defaultSessionFile 默认会话文件位置，取不到用户配置目录时返回空（不持久化）
func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "watchbox", "session.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt 解析失败时记录日志并使用默认值
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("[Config] %s=%q 不是有效整数，使用默认值 %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("[Config] %s=%q 不是有效数字，使用默认值 %v", key, value, defaultValue)
		return defaultValue
	}
	return f
}
