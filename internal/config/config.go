package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string

	APIKey            string
	GeneratorProvider string
	GeneratorModel    string
	OpenAIBaseURL     string
	GenerateTimeout   time.Duration
	SourcePreview     bool
	AutoRefreshSpec   string

	CacheBackend    string
	CachePrefix     string
	RedisAddr       string
	PostgresDSN     string
	MemoryCacheSize int

	WebRoot string
}

// Load 先读取当前目录的 .env（不存在时忽略），再从环境变量读取配置
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warn: load .env: %v", err)
	}

	cfg := &Config{
		AppPort:           getEnv("APP_PORT", "9000"),
		APIKey:            os.Getenv("API_KEY"),
		GeneratorProvider: getEnv("GENERATOR_PROVIDER", "gemini"),
		GeneratorModel:    os.Getenv("GENERATOR_MODEL"), // 为空时由各生成端使用自己的默认模型
		OpenAIBaseURL:     os.Getenv("OPENAI_BASE_URL"),
		GenerateTimeout:   getDuration("GENERATE_TIMEOUT", 0),
		SourcePreview:     getBool("SOURCE_PREVIEW", false),
		AutoRefreshSpec:   getEnv("AUTO_REFRESH_SPEC", "@every 60s"),
		CacheBackend:      getEnv("CACHE_BACKEND", "redis"),
		CachePrefix:       getEnv("CACHE_PREFIX", "puntope"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6380"),
		PostgresDSN:       getEnv("POSTGRES_DSN", "host=localhost user=puntope password=puntope dbname=puntope port=5432 sslmode=disable TimeZone=UTC"),
		MemoryCacheSize:   getInt("MEMORY_CACHE_SIZE", 512),
		WebRoot:           os.Getenv("WEB_ROOT"),
	}

	// API Key 不打印
	log.Printf("config loaded: port=%s provider=%s model=%s cache=%s refresh=%s api_key_set=%t",
		cfg.AppPort, cfg.GeneratorProvider, cfg.GeneratorModel, cfg.CacheBackend, cfg.AutoRefreshSpec, cfg.APIKey != "")
	return cfg
}

// FeedCachePrefix 新闻缓存 key 前缀
func (c *Config) FeedCachePrefix() string {
	return c.CachePrefix + "_cache"
}

// CommentPrefix 评论 key 前缀
func (c *Config) CommentPrefix() string {
	return c.CachePrefix + "_comments"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("warn: invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func getBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("warn: invalid %s=%q, using %t", key, v, def)
		return def
	}
	return b
}

// getDuration 支持 "30s" 这类写法，纯数字按秒处理
func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 0 {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		log.Printf("warn: invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

// Now returns current time, 方便后续做可测试封装
func Now() time.Time {
	return time.Now()
}
