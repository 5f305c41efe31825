package config

import (
	"os"
	"testing"
	"time"
)

func TestGetEnvWithDefault(t *testing.T) {
	const key = "TEST_APP_PORT"

	// 环境变量未设置时，应该返回默认值
	_ = os.Unsetenv(key)
	if got := getEnv(key, "9000"); got != "9000" {
		t.Fatalf("getEnv(%q) = %q, want %q", key, got, "9000")
	}

	// 环境变量设置后，应优先返回环境变量
	t.Setenv(key, "8080")
	if got := getEnv(key, "9000"); got != "8080" {
		t.Fatalf("getEnv(%q) = %q, want %q", key, got, "8080")
	}
}

func TestTypedGetters(t *testing.T) {
	t.Setenv("TEST_SIZE", "64")
	t.Setenv("TEST_SIZE_BAD", "-3")
	t.Setenv("TEST_FLAG", "true")
	t.Setenv("TEST_FLAG_BAD", "maybe")
	t.Setenv("TEST_TIMEOUT", "45")
	t.Setenv("TEST_TIMEOUT_UNIT", "1m30s")
	t.Setenv("TEST_TIMEOUT_BAD", "soon")

	if got := getInt("TEST_SIZE", 512); got != 64 {
		t.Fatalf("getInt = %d, want 64", got)
	}
	if got := getInt("TEST_SIZE_BAD", 512); got != 512 {
		t.Fatalf("getInt with invalid value = %d, want default", got)
	}
	if !getBool("TEST_FLAG", false) || getBool("TEST_FLAG_BAD", false) {
		t.Fatalf("getBool parsed unexpectedly")
	}
	if got := getDuration("TEST_TIMEOUT", 0); got != 45*time.Second {
		t.Fatalf("getDuration plain seconds = %s", got)
	}
	if got := getDuration("TEST_TIMEOUT_UNIT", 0); got != 90*time.Second {
		t.Fatalf("getDuration with unit = %s", got)
	}
	if got := getDuration("TEST_TIMEOUT_BAD", 5*time.Second); got != 5*time.Second {
		t.Fatalf("getDuration invalid = %s, want default", got)
	}
}

func TestLoadReadsEnv(t *testing.T) {
	t.Setenv("APP_PORT", "1234")
	t.Setenv("API_KEY", "secret")
	t.Setenv("GENERATOR_PROVIDER", "openai")
	t.Setenv("CACHE_BACKEND", "memory")
	t.Setenv("CACHE_PREFIX", "pp")
	t.Setenv("SOURCE_PREVIEW", "1")

	cfg := Load()
	if cfg.AppPort != "1234" || cfg.APIKey != "secret" || cfg.GeneratorProvider != "openai" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.CacheBackend != "memory" || !cfg.SourcePreview {
		t.Fatalf("unexpected cache config: %+v", cfg)
	}
	if cfg.FeedCachePrefix() != "pp_cache" || cfg.CommentPrefix() != "pp_comments" {
		t.Fatalf("unexpected prefixes: %s %s", cfg.FeedCachePrefix(), cfg.CommentPrefix())
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "GENERATOR_PROVIDER", "GENERATOR_MODEL", "CACHE_BACKEND", "CACHE_PREFIX", "AUTO_REFRESH_SPEC", "GENERATE_TIMEOUT", "MEMORY_CACHE_SIZE"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.AppPort != "9000" || cfg.GeneratorProvider != "gemini" || cfg.GeneratorModel != "" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.CacheBackend != "redis" || cfg.FeedCachePrefix() != "puntope_cache" {
		t.Fatalf("unexpected cache defaults: %+v", cfg)
	}
	if cfg.AutoRefreshSpec != "@every 60s" || cfg.GenerateTimeout != 0 || cfg.MemoryCacheSize != 512 {
		t.Fatalf("unexpected refresh defaults: %+v", cfg)
	}
}
