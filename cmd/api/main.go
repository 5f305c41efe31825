package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/LJTian/PuntoPe/internal/api"
	"github.com/LJTian/PuntoPe/internal/collector"
	"github.com/LJTian/PuntoPe/internal/config"
	"github.com/LJTian/PuntoPe/internal/newsfeed"
	"github.com/LJTian/PuntoPe/internal/scheduler"
	"github.com/LJTian/PuntoPe/internal/session"
	"github.com/LJTian/PuntoPe/internal/storage"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	kv, err := storage.NewKV(storage.Options{
		Backend:     cfg.CacheBackend,
		RedisAddr:   cfg.RedisAddr,
		PostgresDSN: cfg.PostgresDSN,
		MemorySize:  cfg.MemoryCacheSize,
	})
	if err != nil {
		log.Fatalf("init cache store failed: %v", err)
	}

	// 没有 API Key 时照常启动，取数退回缓存与占位数据
	gen, err := collector.NewGenerator(ctx, collector.Options{
		Provider: cfg.GeneratorProvider,
		APIKey:   cfg.APIKey,
		Model:    cfg.GeneratorModel,
		BaseURL:  cfg.OpenAIBaseURL,
		Timeout:  cfg.GenerateTimeout,
	})
	if errors.Is(err, collector.ErrMissingCredential) {
		log.Printf("warn: API_KEY not set, serving cached or mock news only")
		gen = nil
	} else if err != nil {
		log.Fatalf("init generator failed: %v", err)
	}

	var previewer collector.SourcePreviewer
	if cfg.SourcePreview {
		previewer = collector.NewCollyPreviewer()
	}

	cache := storage.NewFeedCache(kv, cfg.FeedCachePrefix(), config.Now)
	feeds := newsfeed.NewService(cache, gen, collector.NewMockSynthesizer(config.Now), config.Now)
	bodies := newsfeed.NewBodyGenerator(gen, previewer)
	comments := storage.NewCommentStore(kv, cfg.CommentPrefix(), config.Now)

	// 会话启动：先加载首页，再开启自动刷新
	sess := session.New(feeds)
	go func() {
		if err := sess.Load(ctx, sess.Snapshot().Category, "", false); err != nil {
			log.Printf("warn: initial load: %v", err)
		}
	}()

	s, err := scheduler.New(cfg.AutoRefreshSpec, sess)
	if err != nil {
		log.Fatalf("init scheduler failed: %v", err)
	}
	s.Start()

	// API
	r := gin.Default()
	apiServer := api.NewServer(feeds, bodies, comments, sess)
	apiServer.RegisterRoutes(r)

	// 若配置了前端目录，则托管 SPA 静态文件并做 fallback
	if cfg.WebRoot != "" {
		assetsDir := filepath.Join(cfg.WebRoot, "assets")
		indexFile := filepath.Join(cfg.WebRoot, "index.html")
		r.Static("/assets", assetsDir)
		r.NoRoute(func(c *gin.Context) {
			if c.Request.Method != http.MethodGet {
				c.Status(http.StatusNotFound)
				return
			}
			// SPA：未匹配 API 的 GET 均返回 index.html
			c.File(indexFile)
		})
	}

	addr := ":" + cfg.AppPort
	srv := &http.Server{Addr: addr, Handler: r}
	go func() {
		log.Printf("starting api server at %s ...", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server exit: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// 会话结束：停止自动刷新，等待正在执行的刷新完成
	log.Println("shutting down...")
	<-s.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("warn: server shutdown: %v", err)
	}
	if closer, ok := kv.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Printf("warn: close cache store: %v", err)
		}
	}
}
