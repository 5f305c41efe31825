package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/LJTian/PuntoPe/internal/collector"
	"github.com/LJTian/PuntoPe/internal/config"
	"github.com/LJTian/PuntoPe/internal/model"
	"github.com/LJTian/PuntoPe/internal/newsfeed"
	"github.com/LJTian/PuntoPe/internal/storage"
	"github.com/spf13/cobra"
)

var (
	flagCategory string
	flagQuery    string
	flagRefresh  bool
	flagBody     int
)

// 一个只取一次新闻的命令行入口：适合手动预热缓存或排查生成端问题
var rootCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch one Punto Pe news feed and print it as JSON",
	RunE:  runFetch,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the available categories",
	Run: func(cmd *cobra.Command, args []string) {
		for _, c := range model.AllCategories {
			fmt.Println(c)
		}
	},
}

func init() {
	rootCmd.Flags().StringVarP(&flagCategory, "category", "c", string(model.Portada), "news category")
	rootCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "free-text search query")
	rootCmd.Flags().BoolVar(&flagRefresh, "refresh", false, "bypass the cache")
	rootCmd.Flags().IntVar(&flagBody, "body", -1, "also generate the full body of the article at this index")

	rootCmd.AddCommand(categoriesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	kv, err := storage.NewKV(storage.Options{
		Backend:     cfg.CacheBackend,
		RedisAddr:   cfg.RedisAddr,
		PostgresDSN: cfg.PostgresDSN,
		MemorySize:  cfg.MemoryCacheSize,
	})
	if err != nil {
		return fmt.Errorf("init cache store: %w", err)
	}

	gen, err := collector.NewGenerator(ctx, collector.Options{
		Provider: cfg.GeneratorProvider,
		APIKey:   cfg.APIKey,
		Model:    cfg.GeneratorModel,
		BaseURL:  cfg.OpenAIBaseURL,
		Timeout:  cfg.GenerateTimeout,
	})
	if errors.Is(err, collector.ErrMissingCredential) {
		log.Printf("warn: API_KEY not set, output comes from cache or mock data")
		gen = nil
	} else if err != nil {
		return fmt.Errorf("init generator: %w", err)
	}

	cache := storage.NewFeedCache(kv, cfg.FeedCachePrefix(), config.Now)
	feeds := newsfeed.NewService(cache, gen, nil, config.Now)
	feed := feeds.FetchFeed(ctx, model.ParseCategory(flagCategory), flagQuery, flagRefresh)

	out := struct {
		model.Feed
		Body string `json:"body,omitempty"`
	}{Feed: feed}

	if flagBody >= 0 {
		if flagBody >= len(feed.Articles) {
			return fmt.Errorf("--body %d out of range (feed has %d articles)", flagBody, len(feed.Articles))
		}
		var previewer collector.SourcePreviewer
		if cfg.SourcePreview {
			previewer = collector.NewCollyPreviewer()
		}
		out.Body = newsfeed.NewBodyGenerator(gen, previewer).GenerateBody(ctx, feed.Articles[flagBody])
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}
