package scheduler

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

// DefaultSpec 自动刷新间隔
const DefaultSpec = "@every 60s"

// Ticker 每次触发时执行一次刷新，返回是否真正执行（可能因阅读文章或搜索被跳过）
type Ticker interface {
	Tick(ctx context.Context) bool
}

// Scheduler 按 cron 表达式定期触发会话自动刷新。
// 是否跳过由 Ticker 在每次触发时自行判断，定时器本身不暂停。
type Scheduler struct {
	cron   *cron.Cron
	ticker Ticker
}

func New(spec string, ticker Ticker) (*Scheduler, error) {
	if spec == "" {
		spec = DefaultSpec
	}
	// 上一次刷新还没结束时跳过本次触发
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	s := &Scheduler{
		cron:   c,
		ticker: ticker,
	}

	_, err := c.AddFunc(spec, s.runOnce)
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop 停止后续触发；返回的 ctx 在正在执行的刷新结束后 Done
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// RunOnce 对外暴露的单次执行入口，方便手动触发刷新
func (s *Scheduler) RunOnce() bool {
	return s.ticker.Tick(context.Background())
}

func (s *Scheduler) runOnce() {
	if !s.ticker.Tick(context.Background()) {
		log.Println("auto-refresh skipped (article open or search mode)")
	}
}
