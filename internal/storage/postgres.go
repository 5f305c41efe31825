package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// KVEntry kv_entries 表的一行；值都是 JSON 文本（缓存条目或评论列表）
type KVEntry struct {
	Key       string         `gorm:"column:cache_key;primaryKey;size:512" json:"key"`
	Value     datatypes.JSON `gorm:"type:jsonb" json:"value"`
	UpdatedAt time.Time      `gorm:"index" json:"updatedAt"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

// PostgresKV 基于 PostgreSQL 的 KV，适合没有 Redis 的部署
type PostgresKV struct {
	DB *gorm.DB
}

func NewPostgresKV(dsn string) (*PostgresKV, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&KVEntry{}); err != nil {
		return nil, err
	}

	return &PostgresKV{DB: db}, nil
}

func (p *PostgresKV) Get(ctx context.Context, key string) (string, bool, error) {
	var e KVEntry
	// 未命中是常态，不打印 record not found 日志
	silent := p.DB.Session(&gorm.Session{Logger: p.DB.Logger.LogMode(logger.Silent)})
	err := silent.WithContext(ctx).Where("cache_key = ?", key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(e.Value), true, nil
}

// Set 以 key 为幂等键做 upsert。jsonb 列只接受合法 JSON，非法内容直接报错（调用方按存储错误处理）
func (p *PostgresKV) Set(ctx context.Context, key, value string) error {
	e := KVEntry{
		Key:       key,
		Value:     datatypes.JSON(strings.ToValidUTF8(value, "\uFFFD")),
		UpdatedAt: time.Now(),
	}
	return p.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cache_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}

func (p *PostgresKV) Delete(ctx context.Context, key string) error {
	return p.DB.WithContext(ctx).Where("cache_key = ?", key).Delete(&KVEntry{}).Error
}

func (p *PostgresKV) Close() error {
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
