package storage

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/LJTian/PuntoPe/internal/model"
	"github.com/google/uuid"
)

var ErrEmptyComment = errors.New("comment user name and text are required")

// CommentStore 每篇文章的评论列表，key 为 <prefix>_<articleId>，与 Feed 缓存的命名空间互不重叠
type CommentStore struct {
	kv     KV
	prefix string
	now    func() time.Time
}

// NewCommentStore prefix 形如 "puntope_comments"
func NewCommentStore(kv KV, prefix string, now func() time.Time) *CommentStore {
	if now == nil {
		now = time.Now
	}
	return &CommentStore{kv: kv, prefix: prefix, now: now}
}

func (s *CommentStore) key(articleID string) string {
	return s.prefix + "_" + articleID
}

// List 按添加顺序返回评论；内容损坏时当作没有评论
func (s *CommentStore) List(ctx context.Context, articleID string) ([]model.Comment, error) {
	raw, ok, err := s.kv.Get(ctx, s.key(articleID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return []model.Comment{}, nil
	}
	var list []model.Comment
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return []model.Comment{}, nil
	}
	return list, nil
}

// Add 追加一条评论并返回它
func (s *CommentStore) Add(ctx context.Context, articleID, userName, text string) (model.Comment, error) {
	userName = strings.TrimSpace(userName)
	text = strings.TrimSpace(text)
	if userName == "" || text == "" {
		return model.Comment{}, ErrEmptyComment
	}

	list, err := s.List(ctx, articleID)
	if err != nil {
		return model.Comment{}, err
	}

	c := model.Comment{
		ID:        uuid.NewString(),
		UserName:  userName,
		Text:      text,
		Timestamp: s.now().UnixMilli(),
	}
	list = append(list, c)

	bs, err := json.Marshal(list)
	if err != nil {
		return model.Comment{}, err
	}
	if err := s.kv.Set(ctx, s.key(articleID), string(bs)); err != nil {
		return model.Comment{}, err
	}
	return c, nil
}
