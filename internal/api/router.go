package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/LJTian/PuntoPe/internal/model"
	"github.com/LJTian/PuntoPe/internal/newsfeed"
	"github.com/LJTian/PuntoPe/internal/session"
	"github.com/LJTian/PuntoPe/internal/storage"
	"github.com/gin-gonic/gin"
)

type Server struct {
	feeds    *newsfeed.Service
	bodies   *newsfeed.BodyGenerator
	comments *storage.CommentStore
	session  *session.Session
}

func NewServer(feeds *newsfeed.Service, bodies *newsfeed.BodyGenerator, comments *storage.CommentStore, sess *session.Session) *Server {
	return &Server{
		feeds:    feeds,
		bodies:   bodies,
		comments: comments,
		session:  sess,
	}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/categories", s.listCategories)
		v1.GET("/feed", s.getFeed)

		v1.POST("/articles/body", s.articleBody)
		v1.GET("/articles/:id/comments", s.listComments)
		v1.POST("/articles/:id/comments", s.addComment)

		sess := v1.Group("/session")
		sess.GET("", s.getSession)
		sess.POST("/category", s.sessionCategory)
		sess.POST("/search", s.sessionSearch)
		sess.POST("/tag", s.sessionTag)
		sess.POST("/refresh", s.sessionRefresh)
		sess.POST("/article", s.sessionSelectArticle)
		sess.DELETE("/article", s.sessionBackToGrid)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func ok(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{
		"code":    "ok",
		"message": "success",
		"data":    data,
	})
}

func fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"code":    code,
		"message": message,
	})
}

func (s *Server) listCategories(c *gin.Context) {
	ok(c, http.StatusOK, model.AllCategories)
}

// getFeed 永远返回一个 Feed（实时、过期缓存或占位数据）
func (s *Server) getFeed(c *gin.Context) {
	category := model.ParseCategory(c.Query("category"))
	query := c.Query("q")

	refresh, err := strconv.ParseBool(c.DefaultQuery("refresh", "false"))
	if err != nil {
		refresh = false
	}

	feed := s.feeds.FetchFeed(c.Request.Context(), category, query, refresh)
	ok(c, http.StatusOK, feed)
}

func (s *Server) articleBody(c *gin.Context) {
	var a model.Article
	if err := c.ShouldBindJSON(&a); err != nil || strings.TrimSpace(a.Title) == "" {
		fail(c, http.StatusBadRequest, "bad_request", "article title is required")
		return
	}

	body := s.bodies.GenerateBody(c.Request.Context(), a)
	ok(c, http.StatusOK, gin.H{"id": a.ID, "body": body})
}

func (s *Server) listComments(c *gin.Context) {
	list, err := s.comments.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	ok(c, http.StatusOK, list)
}

type commentRequest struct {
	UserName string `json:"userName"`
	Text     string `json:"text"`
}

func (s *Server) addComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	comment, err := s.comments.Add(c.Request.Context(), c.Param("id"), req.UserName, req.Text)
	if errors.Is(err, storage.ErrEmptyComment) {
		fail(c, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	ok(c, http.StatusCreated, comment)
}

func (s *Server) getSession(c *gin.Context) {
	ok(c, http.StatusOK, s.session.Snapshot())
}

type sessionRequest struct {
	Category string `json:"category"`
	Query    string `json:"query"`
	Tag      string `json:"tag"`
}

func bindSession(c *gin.Context) (sessionRequest, bool) {
	var req sessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "bad_request", "invalid request body")
		return req, false
	}
	return req, true
}

// 加载失败时错误提示已写入会话状态，这里照常返回快照
func (s *Server) sessionCategory(c *gin.Context) {
	req, valid := bindSession(c)
	if !valid {
		return
	}
	_ = s.session.SelectCategory(c.Request.Context(), model.ParseCategory(req.Category))
	ok(c, http.StatusOK, s.session.Snapshot())
}

func (s *Server) sessionSearch(c *gin.Context) {
	req, valid := bindSession(c)
	if !valid {
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		fail(c, http.StatusBadRequest, "bad_request", "query is required")
		return
	}
	_ = s.session.Search(c.Request.Context(), req.Query)
	ok(c, http.StatusOK, s.session.Snapshot())
}

func (s *Server) sessionTag(c *gin.Context) {
	req, valid := bindSession(c)
	if !valid {
		return
	}
	if strings.TrimSpace(req.Tag) == "" {
		fail(c, http.StatusBadRequest, "bad_request", "tag is required")
		return
	}
	_ = s.session.SearchTag(c.Request.Context(), req.Tag)
	ok(c, http.StatusOK, s.session.Snapshot())
}

func (s *Server) sessionRefresh(c *gin.Context) {
	req, valid := bindSession(c)
	if !valid {
		return
	}
	category := model.ParseCategory(req.Category)

	err := s.session.RefreshCategory(c.Request.Context(), category)
	if errors.Is(err, newsfeed.ErrRefreshInProgress) {
		fail(c, http.StatusConflict, "refresh_in_progress", err.Error())
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	ok(c, http.StatusOK, s.session.Snapshot())
}

func (s *Server) sessionSelectArticle(c *gin.Context) {
	var a model.Article
	if err := c.ShouldBindJSON(&a); err != nil || a.ID == "" {
		fail(c, http.StatusBadRequest, "bad_request", "article id is required")
		return
	}
	s.session.SelectArticle(a)
	ok(c, http.StatusOK, s.session.Snapshot())
}

func (s *Server) sessionBackToGrid(c *gin.Context) {
	s.session.BackToGrid()
	ok(c, http.StatusOK, s.session.Snapshot())
}
