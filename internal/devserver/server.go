package devserver

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/diogo/aicms/internal/models"
)

// Limits mirrored from the content form
const (
	maxTitleLength = 200
	maxTextLength  = 10000
)

type chatReq struct {
	Message string `json:"message"`
}

type contentReq struct {
	Title *string `json:"title"`
	Text  *string `json:"text"`
}

// Handler serves the chat and content endpoints
type Handler struct {
	Repo      *Repo
	Responder Responder
	Logger    *zap.Logger
}

// NewRouter wires the endpoints onto a gin engine. Paths keep their trailing slash.
func NewRouter(h *Handler) *gin.Engine {
	if h.Logger == nil {
		h.Logger = zap.NewNop()
	}
	if h.Responder == nil {
		h.Responder = EchoResponder{}
	}

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(requestLogger(h.Logger), gin.Recovery())

	r.NoRoute(func(c *gin.Context) {
		fail(c, http.StatusNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		fail(c, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.POST(models.PathChat, h.Chat)

	r.GET(models.PathContent, h.ListContent)
	r.POST(models.PathContent, h.CreateContent)
	r.PATCH(models.PathContent+":id/", h.UpdateContent)
	r.DELETE(models.PathContent+":id/", h.DeleteContent)

	return r
}

func (h *Handler) Chat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		fail(c, http.StatusBadRequest, "message required")
		return
	}

	reply, err := h.Responder.Reply(c.Request.Context(), req.Message)
	if err != nil {
		h.Logger.Error("responder failed", zap.Error(err))
		fail(c, http.StatusBadGateway, "responder failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": reply})
}

func (h *Handler) ListContent(c *gin.Context) {
	items, err := h.Repo.List(c.Request.Context())
	if err != nil {
		h.Logger.Error("list content", zap.Error(err))
		fail(c, http.StatusInternalServerError, "failed to list content")
		return
	}

	cards := make([]models.ContentCard, 0, len(items))
	for _, it := range items {
		cards = append(cards, it.Card())
	}
	c.JSON(http.StatusOK, cards)
}

func (h *Handler) CreateContent(c *gin.Context) {
	var req contentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Title == nil || strings.TrimSpace(*req.Title) == "" || req.Text == nil || strings.TrimSpace(*req.Text) == "" {
		fail(c, http.StatusBadRequest, "title and text required")
		return
	}
	if msg := checkLengths(req); msg != "" {
		fail(c, http.StatusBadRequest, msg)
		return
	}

	item := &Content{Title: *req.Title, Text: *req.Text}
	if err := h.Repo.Create(c.Request.Context(), item); err != nil {
		h.Logger.Error("create content", zap.Error(err))
		fail(c, http.StatusInternalServerError, "failed to create content")
		return
	}
	c.JSON(http.StatusCreated, item.Card())
}

func (h *Handler) UpdateContent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req contentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid json")
		return
	}
	if (req.Title != nil && strings.TrimSpace(*req.Title) == "") || (req.Text != nil && strings.TrimSpace(*req.Text) == "") {
		fail(c, http.StatusBadRequest, "title and text cannot be blank")
		return
	}
	if msg := checkLengths(req); msg != "" {
		fail(c, http.StatusBadRequest, msg)
		return
	}

	item, err := h.Repo.Update(c.Request.Context(), id, ContentPatch{Title: req.Title, Text: req.Text})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, "content not found")
			return
		}
		h.Logger.Error("update content", zap.Int64("id", id), zap.Error(err))
		fail(c, http.StatusInternalServerError, "failed to update content")
		return
	}
	c.JSON(http.StatusOK, item.Card())
}

func (h *Handler) DeleteContent(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.Repo.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, "content not found")
			return
		}
		h.Logger.Error("delete content", zap.Int64("id", id), zap.Error(err))
		fail(c, http.StatusInternalServerError, "failed to delete content")
		return
	}
	c.Status(http.StatusNoContent)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func checkLengths(req contentReq) string {
	if req.Title != nil && len([]rune(*req.Title)) > maxTitleLength {
		return "title too long"
	}
	if req.Text != nil && len([]rune(*req.Text)) > maxTextLength {
		return "text too long"
	}
	return ""
}

// fail writes an error body; the client only looks at the status
func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// requestLogger logs one line per request
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

// Serve runs the router on addr until ctx is cancelled
func Serve(ctx context.Context, addr string, router http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("dev server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
