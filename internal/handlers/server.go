// ejournal/internal/handlers/server.go

// Package handlers contains the gin handlers of the journal API. They are
// methods on Server so that the database, cache and configuration are
// injected instead of living in package-level singletons.
package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
	"gorm.io/gorm"

	"ejournal/config"
	"ejournal/internal/cache"
)

// Server carries the dependencies of every handler.
type Server struct {
	DB     *gorm.DB
	Cache  *cache.Service
	Cfg    *config.Config
	Gemini *genai.GenerativeModel // nil, если генерация отключена
	Hub    *NotificationHub
}

// NewServer wires the handler set. Gemini may be nil.
func NewServer(db *gorm.DB, store *cache.Service, cfg *config.Config, gemini *genai.GenerativeModel) *Server {
	return &Server{
		DB:     db,
		Cache:  store,
		Cfg:    cfg,
		Gemini: gemini,
		Hub:    NewNotificationHub(),
	}
}

// fail sends the standard error body. Every error response carries a
// "message" field that the UI surfaces verbatim in a toast.
func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// dbError maps a persistence error to the API taxonomy: record not found →
// 404, transient connectivity → 503, anything else → 500.
func (s *Server) dbError(c *gin.Context, err error, notFound string) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		fail(c, http.StatusNotFound, notFound)
	case isUnavailable(err):
		slog.Warn("База данных недоступна", "error", err)
		fail(c, http.StatusServiceUnavailable, "База данных временно недоступна")
	default:
		slog.Error("Ошибка базы данных", "error", err, "path", c.Request.URL.Path)
		fail(c, http.StatusInternalServerError, "Ошибка базы данных")
	}
}

func isUnavailable(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, gorm.ErrInvalidDB)
}

// pathID parses the numeric :id (or named) path parameter.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		fail(c, http.StatusBadRequest, "Некорректный идентификатор в адресе запроса")
		return 0, false
	}
	return uint(id), true
}

// queryUint parses an optional numeric query parameter; nil when absent.
func queryUint(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		fail(c, http.StatusBadRequest, "Некорректный параметр "+name)
		return nil, false
	}
	u := uint(v)
	return &u, true
}
