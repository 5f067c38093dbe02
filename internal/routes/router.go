// ejournal/internal/routes/router.go

package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ejournal/internal/handlers"
	"ejournal/internal/metrics"
	"ejournal/internal/middleware"
)

// Setup инициализирует все маршруты приложения.
func Setup(r *gin.Engine, s *handlers.Server) {
	r.Use(middleware.RequestLog(), middleware.Recovery())

	// --- Публичные маршруты ---
	r.POST("/login", s.Login)
	r.POST("/register", s.Register)
	r.GET("/logout", s.Logout)

	r.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := s.DB.DB()
		if err == nil {
			t0 := time.Now()
			err = sqlDB.PingContext(c.Request.Context())
			if err == nil {
				metrics.ObserveDBPing(time.Since(t0))
			}
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": "db not ok: " + err.Error()})
			return
		}
		c.String(http.StatusOK, "ok")
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// --- Защищенная группа маршрутов ---
	// Все маршруты в этой группе требуют валидный сессионный токен.
	authRequired := r.Group("/")
	authRequired.Use(middleware.Auth(s.DB, s.Cache, s.Cfg.JWTKey))
	registerAPIRoutes(authRequired, s)
}
