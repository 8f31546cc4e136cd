// Package httpapi is the HTTP collaborator: a Gin router exposing the
// store's operation surface bit-exact to the wire contract, built on
// the teacher's own middleware stack (zap logging, CORS dev-gate,
// security headers, strict JSON binding) adapted to this domain's
// auth and error taxonomy.
package httpapi

import (
	"net/http"
	"time"

	"github.com/alexdb/alexdb/internal/env"
	"github.com/alexdb/alexdb/internal/httpapi/middleware"
	"github.com/alexdb/alexdb/internal/store"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

// NewRouter builds the configured Gin engine. Intended to be handed
// directly to an *http.Server as its Handler.
func NewRouter(s *store.Store, log *zap.Logger) *gin.Engine {
	binding.EnableDecoderDisallowUnknownFields = true

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	_ = r.SetTrustedProxies(nil)

	r.Use(gin.Recovery()) // Recovery first (outermost)

	if env.IsDev() {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Content-Type", "X-Auth-Token"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.Use(secure.New(secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	}))

	r.Use(middleware.ZapLogger(log))

	r.GET("/healthz", handleHealthz())
	r.GET("/readyz", handleReadyz(s))

	auth := middleware.Authentication(s.APIKeys, s.Config().EnableSecurityAPIKeys)

	r.GET("/stats", auth, handleStats(s))

	values := r.Group("/values", auth)
	values.GET("", handleListValues(s))
	values.POST("", handleCreateValue(s))
	values.GET("/:key", handleReadValue(s))
	values.PUT("/:key", handleUpdateValue(s))
	values.DELETE("/:key", handleDeleteValue(s))
	values.PUT("/:key/append", handleAppend(s))
	values.PUT("/:key/prepend", handlePrepend(s))
	values.PUT("/:key/pop-back", handlePopBack(s))
	values.PUT("/:key/pop-front", handlePopFront(s))
	values.PUT("/:key/increment", handleIncrement(s))
	values.PUT("/:key/decrement", handleDecrement(s))

	return r
}

func handleHealthz() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func handleReadyz(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ready := s.Config().DataDir == nil || s.LastSaveOK()
		if !ready {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
