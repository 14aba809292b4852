package http

import (
	stdhttp "net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/linguameet/gateway/internal/config"
	"github.com/linguameet/gateway/internal/core"
)

// NewServer builds the gateway's HTTP server: signaling WebSocket,
// gateway-owned API endpoints, and the reverse proxy routes.
func NewServer(hub *core.Hub, cfg *config.Config, logger *zerolog.Logger) (*stdhttp.Server, error) {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(LoggerMiddleware(logger))

	if len(cfg.AllowedOrigins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"},
			AllowHeaders:     []string{"Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	api := NewAPIHandlers(cfg.AgoraAppID, logger)
	engine.GET("/health", api.Health)
	engine.GET("/api/agora/app-id", api.AgoraAppID)
	engine.GET("/ws", gin.WrapH(NewWSHandler(hub, logger)))

	proxy, err := NewProxy(cfg.Upstreams, logger)
	if err != nil {
		return nil, err
	}
	proxy.Mount(engine)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           engine,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}, nil
}
