package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// APIHandlers provides the gateway's own REST endpoints.
type APIHandlers struct {
	agoraAppID string
	log        *zerolog.Logger
}

// NewAPIHandlers creates a new API handlers instance.
func NewAPIHandlers(agoraAppID string, logger *zerolog.Logger) *APIHandlers {
	return &APIHandlers{agoraAppID: agoraAppID, log: logger}
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// AgoraAppIDResponse carries the Agora application id. The id is safe
// to hand to the frontend; tokens are minted elsewhere.
type AgoraAppIDResponse struct {
	AppID string `json:"appId"`
}

// AgoraAppID serves the configured Agora application id.
// GET /api/agora/app-id
func (h *APIHandlers) AgoraAppID(c *gin.Context) {
	if h.agoraAppID == "" {
		h.log.Warn().Msg("agora app id requested but not configured")
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "agora app id not configured"})
		return
	}
	c.JSON(http.StatusOK, AgoraAppIDResponse{AppID: h.agoraAppID})
}

// Health reports liveness.
// GET /health
func (h *APIHandlers) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}
