package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/harentsoaR/safebridge-api/internal/apperrors"
	"github.com/harentsoaR/safebridge-api/internal/services"
	"github.com/harentsoaR/safebridge-api/internal/storage"
)

type Handler struct {
	Requests *services.RequestService
	Identity *services.IdentityService
	Store    storage.Store
	Log      *zap.SugaredLogger
}

func NewHandler(requests *services.RequestService, identity *services.IdentityService, store storage.Store, log *zap.SugaredLogger) *Handler {
	return &Handler{
		Requests: requests,
		Identity: identity,
		Store:    store,
		Log:      log,
	}
}

// Index is the landing route.
func (h *Handler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "SafeBridge API is running"})
}

// Health reports liveness plus storage reachability.
func (h *Handler) Health(c *gin.Context) {
	now := time.Now().Format(time.RFC3339Nano)
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		h.Log.Errorw("health check: storage unreachable", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "timestamp": now, "error": "storage unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": now})
}

// respondError writes err as {"error": ...} with its mapped status code.
// Server-side failures are logged with their cause; the client only sees a
// generic message.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.Log.Errorw("request failed", "path", c.Request.URL.Path, "error", err)
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"error": apperrors.PublicMessage(err)})
}

func (h *Handler) badBody(c *gin.Context, err error) {
	h.Log.Debugw("invalid request body", "path", c.Request.URL.Path, "error", err)
	h.respondError(c, apperrors.Validation("Invalid request body"))
}
