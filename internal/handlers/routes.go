package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/safebridge-api/internal/middleware"
)

// NewRouter builds the gin engine with middleware and every route mounted.
func NewRouter(h *Handler, allowedOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestLogger(h.Log),
		gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
			h.Log.Errorw("panic while handling request", "path", c.Request.URL.Path, "panic", recovered)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}),
		middleware.CORS(allowedOrigins),
	)
	RegisterRoutes(r, h)
	return r
}

func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/", h.Index)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)

		api.POST("/login", h.Login)
		api.POST("/register", h.Register)
		api.POST("/register-volunteer", h.RegisterVolunteer)

		api.POST("/submit-request", h.SubmitRequest)
		api.GET("/requests", h.ListRequests)
		api.GET("/requests/:id", h.GetRequest)
		api.PATCH("/requests/:id", h.UpdateRequestStatus)
	}
}
