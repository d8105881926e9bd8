package diagnostics

import (
	"github.com/gin-gonic/gin"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/test-openai", func(c *gin.Context) {
		report, code := h.svc.TestOpenAI(c.Request.Context())
		c.JSON(code, report)
	})
	rg.GET("/test-supabase", func(c *gin.Context) {
		report, code := h.svc.TestSupabase(c.Request.Context())
		c.JSON(code, report)
	})
	rg.GET("/health", func(c *gin.Context) {
		report, code := h.svc.Health(c.Request.Context())
		c.JSON(code, report)
	})
}
