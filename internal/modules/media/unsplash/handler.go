package unsplash

import (
	"github.com/docwell/editor-server/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	svc    *Service
	logger *zap.Logger
}

func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, mw ...gin.HandlerFunc) {
	rg.POST("/unsplash-search", append(append([]gin.HandlerFunc{}, mw...), h.search)...)
}

// POST /api/unsplash-search
func (h *Handler) search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid JSON body")
		return
	}
	out, err := h.svc.Search(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("unsplash-search failed", zap.String("query", req.Query), zap.Error(err))
		response.Error(c, err)
		return
	}
	response.OK(c, out)
}
