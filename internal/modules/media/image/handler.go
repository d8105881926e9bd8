package image

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
	rg.POST("/generate-image", append(append([]gin.HandlerFunc{}, mw...), h.generate)...)
}

// POST /api/generate-image
func (h *Handler) generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid JSON body")
		return
	}
	out, err := h.svc.Generate(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("generate-image failed", zap.Error(err))
		response.Error(c, err)
		return
	}
	h.logger.Info("image generated", zap.String("file", out.Filename), zap.Int64("seed", out.Seed))
	response.OK(c, out)
}
