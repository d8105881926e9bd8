package ai

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
	with := func(fn gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, mw...), fn)
	}
	rg.POST("/ai-writer", with(h.write)...)
	rg.POST("/translate", with(h.translate)...)
}

// POST /api/ai-writer
func (h *Handler) write(c *gin.Context) {
	var req WriterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid JSON body")
		return
	}
	text, err := h.svc.Write(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("ai-writer failed", zap.String("action", req.Action), zap.Error(err))
		response.Error(c, err)
		return
	}
	response.OK(c, writerResponse{Text: text})
}

// POST /api/translate
func (h *Handler) translate(c *gin.Context) {
	var req TranslateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid JSON body")
		return
	}
	out, err := h.svc.Translate(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("translate failed", zap.String("target", req.TargetLanguage), zap.Error(err))
		response.Error(c, err)
		return
	}
	response.OK(c, out)
}
