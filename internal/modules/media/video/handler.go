package video

import (
	"net/http"

	"github.com/docwell/editor-server/internal/pkg/apierr"
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
	rg.POST("/generate-video", append(append([]gin.HandlerFunc{}, mw...), h.generate)...)
	rg.GET("/videos/:id/content", h.content)
}

// POST /api/generate-video
//
// Every failure except a missing prompt is a 500 with fallback set.
func (h *Handler) generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "Invalid JSON body", Fallback: true})
		return
	}
	out, err := h.svc.Generate(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("generate-video failed", zap.Error(err))
		e := apierr.From(err)
		status := http.StatusInternalServerError
		if e.Kind == apierr.KindValidation {
			status = http.StatusBadRequest
		}
		msg := e.Message
		if e.Kind != apierr.KindValidation && e.Kind != apierr.KindConfiguration {
			msg = "Failed to generate video"
		}
		c.AbortWithStatusJSON(status, errorResponse{Error: msg, Details: e.Details, Fallback: true})
		return
	}
	response.OK(c, out)
}

// GET /api/videos/:id/content
//
// Streams the clip from OpenAI. Range requests pass through.
func (h *Handler) content(c *gin.Context) {
	resp, err := h.svc.Content(c.Request.Context(), c.Param("id"), c.GetHeader("Range"))
	if err != nil {
		if !apierr.IsKind(err, apierr.KindValidation) {
			h.logger.Warn("video content failed", zap.String("id", c.Param("id")), zap.Error(err))
		}
		response.Error(c, err)
		return
	}
	defer resp.Body.Close()

	headers := map[string]string{}
	for _, name := range []string{"Content-Range", "Accept-Ranges", "Cache-Control"} {
		if v := resp.Header.Get(name); v != "" {
			headers[name] = v
		}
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "video/mp4"
	}
	c.DataFromReader(resp.StatusCode, resp.ContentLength, contentType, resp.Body, headers)
}
