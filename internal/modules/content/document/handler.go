package document

import (
	"io"
	"strings"

	"github.com/docwell/editor-server/internal/middleware"
	"github.com/docwell/editor-server/internal/modules/storage/file"
	"github.com/docwell/editor-server/internal/pkg/pagination"
	"github.com/docwell/editor-server/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxMultipartMemory bounds cover uploads held in memory.
const maxMultipartMemory = 12 << 20

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

// RegisterRoutes mounts the document routes. auth must reject anonymous callers.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	g := rg.Group("/documents", auth)
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.PATCH("/:id", h.update)
	g.DELETE("/:id", h.delete)
}

// GET /api/documents
func (h *Handler) list(c *gin.Context) {
	items, pag, err := h.svc.List(c.Request.Context(), middleware.CurrentUserID(c), pagination.FromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paged(c, items, pag)
}

// POST /api/documents
func (h *Handler) create(c *gin.Context) {
	in, ok := h.bindCreate(c)
	if !ok {
		return
	}
	doc, err := h.svc.Create(c.Request.Context(), middleware.CurrentUserID(c), in)
	if err != nil {
		h.logger.Warn("create document failed", zap.Error(err))
		response.Error(c, err)
		return
	}
	response.Created(c, doc)
}

func (h *Handler) bindCreate(c *gin.Context) (CreateInput, bool) {
	var in CreateInput
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBindJSON(&in); err != nil {
			response.BadRequest(c, "Invalid JSON body")
			return in, false
		}
		return in, true
	}

	if err := c.Request.ParseMultipartForm(maxMultipartMemory); err != nil {
		response.BadRequest(c, "Invalid multipart body")
		return in, false
	}
	in.Title = c.PostForm("title")
	in.Content = c.PostForm("content")
	in.Format = c.PostForm("format")

	fh, err := c.FormFile("image")
	if err != nil {
		// no cover attached
		return in, true
	}
	f, err := fh.Open()
	if err != nil {
		h.logger.Warn("open cover upload failed", zap.Error(err))
		return in, true
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		h.logger.Warn("read cover upload failed", zap.Error(err))
		return in, true
	}
	in.Cover = &Upload{
		Filename:    fh.Filename,
		ContentType: file.DetectContentType(fh.Filename, data, fh.Header.Get("Content-Type")),
		Data:        data,
	}
	return in, true
}

// GET /api/documents/:id
func (h *Handler) get(c *gin.Context) {
	doc, err := h.svc.Get(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, doc)
}

// PATCH /api/documents/:id
func (h *Handler) update(c *gin.Context) {
	var in UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.BadRequest(c, "Invalid JSON body")
		return
	}
	doc, err := h.svc.Update(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, doc)
}

// DELETE /api/documents/:id
func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
