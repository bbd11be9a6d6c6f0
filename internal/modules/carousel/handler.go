package carousel

import (
	"bytes"
	"errors"
	"image/png"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/slipframe/core/internal/middleware"
	"github.com/slipframe/core/internal/models"
	"github.com/slipframe/core/internal/pkg/pagination"
	"github.com/slipframe/core/internal/pkg/response"
	"github.com/slipframe/core/internal/render"
)

type Handler struct {
	svc   *Service
	fonts *render.FontCache
}

func NewHandler(svc *Service, fonts *render.FontCache) *Handler {
	return &Handler{svc: svc, fonts: fonts}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	// Reads stay anonymous-friendly so sample decks render without a login.
	ro := rg.Group("/carousels", middleware.OptionalAuth())
	ro.GET("/:id", h.get)
	ro.GET("/:id/preview/:pos", h.preview)

	g := rg.Group("/carousels", authMW)

	g.GET("", h.list)
	g.POST("", h.create)
	g.DELETE("/:id", h.delete)

	g.POST("/:id/slides", h.addSlide)
	g.DELETE("/:id/slides/:pos", h.deleteSlide)
	g.POST("/:id/slides/:pos/duplicate", h.duplicateSlide)
	g.PATCH("/:id/slides/:pos", h.updateSlide)
	g.POST("/:id/slides/reorder", h.reorder)

	g.PUT("/:id/template", h.setTemplate)
	g.PATCH("/:id/style", h.setStyle)
	g.PUT("/:id/select", h.selectSlide)
}

// GET /carousels
func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c)
	items, pag, err := h.svc.List(middleware.CurrentUserID(c), q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	out := make([]Response, len(items))
	for i := range items {
		out[i] = ToResponse(&items[i])
	}
	response.Paged(c, out, pag)
}

// POST /carousels
func (h *Handler) create(c *gin.Context) {
	var dto CreateCarouselDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	deck, err := h.svc.Create(middleware.CurrentUserID(c), &dto)
	if err != nil {
		respondMutationError(c, err)
		return
	}
	response.Created(c, ToResponse(deck))
}

// GET /carousels/:id
func (h *Handler) get(c *gin.Context) {
	deck, err := h.svc.GetByID(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondMutationError(c, err)
		return
	}
	if deck == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, ToResponse(deck))
}

// DELETE /carousels/:id
func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		respondMutationError(c, err)
		return
	}
	response.NoContent(c)
}

// POST /carousels/:id/slides
func (h *Handler) addSlide(c *gin.Context) {
	deck, err := h.svc.AddSlide(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	h.respondMutation(c, deck, err)
}

// DELETE /carousels/:id/slides/:pos
func (h *Handler) deleteSlide(c *gin.Context) {
	pos, ok := paramPos(c)
	if !ok {
		return
	}
	deck, err := h.svc.DeleteSlide(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), pos)
	h.respondMutation(c, deck, err)
}

// POST /carousels/:id/slides/:pos/duplicate
func (h *Handler) duplicateSlide(c *gin.Context) {
	pos, ok := paramPos(c)
	if !ok {
		return
	}
	deck, err := h.svc.DuplicateSlide(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), pos)
	h.respondMutation(c, deck, err)
}

// PATCH /carousels/:id/slides/:pos
func (h *Handler) updateSlide(c *gin.Context) {
	pos, ok := paramPos(c)
	if !ok {
		return
	}
	var dto UpdateSlideDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	deck, err := h.svc.UpdateSlide(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), pos, &dto)
	h.respondMutation(c, deck, err)
}

// POST /carousels/:id/slides/reorder
func (h *Handler) reorder(c *gin.Context) {
	var dto ReorderDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	deck, err := h.svc.ReorderSlide(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), &dto)
	h.respondMutation(c, deck, err)
}

// PUT /carousels/:id/template
func (h *Handler) setTemplate(c *gin.Context) {
	var dto TemplateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	deck, err := h.svc.SetTemplate(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), &dto)
	h.respondMutation(c, deck, err)
}

// PATCH /carousels/:id/style
func (h *Handler) setStyle(c *gin.Context) {
	var dto StyleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	deck, err := h.svc.SetStyle(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), &dto)
	h.respondMutation(c, deck, err)
}

// PUT /carousels/:id/select
func (h *Handler) selectSlide(c *gin.Context) {
	var dto SelectDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	deck, err := h.svc.Select(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), &dto)
	h.respondMutation(c, deck, err)
}

// GET /carousels/:id/preview/:pos — interactive 1x render of a single slide
func (h *Handler) preview(c *gin.Context) {
	pos, ok := paramPos(c)
	if !ok {
		return
	}
	deck, err := h.svc.GetByID(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondMutationError(c, err)
		return
	}
	if deck == nil {
		response.NotFound(c)
		return
	}
	if pos < 0 || pos >= len(deck.Slides) {
		response.BadRequest(c, models.ErrSlideOutOfRange.Error())
		return
	}

	frame := render.BuildFrame(render.ParamsFor(deck, pos, true), h.fonts)
	img := render.Paint(frame, 1, h.fonts)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		response.InternalError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func (h *Handler) respondMutation(c *gin.Context, deck *models.CarouselModel, err error) {
	if err != nil {
		respondMutationError(c, err)
		return
	}
	if deck == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, ToResponse(deck))
}

func respondMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrMinimumSlides):
		response.UnprocessableEntity(c, err.Error())
	case errors.Is(err, models.ErrSlideOutOfRange), errors.Is(err, models.ErrUnknownVariant):
		response.BadRequest(c, err.Error())
	case errors.Is(err, models.ErrReadOnlyCarousel), errors.Is(err, models.ErrNotOwner):
		response.Forbidden(c)
	default:
		response.InternalError(c, err)
	}
}

func paramPos(c *gin.Context) (int, bool) {
	pos, err := strconv.Atoi(c.Param("pos"))
	if err != nil {
		response.BadRequest(c, "invalid slide position")
		return 0, false
	}
	return pos, true
}
