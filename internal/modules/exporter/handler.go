package exporter

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/slipframe/core/internal/middleware"
	"github.com/slipframe/core/internal/models"
	"github.com/slipframe/core/internal/modules/carousel"
	"github.com/slipframe/core/internal/pkg/jobtrack"
	"github.com/slipframe/core/internal/pkg/response"
)

type Handler struct {
	decks   *carousel.Service
	orch    *Orchestrator
	tracker *jobtrack.Tracker
}

func NewHandler(decks *carousel.Service, orch *Orchestrator, tracker *jobtrack.Tracker) *Handler {
	return &Handler{decks: decks, orch: orch, tracker: tracker}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/carousels", authMW)
	g.POST("/:id/export", h.exportDeck)
	g.GET("/:id/export/:pos", h.exportSlide)

	rg.GET("/export/jobs/:jobID", authMW, h.jobStatus)
}

// POST /carousels/:id/export — full deck export, zip download
func (h *Handler) exportDeck(c *gin.Context) {
	deckID := c.Param("id")
	// Pending debounced edits must land before the snapshot.
	h.decks.Saver().Flush(deckID)

	deck, err := h.decks.GetByID(c.Request.Context(), middleware.CurrentUserID(c), deckID)
	if err != nil {
		if errors.Is(err, models.ErrNotOwner) {
			response.Forbidden(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	if deck == nil {
		response.NotFound(c)
		return
	}

	artifact, job, err := h.orch.ExportDeck(c.Request.Context(), deck)
	if err != nil {
		switch {
		case errors.Is(err, jobtrack.ErrExportInFlight):
			response.Conflict(c, err.Error())
		case errors.Is(err, ErrAllSlidesFailed):
			response.UnprocessableEntity(c, err.Error())
		default:
			response.InternalError(c, err)
		}
		return
	}

	c.Header("X-Export-Job", job.ID)
	c.Header("X-Export-Failed-Slides", strconv.Itoa(artifact.FailedCount))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, artifact.Filename))
	c.Data(http.StatusOK, "application/zip", artifact.Archive)
}

// GET /carousels/:id/export/:pos — single slide, png download
func (h *Handler) exportSlide(c *gin.Context) {
	pos, err := strconv.Atoi(c.Param("pos"))
	if err != nil {
		response.BadRequest(c, "invalid slide position")
		return
	}

	deckID := c.Param("id")
	h.decks.Saver().Flush(deckID)

	deck, err := h.decks.GetByID(c.Request.Context(), middleware.CurrentUserID(c), deckID)
	if err != nil {
		if errors.Is(err, models.ErrNotOwner) {
			response.Forbidden(c)
			return
		}
		response.InternalError(c, err)
		return
	}
	if deck == nil {
		response.NotFound(c)
		return
	}

	filename, png, err := h.orch.ExportSingleSlide(c.Request.Context(), deck, pos)
	if err != nil {
		if errors.Is(err, models.ErrSlideOutOfRange) {
			response.BadRequest(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "image/png", png)
}

// GET /export/jobs/:jobID
func (h *Handler) jobStatus(c *gin.Context) {
	job, err := h.tracker.Get(c.Request.Context(), c.Param("jobID"))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if job == nil {
		response.NotFound(c)
		return
	}
	response.OK(c, job)
}
