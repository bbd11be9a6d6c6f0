package generate

import (
	"github.com/gin-gonic/gin"
	"github.com/slipframe/core/internal/middleware"
	"github.com/slipframe/core/internal/modules/carousel"
	"github.com/slipframe/core/internal/pkg/response"
)

type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	g := rg.Group("/generate", authMW)
	g.POST("", h.generate)
}

// POST /generate — create a deck from raw text
func (h *Handler) generate(c *gin.Context) {
	var dto GenerateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	deck, err := h.svc.Generate(c.Request.Context(), middleware.CurrentUserID(c), &dto)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Created(c, carousel.ToResponse(deck))
}
