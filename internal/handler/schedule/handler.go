package schedule

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/booklyhq/booking-api/internal/handler"
	"github.com/booklyhq/booking-api/internal/model"
	"github.com/booklyhq/booking-api/internal/service/schedule"
	apperrors "github.com/booklyhq/booking-api/pkg/errors"
)

type Handler struct {
	service *schedule.Service
}

func NewHandler(service *schedule.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/professionals/:id/schedule", h.GetSchedule)
	r.PUT("/professionals/:id/schedule", h.ReplaceSchedule)
}

func (h *Handler) GetSchedule(c *gin.Context) {
	professionalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid professional ID"))
		return
	}

	intervals, err := h.service.ListIntervals(c.Request.Context(), professionalID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(intervals))
}

func (h *Handler) ReplaceSchedule(c *gin.Context) {
	professionalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid professional ID"))
		return
	}

	var req model.ReplaceScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	intervals, err := h.service.ReplaceIntervals(c.Request.Context(), professionalID, &req)
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			c.JSON(appErr.StatusCode(), handler.NewErrorResponse(appErr.Message))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(intervals))
}
