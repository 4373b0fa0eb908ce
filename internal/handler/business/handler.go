package business

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/booklyhq/booking-api/internal/handler"
	"github.com/booklyhq/booking-api/internal/service/discovery"
	apperrors "github.com/booklyhq/booking-api/pkg/errors"
	"github.com/booklyhq/booking-api/pkg/geo"
)

type Handler struct {
	service *discovery.Service
}

func NewHandler(service *discovery.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/businesses", h.ListBusinesses)
	r.GET("/businesses/nearby", h.NearbyBusinesses)
	r.GET("/businesses/:id", h.GetBusiness)
	r.GET("/businesses/:id/professionals", h.ListProfessionals)
}

func (h *Handler) ListProfessionals(c *gin.Context) {
	businessID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid business ID"))
		return
	}

	professionals, err := h.service.ListProfessionals(c.Request.Context(), businessID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(professionals))
}

func (h *Handler) ListBusinesses(c *gin.Context) {
	businesses, err := h.service.ListBusinesses(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(businesses))
}

func (h *Handler) GetBusiness(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid business ID"))
		return
	}

	business, err := h.service.GetBusiness(c.Request.Context(), id)
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			c.JSON(appErr.StatusCode(), handler.NewErrorResponse(appErr.Message))
			return
		}
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(business))
}

// NearbyBusinesses ranks businesses by distance from the caller. Both
// coordinates are optional together: without them the full unranked
// list comes back.
func (h *Handler) NearbyBusinesses(c *gin.Context) {
	var userLoc *geo.Point

	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr != "" || lngStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lng, lngErr := strconv.ParseFloat(lngStr, 64)
		if latErr != nil || lngErr != nil {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid coordinates"))
			return
		}
		userLoc = &geo.Point{Latitude: lat, Longitude: lng}
	}

	radiusKm := 0.0 // 0 defers to the service's configured radius
	if raw := c.Query("radius_km"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid radius"))
			return
		}
		radiusKm = parsed
	}

	businesses, err := h.service.NearbyBusinesses(c.Request.Context(), userLoc, radiusKm)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(businesses))
}
