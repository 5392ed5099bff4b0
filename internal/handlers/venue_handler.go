package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/joshua-takyi/upnext/internal/models"
	"github.com/joshua-takyi/upnext/internal/services"
)

// InsertVenueHandler creates a venue if one with the same name doesn't exist.
// A matching venue is returned unchanged.
func InsertVenueHandler(is *services.IngestService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var venue models.Venue
		if err := c.ShouldBindJSON(&venue); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		stored, err := is.InsertVenue(c.Request.Context(), &venue)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(stored, "Venue stored successfully"))
	}
}

// VenuesNear serves GET /venues/near?lng=&lat=&radius= where radius is meters.
func VenuesNear(qs *services.QueryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lng, err := strconv.ParseFloat(c.Query("lng"), 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid lng parameter"))
			return
		}
		lat, err := strconv.ParseFloat(c.Query("lat"), 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid lat parameter"))
			return
		}
		radius, err := strconv.ParseFloat(c.DefaultQuery("radius", "50000"), 64)
		if err != nil || radius <= 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid radius parameter"))
			return
		}
		limit, err := strconv.ParseInt(c.DefaultQuery("limit", "100"), 10, 64)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid limit parameter"))
			return
		}

		venues, err := qs.VenuesNear(c.Request.Context(), lng, lat, radius, limit)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.CollectionResponse(venues, len(venues)))
	}
}

func GetVenueByID(qs *services.QueryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseObjectID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid venue ID format"))
			return
		}

		venue, err := qs.GetVenue(c.Request.Context(), id)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(venue, ""))
	}
}
