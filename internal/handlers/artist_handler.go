package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/joshua-takyi/upnext/internal/models"
	"github.com/joshua-takyi/upnext/internal/services"
)

// UpsertArtistHandler is the ingestion write entry point for artists. Repeated
// posts of the same name update the stored artist in place.
func UpsertArtistHandler(is *services.IngestService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var artist models.Artist
		if err := c.ShouldBindJSON(&artist); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		stored, err := is.UpsertArtist(c.Request.Context(), &artist)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(stored, "Artist upserted successfully"))
	}
}

// SearchArtists serves GET /artists?q=; without q it lists alphabetically.
func SearchArtists(qs *services.QueryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		limit, err := strconv.ParseInt(c.DefaultQuery("limit", "100"), 10, 64)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid limit parameter"))
			return
		}

		artists, err := qs.SearchArtists(c.Request.Context(), query, limit)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.CollectionResponse(artists, len(artists)))
	}
}

func GetArtistByID(qs *services.QueryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseObjectID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid artist ID format"))
			return
		}

		artist, err := qs.GetArtist(c.Request.Context(), id)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(artist, ""))
	}
}

// GetArtistEvents serves GET /artists/:id/events. Upcoming events ascending
// by default; ?past=true flips to history, most recent first.
func GetArtistEvents(qs *services.QueryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseObjectID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid artist ID format"))
			return
		}

		past := c.Query("past") == "true"
		limit, err := strconv.ParseInt(c.DefaultQuery("limit", "200"), 10, 64)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid limit parameter"))
			return
		}

		events, err := qs.EventsForArtist(c.Request.Context(), id, past, limit)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.CollectionResponse(events, len(events)))
	}
}
