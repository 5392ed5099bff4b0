package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/joshua-takyi/upnext/internal/models"
	"github.com/joshua-takyi/upnext/internal/services"
)

// InsertEventHandler stores an event under its source idempotency key. A
// previously-seen key returns the stored document unchanged (seed semantics);
// re-ingestion that must refresh prices/status goes through PUT.
func InsertEventHandler(is *services.IngestService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var event models.Event
		if err := c.ShouldBindJSON(&event); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		stored, err := is.InsertEvent(c.Request.Context(), &event)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusCreated, models.SuccessResponse(stored, "Event stored successfully"))
	}
}

// ReingestEventHandler updates mutable fields of an already-ingested event,
// or inserts it when the source key is new.
func ReingestEventHandler(is *services.IngestService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var event models.Event
		if err := c.ShouldBindJSON(&event); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		stored, err := is.ReingestEvent(c.Request.Context(), &event)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(stored, "Event reingested successfully"))
	}
}

// ListEvents serves GET /events?from=&to=&venue_id=&artist_id= with RFC 3339
// bounds. Results are chronological on startsAt.
func ListEvents(qs *services.QueryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		from, err := time.Parse(time.RFC3339, c.DefaultQuery("from", time.Now().Format(time.RFC3339)))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid from parameter"))
			return
		}
		to, err := time.Parse(time.RFC3339, c.DefaultQuery("to", from.AddDate(0, 3, 0).Format(time.RFC3339)))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid to parameter"))
			return
		}
		limit, err := strconv.ParseInt(c.DefaultQuery("limit", "100"), 10, 64)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid limit parameter"))
			return
		}

		var filter models.TimeRangeFilter
		if raw := c.Query("venue_id"); raw != "" {
			id, err := parseObjectID(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid venue_id format"))
				return
			}
			filter.VenueID = &id
		}
		if raw := c.Query("artist_id"); raw != "" {
			id, err := parseObjectID(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid artist_id format"))
				return
			}
			filter.ArtistID = &id
		}

		events, err := qs.EventsBetween(c.Request.Context(), from, to, filter, limit)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.CollectionResponse(events, len(events)))
	}
}

func GetEventByID(qs *services.QueryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseObjectID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid event ID format"))
			return
		}

		event, err := qs.GetEvent(c.Request.Context(), id)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}

		c.JSON(http.StatusOK, models.SuccessResponse(event, ""))
	}
}
