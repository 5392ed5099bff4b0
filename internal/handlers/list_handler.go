package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/joshua-takyi/upnext/internal/models"
	"github.com/joshua-takyi/upnext/internal/services"
)

func GetLists(ls *services.ListService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lists, err := ls.Lists(c.Request.Context())
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.CollectionResponse(lists, len(lists)))
	}
}

func CreateList(ls *services.ListService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Name string `json:"name" binding:"required"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}

		list, err := ls.CreateList(c.Request.Context(), body.Name)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(list, "List created successfully"))
	}
}

func GetListByID(ls *services.ListService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseObjectID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid list ID format"))
			return
		}

		list, err := ls.GetList(c.Request.Context(), id)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(list, ""))
	}
}

// GetListItems returns a list's memberships, most recently added first.
func GetListItems(ls *services.ListService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := parseObjectID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid list ID format"))
			return
		}
		limit, err := strconv.ParseInt(c.DefaultQuery("limit", "100"), 10, 64)
		if err != nil || limit <= 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid limit parameter"))
			return
		}

		items, err := ls.Items(c.Request.Context(), id, limit)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.CollectionResponse(items, len(items)))
	}
}

// AddListItem saves an event into a list. A duplicate pair answers 409.
func AddListItem(ls *services.ListService) gin.HandlerFunc {
	return func(c *gin.Context) {
		listID, err := parseObjectID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid list ID format"))
			return
		}

		var body struct {
			EventID string  `json:"eventId" binding:"required"`
			Note    *string `json:"note"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse(err.Error()))
			return
		}
		eventID, err := parseObjectID(body.EventID)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid event ID format"))
			return
		}

		item, err := ls.AddItem(c.Request.Context(), listID, eventID, body.Note)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusCreated, models.SuccessResponse(item, "Event added to list"))
	}
}

func MarkItemAttended(ls *services.ListService) gin.HandlerFunc {
	return func(c *gin.Context) {
		listID, err := parseObjectID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid list ID format"))
			return
		}
		eventID, err := parseObjectID(c.Param("event_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid event ID format"))
			return
		}

		item, err := ls.MarkAttended(c.Request.Context(), listID, eventID)
		if err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(item, "Event marked attended"))
	}
}

func RemoveListItem(ls *services.ListService) gin.HandlerFunc {
	return func(c *gin.Context) {
		listID, err := parseObjectID(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid list ID format"))
			return
		}
		eventID, err := parseObjectID(c.Param("event_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid event ID format"))
			return
		}

		if err := ls.RemoveItem(c.Request.Context(), listID, eventID); err != nil {
			c.JSON(statusForError(err), models.ErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(nil, "Event removed from list"))
	}
}
