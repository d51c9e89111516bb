package availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tozzo28/bulking/internal/api"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// List godoc
// @Summary      List class availability
// @Description  Lists bookable occurrences in a window with seat counts. Filters are AND-combined.
// @Tags         classes
// @Security     BearerAuth
// @Produce      json
// @Param        from        query     string  false  "Window start date (YYYY-MM-DD, default today)"
// @Param        to          query     string  false  "Window end date (YYYY-MM-DD, default one week out)"
// @Param        q           query     string  false  "Text match against name, description or instructor"
// @Param        day         query     string  false  "Day bucket: today, tomorrow or weekend"
// @Param        category    query     string  false  "Class category"
// @Param        difficulty  query     string  false  "Difficulty level"
// @Success      200  {array}   ClassAvailability
// @Failure      400  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /classes [get]
func (h *Handler) List(c *gin.Context) {
	now := time.Now().UTC()
	from := now
	to := now.AddDate(0, 0, 7)

	if fromStr := c.Query("from"); fromStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", fromStr, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid from date, use YYYY-MM-DD"})
			return
		}
		from = parsed
	}
	if toStr := c.Query("to"); toStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", toStr, time.UTC)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid to date, use YYYY-MM-DD"})
			return
		}
		to = parsed
	}

	filter := Filter{
		Text:       c.Query("q"),
		Day:        c.Query("day"),
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
		From:       from,
		To:         to,
	}

	classes, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		if errors.Is(err, ErrInvalidFilter) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid filter"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to list availability"})
		return
	}

	c.JSON(http.StatusOK, classes)
}
