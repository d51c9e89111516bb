package schedule

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tozzo28/bulking/internal/api"
	"github.com/tozzo28/bulking/internal/class"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type materializeRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

// Materialize godoc
// @Summary      Pre-materialize occurrences
// @Description  Materializes all occurrences of a template in a date window. Idempotent. Admin only.
// @Tags         classes
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        templateID  path      int                 true  "Template ID"
// @Param        window      body      materializeRequest  true  "Date window (YYYY-MM-DD)"
// @Success      200         {object}  gin.H
// @Failure      400         {object}  api.ErrorResponse
// @Failure      404         {object}  api.ErrorResponse
// @Failure      500         {object}  api.ErrorResponse
// @Router       /admin/classes/{templateID}/materialize [post]
func (h *Handler) Materialize(c *gin.Context) {
	templateID, err := strconv.Atoi(c.Param("templateID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid template ID"})
		return
	}

	var req materializeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "from and to dates are required"})
		return
	}

	from, err := time.ParseInLocation("2006-01-02", req.From, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid from date, use YYYY-MM-DD"})
		return
	}
	to, err := time.ParseInLocation("2006-01-02", req.To, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid to date, use YYYY-MM-DD"})
		return
	}

	count, err := h.service.MaterializeWindow(c.Request.Context(), templateID, from, to)
	if err != nil {
		if errors.Is(err, class.ErrTemplateNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Class template not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to materialize occurrences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"template_id": templateID, "occurrences": count})
}

// ListOccurrences godoc
// @Summary      List materialized occurrences
// @Description  Returns occurrences starting in a date window, ascending by start time. Admin only.
// @Tags         classes
// @Security     BearerAuth
// @Produce      json
// @Param        from  query     string  false  "Window start (YYYY-MM-DD, default today)"
// @Param        to    query     string  false  "Window end (YYYY-MM-DD, default from+7d)"
// @Success      200   {array}   Occurrence
// @Failure      400   {object}  api.ErrorResponse
// @Failure      500   {object}  api.ErrorResponse
// @Router       /admin/occurrences [get]
func (h *Handler) ListOccurrences(c *gin.Context) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7)

	var err error
	if raw := c.Query("from"); raw != "" {
		if from, err = time.ParseInLocation("2006-01-02", raw, time.UTC); err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid from date, use YYYY-MM-DD"})
			return
		}
		to = from.AddDate(0, 0, 7)
	}
	if raw := c.Query("to"); raw != "" {
		if to, err = time.ParseInLocation("2006-01-02", raw, time.UTC); err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid to date, use YYYY-MM-DD"})
			return
		}
		// Include occurrences starting on the end date itself.
		to = to.AddDate(0, 0, 1).Add(-time.Second)
	}

	occurrences, err := h.service.ListWindow(c.Request.Context(), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to list occurrences"})
		return
	}

	c.JSON(http.StatusOK, occurrences)
}
