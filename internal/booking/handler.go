package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tozzo28/bulking/internal/api"
	"github.com/tozzo28/bulking/internal/auth"
	"github.com/tozzo28/bulking/internal/class"
	"github.com/tozzo28/bulking/internal/email"
)

type Handler struct {
	service      Service
	classService class.Service
	emailService *email.Service
}

func NewHandler(service Service, classService class.Service, emailService *email.Service) *Handler {
	return &Handler{
		service:      service,
		classService: classService,
		emailService: emailService,
	}
}

// Book godoc
// @Summary      Book a class occurrence
// @Description  Reserves a seat on the occurrence and creates an active booking.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        key  path      string  true  "Occurrence key (templateID:YYYY-MM-DD)"
// @Success      201  {object}  Booking
// @Failure      400  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Failure      409  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /classes/{key}/book [post]
func (h *Handler) Book(c *gin.Context) {
	memberID, exists := auth.GetMemberID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Member not authenticated"})
		return
	}

	occurrenceKey := c.Param("key")

	b, occ, err := h.service.Book(c.Request.Context(), memberID, occurrenceKey)
	if err != nil {
		switch {
		case errors.Is(err, ErrOccurrenceNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Occurrence not found"})
		case errors.Is(err, ErrOccurrenceInPast):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Cannot book a class that has already started"})
		case errors.Is(err, ErrClassFull):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Class is full"})
		case errors.Is(err, ErrAlreadyBooked):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "You already have an active booking for this class"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create booking"})
		}
		return
	}

	if memberEmail, ok := auth.GetMemberEmail(c); ok && h.emailService != nil {
		className := occurrenceKey
		if template, err := h.classService.GetTemplateByID(c.Request.Context(), occ.TemplateID); err == nil {
			className = template.Name
		}
		h.emailService.SendBookingConfirmation(c.Request.Context(), memberEmail, memberEmail, className, occ.StartTime)
	}

	c.JSON(http.StatusCreated, b)
}

// Cancel godoc
// @Summary      Cancel a booking
// @Description  Cancels an active booking of the current member. A reason from the allowed set is required.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        bookingID  path      int            true  "Booking ID"
// @Param        request    body      CancelRequest  true  "Cancellation reason"
// @Success      200        {object}  Booking
// @Failure      400        {object}  api.ErrorResponse
// @Failure      403        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Failure      409        {object}  api.ErrorResponse
// @Failure      500        {object}  api.ErrorResponse
// @Router       /bookings/{bookingID}/cancel [post]
func (h *Handler) Cancel(c *gin.Context) {
	memberID, exists := auth.GetMemberID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Member not authenticated"})
		return
	}

	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	var req CancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "A cancellation reason is required"})
		return
	}

	cancelled, err := h.service.Cancel(c.Request.Context(), memberID, bookingID, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, ErrReasonRequired):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "You can only cancel your own bookings"})
		case errors.Is(err, ErrAlreadyCancelled):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Booking already cancelled"})
		case errors.Is(err, ErrAlreadyAttended):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Booking already marked attended"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel booking"})
		}
		return
	}

	c.JSON(http.StatusOK, cancelled)
}

// ListMine godoc
// @Summary      List my bookings
// @Description  Returns the booking history of the authenticated member, newest first.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   BookingWithDetails
// @Failure      500  {object}  api.ErrorResponse
// @Router       /bookings [get]
func (h *Handler) ListMine(c *gin.Context) {
	memberID, exists := auth.GetMemberID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Member not authenticated"})
		return
	}

	bookings, err := h.service.ListByMember(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// MarkAttended godoc
// @Summary      Mark a booking attended
// @Description  Terminal success transition for an active booking. Admin only.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      int  true  "Booking ID"
// @Success      200        {object}  Booking
// @Failure      400        {object}  api.ErrorResponse
// @Failure      404        {object}  api.ErrorResponse
// @Failure      409        {object}  api.ErrorResponse
// @Failure      500        {object}  api.ErrorResponse
// @Router       /admin/bookings/{bookingID}/attended [post]
func (h *Handler) MarkAttended(c *gin.Context) {
	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	attended, err := h.service.MarkAttended(c.Request.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Booking not found"})
		case errors.Is(err, ErrAlreadyCancelled):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Booking already cancelled"})
		case errors.Is(err, ErrAlreadyAttended):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: "Booking already marked attended"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to mark attendance"})
		}
		return
	}

	c.JSON(http.StatusOK, attended)
}

// ListByOccurrence godoc
// @Summary      List bookings for an occurrence
// @Description  Returns all bookings (any state) for an occurrence. Admin only.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        key  path      string  true  "Occurrence key"
// @Success      200  {array}   BookingWithDetails
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/occurrences/{key}/bookings [get]
func (h *Handler) ListByOccurrence(c *gin.Context) {
	occurrenceKey := c.Param("key")

	bookings, err := h.service.ListByOccurrence(c.Request.Context(), occurrenceKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// Reconcile godoc
// @Summary      Reconcile an occurrence seat counter
// @Description  Recomputes seats taken from the active booking set. Admin only.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        key  path      string  true  "Occurrence key"
// @Success      200  {object}  gin.H
// @Failure      404  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /admin/ledger/{key}/reconcile [post]
func (h *Handler) Reconcile(c *gin.Context) {
	occurrenceKey := c.Param("key")

	seatsTaken, err := h.service.Reconcile(c.Request.Context(), occurrenceKey)
	if err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "Occurrence not tracked by seat ledger"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"occurrence_key": occurrenceKey, "seats_taken": seatsTaken})
}
