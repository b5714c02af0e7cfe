package handlers

import (
	"net/http"
	"time"

	"portflow/models"
	"portflow/services/booking"
	"portflow/services/fleet"
	"portflow/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the booking lifecycle endpoints.
type BookingHandler struct {
	Bookings booking.BookingService
	Fleet    fleet.FleetService
}

func NewBookingHandler(bookings booking.BookingService, fleetSvc fleet.FleetService) *BookingHandler {
	return &BookingHandler{Bookings: bookings, Fleet: fleetSvc}
}

// callerCarrier resolves the carrier owned by the authenticated user when
// the caller holds the CARRIER role. Other roles get an empty id, which the
// services treat as unscoped.
func (h *BookingHandler) callerCarrier(c *gin.Context) (string, bool) {
	if c.GetString("role") != models.RoleCarrier {
		return "", true
	}
	carrier, err := h.Fleet.GetCarrierByUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		fail(c, err)
		return "", false
	}
	return carrier.ID, true
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input models.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	carrierID, ok := h.callerCarrier(c)
	if !ok {
		return
	}
	if carrierID != "" {
		input.CarrierID = carrierID
	}

	b, err := h.Bookings.CreateBooking(c.Request.Context(), actorFrom(c), input)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusCreated, b)
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Bookings.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	carrierID, ok := h.callerCarrier(c)
	if !ok {
		return
	}
	if carrierID != "" && b.CarrierID != carrierID {
		utils.JSONError(c, http.StatusForbidden, "This booking belongs to another carrier", "")
		return
	}
	utils.JSONData(c, http.StatusOK, b)
}

func (h *BookingHandler) ListBookings(c *gin.Context) {
	filter := models.BookingListFilter{
		Status:     c.Query("status"),
		TerminalID: c.Query("terminalId"),
		CarrierID:  c.Query("carrierId"),
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid 'from' timestamp", err.Error())
			return
		}
		filter.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid 'to' timestamp", err.Error())
			return
		}
		filter.To = t
	}

	// Carriers only ever see their own bookings.
	carrierID, ok := h.callerCarrier(c)
	if !ok {
		return
	}
	if carrierID != "" {
		filter.CarrierID = carrierID
	}

	bookings, err := h.Bookings.ListBookings(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, bookings)
}

func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	b, err := h.Bookings.ConfirmBooking(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, b)
}

func (h *BookingHandler) RejectBooking(c *gin.Context) {
	b, err := h.Bookings.RejectBooking(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, b)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	carrierID, ok := h.callerCarrier(c)
	if !ok {
		return
	}
	b, err := h.Bookings.CancelBooking(c.Request.Context(), actorFrom(c), c.Param("id"), carrierID)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, b)
}

func (h *BookingHandler) ReassignSlot(c *gin.Context) {
	var input struct {
		NewSlotStart time.Time `json:"newSlotStart" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	b, err := h.Bookings.ReassignSlot(c.Request.Context(), actorFrom(c), c.Param("id"), input.NewSlotStart)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, b)
}

func (h *BookingHandler) ModifyBooking(c *gin.Context) {
	var input models.ModifyBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	b, err := h.Bookings.ModifyBooking(c.Request.Context(), actorFrom(c), c.Param("id"), input)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, b)
}

func (h *BookingHandler) ManualOverride(c *gin.Context) {
	var input struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Override reason is required", err.Error())
		return
	}
	b, err := h.Bookings.ManualOverride(c.Request.Context(), actorFrom(c), c.Param("id"), input.Reason)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, b)
}

func (h *BookingHandler) BulkConfirm(c *gin.Context) {
	var input struct {
		BookingIDs []string `json:"bookingIds" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	result := h.Bookings.BulkConfirm(c.Request.Context(), actorFrom(c), input.BookingIDs)
	utils.JSONData(c, http.StatusOK, gin.H{"confirmed": result.Succeeded, "failed": result.Failed})
}

func (h *BookingHandler) BulkReject(c *gin.Context) {
	var input struct {
		BookingIDs []string `json:"bookingIds" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	result := h.Bookings.BulkReject(c.Request.Context(), actorFrom(c), input.BookingIDs)
	utils.JSONData(c, http.StatusOK, gin.H{"rejected": result.Succeeded, "failed": result.Failed})
}

// Availability returns the slot grid of a terminal for one date.
func (h *BookingHandler) Availability(c *gin.Context) {
	terminalID := c.Query("terminalId")
	if terminalID == "" {
		utils.JSONError(c, http.StatusBadRequest, "terminalId is required", "")
		return
	}
	availability, err := h.Bookings.Availability(c.Request.Context(), terminalID, c.Query("date"))
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, availability)
}

// TerminalCapacity is the terminal-centric view of the same slot grid,
// addressed by path instead of query parameter.
func (h *BookingHandler) TerminalCapacity(c *gin.Context) {
	availability, err := h.Bookings.Availability(c.Request.Context(), c.Param("id"), c.Query("date"))
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, availability)
}
