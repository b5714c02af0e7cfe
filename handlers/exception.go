package handlers

import (
	"net/http"

	"portflow/services/exception"
	"portflow/utils"

	"github.com/gin-gonic/gin"
)

// ExceptionHandler exposes the anomaly detector endpoints.
type ExceptionHandler struct {
	Detector exception.DetectorService
}

func NewExceptionHandler(detector exception.DetectorService) *ExceptionHandler {
	return &ExceptionHandler{Detector: detector}
}

// ListExceptions recomputes the terminal's anomalies for one date.
func (h *ExceptionHandler) ListExceptions(c *gin.Context) {
	terminalID := c.Query("terminalId")
	if terminalID == "" {
		utils.JSONError(c, http.StatusBadRequest, "terminalId is required", "")
		return
	}
	exceptions, err := h.Detector.ListExceptions(c.Request.Context(), terminalID, c.Query("date"))
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, exceptions)
}

func (h *ExceptionHandler) ExceptionSummary(c *gin.Context) {
	terminalID := c.Query("terminalId")
	if terminalID == "" {
		utils.JSONError(c, http.StatusBadRequest, "terminalId is required", "")
		return
	}
	summary, err := h.Detector.ExceptionSummary(c.Request.Context(), terminalID)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, summary)
}

// RealTimeStatus returns the live view of a terminal's current slot.
func (h *ExceptionHandler) RealTimeStatus(c *gin.Context) {
	terminalID := c.Query("terminalId")
	if terminalID == "" {
		utils.JSONError(c, http.StatusBadRequest, "terminalId is required", "")
		return
	}
	status, err := h.Detector.RealTimeStatus(c.Request.Context(), terminalID)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, status)
}
