package handlers

import (
	"net/http"

	"portflow/services/qrcode"
	"portflow/utils"

	"github.com/gin-gonic/gin"
)

// QRHandler exposes gate token endpoints.
type QRHandler struct {
	QR qrcode.QRService
}

func NewQRHandler(qr qrcode.QRService) *QRHandler {
	return &QRHandler{QR: qr}
}

// GenerateQR issues a fresh gate token for a confirmed booking. Fetching
// the code again supersedes any token issued earlier.
func (h *QRHandler) GenerateQR(c *gin.Context) {
	qr, err := h.QR.GenerateQR(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, qr)
}

// ScanQR validates a scanned token. Rejected tokens are a 200 with
// valid=false: the gate terminal treats them as routine outcomes.
func (h *QRHandler) ScanQR(c *gin.Context) {
	var input struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Token is required", err.Error())
		return
	}
	result, err := h.QR.ScanQR(c.Request.Context(), actorFrom(c), input.Token)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, result)
}
