package handlers

import (
	"net/http"

	"portflow/models"
	"portflow/services/dashboard"
	"portflow/services/fleet"
	"portflow/utils"

	"github.com/gin-gonic/gin"
)

// DashboardHandler exposes the read-only overview endpoints.
type DashboardHandler struct {
	Dash  dashboard.DashboardService
	Fleet fleet.FleetService
}

func NewDashboardHandler(dash dashboard.DashboardService, fleetSvc fleet.FleetService) *DashboardHandler {
	return &DashboardHandler{Dash: dash, Fleet: fleetSvc}
}

// terminalFor resolves the terminal an operator call targets: OPERATOR users
// are pinned to their assigned terminal, admins pass ?terminalId.
func (h *DashboardHandler) terminalFor(c *gin.Context) (string, bool) {
	if c.GetString("role") == models.RoleOperator {
		operator, err := h.Fleet.GetOperatorByUser(c.Request.Context(), c.GetString("userID"))
		if err != nil {
			fail(c, err)
			return "", false
		}
		return operator.TerminalID, true
	}
	terminalID := c.Query("terminalId")
	if terminalID == "" {
		utils.JSONError(c, http.StatusBadRequest, "terminalId is required", "")
		return "", false
	}
	return terminalID, true
}

// carrierFor resolves the carrier a carrier-dashboard call targets.
func (h *DashboardHandler) carrierFor(c *gin.Context) (string, bool) {
	if c.GetString("role") == models.RoleCarrier {
		carrier, err := h.Fleet.GetCarrierByUser(c.Request.Context(), c.GetString("userID"))
		if err != nil {
			fail(c, err)
			return "", false
		}
		return carrier.ID, true
	}
	carrierID := c.Query("carrierId")
	if carrierID == "" {
		utils.JSONError(c, http.StatusBadRequest, "carrierId is required", "")
		return "", false
	}
	return carrierID, true
}

func (h *DashboardHandler) AdminStats(c *gin.Context) {
	stats, err := h.Dash.AdminStats(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, stats)
}

func (h *DashboardHandler) OperatorOverview(c *gin.Context) {
	terminalID, ok := h.terminalFor(c)
	if !ok {
		return
	}
	overview, err := h.Dash.OperatorOverview(c.Request.Context(), terminalID)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, overview)
}

func (h *DashboardHandler) PendingApprovals(c *gin.Context) {
	terminalID, ok := h.terminalFor(c)
	if !ok {
		return
	}
	bookings, err := h.Dash.PendingApprovals(c.Request.Context(), terminalID)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, bookings)
}

func (h *DashboardHandler) TodayTraffic(c *gin.Context) {
	terminalID, ok := h.terminalFor(c)
	if !ok {
		return
	}
	traffic, err := h.Dash.TodayTraffic(c.Request.Context(), terminalID)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, traffic)
}

func (h *DashboardHandler) CarrierOverview(c *gin.Context) {
	carrierID, ok := h.carrierFor(c)
	if !ok {
		return
	}
	overview, err := h.Dash.CarrierOverview(c.Request.Context(), carrierID)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, overview)
}

func (h *DashboardHandler) UpcomingBookings(c *gin.Context) {
	carrierID, ok := h.carrierFor(c)
	if !ok {
		return
	}
	bookings, err := h.Dash.UpcomingBookings(c.Request.Context(), carrierID)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, bookings)
}

func (h *DashboardHandler) FleetStatus(c *gin.Context) {
	carrierID, ok := h.carrierFor(c)
	if !ok {
		return
	}
	status, err := h.Dash.FleetStatus(c.Request.Context(), carrierID)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, status)
}
