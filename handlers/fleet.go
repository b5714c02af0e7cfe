package handlers

import (
	"net/http"

	"portflow/models"
	"portflow/services/fleet"
	"portflow/utils"

	"github.com/gin-gonic/gin"
)

// FleetHandler exposes carrier, operator, truck and driver endpoints.
type FleetHandler struct {
	Fleet fleet.FleetService
}

func NewFleetHandler(fleetSvc fleet.FleetService) *FleetHandler {
	return &FleetHandler{Fleet: fleetSvc}
}

// scopedCarrier returns the carrier id the caller may act on. CARRIER users
// are pinned to their own carrier; other roles may pass an explicit query
// parameter or see everything.
func (h *FleetHandler) scopedCarrier(c *gin.Context) (string, bool) {
	if c.GetString("role") != models.RoleCarrier {
		return c.Query("carrierId"), true
	}
	carrier, err := h.Fleet.GetCarrierByUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		fail(c, err)
		return "", false
	}
	return carrier.ID, true
}

func (h *FleetHandler) CreateCarrier(c *gin.Context) {
	var input fleet.CarrierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	carrier, err := h.Fleet.CreateCarrier(c.Request.Context(), actorFrom(c), input)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusCreated, carrier)
}

// MyCarrier returns the carrier company owned by the caller.
func (h *FleetHandler) MyCarrier(c *gin.Context) {
	carrier, err := h.Fleet.GetCarrierByUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, carrier)
}

func (h *FleetHandler) ListCarriers(c *gin.Context) {
	carriers, err := h.Fleet.ListCarriers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, carriers)
}

func (h *FleetHandler) CreateOperator(c *gin.Context) {
	var input fleet.OperatorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	operator, err := h.Fleet.CreateOperator(c.Request.Context(), actorFrom(c), input)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusCreated, operator)
}

// MyOperator returns the terminal binding of the calling operator.
func (h *FleetHandler) MyOperator(c *gin.Context) {
	operator, err := h.Fleet.GetOperatorByUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, operator)
}

func (h *FleetHandler) ListOperators(c *gin.Context) {
	operators, err := h.Fleet.ListOperators(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, operators)
}

func (h *FleetHandler) CreateTruck(c *gin.Context) {
	var input fleet.TruckInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	// Carriers register trucks into their own fleet only.
	if c.GetString("role") == models.RoleCarrier {
		carrier, err := h.Fleet.GetCarrierByUser(c.Request.Context(), c.GetString("userID"))
		if err != nil {
			fail(c, err)
			return
		}
		input.CarrierID = carrier.ID
	}
	truck, err := h.Fleet.CreateTruck(c.Request.Context(), actorFrom(c), input)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusCreated, truck)
}

func (h *FleetHandler) ListTrucks(c *gin.Context) {
	carrierID, ok := h.scopedCarrier(c)
	if !ok {
		return
	}
	trucks, err := h.Fleet.ListTrucks(c.Request.Context(), carrierID)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, trucks)
}

func (h *FleetHandler) SetTruckStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	var carrierID string
	if c.GetString("role") == models.RoleCarrier {
		var ok bool
		if carrierID, ok = h.scopedCarrier(c); !ok {
			return
		}
	}
	if err := h.Fleet.SetTruckStatus(c.Request.Context(), actorFrom(c), c.Param("id"), carrierID, input.Status); err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, gin.H{"id": c.Param("id"), "status": input.Status})
}

func (h *FleetHandler) CreateDriver(c *gin.Context) {
	var input fleet.DriverInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	if c.GetString("role") == models.RoleCarrier {
		carrier, err := h.Fleet.GetCarrierByUser(c.Request.Context(), c.GetString("userID"))
		if err != nil {
			fail(c, err)
			return
		}
		input.CarrierID = carrier.ID
	}
	driver, err := h.Fleet.CreateDriver(c.Request.Context(), actorFrom(c), input)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusCreated, driver)
}

// MyDriver returns the driver record bound to the caller.
func (h *FleetHandler) MyDriver(c *gin.Context) {
	driver, err := h.Fleet.GetDriverByUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, driver)
}

func (h *FleetHandler) ListDrivers(c *gin.Context) {
	carrierID, ok := h.scopedCarrier(c)
	if !ok {
		return
	}
	drivers, err := h.Fleet.ListDrivers(c.Request.Context(), carrierID)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, drivers)
}

func (h *FleetHandler) SetDriverStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	var carrierID string
	if c.GetString("role") == models.RoleCarrier {
		var ok bool
		if carrierID, ok = h.scopedCarrier(c); !ok {
			return
		}
	}
	if err := h.Fleet.SetDriverStatus(c.Request.Context(), actorFrom(c), c.Param("id"), carrierID, input.Status); err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, gin.H{"id": c.Param("id"), "status": input.Status})
}
