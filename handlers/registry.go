package handlers

import (
	"net/http"

	"portflow/services/registry"
	"portflow/utils"

	"github.com/gin-gonic/gin"
)

// RegistryHandler exposes port and terminal registry endpoints.
type RegistryHandler struct {
	Registry registry.RegistryService
}

func NewRegistryHandler(reg registry.RegistryService) *RegistryHandler {
	return &RegistryHandler{Registry: reg}
}

func (h *RegistryHandler) CreatePort(c *gin.Context) {
	var input registry.PortInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	port, err := h.Registry.CreatePort(c.Request.Context(), actorFrom(c), input)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusCreated, port)
}

func (h *RegistryHandler) GetPort(c *gin.Context) {
	port, err := h.Registry.GetPort(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, port)
}

func (h *RegistryHandler) ListPorts(c *gin.Context) {
	ports, err := h.Registry.ListPorts(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, ports)
}

func (h *RegistryHandler) CreateTerminal(c *gin.Context) {
	var input registry.TerminalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	terminal, err := h.Registry.CreateTerminal(c.Request.Context(), actorFrom(c), input)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusCreated, terminal)
}

func (h *RegistryHandler) GetTerminal(c *gin.Context) {
	terminal, err := h.Registry.GetTerminal(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, terminal)
}

func (h *RegistryHandler) ListTerminals(c *gin.Context) {
	terminals, err := h.Registry.ListTerminals(c.Request.Context(), c.Query("portId"))
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, terminals)
}

// SetTerminalCapacity changes a terminal's per-slot capacity.
func (h *RegistryHandler) SetTerminalCapacity(c *gin.Context) {
	var input struct {
		MaxCapacity int `json:"maxCapacity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	terminal, err := h.Registry.SetTerminalCapacity(c.Request.Context(), actorFrom(c), c.Param("id"), input.MaxCapacity)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, terminal)
}
