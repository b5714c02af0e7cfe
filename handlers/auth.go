package handlers

import (
	"net/http"

	"portflow/models"
	"portflow/services/user"
	"portflow/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes account and session endpoints.
type AuthHandler struct {
	Users user.UserService
}

func NewAuthHandler(users user.UserService) *AuthHandler {
	return &AuthHandler{Users: users}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input user.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	resp, err := h.Users.Register(c.Request.Context(), input)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	resp, err := h.Users.Login(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	resp, err := h.Users.Refresh(c.Request.Context(), input.RefreshToken)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	if err := h.Users.Logout(c.Request.Context(), input.RefreshToken); err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, gin.H{"loggedOut": true})
}

// Me returns the authenticated caller's account.
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.Users.GetUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, u)
}

func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.Users.ListUsers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, users)
}

// UpdateUser applies profile changes. Callers may update their own account;
// admins may update anyone's.
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	id := c.Param("id")
	if id != c.GetString("userID") && c.GetString("role") != models.RoleAdmin {
		utils.JSONError(c, http.StatusForbidden, "You may only update your own account", "")
		return
	}
	var input user.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid input", err.Error())
		return
	}
	u, err := h.Users.UpdateUser(c.Request.Context(), actorFrom(c), id, input)
	if err != nil {
		fail(c, err)
		return
	}
	utils.JSONData(c, http.StatusOK, u)
}
