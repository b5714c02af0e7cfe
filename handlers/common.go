package handlers

import (
	"errors"

	"portflow/models"
	"portflow/utils"

	"github.com/gin-gonic/gin"
)

// actorFrom builds the audit actor from the authenticated request context.
func actorFrom(c *gin.Context) models.Actor {
	return models.Actor{Type: models.ActorUser, ID: c.GetString("userID")}
}

// fail translates a service error into the standard error response.
func fail(c *gin.Context, err error) {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		utils.JSONError(c, utils.HTTPStatus(err), appErr.Message, "")
		return
	}
	utils.JSONError(c, utils.HTTPStatus(err), "Internal server error", err.Error())
}
