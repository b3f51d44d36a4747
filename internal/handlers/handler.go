package handlers

import (
	"errors"
	"net/http"

	"rentride/internal/services"
	"rentride/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// respondServiceError maps the service layer's sentinel errors onto the
// response envelope. Anything unrecognized is a 500.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, "resource")
	case errors.Is(err, services.ErrForbidden),
		// Booking your own vehicle is a wrong-actor problem, not a
		// malformed request.
		errors.Is(err, services.ErrSelfBooking):
		utils.ForbiddenResponse(c)
	case errors.Is(err, services.ErrInvalidTransition):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrSelfChat),
		errors.Is(err, services.ErrInvalidInput):
		utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrBadCredentials):
		utils.ErrorResponse(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())
	default:
		utils.InternalServerErrorResponse(c)
	}
}

// currentUserID fetches the authenticated user id set by the auth
// middleware, writing the 401 itself when absent.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}

	userID, ok := value.(primitive.ObjectID)
	if !ok {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}

	return userID, true
}
