package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackut-dev/jackut/internal/core"
)

// abortWithError translates a core error kind into an HTTP status. Every
// core failure is terminal for the request and leaves state unchanged, so
// the body only ever carries the message.
func abortWithError(ctx *gin.Context, err error) {
	ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrInvalidCredentials),
		errors.Is(err, core.ErrUnknownSession):
		return http.StatusUnauthorized
	case errors.Is(err, core.ErrForbiddenByEnmity):
		return http.StatusForbidden
	case errors.Is(err, core.ErrUnknownUser),
		errors.Is(err, core.ErrUnknownCommunity),
		errors.Is(err, core.ErrAttributeNotSet),
		errors.Is(err, core.ErrNoNotices),
		errors.Is(err, core.ErrNoMessages):
		return http.StatusNotFound
	case errors.Is(err, core.ErrDuplicateAccount),
		errors.Is(err, core.ErrDuplicateCommunity),
		errors.Is(err, core.ErrAlreadyFriends),
		errors.Is(err, core.ErrInviteAlreadyPending),
		errors.Is(err, core.ErrAlreadyMember),
		errors.Is(err, core.ErrAlreadyFan),
		errors.Is(err, core.ErrAlreadyCrush),
		errors.Is(err, core.ErrAlreadyEnemy):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
