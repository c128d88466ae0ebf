package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackut-dev/jackut/internal/app"
	"github.com/jackut-dev/jackut/internal/utils"
)

type AddFriendRequest struct {
	Login string `json:"login"`
}

func AddFriend(ctx *gin.Context) {
	session, err := utils.CurrentSession(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body AddFriendRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := app.Jackut.AddFriend(session, body.Login); err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func AreFriends(ctx *gin.Context) {
	friends, err := app.Jackut.AreFriends(ctx.Param("login"), ctx.Param("other"))

	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"friends": friends})
}

func ListFriends(ctx *gin.Context) {
	friends, err := app.Jackut.ListFriends(ctx.Param("login"))

	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"friends": friends})
}
