package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackut-dev/jackut/internal/app"
	"github.com/jackut-dev/jackut/internal/utils"
)

type EditProfileRequest struct {
	Value string `json:"value"`
}

func GetAttribute(ctx *gin.Context) {
	login := ctx.Param("login")
	name := ctx.Param("name")

	value, err := app.Jackut.GetAttribute(login, name)

	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"name": name, "value": value})
}

func EditProfile(ctx *gin.Context) {
	session, err := utils.CurrentSession(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body EditProfileRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := app.Jackut.EditProfile(session, ctx.Param("name"), body.Value); err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
