package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackut-dev/jackut/internal/app"
	"github.com/jackut-dev/jackut/internal/utils"
)

type AddRelationRequest struct {
	Login string `json:"login"`
}

func addRelation(ctx *gin.Context, add func(session, login string) error) {
	session, err := utils.CurrentSession(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body AddRelationRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := add(session, body.Login); err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func AddIdol(ctx *gin.Context) {
	addRelation(ctx, app.Jackut.AddIdol)
}

func AddCrush(ctx *gin.Context) {
	addRelation(ctx, app.Jackut.AddCrush)
}

func AddEnemy(ctx *gin.Context) {
	addRelation(ctx, app.Jackut.AddEnemy)
}

func IsFan(ctx *gin.Context) {
	fan, err := app.Jackut.IsFan(ctx.Param("key"), ctx.Param("idol"))

	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"fan": fan})
}

func ListFans(ctx *gin.Context) {
	fans, err := app.Jackut.ListFans(ctx.Param("login"))

	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"fans": fans})
}

func IsCrush(ctx *gin.Context) {
	crush, err := app.Jackut.IsCrush(ctx.Param("key"), ctx.Param("other"))

	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"crush": crush})
}

func ListCrushes(ctx *gin.Context) {
	crushes, err := app.Jackut.ListCrushes(ctx.Param("key"))

	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"crushes": crushes})
}
