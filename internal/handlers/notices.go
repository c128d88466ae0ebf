package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackut-dev/jackut/internal/app"
	"github.com/jackut-dev/jackut/internal/utils"
)

type SendNoticeRequest struct {
	Recipient string `json:"recipient"`
	Text      string `json:"text"`
}

func SendNotice(ctx *gin.Context) {
	session, err := utils.CurrentSession(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body SendNoticeRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := app.Jackut.SendNotice(session, body.Recipient, body.Text); err != nil {
		abortWithError(ctx, err)
		return
	}

	NotifyDelivery(body.Recipient, "notice")

	ctx.Status(http.StatusNoContent)
}

// ReadNotice pops the oldest private notice; reading consumes it, which is
// why this is a POST.
func ReadNotice(ctx *gin.Context) {
	session, err := utils.CurrentSession(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	text, err := app.Jackut.ReadNotice(session)

	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"text": text})
}

func ReadMessage(ctx *gin.Context) {
	session, err := utils.CurrentSession(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	text, err := app.Jackut.ReadMessage(session)

	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"text": text})
}
