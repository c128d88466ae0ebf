package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackut-dev/jackut/internal/app"
	"github.com/jackut-dev/jackut/internal/logger"
	"github.com/jackut-dev/jackut/internal/utils"
	"go.uber.org/zap"
)

// RemoveAccount deletes the authenticated account and runs the full
// cascade. The session used for the call is gone afterwards.
func RemoveAccount(ctx *gin.Context) {
	session, err := utils.CurrentSession(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	login, _ := utils.CurrentLogin(ctx)

	if err := app.Jackut.RemoveAccount(session); err != nil {
		abortWithError(ctx, err)
		return
	}

	logger.L.Info("account removed", zap.String("login", login))

	ctx.Status(http.StatusNoContent)
}

// ResetSystem wipes all state. Exposed for test harnesses.
func ResetSystem(ctx *gin.Context) {
	app.Jackut.ResetSystem()

	logger.L.Warn("system reset")

	ctx.Status(http.StatusNoContent)
}
