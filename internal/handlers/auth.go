package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackut-dev/jackut/internal/app"
	"github.com/jackut-dev/jackut/internal/logger"
	"go.uber.org/zap"
)

type CreateUserRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func CreateUser(ctx *gin.Context) {
	var body CreateUserRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := app.Jackut.CreateUser(body.Login, body.Password, body.Name); err != nil {
		abortWithError(ctx, err)
		return
	}

	logger.L.Info("account created", zap.String("login", body.Login))

	ctx.JSON(http.StatusCreated, gin.H{"login": body.Login})
}

func OpenSession(ctx *gin.Context) {
	var body LoginRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	token, err := app.Jackut.OpenSession(body.Login, body.Password)

	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token})
}
