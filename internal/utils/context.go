package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jackut-dev/jackut/internal/types"
)

func CurrentSession(ctx *gin.Context) (string, error) {
	token, exists := ctx.Get(types.ContextSessionKey)

	if !exists {
		return "", fmt.Errorf("no session in context")
	}

	tokenString, ok := token.(string)

	if !ok {
		return "", fmt.Errorf("invalid session type in context")
	}

	return tokenString, nil
}

func CurrentLogin(ctx *gin.Context) (string, error) {
	login, exists := ctx.Get(types.ContextLoginKey)

	if !exists {
		return "", fmt.Errorf("no login in context")
	}

	loginString, ok := login.(string)

	if !ok {
		return "", fmt.Errorf("invalid login type in context")
	}

	return loginString, nil
}
