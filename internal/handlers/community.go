package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackut-dev/jackut/internal/app"
	"github.com/jackut-dev/jackut/internal/utils"
)

type CreateCommunityRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type BroadcastRequest struct {
	Text string `json:"text"`
}

func CreateCommunity(ctx *gin.Context) {
	session, err := utils.CurrentSession(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body CreateCommunityRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if err := app.Jackut.CreateCommunity(session, body.Name, body.Description); err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"name": body.Name})
}

func GetCommunity(ctx *gin.Context) {
	name := ctx.Param("name")

	description, err := app.Jackut.CommunityDescription(name)

	if err != nil {
		abortWithError(ctx, err)
		return
	}

	owner, err := app.Jackut.CommunityOwner(name)

	if err != nil {
		abortWithError(ctx, err)
		return
	}

	members, err := app.Jackut.CommunityMembers(name)

	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"name":        name,
		"description": description,
		"owner":       owner,
		"members":     members,
	})
}

func JoinCommunity(ctx *gin.Context) {
	session, err := utils.CurrentSession(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := app.Jackut.JoinCommunity(session, ctx.Param("name")); err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// CommunitiesOf accepts a session token or a raw login as the key.
func CommunitiesOf(ctx *gin.Context) {
	communities, err := app.Jackut.CommunitiesOf(ctx.Param("key"))

	if err != nil {
		abortWithError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"communities": communities})
}

func Broadcast(ctx *gin.Context) {
	session, err := utils.CurrentSession(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body BroadcastRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	name := ctx.Param("name")

	recipients, err := app.Jackut.Network().Broadcast(session, name, body.Text)
	if err != nil {
		abortWithError(ctx, err)
		return
	}

	// Only members actually delivered to get the socket hint; members who
	// refused delivery over enmity hear nothing.
	for _, member := range recipients {
		NotifyDelivery(member, "message")
	}

	ctx.Status(http.StatusNoContent)
}
