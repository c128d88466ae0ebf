package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackut-dev/jackut/internal/handlers"
	"github.com/jackut-dev/jackut/internal/middleware"
	"github.com/jackut-dev/jackut/internal/types"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocket)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.CreateUser)
			auth.POST("/login", handlers.OpenSession)
		}

		users := api.Group("/users")
		{
			users.GET("/:login/attributes/:name", handlers.GetAttribute)
			users.GET("/:login/friends", handlers.ListFriends)
			users.GET("/:login/friends/:other", handlers.AreFriends)
			users.GET("/:login/fans", handlers.ListFans)
		}

		// Read endpoints keyed by session token or raw login.
		keyed := api.Group("/keyed")
		{
			keyed.GET("/:key/communities", handlers.CommunitiesOf)
			keyed.GET("/:key/idols/:idol", handlers.IsFan)
			keyed.GET("/:key/crushes", handlers.ListCrushes)
			keyed.GET("/:key/crushes/:other", handlers.IsCrush)
		}

		profile := api.Group("/profile", middleware.AuthMiddleware())
		{
			profile.PUT("/attributes/:name", handlers.EditProfile)
		}

		relations := api.Group("", middleware.AuthMiddleware())
		{
			relations.POST("/friends", handlers.AddFriend)
			relations.POST("/idols", handlers.AddIdol)
			relations.POST("/crushes", handlers.AddCrush)
			relations.POST("/enemies", handlers.AddEnemy)
		}

		messaging := api.Group("", middleware.AuthMiddleware())
		{
			messaging.POST("/notices", handlers.SendNotice)
			messaging.POST("/notices/read", handlers.ReadNotice)
			messaging.POST("/messages/read", handlers.ReadMessage)
		}

		communities := api.Group("/communities")
		{
			communities.GET("/:name", handlers.GetCommunity)
			communities.POST("", middleware.AuthMiddleware(), handlers.CreateCommunity)
			communities.POST("/:name/join", middleware.AuthMiddleware(), handlers.JoinCommunity)
			communities.POST("/:name/messages", middleware.AuthMiddleware(), handlers.Broadcast)
		}

		account := api.Group("/account", middleware.AuthMiddleware())
		{
			account.DELETE("", handlers.RemoveAccount)
		}

		admin := api.Group("/admin")
		{
			admin.POST("/reset", handlers.ResetSystem)
		}
	}

	return r
}
