package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter(chatController *ChatController, sharedSecret string) *gin.Engine {
	router := gin.Default()
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}
	config.AllowCredentials = true
	config.AllowHeaders = []string{
		"Authorization",
		"Content-Type",
		"Origin",
		"Accept",
		"X-Chat-Secret",
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	router.Use(cors.New(config))
	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	if chatController != nil {
		chat := api.Group("/chat", sharedSecretGate(sharedSecret))
		chat.GET("/participants", chatController.Participants)
		chat.GET("/history", chatController.History)
		chat.GET("/ws", chatController.Serve)
	}

	return router
}

// sharedSecretGate rejects requests that do not carry the configured room
// secret. An empty configured secret leaves the room open.
func sharedSecretGate(secret string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if secret == "" {
			ctx.Next()
			return
		}

		provided := ctx.Query("secret")
		if provided == "" {
			provided = ctx.GetHeader("X-Chat-Secret")
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid room secret"})
			return
		}

		ctx.Next()
	}
}
