package main

import (
	"log/slog"
	"os"

	"github.com/Vipulgupta23/Virtual-Mic/internal/config"
	"github.com/Vipulgupta23/Virtual-Mic/internal/handlers"
	"github.com/Vipulgupta23/Virtual-Mic/internal/media"
	"github.com/Vipulgupta23/Virtual-Mic/internal/services"
	"github.com/Vipulgupta23/Virtual-Mic/internal/store"
	"github.com/Vipulgupta23/Virtual-Mic/internal/ws"

	_ "github.com/Vipulgupta23/Virtual-Mic/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Virtual Mic API
// @version         1.0
// @description     Seminar audio Q&A: hosts run a session, participants submit recorded questions, the host plays them back in order.
// @host            localhost:8080
// @BasePath        /

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded")
	}

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, nil)))

	cfg := config.Load()

	mediaStore, err := media.NewStore(cfg.UploadDir, cfg.MaxUploadBytes())
	if err != nil {
		slog.Error("media store init failed", "error", err)
		os.Exit(1)
	}

	st := store.NewStore()
	hub := ws.NewHub()

	sessionService := services.NewSessionService(st, cfg.PublicBaseURL)
	questionService := services.NewQuestionService(st, mediaStore)

	sessionHandler := handlers.NewSessionHandler(sessionService, hub)
	questionHandler := handlers.NewQuestionHandler(questionService, hub)
	audioHandler := handlers.NewAudioHandler(questionService)
	wsHandler := handlers.NewWSHandler(hub)

	r := gin.Default()
	r.MaxMultipartMemory = cfg.MaxUploadBytes()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/session/:id", wsHandler.HandleWebSocket)
	r.GET("/audio/:filename", audioHandler.ServeAudio)

	api := r.Group("/api/v1")
	{
		sessions := api.Group("/sessions")
		{
			sessions.POST("", sessionHandler.CreateSession)
			sessions.GET("", sessionHandler.ListSessions)
			sessions.GET("/:id", sessionHandler.GetSession)
			sessions.PUT("/:id", sessionHandler.UpdateSession)
			sessions.GET("/:id/join", sessionHandler.GetJoinInfo)
			sessions.POST("/:id/questions", questionHandler.SubmitQuestion)
			sessions.GET("/:id/questions", questionHandler.ListQueue)
			sessions.PUT("/:id/questions/order", questionHandler.ReorderQueue)
		}

		questions := api.Group("/questions")
		{
			questions.GET("/:id", questionHandler.GetQuestion)
			questions.PUT("/:id", questionHandler.UpdateQuestion)
			questions.DELETE("/:id", questionHandler.DeleteQuestion)
		}
	}

	slog.Info("server starting", "port", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
