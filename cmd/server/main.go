package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nofat/fitness-server/internal/ai"
	"nofat/fitness-server/internal/api"
	"nofat/fitness-server/internal/config"
	"nofat/fitness-server/internal/repository/mongo"
	"nofat/fitness-server/internal/service"
	"nofat/fitness-server/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("Starting Nofat Fitness Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	log.Println("Ensuring database indexes...")
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureProfileIndexes(ctx, appDB.Collection("fitness_profiles"))
		mongo.EnsurePlanIndexes(ctx, appDB.Collection("ai_plans"))
		mongo.EnsureMessageIndexes(ctx, appDB.Collection("chat_messages"))
		mongo.EnsureRecordIndexes(ctx, appDB.Collection("workout_records"))
		mongo.EnsureStatsIndexes(ctx, appDB.Collection("daily_stats"))
		mongo.EnsureAchievementIndexes(ctx, appDB.Collection("achievement_unlocks"))
		log.Println("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	userRepo := mongo.NewMongoUserRepository(appDB)
	profileRepo := mongo.NewMongoProfileRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(appDB)
	messageRepo := mongo.NewMongoMessageRepository(appDB)
	recordRepo := mongo.NewMongoRecordRepository(appDB)
	statsRepo := mongo.NewMongoStatsRepository(appDB)
	achievementRepo := mongo.NewMongoAchievementRepository(appDB)

	// --- Initialize AI Pipeline ---
	chatClient := ai.NewChatClient(cfg.AI)
	generator := ai.NewGenerator(chatClient)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	authService := service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	profileService := service.NewProfileService(userRepo, profileRepo, fileStorage)
	planService := service.NewPlanService(planRepo, userRepo, profileRepo, generator)
	chatService := service.NewChatService(messageRepo, statsRepo, profileRepo, chatClient)
	statsService := service.NewStatsService(recordRepo, statsRepo, achievementRepo)

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, profileService, planService, chatService, statsService)

	// --- Start HTTP Server ---
	// WriteTimeout must outlast the AI timeout: plan generation holds the
	// response open for the whole model call.
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.AI.Timeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
