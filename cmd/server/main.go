package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/Lord-Boros/the-forbidden-button/internal/billing"
	"github.com/Lord-Boros/the-forbidden-button/internal/config"
	"github.com/Lord-Boros/the-forbidden-button/internal/database"
	"github.com/Lord-Boros/the-forbidden-button/internal/handlers"
	"github.com/Lord-Boros/the-forbidden-button/internal/jobs"
	"github.com/Lord-Boros/the-forbidden-button/internal/repository"
	cronjobs "github.com/Lord-Boros/the-forbidden-button/internal/scheduler"
	"github.com/Lord-Boros/the-forbidden-button/internal/services"
	"github.com/Lord-Boros/the-forbidden-button/pkg/logger"
	"github.com/Lord-Boros/the-forbidden-button/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// --- Services ---
	userService := services.NewUserService(userRepo)
	gameService := services.NewGameService(userRepo)
	analyticsService := services.NewAnalyticsService(analyticsRepo)
	stripeClient := billing.NewStripeClient(cfg.StripeSecretKey, cfg.StripePriceID)
	billingService := services.NewBillingService(userRepo, stripeClient)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(userService, analyticsService, cfg)
	gameHandler := handlers.NewGameHandler(userService, gameService, analyticsService)
	billingHandler := handlers.NewBillingHandler(billingService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Public routes
	router.HandleFunc("/api/register", authHandler.RegisterHandler).Methods("POST")
	router.HandleFunc("/api/login", authHandler.LoginHandler).Methods("POST")
	router.HandleFunc("/api/subscribe", billingHandler.SubscribeHandler).Methods("POST")
	router.HandleFunc("/api/leaderboard", gameHandler.LeaderboardHandler).Methods("GET")

	// Authenticated game routes
	protected := router.PathPrefix("/api").Subrouter()
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	protected.HandleFunc("/check-achievements", gameHandler.CheckAchievementsHandler).Methods("POST")
	protected.HandleFunc("/stats", gameHandler.SubmitStatsHandler).Methods("POST")
	protected.HandleFunc("/profile", gameHandler.GetProfileHandler).Methods("GET")
	protected.HandleFunc("/preferences", gameHandler.UpdatePreferencesHandler).Methods("PUT")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Daily premium-expiry sweep
	sweeper := jobs.NewPremiumExpirySweeper(userRepo)
	cronjobs.StartBillingCronJobs(sweeper)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, handler))
}
