package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"homigo-backend/config"
	"homigo-backend/controllers"
	"homigo-backend/routes"
	"homigo-backend/services"
)

func resolveHoldWindow() time.Duration {
	raw := os.Getenv("HOLD_WINDOW_MINUTES")
	if raw == "" {
		return services.DefaultHoldWindow
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		log.Printf("⚠️  Invalid HOLD_WINDOW_MINUTES=%q; using default %s", raw, services.DefaultHoldWindow)
		return services.DefaultHoldWindow
	}
	return time.Duration(minutes) * time.Minute
}

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	// Required signing secret (fatal if missing)
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("❌ ERROR: JWT_SECRET environment variable is not set. Cannot sign auth tokens.")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	holdWindow := resolveHoldWindow()
	log.Printf("✅ Pending reservation hold window: %s", holdWindow)

	// Initialize services
	authService := services.NewAuthService(db)
	listingService := services.NewListingService(db)
	reservationService := services.NewReservationService(db, holdWindow)

	// Initialize controllers
	authController := controllers.NewAuthController(authService, []byte(jwtSecret))
	listingController := controllers.NewListingController(listingService)
	reservationController := controllers.NewReservationController(reservationService)

	// Build router
	router := routes.SetupRouter(authController, listingController, reservationController, []byte(jwtSecret))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 HomiGo backend starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server with timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
