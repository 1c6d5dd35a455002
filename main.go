// main.go
// Petrol pump administration API.
// Wires the Firestore-backed repositories, global search and JWT middleware.

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"pumpadmin/auth"
	"pumpadmin/config"
	"pumpadmin/db"
	"pumpadmin/debounce"
	"pumpadmin/handlers"
	"pumpadmin/middleware"
	"pumpadmin/models"
	"pumpadmin/repo"
	"pumpadmin/search"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	// Load configuration
	cfg := config.Load()
	cfg.Validate()

	log.Printf("🚀 Starting PumpAdmin API Server")
	log.Printf("📍 Environment: %s", cfg.Server.Environment)
	log.Printf("🔧 Port: %s", cfg.Server.Port)

	// Initialize Firestore
	ctx := context.Background()
	store, err := db.NewFirestoreDB(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsPath)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Firestore: %v", err)
	}
	defer store.Close()

	// Initialize JWT Manager
	jwtManager := auth.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.Expiration,
		cfg.JWT.RefreshTokenExpiration,
	)
	log.Printf("🔐 JWT Manager initialized (expiration: %v)", cfg.JWT.Expiration)

	// Initialize repositories and search
	users := repo.NewUsers(store)
	teams := repo.NewTeams(store)
	pumps := repo.NewPumps(store)
	requests := repo.NewRequests(store)
	aggregator := search.NewAggregator(users, teams, pumps, requests)

	// Duplicate-availability checks are debounced per field
	checks := debounce.New(cfg.Debounce.DuplicateCheckDelay)
	defer checks.Stop()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(store, users, jwtManager)
	userHandler := handlers.NewUserHandler(store, users, checks, cfg.Listing.DefaultPageSize)
	teamHandler := handlers.NewTeamHandler(teams, cfg.Listing.DefaultPageSize)
	pumpHandler := handlers.NewPumpHandler(pumps, cfg.Listing.DefaultPageSize)
	requestHandler := handlers.NewRequestHandler(requests, pumps, cfg.Listing.DefaultPageSize)
	searchHandler := handlers.NewSearchHandler(aggregator)
	log.Printf("✅ Handlers initialized")

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	rateLimiter.CleanupOldLimiters()
	log.Printf("🛡️  Rate limiter initialized (%d requests per %v)", cfg.RateLimit.Requests, cfg.RateLimit.Window)

	// Set up router
	mux := http.NewServeMux()

	// Public routes (no authentication required)
	mux.HandleFunc("/health", handleHealth)
	mux.HandleFunc("/api/login", authHandler.Login)
	mux.HandleFunc("/api/refresh", authHandler.RefreshToken)

	// Protected routes (authentication required)
	authMiddleware := middleware.AuthMiddleware(jwtManager, users)
	adminOnly := middleware.RequireUserType(models.UserTypeAdmin)

	// Global search
	mux.Handle("/api/search", authMiddleware(http.HandlerFunc(searchHandler.Search)))

	// User management (admin only)
	mux.Handle("/api/users", authMiddleware(adminOnly(http.HandlerFunc(userHandler.List))))
	mux.Handle("/api/users/create", authMiddleware(adminOnly(http.HandlerFunc(userHandler.Create))))
	mux.Handle("/api/users/update", authMiddleware(adminOnly(http.HandlerFunc(userHandler.Update))))
	mux.Handle("/api/users/check", authMiddleware(adminOnly(http.HandlerFunc(userHandler.CheckAvailability))))

	// Team management (admin only)
	mux.Handle("/api/teams", authMiddleware(adminOnly(http.HandlerFunc(teamHandler.List))))
	mux.Handle("/api/teams/create", authMiddleware(adminOnly(http.HandlerFunc(teamHandler.Create))))
	mux.Handle("/api/teams/update", authMiddleware(adminOnly(http.HandlerFunc(teamHandler.Update))))

	// Pump listings
	mux.Handle("/api/pumps", authMiddleware(http.HandlerFunc(pumpHandler.List)))
	mux.Handle("/api/pumps/create", authMiddleware(adminOnly(http.HandlerFunc(pumpHandler.Create))))
	mux.Handle("/api/pumps/update", authMiddleware(adminOnly(http.HandlerFunc(pumpHandler.Update))))
	mux.Handle("/api/pumps/export", authMiddleware(adminOnly(http.HandlerFunc(pumpHandler.Export))))

	// Onboarding requests
	mux.Handle("/api/requests", authMiddleware(http.HandlerFunc(requestHandler.List)))
	mux.Handle("/api/requests/create", authMiddleware(http.HandlerFunc(requestHandler.Create)))
	mux.Handle("/api/requests/approve", authMiddleware(adminOnly(http.HandlerFunc(requestHandler.Approve))))
	mux.Handle("/api/requests/reject", authMiddleware(adminOnly(http.HandlerFunc(requestHandler.Reject))))

	// Apply global middleware
	handler := middleware.CORSMiddleware(cfg.CORS.AllowedOrigins)(mux)
	handler = rateLimiter.Middleware()(handler)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("✅ Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Server failed to start: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

// Health check endpoint
func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","timestamp":%d,"version":"1.0.0"}`, time.Now().Unix())
}
