package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/clipdigest/clipdigest/agent"
	"github.com/clipdigest/clipdigest/authenticator"
	"github.com/clipdigest/clipdigest/config"
	"github.com/clipdigest/clipdigest/controllers"
	"github.com/clipdigest/clipdigest/database"
	appmiddleware "github.com/clipdigest/clipdigest/middleware"
	"github.com/clipdigest/clipdigest/publisher"
	"github.com/clipdigest/clipdigest/repositories"
	"github.com/clipdigest/clipdigest/services"
	"github.com/clipdigest/clipdigest/transcript"
)

func main() {
	// Load environment variables from .env file when present
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	if err := database.InitializeDatabase(cfg.DBPath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDB()

	db := database.GetDB()

	// Initialize repositories
	repos := repositories.NewRepositories(db)

	// Initialize domain clients
	summarizer, err := agent.NewSummarizer(agent.Config{
		APIKey:       cfg.OpenAIAPIKey,
		Model:        cfg.SummaryModel,
		ResponsesURL: cfg.OpenAIAPIURL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize summarizer: %v", err)
	}

	fetcher := transcript.NewClient(cfg.TranscriptAPIURL, cfg.TranscriptAPIKey)

	// Initialize services
	srvs := services.NewServices(
		repos,
		fetcher,
		summarizer,
		publisher.NewTwitterPublisher(),
		publisher.NewLinkedInPublisher(),
	)

	// Initialize OAuth coordinator
	coordinator := authenticator.NewCoordinator(cfg.OAuthRedirectURI)

	// Initialize controllers
	ctrl := controllers.NewControllers(srvs, coordinator)

	// Set up router
	r, err := setupRouter(ctrl, repos, cfg)
	if err != nil {
		log.Fatalf("Failed to setup router: %v", err)
	}

	fmt.Printf("🚀 ClipDigest starting on port %d\n", cfg.Port)
	fmt.Printf("📂 Visit: http://localhost:%d\n", cfg.Port)
	fmt.Printf("🗃️  Database: %s\n", cfg.DBPath)

	log.Fatal(http.ListenAndServe(cfg.Addr(), r))
}

// setupRouter configures all routes
func setupRouter(ctrl *controllers.Controllers, repos *repositories.Repositories, cfg *config.Config) (*chi.Mux, error) {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second)) // 60 second timeout covers OAuth callbacks
	r.Use(middleware.Compress(5))

	// Session middleware
	sessionHandler, err := session.Sessioner(session.Options{
		Provider:       "memory",
		ProviderConfig: "",
		CookieName:     "clipdigest_session",
		Secure:         cfg.UseHTTPS,
		Gclifetime:     3600,
		Maxlifetime:    3600,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	r.Use(sessionHandler)

	r.Use(appmiddleware.ConnectedAccounts)
	r.Use(appmiddleware.AuditLogger(repos.Audit))

	// Static files (if we add any later)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static/"))))

	r.Get("/", ctrl.Summary.Index)
	r.Post("/summarize", ctrl.Summary.Summarize)
	r.Post("/post", ctrl.Summary.Post)
	r.Get("/history", ctrl.Summary.History)
	r.Get("/health", ctrl.Summary.Health)

	// Account connection routes
	r.Get("/auth/{platform}/login", ctrl.Auth.Login)
	r.Get("/auth/{platform}/logout", ctrl.Auth.Logout)
	r.Get("/callback", ctrl.Auth.Callback)

	return r, nil
}
