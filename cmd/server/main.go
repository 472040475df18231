package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/sashabaranov/go-openai"
	"github.com/yukikurage/taskflow/internal/config"
	"github.com/yukikurage/taskflow/internal/constants"
	"github.com/yukikurage/taskflow/internal/database"
	"github.com/yukikurage/taskflow/internal/handlers"
	"github.com/yukikurage/taskflow/internal/repository"
	"github.com/yukikurage/taskflow/internal/services"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	kv, err := openKVStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}

	// Unreadable data is logged and the tracker starts empty
	store, _ := services.OpenTaskStore(repository.NewTaskRepository(kv, cfg.StorageKey))

	tracker := services.NewTracker(store, services.WithTickInterval(cfg.TickInterval))
	tracker.Subscribe(logEvent)

	// Initialize Gin router
	r := gin.Default()

	sessionStore, err := newSessionStore(cfg)
	if err != nil {
		log.Fatalf("Failed to create session store: %v", err)
	}
	r.Use(sessions.Sessions(constants.SessionCookieName, sessionStore))

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
		if cfg.OpenAIBaseURL != "" {
			aiConfig.BaseURL = cfg.OpenAIBaseURL
		}
		aiService = services.NewAIServiceWithConfig(aiConfig)
	}

	handlers.RegisterRoutes(r, tracker, aiService)

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	ln, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", cfg.HTTPAddr, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("Server starting on %s", cfg.HTTPAddr)
	if err := serve(ctx, ln, srv, tracker); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// serve runs the tracker and the HTTP server until ctx is done, then shuts the
// server down. The tracker is stopped only after shutdown so requests still in
// flight can finish their store calls.
func serve(ctx context.Context, ln net.Listener, srv *http.Server, tracker *services.Tracker) error {
	trackerCtx, stopTracker := context.WithCancel(context.Background())
	defer stopTracker()

	trackerDone := make(chan struct{})
	go func() {
		defer close(trackerDone)
		if err := tracker.Run(trackerCtx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Tracker stopped: %v", err)
		}
	}()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	stopTracker()
	<-trackerDone
	return err
}

func openKVStore(cfg *config.Config) (repository.KVStore, error) {
	if cfg.StorageBackend == config.StorageBackendFile {
		log.Printf("Storing tasks in %s", cfg.DataDir)
		return repository.NewFileKVStore(cfg.DataDir), nil
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	return repository.NewGormKVStore(db), nil
}

func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store

	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		rs, err := redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // username (empty for default user)
			"",        // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, err
		}
		store = rs
	default:
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAgeSeconds,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

func logEvent(e services.Event) {
	switch e.Kind {
	case services.EventTaskCompleted:
		log.Printf("🎉 Task completed: %s", e.Task)
	case services.EventCompletedCleared:
		log.Printf("Cleared %d completed tasks", e.Count)
	}
}
