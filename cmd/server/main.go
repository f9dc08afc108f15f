package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blogql/internal/api"
	gqlschema "blogql/internal/api/graphql"
	"blogql/internal/app/service"
	"blogql/internal/app/worker"
	"blogql/internal/common/security"
	"blogql/internal/domain/repository"
	"blogql/internal/platform/config"
	"blogql/internal/platform/database"
	"blogql/internal/platform/queue"
)

func main() {
	// 1. Configuration
	cfg := config.Load()
	log.Println("Configuration loaded.")

	// 2. Database (+ schema migrations)
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer db.Close()
	if err := database.Migrate(cfg); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
	log.Println("Database connected and migrated.")

	// 3. Redis
	rdb, err := queue.ConnectRedis(cfg)
	if err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	defer rdb.Close()
	log.Println("Redis connected.")

	// 4. Collaborators
	tokens := security.NewTokenManager(cfg.JWTKey, cfg.JWTExp)
	cleanupQueue := queue.NewImageCleanup(rdb, cfg.ImageCleanupQueueName)

	userRepo := repository.NewPgUserRepository(db)
	postRepo := repository.NewPgPostRepository(db)

	authService := service.NewAuthService(userRepo, tokens)
	postService := service.NewPostService(postRepo, userRepo, cleanupQueue)
	userService := service.NewUserService(userRepo, postRepo)

	// 5. Image cleanup worker (as a goroutine)
	cleanupWorker := worker.NewCleanupWorker(rdb, cfg.ImageCleanupQueueName, cfg.ImageDir)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()
	go cleanupWorker.Start(workerCtx)

	// 6. GraphQL schema + router
	schema, err := gqlschema.NewSchema(authService, postService, userService)
	if err != nil {
		log.Fatalf("Failed to build GraphQL schema: %v", err)
	}
	router := api.NewRouter(tokens, schema, cleanupQueue, cfg.ImageDir)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 7. Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
		}
	}()

	<-stop

	log.Println("Shutting down server...")
	workerCancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server and worker stopped gracefully.")
}
