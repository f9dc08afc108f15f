package api

import (
	"net/http"
	"time"

	gqlapi "blogql/internal/api/graphql"
	"blogql/internal/api/handler"
	"blogql/internal/api/middleware"
	"blogql/internal/common/security"
	"blogql/internal/platform/queue"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"github.com/graphql-go/graphql"
)

func NewRouter(
	tokens *security.TokenManager,
	schema graphql.Schema,
	cleanup queue.ImageCleanup,
	imageDir string,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// All origins are allowed; preflights get a bare success status.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	}))

	// Token resolution is split from enforcement: Verifier parses whatever
	// bearer token is present, ResolveAuthContext turns it into an
	// AuthContext without ever rejecting. Operations enforce on their own.
	r.Use(jwtauth.Verifier(tokens.Auth()))
	r.Use(middleware.ResolveAuthContext)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Method(http.MethodPost, "/graphql", gqlapi.NewHandler(schema))

	uploadHandler := handler.NewUploadHandler(imageDir, cleanup)
	uploadHandler.RegisterRoutes(r)

	// Uploaded images served read-only.
	fs := http.StripPrefix("/images/", http.FileServer(http.Dir(imageDir)))
	r.Get("/images/*", func(w http.ResponseWriter, r *http.Request) {
		fs.ServeHTTP(w, r)
	})

	return r
}
