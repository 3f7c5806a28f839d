// Command inkwell starts the blogging platform API server. It loads
// configuration, connects to PostgreSQL, applies migrations, wires the
// feature services and handlers together, and serves HTTP with graceful
// shutdown.
//
// @title Inkwell API
// @version 1.0
// @description REST API for the Inkwell blogging platform: users, posts, comments, and cookie-based session auth.
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @BasePath /
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/user/inkwell-go/apperror"
	"github.com/user/inkwell-go/auth"
	"github.com/user/inkwell-go/comments"
	"github.com/user/inkwell-go/config"
	"github.com/user/inkwell-go/db"
	_ "github.com/user/inkwell-go/docs" // generated swagger spec
	"github.com/user/inkwell-go/posts"
	"github.com/user/inkwell-go/users"
)

func main() {
	// .env is a development convenience; in production variables come from
	// the environment directly.
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: .env file not found or not readable: %v\n", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	auth.SetErrorLogger(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	pool, err := db.NewPool(cfg.DB)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DB); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Wire the auth core: store, hasher, and token issuer are constructed
	// once from startup configuration and injected explicitly.
	userStore := auth.NewPostgresUserStore(pool)
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	tokenIssuer := auth.NewTokenIssuer(cfg.Auth)
	authService := auth.NewAuthService(userStore, hasher, tokenIssuer)
	authHandlers := auth.NewHandlers(authService, cfg.Auth)

	postService := posts.NewPostService(pool)
	postHandlers := posts.NewPostHandlers(postService)

	commentService := comments.NewCommentService(pool)
	commentHandlers := comments.NewCommentHandlers(commentService)

	userService := users.NewUserService(pool)
	userHandlers := users.NewUserHandlers(userService)

	requireAuth := auth.RequireAuth(tokenIssuer)

	r := chi.NewRouter()

	// Global middleware must be registered before any routes.
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Panic recovery that reports through the apperror system.
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("method", r.Method),
						zap.String("path", r.URL.Path),
					)
					writeError(ww, apperror.NewInternalError("internal server error", nil))
				}
			}()
			next.ServeHTTP(ww, r)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandlers.HandleRegister())
		r.Post("/login", authHandlers.HandleLogin())
		r.Post("/logout", authHandlers.HandleLogout())
	})

	r.Route("/api/posts", func(r chi.Router) {
		// Reads are public.
		r.Get("/", postHandlers.HandleListPosts())
		r.Get("/{id}", postHandlers.HandleGetPost())
		r.Get("/{id}/comments", commentHandlers.HandleListComments())

		// Mutations require a session.
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Post("/", postHandlers.HandleCreatePost())
			r.Put("/{id}", postHandlers.HandleUpdatePost())
			r.Delete("/{id}", postHandlers.HandleDeletePost())
			r.Post("/{id}/comments", commentHandlers.HandleCreateComment())
		})
	})

	r.Route("/api/comments", func(r chi.Router) {
		r.Use(requireAuth)
		r.Put("/{id}", commentHandlers.HandleUpdateComment())
		r.Delete("/{id}", commentHandlers.HandleDeleteComment())
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Get("/{id}", userHandlers.HandleGetUser())
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/me/profile", userHandlers.HandleGetOwnProfile())
		})
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped gracefully")
}

// writeError is a local helper for the panic recovery middleware.
func writeError(w http.ResponseWriter, appErr *apperror.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	if err := json.NewEncoder(w).Encode(appErr.ToResponse()); err != nil {
		http.Error(w, `{"error":"failed to encode error response"}`, http.StatusInternalServerError)
	}
}
