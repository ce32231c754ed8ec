package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/leogic/blog-backend/internal/api/handlers"
	"github.com/leogic/blog-backend/internal/auth"
	"github.com/leogic/blog-backend/internal/config"
	"github.com/leogic/blog-backend/internal/metrics"
	"github.com/leogic/blog-backend/internal/middleware"
	"github.com/leogic/blog-backend/internal/services"
	"github.com/leogic/blog-backend/internal/storage"
)

type RouterDeps struct {
	Cfg     config.Config
	Log     *slog.Logger
	TM      *auth.TokenManager
	UserSvc *services.UserService
	PostSvc *services.PostService
	Images  storage.ImageStore
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(d.Cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{d.Cfg.CORSOrigin},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	authMW := middleware.NewAuthMiddleware(d.TM)
	authH := handlers.NewAuthHandler(d.UserSvc, d.Images, d.Log)
	postsH := handlers.NewPostsHandler(d.PostSvc, d.Images, d.Log)

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authH.Register)
			r.Post("/login", authH.Login)
			r.With(authMW.Require).Get("/currentuser", authH.CurrentUser)
		})

		r.Route("/users", func(r chi.Router) {
			r.With(authMW.Require).Put("/profile", authH.UpdateProfile)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", postsH.List)
			r.Get("/user/{userId}", postsH.ListByUser)
			r.Get("/{id}", postsH.Get)
			r.Post("/{id}/views", postsH.RegisterView)

			r.Group(func(r chi.Router) {
				r.Use(authMW.Require)
				r.Post("/create-post", postsH.Create)
				r.Put("/{id}", postsH.Update)
				r.Delete("/{id}", postsH.Delete)
				r.Post("/{id}/comments", postsH.AddComment)
				r.Delete("/{postId}/comments/{commentId}", postsH.DeleteComment)
			})
		})
	})

	return r
}
