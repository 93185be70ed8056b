package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/paulikeo/mercadito/internal/api/handlers"
	"github.com/paulikeo/mercadito/internal/auth"
	"github.com/paulikeo/mercadito/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(tokens *auth.Manager, userService services.UserServiceProvider, productService services.ProductServiceProvider, corsOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, tokens)
	productHandler := handlers.NewProductHandler(productService)

	requireAuth := tokens.Middleware(userService)

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", userHandler.Register)
			r.Post("/login", userHandler.Login)
			r.With(requireAuth).Get("/verify-token", userHandler.VerifyToken)
		})

		r.Route("/products", func(r chi.Router) {
			// Public read-only endpoints
			r.Get("/", productHandler.GetAll)
			r.Get("/{id}", productHandler.Get)

			// Mutations require a valid bearer token
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/", productHandler.Create)
				r.Put("/{id}", productHandler.Update)
				r.Delete("/{id}", productHandler.Delete)
			})
		})
	})

	return r
}
