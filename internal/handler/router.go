package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tasktrack/tasktrack-go/internal/crypto"
	"github.com/tasktrack/tasktrack-go/internal/middleware"
)

// RouterOptions configures route construction.
type RouterOptions struct {
	// AuthRateLimit enables per-IP rate limiting on the public auth routes.
	// Disabled in tests.
	AuthRateLimit bool
}

// NewRouter creates a chi router with all API routes registered.
func NewRouter(auth *AuthHandler, tasks *TaskHandler, tokens *crypto.TokenManager, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		if opts.AuthRateLimit {
			r.Use(middleware.RateLimit(5, 10))
		}
		r.Post("/api/v1/auth/register", auth.HandleRegister)
		r.Post("/api/v1/auth/login", auth.HandleLogin)
		r.Post("/api/v1/auth/refresh", auth.HandleRefresh)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(tokens))

		r.Post("/api/v1/auth/logout", auth.HandleLogout)

		r.Get("/api/v1/tasks", tasks.HandleList)
		r.Post("/api/v1/tasks", tasks.HandleCreate)
		r.Get("/api/v1/tasks/{id}", tasks.HandleGet)
		r.Put("/api/v1/tasks/{id}", tasks.HandleUpdate)
		r.Patch("/api/v1/tasks/{id}", tasks.HandleUpdate)
		r.Delete("/api/v1/tasks/{id}", tasks.HandleDelete)
	})

	return r
}
