package web

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Olprog59/go-realty/internal/app"
	"github.com/Olprog59/go-realty/internal/config"
	"github.com/Olprog59/go-realty/internal/domain"
)

// NewMux creates and configures the HTTP router / Crée et configure le routeur HTTP
func NewMux(h *Handler, conf *config.Config, container *app.Container) http.Handler {
	mux := http.NewServeMux()
	mw := NewMiddleware(conf, container.Metrics, container.Tokens)

	// Health check endpoints (no auth, no rate limiting for load balancers)
	mux.HandleFunc("GET /health", h.HealthCheck)
	mux.HandleFunc("GET /readiness", h.ReadinessCheck)

	// Prometheus metrics endpoint (admin only — it exposes internals)
	mux.Handle("GET /metrics", chain(
		func(w http.ResponseWriter, r *http.Request) {
			promhttp.Handler().ServeHTTP(w, r)
		},
		mw,
		mw.Auth,
		mw.RequireRole(domain.RoleAdmin),
	))

	// Listings: reads are public, writes need a valid token
	mux.Handle("GET /api/property", chain(h.ListProperties, mw))
	mux.Handle("GET /api/property/{id}", chain(h.GetProperty, mw))
	mux.Handle("POST /api/property", chain(h.CreateProperty, mw, mw.Auth))
	mux.Handle("PUT /api/property/{id}", chain(h.ReplaceProperty, mw, mw.Auth))
	mux.Handle("PATCH /api/property/{id}", chain(h.PatchProperty, mw, mw.Auth))
	mux.Handle("DELETE /api/property/{id}", chain(h.DeleteProperty, mw, mw.Auth, mw.RequireRole(domain.RoleAdmin)))

	mux.Handle("GET /api/owner", chain(h.ListOwners, mw))
	mux.Handle("GET /api/owner/{id}", chain(h.GetOwner, mw))
	mux.Handle("POST /api/owner", chain(h.CreateOwner, mw, mw.Auth))
	mux.Handle("PUT /api/owner/{id}", chain(h.ReplaceOwner, mw, mw.Auth))
	mux.Handle("PATCH /api/owner/{id}", chain(h.PatchOwner, mw, mw.Auth))
	mux.Handle("DELETE /api/owner/{id}", chain(h.DeleteOwner, mw, mw.Auth))

	mux.Handle("GET /api/propertyimage", chain(h.ListImages, mw))
	mux.Handle("GET /api/propertyimage/{id}", chain(h.GetImage, mw))
	mux.Handle("POST /api/propertyimage", chain(h.CreateImage, mw, mw.Auth))
	mux.Handle("PUT /api/propertyimage/{id}", chain(h.ReplaceImage, mw, mw.Auth))
	mux.Handle("PATCH /api/propertyimage/{id}", chain(h.PatchImage, mw, mw.Auth))
	mux.Handle("DELETE /api/propertyimage/{id}", chain(h.DeleteImage, mw, mw.Auth))

	mux.Handle("GET /api/propertytrace", chain(h.ListTraces, mw))
	mux.Handle("GET /api/propertytrace/{id}", chain(h.GetTrace, mw))
	mux.Handle("POST /api/propertytrace", chain(h.CreateTrace, mw, mw.Auth))
	mux.Handle("PUT /api/propertytrace/{id}", chain(h.ReplaceTrace, mw, mw.Auth))
	mux.Handle("PATCH /api/propertytrace/{id}", chain(h.PatchTrace, mw, mw.Auth))
	mux.Handle("DELETE /api/propertytrace/{id}", chain(h.DeleteTrace, mw, mw.Auth))

	// Accounts: list/create/delete are admin, read/patch are self-or-admin
	mux.Handle("GET /api/user", chain(h.ListUsers, mw, mw.Auth, mw.RequireRole(domain.RoleAdmin)))
	mux.Handle("GET /api/user/{id}", chain(h.GetUser, mw, mw.Auth))
	mux.Handle("POST /api/user", chain(h.CreateUser, mw, mw.Auth, mw.RequireRole(domain.RoleAdmin)))
	mux.Handle("PATCH /api/user/{id}", chain(h.PatchUser, mw, mw.Auth))
	mux.Handle("DELETE /api/user/{id}", chain(h.DeleteUser, mw, mw.Auth, mw.RequireRole(domain.RoleAdmin)))

	// Authentication (public, strictly rate limited)
	mux.Handle("POST /api/auth/register", chain(h.Register, mw, mw.RateLimitStrict))
	mux.Handle("POST /api/auth/login", chain(h.Login, mw, mw.RateLimitStrict))
	mux.Handle("POST /api/token/refresh", chain(h.RefreshToken, mw, mw.RateLimitStrict))
	mux.Handle("POST /api/token/validate", chain(h.ValidateToken, mw))
	mux.Handle("PATCH /api/password/update", chain(h.UpdatePassword, mw, mw.Auth))

	// Global middlewares - applied in reverse order / Middlewares globaux appliqués en ordre inverse
	var handler http.Handler = mux
	handler = mw.MetricsMiddleware(handler) // Metrics first to capture everything
	handler = mw.RateLimit(handler)
	handler = Timeout(30 * time.Second)(handler)
	handler = Logging(handler) // Logging includes request ID
	handler = RequestID(handler)

	return handler
}

// chain applies middleware to HTTP handler / Applique les middlewares au gestionnaire HTTP
func chain(f http.HandlerFunc, mw *Middleware, middlewares ...func(http.Handler) http.Handler) http.Handler {
	var handler http.Handler = f

	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}

	return handler
}
