package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/YelzhanWeb/basecart/internal/adapter/logger"
)

// RouterDeps collects everything NewRouter mounts. Metrics, RateLimiter and
// HealthCheck are optional.
type RouterDeps struct {
	Business *BusinessHandler
	Menu     *MenuHandler
	Orders   *OrderHandler
	Tracking *TrackingHandler
	Account  *AccountHandler
	Admin    *AdminHandler

	Auth           *Authenticator
	RateLimiter    *RateLimiter
	Metrics        MetricsMiddleware
	AllowedOrigins []string
	HealthCheck    func(ctx context.Context) error
	Logger         logger.Logger
}

// MetricsMiddleware instruments matched routes and serves the scrape endpoint.
type MetricsMiddleware interface {
	Middleware(next http.Handler) http.Handler
	Handler() http.Handler
}

func NewRouter(d RouterDeps) http.Handler {
	r := mux.NewRouter()
	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware)
		r.Handle("/metrics", d.Metrics.Handler()).Methods(http.MethodGet)
	}
	r.HandleFunc("/healthz", health(d.HealthCheck)).Methods(http.MethodGet)

	auth := func(h http.HandlerFunc) http.Handler { return d.Auth.Require(h) }
	api := r.PathPrefix("/api").Subrouter()

	api.Handle("/users/me", auth(d.Account.Me)).Methods(http.MethodGet)
	api.Handle("/user/profile", auth(d.Account.GetProfile)).Methods(http.MethodGet)
	api.Handle("/user/profile", auth(d.Account.UpdateProfile)).Methods(http.MethodPatch)

	api.Handle("/business/me", auth(d.Business.GetMine)).Methods(http.MethodGet)
	api.Handle("/business", auth(d.Business.Create)).Methods(http.MethodPost)
	api.Handle("/business", auth(d.Business.Update)).Methods(http.MethodPatch)
	api.Handle("/business", auth(d.Business.Delete)).Methods(http.MethodDelete)
	api.HandleFunc("/business/{slug}", d.Business.GetBySlug).Methods(http.MethodGet)

	api.Handle("/menu", auth(d.Menu.List)).Methods(http.MethodGet)
	api.Handle("/menu", auth(d.Menu.Create)).Methods(http.MethodPost)
	api.Handle("/menu/import", auth(d.Menu.Import)).Methods(http.MethodPost)
	api.Handle("/menu/{id:[0-9]+}", auth(d.Menu.Update)).Methods(http.MethodPut)
	api.Handle("/menu/{id:[0-9]+}", auth(d.Menu.Delete)).Methods(http.MethodDelete)
	api.HandleFunc("/store/{slug}/menu", d.Menu.ListPublic).Methods(http.MethodGet)

	var submit http.Handler = http.HandlerFunc(d.Orders.CreateOrder)
	if d.RateLimiter != nil {
		submit = d.RateLimiter.Handler(submit)
	}
	api.Handle("/orders", submit).Methods(http.MethodPost)
	api.Handle("/orders", auth(d.Orders.List)).Methods(http.MethodGet)
	api.Handle("/orders/stats/summary", auth(d.Orders.Stats)).Methods(http.MethodGet)
	api.HandleFunc("/orders/track/{orderNumber}", d.Tracking.Track).Methods(http.MethodGet)
	api.HandleFunc("/orders/history", d.Tracking.History).Methods(http.MethodGet)
	api.Handle("/orders/{id:[0-9]+}", auth(d.Orders.Get)).Methods(http.MethodGet)
	api.Handle("/orders/{id:[0-9]+}/status", auth(d.Orders.UpdateStatus)).Methods(http.MethodPatch)

	api.Handle("/system-admin/businesses", auth(d.Admin.Businesses)).Methods(http.MethodGet)
	api.Handle("/system-admin/stats", auth(d.Admin.Stats)).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	// CORS sits outside the router so preflight requests never reach route matching.
	var handler http.Handler = r
	handler = RecoveryMiddleware(d.Logger)(handler)
	handler = LoggingMiddleware(d.Logger)(handler)
	handler = CORSMiddleware(d.AllowedOrigins)(handler)
	return handler
}

func health(check func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
