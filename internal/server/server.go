package server

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"homelytics/internal/design"
)

// Options tune the router and the http.Server around it.
type Options struct {
	Port           string
	AllowedOrigins []string
	// RenderTimeout bounds a single generate call; write timeouts are derived from it.
	RenderTimeout time.Duration
	RatePerSecond float64
	RateBurst     int
}

// New constructs the HTTP server with routes and middleware.
func New(opts Options, designHandler design.Handler) *http.Server {
	srv := &http.Server{
		Addr:         ":" + opts.Port,
		Handler:      Router(opts, designHandler),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: writeTimeout(opts.RenderTimeout),
		IdleTimeout:  60 * time.Second,
	}

	log.Println("server ready on", srv.Addr)
	return srv
}

// Router builds the chi router without binding a listener.
func Router(opts Options, designHandler design.Handler) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins(opts.AllowedOrigins),
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", designHandler.Health)
		r.With(limit(opts.RatePerSecond, opts.RateBurst)).Post("/generate", designHandler.Generate)
		r.Post("/estimate", designHandler.Estimate)
		r.Post("/suggest-furniture", designHandler.SuggestFurniture)
		r.Get("/events", designHandler.StreamEvents)
	})

	return router
}

// limit guards the model call with a single process-wide token bucket.
// A non-positive rate disables limiting.
func limit(perSecond float64, burst int) func(http.Handler) http.Handler {
	if perSecond <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(perSecond), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "too many generation requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeTimeout(render time.Duration) time.Duration {
	if render <= 0 {
		return 2 * time.Minute
	}
	// upload handling and response encoding on top of the model call
	return render + 30*time.Second
}

func origins(list []string) []string {
	if len(list) == 0 {
		return []string{"*"}
	}
	return list
}
