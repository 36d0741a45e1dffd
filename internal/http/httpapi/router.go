package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"nutritrack/internal/http/handlers"
	"nutritrack/internal/infra"
	"nutritrack/internal/middleware"
)

// Options configures the cross-cutting middleware stack.
type Options struct {
	Logger         infra.Logger
	AllowedOrigins []string
	DefaultLocale  string
	CountryLookup  middleware.CountryLookup
	RateLimit      int
	Realtime       http.HandlerFunc
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	c := cors.New(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "X-Locale", "X-Request-ID", "Accept-Language"},
		ExposedHeaders:   []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	})

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
		middleware.Logger(opts.Logger),
		chimw.Recoverer,
		c.Handler,
	)

	// Health
	r.Get("/v1/healthz", app.Health)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(opts.RateLimit, time.Minute))

		r.Get("/profile", app.GetProfile)
		r.Put("/profile", app.PutProfile)
		r.Get("/recommendations", app.Recommendations)

		r.Route("/search", func(r chi.Router) {
			r.Get("/barcode/{barcode}", app.SearchBarcode)
			r.Get("/name", app.SearchName)
		})

		r.Route("/consumption", func(r chi.Router) {
			r.Post("/add", app.AddConsumption)
			r.Delete("/", app.DeleteDay)
			r.Delete("/{id}", app.DeleteEntry)
		})

		r.Get("/daily-summary", app.DailySummary)
		r.Get("/daily-entries", app.DailyEntries)
		r.Get("/history", app.History)
		r.Get("/history/export", app.HistoryExport)

		if opts.Realtime != nil {
			r.Get("/ws", opts.Realtime)
		}
	})

	return r
}
