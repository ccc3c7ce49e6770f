package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/freshstockhq/freshstock-backend/api/controllers"
	"github.com/freshstockhq/freshstock-backend/api/middleware"
	"github.com/freshstockhq/freshstock-backend/api/responses"
	"github.com/freshstockhq/freshstock-backend/internal/auditlog"
	"github.com/freshstockhq/freshstock-backend/internal/items"
	"github.com/freshstockhq/freshstock-backend/pkg/config"
	"github.com/freshstockhq/freshstock-backend/pkg/db"
	pkgerrors "github.com/freshstockhq/freshstock-backend/pkg/errors"
	"github.com/freshstockhq/freshstock-backend/pkg/logger"
	"github.com/freshstockhq/freshstock-backend/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	ItemService items.Service
	LogService  auditlog.Service
	Metrics     prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		responses.WriteError(req.Context(), logg, w,
			pkgerrors.New(pkgerrors.CodeNotFound, "route not found"))
	})

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, redisPinger(deps.Redis)))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Idempotency(idempotencyStore(deps.Redis), logg))

			r.Route("/items", func(r chi.Router) {
				r.Get("/", controllers.ListItems(deps.ItemService, logg))
				r.Post("/", controllers.CreateItem(deps.ItemService, logg))
				r.Get("/search", controllers.SearchItems(deps.ItemService, logg))
				r.Put("/{itemId}", controllers.UpdateItem(deps.ItemService, logg))
				r.Delete("/{itemId}", controllers.DeleteItem(deps.ItemService, logg))
			})
		})

		r.Get("/logs", controllers.ListLogs(deps.LogService, logg))
	})

	return r
}

// redisPinger and idempotencyStore keep a typed-nil *redis.Client from
// leaking into interface values.
func redisPinger(client *redis.Client) redis.Pinger {
	if client == nil {
		return nil
	}
	return client
}

func idempotencyStore(client *redis.Client) redis.IdempotencyStore {
	if client == nil {
		return nil
	}
	return client
}
