package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/campusops/stockroom-backend/api/controllers"
	"github.com/campusops/stockroom-backend/api/middleware"
	"github.com/campusops/stockroom-backend/internal/indents"
	"github.com/campusops/stockroom-backend/internal/inventory"
	"github.com/campusops/stockroom-backend/internal/requests"
	"github.com/campusops/stockroom-backend/internal/stock"
	"github.com/campusops/stockroom-backend/pkg/config"
	"github.com/campusops/stockroom-backend/pkg/db"
	"github.com/campusops/stockroom-backend/pkg/enums"
	"github.com/campusops/stockroom-backend/pkg/logger"
	"github.com/campusops/stockroom-backend/pkg/metrics"
	pkgredis "github.com/campusops/stockroom-backend/pkg/redis"
)

type Dependencies struct {
	Config  *config.Config
	Logger  *logger.Logger
	DB      db.Pinger
	Redis   *pkgredis.Client
	Metrics *metrics.HTTPMetrics

	Inventory inventory.Service
	Stock     stock.Service
	Requests  requests.Service
	Indents   indents.Service
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.Metrics),
		middleware.CORS(),
	)

	var store pkgredis.IdempotencyStore
	if deps.Redis != nil {
		store = deps.Redis
	}
	idempotent := middleware.Idempotency(store, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, redisPinger(deps.Redis), logg))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/central_stock", func(r chi.Router) {
		r.With(idempotent).Post("/stocks", controllers.StockCreate(deps.Stock, logg))
		r.Get("/stocks/{stockId}", controllers.StockGet(deps.Stock, logg))
		r.With(idempotent).Post("/requests/{requestId}/issue", controllers.RequestIssue(deps.Requests, logg))
		r.With(idempotent).Post("/requests/{requestId}/reject", controllers.RequestReject(deps.Requests, logg))
		r.Get("/issued", controllers.IssuedItems(deps.Requests, logg))
		r.Get("/inventory", controllers.InventoryDump(deps.Inventory, logg))
	})

	r.Route("/inventory", func(r chi.Router) {
		r.With(idempotent).Post("/requests", controllers.RequestCreate(deps.Requests, logg))
		r.Get("/requests/{requestId}/{campus}", controllers.RequestGet(deps.Requests, logg))
		r.Get("/history/{campus}", controllers.RequestHistory(deps.Requests, logg))
	})

	r.Route("/vc", func(r chi.Router) {
		r.Get("/requests", controllers.RequestsAll(deps.Requests, logg))
		r.Get("/requests/approved", controllers.RequestsByStatus(deps.Requests, enums.RequestStatusApproved, logg))
		r.Get("/requests/rejected", controllers.RequestsByStatus(deps.Requests, enums.RequestStatusRejected, logg))
		r.Get("/requests/pending", controllers.RequestsByStatus(deps.Requests, enums.RequestStatusPending, logg))
		r.Get("/counts", controllers.RequestCounts(deps.Requests, logg))
	})

	r.Route("/indents", func(r chi.Router) {
		r.With(idempotent).Post("/non-consumable", controllers.IndentNonConsumableCreate(deps.Indents, logg))
		r.With(idempotent).Post("/consumable", controllers.IndentConsumableCreate(deps.Indents, logg))
		r.Get("/{indentId}", controllers.IndentGet(deps.Indents, logg))
	})

	return r
}

// redisPinger avoids handing HealthReady a typed nil.
func redisPinger(client *pkgredis.Client) pkgredis.Pinger {
	if client == nil {
		return nil
	}
	return client
}
