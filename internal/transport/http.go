package transport

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	restHandler "github.com/SankurTW/Restaurant-Management-System/internal/handler/http"
	"github.com/SankurTW/Restaurant-Management-System/internal/inventory"
	"github.com/SankurTW/Restaurant-Management-System/internal/menu"
	"github.com/SankurTW/Restaurant-Management-System/internal/notifier"
	"github.com/SankurTW/Restaurant-Management-System/internal/order"
	"github.com/SankurTW/Restaurant-Management-System/internal/payment"
	"github.com/SankurTW/Restaurant-Management-System/internal/report"
	"github.com/SankurTW/Restaurant-Management-System/internal/user"
)

// NewRouter builds the full route table. Every repository shares the one
// connection pool; role checks are attached per route by the handlers.
func NewRouter(pool *pgxpool.Pool, mailer notifier.Notifier) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	menuSvc := menu.NewService(menu.NewRepository(pool))
	inventorySvc := inventory.NewService(inventory.NewRepository(pool))
	orderSvc := order.NewService(order.NewRepository(pool), mailer)
	paymentSvc := payment.NewService(payment.NewRepository(pool))
	userSvc := user.NewService(user.NewRepository(pool))
	reportSvc := report.NewService(report.NewRepository(pool))

	r.Route("/api", func(api chi.Router) {
		restHandler.NewMenuHandler(menuSvc).RegisterRoutes(api)
		restHandler.NewInventoryHandler(inventorySvc).RegisterRoutes(api)
		restHandler.NewOrderHandler(orderSvc).RegisterRoutes(api)
		restHandler.NewPaymentHandler(paymentSvc).RegisterRoutes(api)
		restHandler.NewUserHandler(userSvc).RegisterRoutes(api)
		restHandler.NewReportHandler(reportSvc).RegisterRoutes(api)
	})

	return r
}

// requestLogger emits one structured line per completed request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		log.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	})
}
