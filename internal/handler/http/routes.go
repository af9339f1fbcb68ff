package http

import (
	"net/http"

	"github.com/MKhiriev/go-accountant/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(withLogging)
	router.Use(withGZip)
	router.Use(h.withMetrics)
	router.Use(h.withRateLimit())
	router.Use(middleware.Recoverer)

	router.Get("/health", h.health)
	router.Get("/api/version", h.getAppVersion)
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		// routes without authorization
		r.Group(func(r chi.Router) {
			r.Post("/auth/register", h.register)
			r.Post("/auth/login", h.login)
			r.Post("/auth/firebase", h.firebaseSignIn)
			// the account password inside the body proves ownership
			r.Post("/auth/link-google", h.linkGoogle)
		})

		// routes behind the bearer token
		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/auth/me", h.profile)
			r.Put("/auth/me", h.updateProfile)
			r.Post("/auth/logout", h.logout)
			r.Post("/auth/unlink-google", h.unlinkGoogle)
			r.Get("/auth/providers", h.providers)

			r.Post("/sync", h.sync)
			r.Get("/sync/status", h.syncStatus)

			r.Route("/transactions", func(r chi.Router) {
				r.Get("/", h.listTransactions)
				r.Post("/", h.createTransaction)
				r.Post("/bulk", h.bulkCreateTransactions)
				r.Get("/{serverID}", h.getRecord(models.KindTransaction))
				r.Put("/{serverID}", h.updateTransaction)
				r.Delete("/{serverID}", h.deleteTransaction)
			})

			r.Route("/wallets", func(r chi.Router) {
				r.Get("/default", h.defaultWallet)
				h.resourceRoutes(models.KindWallet)(r)
			})

			r.Route("/categories", h.resourceRoutes(models.KindCategory))
			r.Route("/budgets", h.resourceRoutes(models.KindBudget))
			r.Route("/objectives", h.resourceRoutes(models.KindObjective))
			r.Route("/payment-methods", h.resourceRoutes(models.KindPaymentMethod))

			r.Route("/recurring", func(r chi.Router) {
				r.Post("/process", h.processRecurring)
				h.resourceRoutes(models.KindRecurringTransaction)(r)
			})

			r.Route("/associated-titles", func(r chi.Router) {
				r.Get("/", h.listTitles)
				r.Post("/", h.upsertTitle)
				r.Get("/match", h.matchTitle)
				r.Delete("/{titleID}", h.deleteTitle)
			})

			r.Route("/exchange-rates", func(r chi.Router) {
				r.Get("/", h.listRates)
				r.Post("/", h.upsertRate)
				r.Get("/convert", h.convertAmount)
				r.Post("/refresh", h.refreshRates)
				r.Delete("/{rateID}", h.deleteRate)
			})

			r.Route("/iap", func(r chi.Router) {
				r.Post("/verify", h.verifyPurchase)
				r.Post("/restore", h.restorePurchases)
				r.Get("/status", h.subscriptionStatus)
			})
		})
	})

	return router
}

// resourceRoutes mounts the generic CRUD surface of one synced entity kind.
// Kinds with extra endpoints (transactions, wallets, recurring) add them
// before mounting.
func (h *Handler) resourceRoutes(kind models.EntityKind) func(chi.Router) {
	return func(r chi.Router) {
		r.Get("/", h.listRecords(kind))
		r.Post("/", h.createRecord(kind))
		r.Get("/{serverID}", h.getRecord(kind))
		r.Put("/{serverID}", h.updateRecord(kind))
		r.Delete("/{serverID}", h.deleteRecord(kind))
	}
}
