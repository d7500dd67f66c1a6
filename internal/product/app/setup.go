// Package app contains the application setup for the product dashboard.
package app

import (
	"log/slog"
	"net/http"

	"github.com/abgdnv/productdash/internal/config"
	"github.com/abgdnv/productdash/internal/product/service"
	"github.com/abgdnv/productdash/internal/product/store"
	"github.com/abgdnv/productdash/internal/product/transport/rest"
	"github.com/abgdnv/productdash/pkg/server"
	"github.com/go-chi/chi/v5"
)

// operationName names the server spans of the dashboard API.
const operationName = "product-dashboard"

type Dependencies struct {
	Controller service.ProductListController
	Logger     *slog.Logger
}

// SetupDependencies builds the store from the configured catalog and the controller on top of it.
func SetupDependencies(catalog config.CatalogConfig, logger *slog.Logger) *Dependencies {
	repo := store.NewInMemoryStore(catalog.Products())
	logger.Info("Product catalog seeded", slog.Int("count", repo.Count()))

	return &Dependencies{
		Controller: service.NewController(repo, logger),
		Logger:     logger,
	}
}

// SetupHttpHandler initializes the router and routes for the dashboard.
// Used by E2E tests to set up the HTTP server with the necessary routes and middleware.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	rest.NewHandler(deps.Controller, deps.Logger).RegisterRoutes(mux)
}

// SetupHttpServer creates and configures the HTTP server for the dashboard.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	return server.NewHTTPServer(cfg.HTTPServer, operationName, SetupHttpHandler(deps))
}
