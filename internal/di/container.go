// Package di provides dependency injection configuration for the Shelfline server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/shelfline/shelfline-server/internal/catalog"
	"github.com/shelfline/shelfline-server/internal/config"
	"github.com/shelfline/shelfline-server/internal/di/providers"
	"github.com/shelfline/shelfline-server/internal/enrich"
	"github.com/shelfline/shelfline-server/internal/logger"
	"github.com/shelfline/shelfline-server/internal/metrics"
	"github.com/shelfline/shelfline-server/internal/recordstore"
	"github.com/shelfline/shelfline-server/internal/validation"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideMetrics)
	do.Provide(injector, providers.ProvideValidator)

	// Persistence and remote layer
	do.Provide(injector, providers.ProvideStore)
	do.Provide(injector, providers.ProvideRecordStoreClient)
	do.Provide(injector, providers.ProvideEnrichEngine)

	// Catalog service
	do.Provide(injector, providers.ProvideCatalog)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns once the server is running.
// This triggers lazy initialization of the full dependency graph.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[*metrics.Registry](injector)
	_ = do.MustInvoke[*validation.Validator](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*recordstore.Client](injector)
	_ = do.MustInvoke[*enrich.Engine](injector)
	_ = do.MustInvoke[*catalog.Catalog](injector)
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
