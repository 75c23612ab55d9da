package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/shelfline/shelfline-server/internal/catalog"
	"github.com/shelfline/shelfline-server/internal/config"
	"github.com/shelfline/shelfline-server/internal/enrich"
	"github.com/shelfline/shelfline-server/internal/logger"
	"github.com/shelfline/shelfline-server/internal/metrics"
	"github.com/shelfline/shelfline-server/internal/recordstore"
	"github.com/shelfline/shelfline-server/internal/validation"
)

// ProvideMetrics provides the Prometheus metrics registry.
func ProvideMetrics(i do.Injector) (*metrics.Registry, error) {
	return metrics.NewRegistry(), nil
}

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideRecordStoreClient provides the client for the external books CRUD service.
func ProvideRecordStoreClient(i do.Injector) (*recordstore.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	reg := do.MustInvoke[*metrics.Registry](i)

	client := recordstore.New(recordstore.Config{
		BaseURL:           cfg.Catalog.RecordStoreURL,
		Timeout:           cfg.Catalog.RequestTimeout,
		RequestsPerSecond: cfg.Catalog.RequestsPerSecond,
		Burst:             cfg.Catalog.Burst,
	}, log.Logger, reg)

	log.Info("Record store client ready", "base_url", cfg.Catalog.RecordStoreURL)

	return client, nil
}

// ProvideEnrichEngine provides the metadata enrichment engine.
func ProvideEnrichEngine(i do.Injector) (*enrich.Engine, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return enrich.NewEngine(storeHandle.Store, log.Logger), nil
}

// ProvideCatalog provides the catalog view-model service with its persisted
// state loaded and an initial book list fetched. A record store outage at
// startup is not fatal: the catalog starts empty and the next refresh
// recovers.
func ProvideCatalog(i do.Injector) (*catalog.Catalog, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	client := do.MustInvoke[*recordstore.Client](i)
	engine := do.MustInvoke[*enrich.Engine](i)
	reg := do.MustInvoke[*metrics.Registry](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx := context.Background()
	cat := catalog.New(ctx, client, storeHandle.Store, engine, reg, log.Logger)

	if err := cat.Refresh(ctx); err != nil {
		log.Warn("Initial catalog fetch failed, starting with empty list", "error", err)
	}

	return cat, nil
}
