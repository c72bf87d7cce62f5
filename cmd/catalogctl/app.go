package main

import (
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/moby/locker"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/murkotick/product-sync-service/internal/app/product/actions"
	"github.com/murkotick/product-sync-service/internal/app/product/contracts"
	"github.com/murkotick/product-sync-service/internal/app/product/domain"
	"github.com/murkotick/product-sync-service/internal/app/product/pipeline"
	"github.com/murkotick/product-sync-service/internal/app/product/queries/list_products"
	"github.com/murkotick/product-sync-service/internal/app/product/repo"
	"github.com/murkotick/product-sync-service/internal/app/product/usecases/create_product"
	"github.com/murkotick/product-sync-service/internal/app/product/usecases/delete_product"
	shared "github.com/murkotick/product-sync-service/internal/app/product/usecases/shared"
	"github.com/murkotick/product-sync-service/internal/app/product/usecases/update_product"
	"github.com/murkotick/product-sync-service/internal/config"
	"github.com/murkotick/product-sync-service/internal/pkg/clock"
	committer "github.com/murkotick/product-sync-service/internal/pkg/committer"
	"github.com/murkotick/product-sync-service/internal/pkg/logger"
	"github.com/murkotick/product-sync-service/internal/pkg/metrics"
	"github.com/murkotick/product-sync-service/internal/pkg/shopify"
)

// catalog is everything the CLI needs from the remote.
type catalog interface {
	contracts.CatalogClient
	contracts.CatalogReader
	contracts.CatalogCreator
}

type app struct {
	dispatcher *actions.Dispatcher
	products   *list_products.Handler
	reader     contracts.CatalogReader
	out        io.Writer
}

// errActionFailed is returned after an error outcome has been printed.
var errActionFailed = errors.New("action failed")

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, err
	}

	client, err := shopify.New(shopify.Config{
		Shop:        cfg.Shopify.Shop,
		AccessToken: cfg.Shopify.AccessToken,
		APIVersion:  cfg.Shopify.APIVersion,
		RateLimit:   cfg.Shopify.RateLimit,
	}, log.Named("shopify"))
	if err != nil {
		return nil, err
	}
	return buildApp(client, cfg.ImageConcurrency, log, os.Stdout), nil
}

func buildApp(c catalog, concurrency int, log *zap.Logger, out io.Writer) *app {
	m := metrics.New(prometheus.NewRegistry())
	rec := &shared.Recorder{
		RunRepo:    repo.NewRunRepo(),
		OutboxRepo: repo.NewOutboxRepo(),
		Committer:  committer.Nop{},
		Metrics:    m,
		Logger:     log,
	}
	clk := clock.RealClock{}
	locks := locker.New()
	p := pipeline.New(c, pipeline.WithConcurrency(concurrency), pipeline.WithLogger(log), pipeline.WithMetrics(m))

	return &app{
		dispatcher: actions.NewDispatcher(
			update_product.NewInteractor(c, p, locks, rec, clk, log),
			delete_product.NewInteractor(c, locks, rec, clk, log),
			create_product.NewInteractor(c, rec, clk, log),
			log,
		),
		products: list_products.NewHandler(c),
		reader:   c,
		out:      out,
	}
}

func (a *app) print(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// report prints the action reply and turns an error outcome into an error.
func (a *app) report(resp actions.Response) error {
	if err := a.print(resp.Body); err != nil {
		return err
	}
	if resp.Body.Status != string(domain.StatusSuccess) {
		return errActionFailed
	}
	return nil
}
