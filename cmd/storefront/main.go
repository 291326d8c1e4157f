package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"storefront-core/internal/api"
	"storefront-core/internal/basket"
	"storefront-core/internal/catalog"
	"storefront-core/internal/config"
	"storefront-core/internal/events"
	"storefront-core/internal/logger"
	"storefront-core/internal/order"
	"storefront-core/internal/presenter"
	"storefront-core/internal/view"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	bus := events.NewBus()
	catalogModel := catalog.NewModel(bus)
	basketModel := basket.NewModel(bus)
	orderModel := order.NewModel(bus)

	client := api.NewClient(cfg.APIURL, cfg.CDNURL, cfg.HTTPTimeout, cfg.APIRateLimit)

	views := presenter.Views{
		Catalog: view.NewHeadlessCatalogView(log),
		Product: view.NewHeadlessProductView(log),
		Basket:  view.NewHeadlessBasketView(log),
		Form:    view.NewHeadlessOrderFormView(log),
		Success: view.NewHeadlessSuccessView(log),
		Modal:   view.NewHeadlessModal(log),
	}

	p := presenter.New(bus, catalogModel, basketModel, orderModel, client, views)
	defer p.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := p.Init(ctx); err != nil {
		log.Fatal("storefront failed to start", zap.Error(err))
	}

	if os.Getenv("DEMO") == "1" {
		runDemo(bus, catalogModel, views.Catalog)
	}

	log.Info("storefront ready", zap.Int("products", len(catalogModel.List())))
}

// runDemo walks the first priced product through the add/remove flow so the
// whole event chain can be observed from the command line.
func runDemo(bus *events.Bus, catalogModel *catalog.Model, catalogView view.CatalogView) {
	log := logger.L()

	var target *catalog.Entry
	for _, entry := range catalogModel.List() {
		if entry.Price != nil {
			target = entry
			break
		}
	}
	if target == nil {
		log.Warn("demo: no priced products in catalog")
		return
	}

	bus.Publish(view.PreviewRequested{ProductID: target.ID})
	bus.Publish(view.AddRequested{ProductID: target.ID})
	bus.Publish(view.BasketOpenRequested{})
	bus.Publish(view.RemoveRequested{ProductID: target.ID})
	bus.Publish(view.ModalCloseRequested{})

	log.Info("demo finished", zap.String("product", target.Title))
	os.Stdout.WriteString(catalogView.Render())
}
