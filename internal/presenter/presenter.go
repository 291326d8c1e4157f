// Package presenter wires the models, views and API client together. It is
// the only component that calls the API and the only one that decides which
// modal content is visible.
package presenter

import (
	"context"
	"fmt"

	"storefront-core/internal/api"
	"storefront-core/internal/basket"
	"storefront-core/internal/catalog"
	"storefront-core/internal/events"
	"storefront-core/internal/logger"
	"storefront-core/internal/order"
	"storefront-core/internal/view"

	"go.uber.org/zap"
)

// Modal names the content currently hosted by the modal surface.
type Modal string

const (
	ModalNone    Modal = ""
	ModalProduct Modal = "product"
	ModalBasket  Modal = "basket"
	ModalOrder   Modal = "order"
	ModalSuccess Modal = "success"
)

const (
	msgCatalogLoadFailed = "failed to load products"
	msgOrderSubmitFailed = "failed to submit order"
)

// API is the slice of the remote client the presenter needs.
type API interface {
	FetchProducts(ctx context.Context) (*api.ProductsResponse, error)
	CreateOrder(ctx context.Context, sub order.Submission) (*api.CreateOrderResult, error)
}

// Views bundles the render-layer collaborators.
type Views struct {
	Catalog view.CatalogView
	Product view.ProductView
	Basket  view.BasketView
	Form    view.OrderFormView
	Success view.SuccessView
	Modal   view.ModalHost
}

// Presenter sequences API calls and keeps the three models and their views
// consistent. All event handling runs on the publishing goroutine; the bus
// delivers synchronously, so the catalog-then-basket mutation order inside a
// handler is observed atomically by the views.
type Presenter struct {
	bus     *events.Bus
	catalog *catalog.Model
	basket  *basket.Model
	order   *order.Model
	api     API
	views   Views

	ctx          context.Context
	currentModal Modal
	submitting   bool
	subs         []events.Subscription
}

func New(bus *events.Bus, catalogModel *catalog.Model, basketModel *basket.Model,
	orderModel *order.Model, client API, views Views) *Presenter {

	p := &Presenter{
		bus:     bus,
		catalog: catalogModel,
		basket:  basketModel,
		order:   orderModel,
		api:     client,
		views:   views,
		ctx:     context.Background(),
	}
	p.bindEvents()
	return p
}

func (p *Presenter) bindEvents() {
	p.subs = append(p.subs,
		// Model change events.
		events.On(p.bus, p.handleCatalogLoaded),
		events.On(p.bus, p.handleProductAdded),
		events.On(p.bus, p.handleProductRemoved),
		events.On(p.bus, p.handleBasketChanged),
		events.On(p.bus, p.handleBasketCleared),
		events.On(p.bus, p.handleFormValidated),
		events.On(p.bus, p.handleErrorShown),

		// View intent events.
		events.On(p.bus, p.handlePreviewRequested),
		events.On(p.bus, p.handleAddRequested),
		events.On(p.bus, p.handleRemoveRequested),
		events.On(p.bus, p.handleBasketOpenRequested),
		events.On(p.bus, p.handleOrderStartRequested),
		events.On(p.bus, p.handleOrderFieldChanged),
		events.On(p.bus, p.handleOrderSubmitRequested),
		events.On(p.bus, p.handleModalCloseRequested),
	)
}

// Init loads the catalog and remembers ctx for the network calls triggered by
// later bus events.
func (p *Presenter) Init(ctx context.Context) error {
	p.ctx = ctx
	return p.LoadCatalog(ctx)
}

// Close drops the presenter's bus subscriptions.
func (p *Presenter) Close() {
	for _, sub := range p.subs {
		p.bus.Unsubscribe(sub)
	}
	p.subs = nil
}

// CurrentModal reports which modal content is visible.
func (p *Presenter) CurrentModal() Modal { return p.currentModal }

// LoadCatalog fetches the products and rebuilds both models from the
// response. On failure the catalog view shows an inline error in place of
// the grid.
func (p *Presenter) LoadCatalog(ctx context.Context) error {
	ctx = logger.WithInteraction(ctx)
	log := logger.FromCtx(ctx)

	p.views.Catalog.ShowLoading()

	resp, err := p.api.FetchProducts(ctx)
	if err != nil {
		log.Error("catalog load failed", zap.Error(err))
		p.views.Catalog.ShowError(msgCatalogLoadFailed)
		return fmt.Errorf("load catalog: %w", err)
	}

	log.Info("catalog loaded", zap.Int("products", len(resp.Items)))
	p.catalog.Load(resp.Items)
	return nil
}

// --- model change handlers ---

func (p *Presenter) handleCatalogLoaded(e catalog.Loaded) {
	// Rebuild the basket from the catalog so no stale membership survives a
	// reload.
	p.basket.SyncFrom(e.Entries)
	p.views.Catalog.RenderProducts(e.Entries)
}

func (p *Presenter) handleProductAdded(e catalog.Added) {
	if err := p.basket.Add(e.Entry); err != nil {
		logger.L().Error("basket rejected catalog entry",
			zap.String("product_id", e.Entry.ID), zap.Error(err))
		return
	}
	p.refreshProductModal(e.Entry)
}

func (p *Presenter) handleProductRemoved(e catalog.Removed) {
	p.basket.Remove(e.ProductID)
	if entry, err := p.catalog.Get(e.ProductID); err == nil {
		p.refreshProductModal(entry)
	}
}

func (p *Presenter) handleBasketChanged(e basket.Changed) {
	p.views.Catalog.UpdateBasketCount(e.Basket.Count)
	if p.currentModal == ModalBasket {
		p.views.Basket.UpdateBasket(e.Basket)
		p.views.Modal.SetContent(p.views.Basket.Render())
	}
}

func (p *Presenter) handleBasketCleared(e basket.Cleared) {
	p.views.Catalog.UpdateBasketCount(0)
}

func (p *Presenter) handleFormValidated(e order.Validated) {
	if p.currentModal == ModalOrder {
		p.views.Form.SetValid(e.IsValid)
	}
}

func (p *Presenter) handleErrorShown(e events.ErrorShown) {
	p.views.Catalog.ShowError(e.Message)
}

// --- view intent handlers ---

func (p *Presenter) handlePreviewRequested(e view.PreviewRequested) {
	entry, err := p.catalog.Get(e.ProductID)
	if err != nil {
		logger.L().Warn("preview for unknown product", zap.String("product_id", e.ProductID))
		return
	}
	p.views.Product.SetProduct(entry)
	p.views.Modal.SetContent(p.views.Product.Render())
	p.views.Modal.Open()
	p.currentModal = ModalProduct
}

// handleAddRequested runs the add-to-basket sequence: catalog flag first,
// then basket (driven by the catalog's Added event), then views. The catalog
// must mutate before the basket so the two models agree within a single
// synchronous dispatch.
func (p *Presenter) handleAddRequested(e view.AddRequested) {
	if err := p.catalog.MarkInBasket(e.ProductID, true); err != nil {
		logger.L().Warn("add to basket refused",
			zap.String("product_id", e.ProductID), zap.Error(err))
		p.bus.Publish(events.ErrorShown{Message: err.Error()})
	}
}

func (p *Presenter) handleRemoveRequested(e view.RemoveRequested) {
	if err := p.catalog.MarkInBasket(e.ProductID, false); err != nil {
		logger.L().Warn("remove from basket refused",
			zap.String("product_id", e.ProductID), zap.Error(err))
	}
}

func (p *Presenter) handleBasketOpenRequested(view.BasketOpenRequested) {
	p.views.Basket.UpdateBasket(p.basket.Snapshot())
	p.views.Modal.SetContent(p.views.Basket.Render())
	p.views.Modal.Open()
	p.currentModal = ModalBasket
}

func (p *Presenter) handleOrderStartRequested(view.OrderStartRequested) {
	if p.basket.IsEmpty() {
		p.bus.Publish(events.ErrorShown{Message: "basket is empty"})
		return
	}
	p.views.Form.SetStep(p.order.Step())
	p.views.Form.SetValid(p.order.StepValid(p.order.Step()))
	p.views.Modal.SetContent(p.views.Form.Render())
	p.views.Modal.Open()
	p.currentModal = ModalOrder
}

func (p *Presenter) handleOrderFieldChanged(e view.OrderFieldChanged) {
	switch e.Field {
	case "payment":
		method, err := order.ParsePayment(e.Value)
		if err != nil {
			logger.L().Warn("unknown payment method", zap.String("value", e.Value))
			return
		}
		p.order.SetPayment(method)
	case "address":
		p.order.SetAddress(e.Value)
	case "email":
		p.order.SetEmail(e.Value)
	case "phone":
		p.order.SetPhone(e.Value)
	default:
		logger.L().Warn("unknown order field", zap.String("field", e.Field))
	}
}

// handleOrderSubmitRequested serves the form's single action button: on the
// delivery step it advances, on the contacts step it submits.
func (p *Presenter) handleOrderSubmitRequested(view.OrderSubmitRequested) {
	if p.order.Step() == order.StepDelivery {
		if errs := p.order.Advance(); len(errs) > 0 {
			p.views.Form.SetErrors(errs)
			return
		}
		p.views.Form.SetStep(p.order.Step())
		p.views.Modal.SetContent(p.views.Form.Render())
		return
	}
	p.SubmitOrder(p.ctx)
}

func (p *Presenter) handleModalCloseRequested(view.ModalCloseRequested) {
	// Closing the checkout form abandons the in-progress order.
	if p.currentModal == ModalOrder {
		p.order.Reset()
	}
	p.views.Modal.Close()
	p.currentModal = ModalNone
}

// SubmitOrder snapshots the order and basket, sends them, and on success
// clears all three models and shows the success view. A transport failure
// leaves every model untouched so the user can retry without re-entering
// anything. A submission already in flight blocks further attempts.
func (p *Presenter) SubmitOrder(ctx context.Context) {
	if p.submitting {
		logger.L().Warn("submission already in flight, ignoring")
		return
	}

	if errs := p.order.Submit(); len(errs) > 0 {
		p.views.Form.SetErrors(errs)
		return
	}

	p.submitting = true
	defer func() { p.submitting = false }()

	ctx = logger.WithInteraction(ctx)
	log := logger.FromCtx(ctx)

	sub := p.order.Submission(p.basket.Total(), p.basket.Snapshot().ProductIDs())

	result, err := p.api.CreateOrder(ctx, sub)
	if err != nil {
		log.Error("order submission failed", zap.Error(err))
		p.bus.Publish(events.ErrorShown{Message: msgOrderSubmitFailed})
		return
	}

	log.Info("order submitted",
		zap.String("order_id", result.ID), zap.Float64("total", sub.Total))

	p.basket.Clear()
	p.catalog.ClearBasket()
	p.order.Reset()

	p.views.Success.SetTotal(sub.Total)
	p.views.Modal.SetContent(p.views.Success.Render())
	p.views.Modal.Open()
	p.currentModal = ModalSuccess
}

func (p *Presenter) refreshProductModal(entry *catalog.Entry) {
	if p.currentModal == ModalProduct {
		p.views.Product.SetProduct(entry)
		p.views.Modal.SetContent(p.views.Product.Render())
	}
}
