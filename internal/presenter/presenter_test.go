package presenter

import (
	"context"
	"errors"
	"testing"

	"storefront-core/internal/api"
	"storefront-core/internal/basket"
	"storefront-core/internal/catalog"
	"storefront-core/internal/events"
	"storefront-core/internal/order"
	"storefront-core/internal/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAPI is a mock implementation of the API interface
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) FetchProducts(ctx context.Context) (*api.ProductsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.ProductsResponse), args.Error(1)
}

func (m *MockAPI) CreateOrder(ctx context.Context, sub order.Submission) (*api.CreateOrderResult, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.CreateOrderResult), args.Error(1)
}

// Recording view stubs.

type stubCatalogView struct {
	rendered []*catalog.Entry
	count    int
	errors   []string
	loading  bool
}

func (v *stubCatalogView) RenderProducts(entries []*catalog.Entry) {
	v.rendered = entries
	v.loading = false
}
func (v *stubCatalogView) UpdateBasketCount(count int) { v.count = count }
func (v *stubCatalogView) ShowLoading() { v.loading = true }
func (v *stubCatalogView) ShowError(msg string) { v.errors = append(v.errors, msg) }
func (v *stubCatalogView) Render() string { return "catalog" }
func (v *stubCatalogView) Destroy() {}

type stubProductView struct {
	entry *catalog.Entry
}

func (v *stubProductView) SetProduct(entry *catalog.Entry) { v.entry = entry }
func (v *stubProductView) Render() string { return "product" }
func (v *stubProductView) Destroy() {}

type stubBasketView struct {
	snapshot basket.Snapshot
	updates  int
}

func (v *stubBasketView) UpdateBasket(s basket.Snapshot) { v.snapshot = s; v.updates++ }
func (v *stubBasketView) Render() string { return "basket" }
func (v *stubBasketView) Destroy() {}

type stubFormView struct {
	step  order.Step
	valid bool
	errs  []order.FieldError
}

func (v *stubFormView) SetStep(step order.Step) { v.step = step; v.errs = nil }
func (v *stubFormView) SetValid(valid bool) { v.valid = valid }
func (v *stubFormView) SetErrors(errs []order.FieldError) { v.errs = errs }
func (v *stubFormView) Render() string { return "form" }
func (v *stubFormView) Destroy() {}

type stubSuccessView struct {
	total float64
}

func (v *stubSuccessView) SetTotal(total float64) { v.total = total }
func (v *stubSuccessView) Render() string { return "success" }
func (v *stubSuccessView) Destroy() {}

type stubModal struct {
	open    bool
	content string
}

func (m *stubModal) Open() { m.open = true }
func (m *stubModal) Close() { m.open = false; m.content = "" }
func (m *stubModal) SetContent(c string) { m.content = c }

type fixture struct {
	bus       *events.Bus
	catalog   *catalog.Model
	basket    *basket.Model
	order     *order.Model
	api       *MockAPI
	presenter *Presenter

	catalogView *stubCatalogView
	productView *stubProductView
	basketView  *stubBasketView
	formView    *stubFormView
	successView *stubSuccessView
	modal       *stubModal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		bus:         events.NewBus(),
		api:         &MockAPI{},
		catalogView: &stubCatalogView{},
		productView: &stubProductView{},
		basketView:  &stubBasketView{},
		formView:    &stubFormView{},
		successView: &stubSuccessView{},
		modal:       &stubModal{},
	}
	f.catalog = catalog.NewModel(f.bus)
	f.basket = basket.NewModel(f.bus)
	f.order = order.NewModel(f.bus)
	f.presenter = New(f.bus, f.catalog, f.basket, f.order, f.api, Views{
		Catalog: f.catalogView,
		Product: f.productView,
		Basket:  f.basketView,
		Form:    f.formView,
		Success: f.successView,
		Modal:   f.modal,
	})
	t.Cleanup(f.presenter.Close)
	return f
}

func price(v float64) *float64 { return &v }

func catalogResponse() *api.ProductsResponse {
	return &api.ProductsResponse{
		Total: 2,
		Items: []catalog.Product{
			{ID: "p1", Title: "Backend anti-stress", Category: catalog.CategorySoft, Price: price(1000)},
			{ID: "p2", Title: "Hard skills", Category: catalog.CategoryHard, Price: price(1500)},
		},
	}
}

func (f *fixture) loadCatalog(t *testing.T) {
	t.Helper()
	f.api.On("FetchProducts", mock.Anything).Return(catalogResponse(), nil).Once()
	require.NoError(t, f.presenter.Init(context.Background()))
}

// fillValidOrder drives the checkout form to a submittable state through
// intent events.
func (f *fixture) fillValidOrder() {
	f.bus.Publish(view.OrderStartRequested{})
	f.bus.Publish(view.OrderFieldChanged{Field: "payment", Value: "card"})
	f.bus.Publish(view.OrderFieldChanged{Field: "address", Value: "123 Main Street"})
	f.bus.Publish(view.OrderSubmitRequested{}) // advance to contacts
	f.bus.Publish(view.OrderFieldChanged{Field: "email", Value: "a@b.co"})
	f.bus.Publish(view.OrderFieldChanged{Field: "phone", Value: "89261234567"})
}

func TestPresenter_LoadCatalog(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newFixture(t)
		f.loadCatalog(t)

		assert.Len(t, f.catalogView.rendered, 2)
		assert.False(t, f.catalogView.loading)
		assert.Zero(t, f.basket.Count(), "basket rebuilt empty from a fresh catalog")
		f.api.AssertExpectations(t)
	})

	t.Run("FailureShowsInlineError", func(t *testing.T) {
		f := newFixture(t)
		f.api.On("FetchProducts", mock.Anything).Return(nil, errors.New("connection refused")).Once()

		err := f.presenter.Init(context.Background())

		require.Error(t, err)
		assert.Equal(t, []string{"failed to load products"}, f.catalogView.errors)
		assert.Empty(t, f.catalogView.rendered)
	})

	t.Run("ReloadDropsStaleBasketState", func(t *testing.T) {
		f := newFixture(t)
		f.loadCatalog(t)

		f.bus.Publish(view.AddRequested{ProductID: "p1"})
		require.Equal(t, 1, f.basket.Count())

		f.api.On("FetchProducts", mock.Anything).Return(catalogResponse(), nil).Once()
		require.NoError(t, f.presenter.LoadCatalog(context.Background()))

		assert.Zero(t, f.basket.Count())
		assert.Zero(t, f.catalogView.count)
	})
}

func TestPresenter_AddRemoveFlow(t *testing.T) {
	f := newFixture(t)
	f.loadCatalog(t)

	f.bus.Publish(view.AddRequested{ProductID: "p1"})

	assert.Equal(t, 1, f.basket.Count())
	assert.Equal(t, 1000.0, f.basket.Total())
	assert.True(t, f.catalog.InBasket("p1"))
	assert.Equal(t, 1, f.catalogView.count, "header counter follows the basket")

	f.bus.Publish(view.RemoveRequested{ProductID: "p1"})

	assert.Zero(t, f.basket.Count())
	assert.Zero(t, f.basket.Total())
	assert.False(t, f.catalog.InBasket("p1"))
	assert.Zero(t, f.catalogView.count)
}

func TestPresenter_CatalogBasketConsistency(t *testing.T) {
	f := newFixture(t)
	f.loadCatalog(t)

	steps := []events.Event{
		view.AddRequested{ProductID: "p1"},
		view.AddRequested{ProductID: "p2"},
		view.RemoveRequested{ProductID: "p1"},
		view.AddRequested{ProductID: "p2"}, // duplicate, no-op
		view.RemoveRequested{ProductID: "p1"}, // already out, no-op
	}

	for _, step := range steps {
		f.bus.Publish(step)

		// Invariant: flag set iff the id is in the basket, after every step.
		for _, entry := range f.catalog.List() {
			inBasket := false
			for _, id := range f.basket.Snapshot().ProductIDs() {
				if id == entry.ID {
					inBasket = true
				}
			}
			assert.Equal(t, entry.InBasket, inBasket, "catalog and basket disagree about %s", entry.ID)
		}
	}

	assert.Equal(t, []string{"p2"}, f.basket.Snapshot().ProductIDs())
}

func TestPresenter_AddUnpricedProduct(t *testing.T) {
	f := newFixture(t)
	resp := catalogResponse()
	resp.Items = append(resp.Items, catalog.Product{ID: "free", Title: "Priceless", Category: catalog.CategoryOther})
	f.api.On("FetchProducts", mock.Anything).Return(resp, nil).Once()
	require.NoError(t, f.presenter.Init(context.Background()))

	f.bus.Publish(view.AddRequested{ProductID: "free"})

	assert.Zero(t, f.basket.Count())
	assert.False(t, f.catalog.InBasket("free"))
	assert.NotEmpty(t, f.catalogView.errors, "the refusal is surfaced to the user")
}

func TestPresenter_Modals(t *testing.T) {
	t.Run("ProductPreview", func(t *testing.T) {
		f := newFixture(t)
		f.loadCatalog(t)

		f.bus.Publish(view.PreviewRequested{ProductID: "p1"})

		assert.Equal(t, ModalProduct, f.presenter.CurrentModal())
		assert.True(t, f.modal.open)
		require.NotNil(t, f.productView.entry)
		assert.Equal(t, "p1", f.productView.entry.ID)

		// Adding while the preview is open refreshes it.
		f.bus.Publish(view.AddRequested{ProductID: "p1"})
		assert.True(t, f.productView.entry.InBasket)
	})

	t.Run("UnknownPreviewIgnored", func(t *testing.T) {
		f := newFixture(t)
		f.loadCatalog(t)

		f.bus.Publish(view.PreviewRequested{ProductID: "missing"})

		assert.Equal(t, ModalNone, f.presenter.CurrentModal())
		assert.False(t, f.modal.open)
	})

	t.Run("BasketModalRerendersOnChange", func(t *testing.T) {
		f := newFixture(t)
		f.loadCatalog(t)
		f.bus.Publish(view.AddRequested{ProductID: "p1"})

		f.bus.Publish(view.BasketOpenRequested{})
		require.Equal(t, ModalBasket, f.presenter.CurrentModal())
		updatesBefore := f.basketView.updates

		f.bus.Publish(view.AddRequested{ProductID: "p2"})

		assert.Greater(t, f.basketView.updates, updatesBefore, "open basket modal re-renders on basket change")
		assert.Equal(t, 2, f.basketView.snapshot.Count)
	})

	t.Run("CloseResetsAbandonedOrder", func(t *testing.T) {
		f := newFixture(t)
		f.loadCatalog(t)
		f.bus.Publish(view.AddRequested{ProductID: "p1"})

		f.bus.Publish(view.OrderStartRequested{})
		f.bus.Publish(view.OrderFieldChanged{Field: "address", Value: "123 Main Street"})
		f.bus.Publish(view.ModalCloseRequested{})

		assert.Equal(t, ModalNone, f.presenter.CurrentModal())
		assert.Empty(t, f.order.Data().Address, "abandoning checkout resets the order")
	})

	t.Run("OrderStartWithEmptyBasket", func(t *testing.T) {
		f := newFixture(t)
		f.loadCatalog(t)

		f.bus.Publish(view.OrderStartRequested{})

		assert.Equal(t, ModalNone, f.presenter.CurrentModal())
		assert.Equal(t, []string{"basket is empty"}, f.catalogView.errors)
	})
}

func TestPresenter_CheckoutFlow(t *testing.T) {
	t.Run("AdvanceBlockedWhileInvalid", func(t *testing.T) {
		f := newFixture(t)
		f.loadCatalog(t)
		f.bus.Publish(view.AddRequested{ProductID: "p1"})
		f.bus.Publish(view.OrderStartRequested{})

		f.bus.Publish(view.OrderSubmitRequested{})

		assert.Equal(t, order.StepDelivery, f.order.Step())
		assert.NotEmpty(t, f.formView.errs, "field errors surface inline")
	})

	t.Run("SuccessfulSubmission", func(t *testing.T) {
		f := newFixture(t)
		f.loadCatalog(t)
		f.bus.Publish(view.AddRequested{ProductID: "p1"})
		f.bus.Publish(view.AddRequested{ProductID: "p2"})
		f.fillValidOrder()

		f.api.On("CreateOrder", mock.Anything, mock.MatchedBy(func(sub order.Submission) bool {
			return sub.Total == 2500 &&
				len(sub.Items) == 2 &&
				sub.Payment == order.PaymentCard &&
				sub.Phone == "+7 (926) 123-45-67"
		})).Return(&api.CreateOrderResult{ID: "ord-1"}, nil).Once()

		f.bus.Publish(view.OrderSubmitRequested{})

		// Success clears all three models.
		assert.True(t, f.basket.IsEmpty())
		for _, entry := range f.catalog.List() {
			assert.False(t, entry.InBasket)
		}
		assert.Equal(t, order.StepDelivery, f.order.Step())
		assert.Empty(t, f.order.Data().Email)

		// And shows the success view with the submitted total.
		assert.Equal(t, ModalSuccess, f.presenter.CurrentModal())
		assert.Equal(t, 2500.0, f.successView.total)
		assert.Zero(t, f.catalogView.count)
		f.api.AssertExpectations(t)
	})

	t.Run("FailureLeavesStateForRetry", func(t *testing.T) {
		f := newFixture(t)
		f.loadCatalog(t)
		f.bus.Publish(view.AddRequested{ProductID: "p1"})
		f.fillValidOrder()

		errorEvents := 0
		events.On(f.bus, func(events.ErrorShown) { errorEvents++ })

		f.api.On("CreateOrder", mock.Anything, mock.Anything).Return(nil, errors.New("timeout")).Once()

		f.bus.Publish(view.OrderSubmitRequested{})

		assert.Equal(t, 1, errorEvents, "exactly one error event per failed submission")
		assert.Equal(t, 1, f.basket.Count(), "basket untouched")
		assert.True(t, f.catalog.InBasket("p1"))
		assert.Equal(t, "a@b.co", f.order.Data().Email, "order fields kept for retry")
		assert.Equal(t, ModalOrder, f.presenter.CurrentModal())

		// Retry succeeds without re-entering anything.
		f.api.On("CreateOrder", mock.Anything, mock.Anything).Return(&api.CreateOrderResult{ID: "ord-2"}, nil).Once()
		f.bus.Publish(view.OrderSubmitRequested{})

		assert.True(t, f.basket.IsEmpty())
		assert.Equal(t, ModalSuccess, f.presenter.CurrentModal())
		f.api.AssertExpectations(t)
	})

	t.Run("InFlightGuardBlocksDoubleSubmit", func(t *testing.T) {
		f := newFixture(t)
		f.loadCatalog(t)
		f.bus.Publish(view.AddRequested{ProductID: "p1"})
		f.fillValidOrder()

		// The API call itself triggers a second submission, as a double
		// click would while the first request is outstanding.
		f.api.On("CreateOrder", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) { f.presenter.SubmitOrder(context.Background()) }).
			Return(&api.CreateOrderResult{ID: "ord-1"}, nil).Once()

		f.bus.Publish(view.OrderSubmitRequested{})

		f.api.AssertNumberOfCalls(t, "CreateOrder", 1)
	})

	t.Run("UnknownFieldAndPaymentIgnored", func(t *testing.T) {
		f := newFixture(t)
		f.loadCatalog(t)
		f.bus.Publish(view.AddRequested{ProductID: "p1"})
		f.bus.Publish(view.OrderStartRequested{})

		f.bus.Publish(view.OrderFieldChanged{Field: "payment", Value: "cash"})
		f.bus.Publish(view.OrderFieldChanged{Field: "nickname", Value: "x"})

		assert.Equal(t, order.PaymentNone, f.order.Data().Payment)
	})
}

func TestPresenter_FormValidityReachesView(t *testing.T) {
	f := newFixture(t)
	f.loadCatalog(t)
	f.bus.Publish(view.AddRequested{ProductID: "p1"})
	f.bus.Publish(view.OrderStartRequested{})

	assert.False(t, f.formView.valid)

	f.bus.Publish(view.OrderFieldChanged{Field: "payment", Value: "online"})
	assert.False(t, f.formView.valid, "address still missing")

	f.bus.Publish(view.OrderFieldChanged{Field: "address", Value: "123 Main Street"})
	assert.True(t, f.formView.valid, "fixing the last invalid field flips validity")
}

func TestPresenter_Close(t *testing.T) {
	f := newFixture(t)
	f.loadCatalog(t)

	f.presenter.Close()
	f.bus.Publish(view.AddRequested{ProductID: "p1"})

	assert.Zero(t, f.basket.Count(), "a closed presenter no longer reacts to intents")
}
