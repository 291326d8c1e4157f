// Package view declares the contracts the presenter renders through. Concrete
// views present model state and forward user intent as bus events; they never
// mutate models directly.
package view

import (
	"storefront-core/internal/basket"
	"storefront-core/internal/catalog"
	"storefront-core/internal/order"
)

// Component is the base contract every view satisfies. Render produces the
// view's current displayable representation; Destroy releases any listeners
// the view registered.
type Component interface {
	Render() string
	Destroy()
}

// CatalogView is the storefront page: the product grid plus the basket
// counter in the header.
type CatalogView interface {
	Component
	RenderProducts(entries []*catalog.Entry)
	UpdateBasketCount(count int)
	ShowLoading()
	ShowError(message string)
}

// ProductView is the single-product preview shown in the modal.
type ProductView interface {
	Component
	SetProduct(entry *catalog.Entry)
}

// BasketView lists the basket contents in the modal.
type BasketView interface {
	Component
	UpdateBasket(snapshot basket.Snapshot)
}

// OrderFormView is the two-step checkout form.
type OrderFormView interface {
	Component
	SetStep(step order.Step)
	SetValid(valid bool)
	SetErrors(errs []order.FieldError)
}

// SuccessView confirms a completed order.
type SuccessView interface {
	Component
	SetTotal(total float64)
}

// ModalHost owns the single modal surface. Body-scroll locking and animation
// are its concern, not the presenter's.
type ModalHost interface {
	Open()
	Close()
	SetContent(content string)
}
