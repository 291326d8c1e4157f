package view

import "storefront-core/internal/events"

// Intent events emitted by views in response to user actions. The presenter
// is their only consumer.

type PreviewRequested struct {
	ProductID string
}

func (PreviewRequested) Name() string { return events.ProductPreviewRequested }

type AddRequested struct {
	ProductID string
}

func (AddRequested) Name() string { return events.ProductAddRequested }

type RemoveRequested struct {
	ProductID string
}

func (RemoveRequested) Name() string { return events.ProductRemoveRequested }

type BasketOpenRequested struct{}

func (BasketOpenRequested) Name() string { return events.BasketOpenRequested }

type OrderStartRequested struct{}

func (OrderStartRequested) Name() string { return events.OrderStartRequested }

// OrderFieldChanged carries a single edited form field. Field is one of
// payment, address, email, phone.
type OrderFieldChanged struct {
	Field string
	Value string
}

func (OrderFieldChanged) Name() string { return events.OrderFieldChanged }

// OrderSubmitRequested fires for the form's action button on either step;
// the presenter decides between advancing and submitting from the order
// model's current step.
type OrderSubmitRequested struct{}

func (OrderSubmitRequested) Name() string { return events.OrderSubmitRequested }

type ModalCloseRequested struct{}

func (ModalCloseRequested) Name() string { return events.ModalCloseRequested }
