package events

// Event names. Payload structs live with the package that owns the data and
// return one of these from their Name method, keeping the full set of
// name/shape pairs in one place.
const (
	// Model change events.
	CatalogLoaded  = "catalog:loaded"
	ProductAdded   = "product:added"
	ProductRemoved = "product:removed"
	BasketChanged  = "basket:changed"
	BasketCleared  = "basket:cleared"
	FormValidated  = "form:validated"
	OrderSubmitted = "order:submitted"

	// View intent events.
	ProductPreviewRequested = "product:preview-requested"
	ProductAddRequested     = "product:add-requested"
	ProductRemoveRequested  = "product:remove-requested"
	BasketOpenRequested     = "basket:open-requested"
	OrderStartRequested     = "order:start-requested"
	OrderFieldChanged       = "order:field-changed"
	OrderSubmitRequested    = "order:submit-requested"
	ModalCloseRequested     = "modal:close-requested"

	// Errors surfaced to the user.
	ErrorShow = "error:show"
)

// ErrorShown asks the active view to surface a user-facing message. It lives
// here rather than in a domain package because any component may raise it.
type ErrorShown struct {
	Message string
}

func (ErrorShown) Name() string { return ErrorShow }
