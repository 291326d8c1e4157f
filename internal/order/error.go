package order

import "errors"

var (
	ErrUnknownPayment = errors.New("unknown payment method")
)

// Inline form messages.
const (
	msgPaymentRequired = "choose a payment method"
	msgAddressRequired = "enter a delivery address"
	msgAddressTooShort = "address must be at least 10 characters"
	msgEmailRequired   = "enter an email"
	msgEmailInvalid    = "enter a valid email"
	msgPhoneRequired   = "enter a phone number"
	msgPhoneInvalid    = "enter a valid phone number"
)
