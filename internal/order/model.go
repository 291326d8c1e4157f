package order

import (
	"strings"

	"storefront-core/internal/events"
	"storefront-core/internal/utils"
)

// PaymentMethod is the selected way to pay. The empty value means none has
// been chosen yet.
type PaymentMethod string

const (
	PaymentNone   PaymentMethod = ""
	PaymentOnline PaymentMethod = "online"
	PaymentCard   PaymentMethod = "card"
)

// ParsePayment converts a raw field value into a PaymentMethod.
func ParsePayment(value string) (PaymentMethod, error) {
	switch PaymentMethod(value) {
	case PaymentOnline, PaymentCard:
		return PaymentMethod(value), nil
	}
	return PaymentNone, ErrUnknownPayment
}

// Step names a page of the two-step checkout flow.
type Step string

const (
	// StepDelivery collects the payment method and delivery address.
	StepDelivery Step = "delivery"
	// StepContacts collects the email and phone.
	StepContacts Step = "contacts"
)

// FieldError describes a single invalid form field. Validation failures are
// data surfaced inline next to the form, never returned as Go errors.
type FieldError struct {
	Field   string
	Message string
}

// Validated is published on every field change so the form can enable or
// disable its submit control reactively.
type Validated struct {
	Step    Step
	IsValid bool
}

func (Validated) Name() string { return events.FormValidated }

// Data is a copy of the in-progress order fields.
type Data struct {
	Payment PaymentMethod
	Address string
	Email   string
	Phone   string
	IsValid bool
}

// Submission is the immutable payload sent to the remote service. It is
// built once at submission time and never mutated afterwards.
type Submission struct {
	Payment PaymentMethod `json:"payment"`
	Address string        `json:"address"`
	Email   string        `json:"email"`
	Phone   string        `json:"phone"`
	Total   float64       `json:"total"`
	Items   []string      `json:"items"`
}

// Model holds the in-progress checkout fields and the step state machine:
// StepDelivery -> StepContacts -> submitted, where a successful submission
// resets back to a fresh empty order.
type Model struct {
	bus     *events.Bus
	step    Step
	payment PaymentMethod
	address string
	email   string
	phone   string
}

func NewModel(bus *events.Bus) *Model {
	return &Model{bus: bus, step: StepDelivery}
}

func (m *Model) Step() Step { return m.step }

// SetPayment records the payment choice and revalidates the current step.
func (m *Model) SetPayment(payment PaymentMethod) {
	m.payment = payment
	m.validateCurrent()
}

// SetAddress records the delivery address and revalidates the current step.
func (m *Model) SetAddress(address string) {
	m.address = address
	m.validateCurrent()
}

// SetEmail records the email and revalidates the current step.
func (m *Model) SetEmail(email string) {
	m.email = email
	m.validateCurrent()
}

// SetPhone normalizes and records the phone, then revalidates the current
// step.
func (m *Model) SetPhone(phone string) {
	m.phone = utils.FormatPhone(phone)
	m.validateCurrent()
}

// Advance moves from StepDelivery to StepContacts when the delivery step is
// valid. An invalid call is a no-op that re-publishes the false validity and
// returns the field errors; it never panics. Calling Advance from
// StepContacts returns nil.
func (m *Model) Advance() []FieldError {
	if m.step != StepDelivery {
		return nil
	}
	if errs := m.ValidationErrors(StepDelivery); len(errs) > 0 {
		m.bus.Publish(Validated{Step: StepDelivery, IsValid: false})
		return errs
	}
	m.step = StepContacts
	m.validateCurrent()
	return nil
}

// Submit checks that the contacts step is complete. A nil return means the
// order may be sent; the caller resets the model once the remote call
// succeeds, so a transport failure leaves everything intact for a retry.
func (m *Model) Submit() []FieldError {
	if m.step != StepContacts {
		m.bus.Publish(Validated{Step: m.step, IsValid: false})
		return m.ValidationErrors(m.step)
	}
	if errs := m.ValidationErrors(StepContacts); len(errs) > 0 {
		m.bus.Publish(Validated{Step: StepContacts, IsValid: false})
		return errs
	}
	return nil
}

// Submission snapshots the order fields together with the basket total and
// item ids.
func (m *Model) Submission(total float64, items []string) Submission {
	return Submission{
		Payment: m.payment,
		Address: m.address,
		Email:   m.email,
		Phone:   m.phone,
		Total:   total,
		Items:   append([]string(nil), items...),
	}
}

// Reset returns the model to a fresh empty order at the delivery step.
func (m *Model) Reset() {
	m.step = StepDelivery
	m.payment = PaymentNone
	m.address = ""
	m.email = ""
	m.phone = ""
}

// Data copies the current field values. IsValid reflects the current step
// only.
func (m *Model) Data() Data {
	return Data{
		Payment: m.payment,
		Address: m.address,
		Email:   m.email,
		Phone:   m.phone,
		IsValid: m.StepValid(m.step),
	}
}

// StepValid reports whether every field of step passes validation.
func (m *Model) StepValid(step Step) bool {
	return len(m.ValidationErrors(step)) == 0
}

// Valid reports whether both steps pass validation.
func (m *Model) Valid() bool {
	return m.StepValid(StepDelivery) && m.StepValid(StepContacts)
}

// ValidationErrors returns the field errors for step, in field order.
func (m *Model) ValidationErrors(step Step) []FieldError {
	var errs []FieldError
	switch step {
	case StepDelivery:
		if m.payment == PaymentNone {
			errs = append(errs, FieldError{Field: "payment", Message: msgPaymentRequired})
		}
		if trimmed(m.address) == "" {
			errs = append(errs, FieldError{Field: "address", Message: msgAddressRequired})
		} else if !utils.ValidateAddress(m.address) {
			errs = append(errs, FieldError{Field: "address", Message: msgAddressTooShort})
		}
	case StepContacts:
		if trimmed(m.email) == "" {
			errs = append(errs, FieldError{Field: "email", Message: msgEmailRequired})
		} else if !utils.ValidateEmail(m.email) {
			errs = append(errs, FieldError{Field: "email", Message: msgEmailInvalid})
		}
		if trimmed(m.phone) == "" {
			errs = append(errs, FieldError{Field: "phone", Message: msgPhoneRequired})
		} else if !utils.ValidatePhone(m.phone) {
			errs = append(errs, FieldError{Field: "phone", Message: msgPhoneInvalid})
		}
	}
	return errs
}

func (m *Model) validateCurrent() {
	m.bus.Publish(Validated{Step: m.step, IsValid: m.StepValid(m.step)})
}

func trimmed(s string) string { return strings.TrimSpace(s) }
