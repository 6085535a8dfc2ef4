package models

type CheckoutState string

const (
	CheckoutStateEntering  CheckoutState = "entering"
	CheckoutStateConfirmed CheckoutState = "confirmed"
)

// Address validation is presence-based only: no format checking on pincode
// or name, matching the behaviour of the storefront this engine backs.
type Address struct {
	Name    string `json:"name" validate:"required"`
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	Pincode string `json:"pincode" validate:"required"`
}

func (a Address) Complete() bool {
	return a.Name != "" && a.Street != "" && a.City != "" && a.Pincode != ""
}

// CheckoutSession is the address/payment selector state for the profile.
// While entering, the address fields are editable; confirming freezes them
// and unlocks payment-method selection. Editing returns to entering without
// discarding field values.
type CheckoutSession struct {
	State         CheckoutState `json:"state"`
	Address       Address       `json:"address"`
	PaymentMethod PaymentMethod `json:"payment_method"`
}

// Partial addresses are allowed while entering, so no required tags here.
type UpdateAddressRequest struct {
	Name    string `json:"name"`
	Street  string `json:"street"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
}

type SelectPaymentMethodRequest struct {
	Method PaymentMethod `json:"method" validate:"required,oneof=cash_on_delivery online"`
}

type AutofillAddressRequest struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}
