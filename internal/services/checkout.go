package service

import (
	"context"

	"github.com/kharidoapp/checkout-engine/internal/errors"
	"github.com/kharidoapp/checkout-engine/internal/geocode"
	"github.com/kharidoapp/checkout-engine/internal/models"
	"github.com/kharidoapp/checkout-engine/internal/store"
	"github.com/microcosm-cc/bluemonday"
)

// Geocoder is the external reverse-lookup collaborator. Its result is
// treated as ordinary user-entered address data.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lon float64) (*geocode.Result, error)
}

// CheckoutService runs the address and payment selector state machine.
// While entering, address fields are editable; confirming freezes them and
// unlocks the payment-method choice. Editing unfreezes without discarding
// field values. Progression to the committer is only possible while
// confirmed.
type CheckoutService struct {
	store    store.Store
	geocoder Geocoder
	policy   *bluemonday.Policy
}

func NewCheckoutService(st store.Store, geocoder Geocoder) *CheckoutService {
	return &CheckoutService{store: st, geocoder: geocoder, policy: bluemonday.StrictPolicy()}
}

// Session reads the selector state, defaulting to a fresh entering session
// with cash on delivery preselected.
func (s *CheckoutService) Session(ctx context.Context) (*models.CheckoutSession, error) {

	session := &models.CheckoutSession{}

	found, err := s.store.Read(ctx, store.SlotCheckout, session)
	if err != nil {
		return nil, errors.StorageError("Failed to read checkout session").WithError(err)
	}

	if !found {
		session = freshSession()
	}

	if session.State == "" {
		session.State = models.CheckoutStateEntering
	}

	if session.PaymentMethod == "" {
		session.PaymentMethod = models.PaymentMethodCOD
	}

	return session, nil
}

// UpdateAddress replaces the address fields. Only allowed while entering;
// confirmed fields are frozen until an explicit edit.
func (s *CheckoutService) UpdateAddress(ctx context.Context, req *models.UpdateAddressRequest) (*models.CheckoutSession, error) {

	session, err := s.Session(ctx)
	if err != nil {
		return nil, err
	}

	if session.State == models.CheckoutStateConfirmed {
		return nil, errors.ConflictError("Address is confirmed; edit it before changing fields")
	}

	session.Address = models.Address{
		Name:    s.policy.Sanitize(req.Name),
		Street:  s.policy.Sanitize(req.Street),
		City:    s.policy.Sanitize(req.City),
		Pincode: s.policy.Sanitize(req.Pincode),
	}

	return session, s.writeSession(ctx, session)
}

// ConfirmAddress freezes the address. The only gate is presence: all four
// fields non-empty, no format checks.
func (s *CheckoutService) ConfirmAddress(ctx context.Context) (*models.CheckoutSession, error) {

	session, err := s.Session(ctx)
	if err != nil {
		return nil, err
	}

	if !session.Address.Complete() {
		return nil, errors.ValidationError("All address fields are required before confirming")
	}

	session.State = models.CheckoutStateConfirmed

	return session, s.writeSession(ctx, session)
}

// EditAddress unfreezes a confirmed address. Field values are kept; only
// the confirmed flag is discarded.
func (s *CheckoutService) EditAddress(ctx context.Context) (*models.CheckoutSession, error) {

	session, err := s.Session(ctx)
	if err != nil {
		return nil, err
	}

	session.State = models.CheckoutStateEntering

	return session, s.writeSession(ctx, session)
}

// SelectPaymentMethod records the payment choice. Only available once the
// address is confirmed.
func (s *CheckoutService) SelectPaymentMethod(ctx context.Context, method models.PaymentMethod) (*models.CheckoutSession, error) {

	session, err := s.Session(ctx)
	if err != nil {
		return nil, err
	}

	if session.State != models.CheckoutStateConfirmed {
		return nil, errors.ConflictError("Confirm the address before choosing a payment method")
	}

	session.PaymentMethod = method

	return session, s.writeSession(ctx, session)
}

// AutofillAddress fills street, city and pincode from device coordinates.
// It never confirms, and a lookup failure leaves the session exactly as it
// was. The name field is untouched; the lookup cannot know it.
func (s *CheckoutService) AutofillAddress(ctx context.Context, req *models.AutofillAddressRequest) (*models.CheckoutSession, error) {

	session, err := s.Session(ctx)
	if err != nil {
		return nil, err
	}

	if session.State == models.CheckoutStateConfirmed {
		return nil, errors.ConflictError("Address is confirmed; edit it before autofilling")
	}

	result, err := s.geocoder.Reverse(ctx, req.Latitude, req.Longitude)
	if err != nil {
		return nil, errors.ThirdPartyError("Failed to fetch address from location").WithError(err)
	}

	session.Address.Street = s.policy.Sanitize(result.Street)
	session.Address.City = s.policy.Sanitize(result.City)
	session.Address.Pincode = s.policy.Sanitize(result.Pincode)

	return session, s.writeSession(ctx, session)
}

// Proceed hands the confirmed (address, payment method) pair to the order
// committer. It is the only exit from the selector.
func (s *CheckoutService) Proceed(ctx context.Context) (*models.CheckoutSession, error) {

	session, err := s.Session(ctx)
	if err != nil {
		return nil, err
	}

	if session.State != models.CheckoutStateConfirmed {
		return nil, errors.ConflictError("Address must be confirmed before proceeding")
	}

	return session, nil
}

// Reset returns the selector to entering after a committed order, keeping
// the address values for the next purchase.
func (s *CheckoutService) Reset(ctx context.Context) error {

	session, err := s.Session(ctx)
	if err != nil {
		return err
	}

	session.State = models.CheckoutStateEntering
	session.PaymentMethod = models.PaymentMethodCOD

	return s.writeSession(ctx, session)
}

func (s *CheckoutService) writeSession(ctx context.Context, session *models.CheckoutSession) error {

	if err := s.store.Write(ctx, store.SlotCheckout, session); err != nil {
		return errors.StorageError("Failed to save checkout session").WithError(err)
	}

	return nil
}

func freshSession() *models.CheckoutSession {
	return &models.CheckoutSession{
		State:         models.CheckoutStateEntering,
		PaymentMethod: models.PaymentMethodCOD,
	}
}
