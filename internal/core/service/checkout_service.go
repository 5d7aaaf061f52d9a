package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jeanmendescs/marketplace/internal/core/checkout"
	"github.com/jeanmendescs/marketplace/internal/port"
)

// Navigation targets used by the checkout flow.
const (
	CartPath         = "/cart"
	CheckoutPath     = "/checkout"
	ConfirmationPath = "/checkout/success"
)

const msgOrderPlaced = "Order placed successfully!"

// ErrValidation is returned by Submit when one or more fields fail; the
// per-field messages travel alongside it.
var ErrValidation = errors.New("checkout form failed validation")

// Confirmation is the outcome of a successful submit. It is conceptual
// only: no order record is retained anywhere.
type Confirmation struct {
	OrderID  string          `json:"orderId"`
	Total    decimal.Decimal `json:"total"`
	PlacedAt time.Time       `json:"placedAt"`
}

// CheckoutService orchestrates form validation and order placement.
type CheckoutService struct {
	cart      *CartService
	validator *checkout.Validator
	navigator port.Navigator
	notifier  port.Notifier
	logger    *zap.Logger

	mu         sync.Mutex
	submitting bool
}

func NewCheckoutService(cart *CartService, validator *checkout.Validator, navigator port.Navigator, notifier port.Notifier, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		cart:      cart,
		validator: validator,
		navigator: navigator,
		notifier:  notifier,
		logger:    logger,
	}
}

// ValidateField checks a single field, as on blur.
func (s *CheckoutService) ValidateField(field checkout.Field, value string) string {
	return s.validator.ValidateField(field, value)
}

// Submit attempts to place the order. If any field fails validation the
// field error map is returned with ErrValidation and no state changes.
//
// On success the submitting flag is raised and navigation to the
// confirmation path is initiated before the cart is cleared; otherwise the
// emptied cart would re-trigger the checkout page's redirect back to the
// cart page instead of showing confirmation.
func (s *CheckoutService) Submit(ctx context.Context, form checkout.FormData) (*Confirmation, map[checkout.Field]string, error) {
	if fieldErrs := s.validator.Validate(form); len(fieldErrs) > 0 {
		return nil, fieldErrs, ErrValidation
	}

	total := s.cart.Subtotal()

	s.setSubmitting(true)
	defer s.setSubmitting(false)

	s.notifier.Notify(msgOrderPlaced)
	s.navigator.NavigateTo(ConfirmationPath)
	s.cart.ClearCart(ctx)

	conf := &Confirmation{
		OrderID:  uuid.New().String(),
		Total:    total,
		PlacedAt: time.Now(),
	}
	s.logger.Info("order placed", zap.String("order_id", conf.OrderID), zap.String("total", conf.Total.StringFixed(2)))
	return conf, nil, nil
}

// GuardCheckoutPage redirects to the cart page when the cart is empty while
// the checkout page is shown, unless a submit is in flight.
func (s *CheckoutService) GuardCheckoutPage(currentPath string) {
	if currentPath != CheckoutPath {
		return
	}
	if s.isSubmitting() {
		return
	}
	if s.cart.TotalQuantity() == 0 {
		s.navigator.NavigateTo(CartPath)
	}
}

func (s *CheckoutService) setSubmitting(v bool) {
	s.mu.Lock()
	s.submitting = v
	s.mu.Unlock()
}

func (s *CheckoutService) isSubmitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}
