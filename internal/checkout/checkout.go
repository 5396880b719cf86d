// Package checkout turns a cart into a persisted order and a messaging
// handoff. The two phases are deliberately not atomic: the order is durably
// recorded first, so a customer who abandons the WhatsApp step still has a
// correlated order on file.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MarcoBarzola22/carta-restaurante-app/internal/cart"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/domain"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/queue"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/repo"
	"go.uber.org/zap"
)

const (
	CodeMissingName    = "missing_name"
	CodeMissingAddress = "missing_address"
	CodeEmptyCart      = "empty_cart"
)

// ValidationError is raised before any network attempt; the user fixes the
// form and retries.
type ValidationError struct {
	Code string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout validation failed: %s", e.Code)
}

// PersistenceError means phase 1 failed. The cart is left untouched so the
// user can retry without re-entering items.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist order: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

var ErrEmptyCart = &ValidationError{Code: CodeEmptyCart}

type LinkBuilder interface {
	Link(message string) string
}

type Request struct {
	Customer       string
	Fulfillment    domain.Fulfillment
	Address        string
	IdempotencyKey string
}

type Result struct {
	OrderID    string
	HandoffURL string
	Total      string
}

type Orchestrator struct {
	orders  repo.OrderRepository
	link    LinkBuilder
	broker  queue.Broker
	logger  *zap.SugaredLogger
	timeout time.Duration
}

func NewOrchestrator(
	orders repo.OrderRepository,
	link LinkBuilder,
	broker queue.Broker,
	logger *zap.SugaredLogger,
	timeout time.Duration,
) *Orchestrator {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Orchestrator{
		orders:  orders,
		link:    link,
		broker:  broker,
		logger:  logger,
		timeout: timeout,
	}
}

// Submit validates the request, persists the order and prepares the handoff.
// The cart is cleared only after phase 1 succeeds; any earlier failure leaves
// it exactly as it was.
func (o *Orchestrator) Submit(ctx context.Context, c *cart.Cart, req Request) (*Result, error) {
	if c.Empty() {
		return nil, ErrEmptyCart
	}

	customer := strings.TrimSpace(req.Customer)
	if customer == "" {
		return nil, &ValidationError{Code: CodeMissingName}
	}

	address := strings.TrimSpace(req.Address)
	if req.Fulfillment == domain.FulfillmentDelivery && address == "" {
		return nil, &ValidationError{Code: CodeMissingAddress}
	}
	if req.Fulfillment != domain.FulfillmentDelivery {
		address = ""
	}

	items := c.Items()
	total := c.Total()

	order := &domain.Order{
		Customer:       customer,
		Address:        address,
		Fulfillment:    req.Fulfillment,
		Total:          total,
		Details:        FormatDetails(items),
		IdempotencyKey: req.IdempotencyKey,
	}

	// phase 1: persist. Bounded so a hung backend cannot leave the
	// storefront spinning forever.
	persistCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	if err := o.orders.Create(persistCtx, order); err != nil {
		return nil, &PersistenceError{Err: err}
	}

	// phase 2: handoff, fire-and-forget
	message := FormatMessage(items, total, customer, req.Fulfillment, address, order.ID.Hex())
	handoffURL := o.link.Link(message)

	o.publishCreated(ctx, order)

	c.Clear()

	o.logger.Infow("order submitted",
		"order_id", order.ID.Hex(),
		"customer", customer,
		"fulfillment", req.Fulfillment,
		"total", total.StringFixed(2),
	)

	return &Result{
		OrderID:    order.ID.Hex(),
		HandoffURL: handoffURL,
		Total:      total.StringFixed(2),
	}, nil
}

// publishCreated notifies the kitchen-side worker. A broker failure is only
// logged: the order is already durable and the customer handoff must not be
// blocked on it.
func (o *Orchestrator) publishCreated(ctx context.Context, order *domain.Order) {
	if o.broker == nil {
		return
	}

	event := domain.OrderCreatedEvent{
		OrderID:     order.ID.Hex(),
		Customer:    order.Customer,
		Fulfillment: string(order.Fulfillment),
		Total:       order.Total.StringFixed(2),
		Timestamp:   time.Now(),
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		o.logger.Errorw("failed to marshal order event", "order_id", event.OrderID, "error", err)
		return
	}

	if err := o.broker.Publish(ctx, queue.QueueOrderEvents, eventBytes); err != nil {
		o.logger.Errorw("failed to publish order event", "order_id", event.OrderID, "error", err)
	}
}

// IsValidation reports whether err is a pre-flight validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
