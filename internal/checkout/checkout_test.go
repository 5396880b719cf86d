package checkout

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/MarcoBarzola22/carta-restaurante-app/internal/cart"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type fakeOrderRepo struct {
	CreateFunc       func(ctx context.Context, order *domain.Order) error
	GetByIDFunc      func(ctx context.Context, id primitive.ObjectID) (*domain.Order, error)
	ListRecentFunc   func(ctx context.Context, limit int64) ([]domain.Order, error)
	MarkNotifiedFunc func(ctx context.Context, id primitive.ObjectID) error
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	return f.CreateFunc(ctx, order)
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	return f.GetByIDFunc(ctx, id)
}

func (f *fakeOrderRepo) ListRecent(ctx context.Context, limit int64) ([]domain.Order, error) {
	return f.ListRecentFunc(ctx, limit)
}

func (f *fakeOrderRepo) MarkNotified(ctx context.Context, id primitive.ObjectID) error {
	return f.MarkNotifiedFunc(ctx, id)
}

type fakeLink struct {
	lastMessage string
}

func (f *fakeLink) Link(message string) string {
	f.lastMessage = message
	return "https://wa.me/5492657249135?text=" + message
}

func filledCart(t *testing.T) *cart.Cart {
	t.Helper()

	c := cart.New()
	c.Add(domain.Product{
		ID:    "1",
		Name:  "Burger",
		Price: decimal.RequireFromString("18.90"),
	}, 2)
	return c
}

func newOrchestrator(repo *fakeOrderRepo, link LinkBuilder) *Orchestrator {
	return NewOrchestrator(repo, link, nil, zap.NewNop().Sugar(), time.Second)
}

func TestSubmitHappyPath(t *testing.T) {
	var created *domain.Order
	createCalls := 0

	repo := &fakeOrderRepo{
		CreateFunc: func(ctx context.Context, order *domain.Order) error {
			createCalls++
			order.ID = primitive.NewObjectID()
			created = order
			return nil
		},
	}
	link := &fakeLink{}
	o := newOrchestrator(repo, link)

	c := filledCart(t)

	result, err := o.Submit(context.Background(), c, Request{
		Customer:    "Ana",
		Fulfillment: domain.FulfillmentDelivery,
		Address:     "Calle Falsa 123",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, createCalls)
	require.NotNil(t, created)
	assert.Equal(t, "Ana", created.Customer)
	assert.Equal(t, "Calle Falsa 123", created.Address)
	assert.Equal(t, "37.80", created.Total.StringFixed(2))
	assert.Contains(t, created.Details, "2x Burger")

	assert.Equal(t, created.ID.Hex(), result.OrderID)
	assert.Equal(t, "37.80", result.Total)
	assert.Contains(t, link.lastMessage, created.ID.Hex())
	assert.True(t, strings.HasPrefix(result.HandoffURL, "https://wa.me/"))

	// the handoff succeeded, so the cart is gone
	assert.True(t, c.Empty())
}

func TestSubmitEmptyCart(t *testing.T) {
	repo := &fakeOrderRepo{
		CreateFunc: func(ctx context.Context, order *domain.Order) error {
			t.Fatal("Create must not be called for an empty cart")
			return nil
		},
	}
	o := newOrchestrator(repo, &fakeLink{})

	_, err := o.Submit(context.Background(), cart.New(), Request{
		Customer:    "Ana",
		Fulfillment: domain.FulfillmentPickup,
	})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, CodeEmptyCart, ve.Code)
	assert.True(t, IsValidation(err))
}

func TestSubmitMissingCustomer(t *testing.T) {
	repo := &fakeOrderRepo{
		CreateFunc: func(ctx context.Context, order *domain.Order) error {
			t.Fatal("Create must not be called when validation fails")
			return nil
		},
	}
	o := newOrchestrator(repo, &fakeLink{})
	c := filledCart(t)

	_, err := o.Submit(context.Background(), c, Request{
		Customer:    "   ",
		Fulfillment: domain.FulfillmentPickup,
	})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, CodeMissingName, ve.Code)

	// validation failures leave the cart alone
	assert.Equal(t, 2, c.Count())
}

func TestSubmitDeliveryRequiresAddress(t *testing.T) {
	repo := &fakeOrderRepo{
		CreateFunc: func(ctx context.Context, order *domain.Order) error {
			t.Fatal("Create must not be called when validation fails")
			return nil
		},
	}
	o := newOrchestrator(repo, &fakeLink{})

	_, err := o.Submit(context.Background(), filledCart(t), Request{
		Customer:    "Ana",
		Fulfillment: domain.FulfillmentDelivery,
		Address:     "  ",
	})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, CodeMissingAddress, ve.Code)
}

func TestSubmitPickupWithoutAddress(t *testing.T) {
	var created *domain.Order
	repo := &fakeOrderRepo{
		CreateFunc: func(ctx context.Context, order *domain.Order) error {
			order.ID = primitive.NewObjectID()
			created = order
			return nil
		},
	}
	o := newOrchestrator(repo, &fakeLink{})

	_, err := o.Submit(context.Background(), filledCart(t), Request{
		Customer:    "Ana",
		Fulfillment: domain.FulfillmentPickup,
	})
	require.NoError(t, err)
	assert.Empty(t, created.Address)
}

func TestSubmitPickupDropsAddress(t *testing.T) {
	var created *domain.Order
	repo := &fakeOrderRepo{
		CreateFunc: func(ctx context.Context, order *domain.Order) error {
			order.ID = primitive.NewObjectID()
			created = order
			return nil
		},
	}
	o := newOrchestrator(repo, &fakeLink{})

	_, err := o.Submit(context.Background(), filledCart(t), Request{
		Customer:    "Ana",
		Fulfillment: domain.FulfillmentPickup,
		Address:     "Calle Falsa 123",
	})
	require.NoError(t, err)
	assert.Empty(t, created.Address)
}

func TestSubmitPersistenceFailureKeepsCart(t *testing.T) {
	repoErr := errors.New("connection reset")
	repo := &fakeOrderRepo{
		CreateFunc: func(ctx context.Context, order *domain.Order) error {
			return repoErr
		},
	}
	link := &fakeLink{}
	o := newOrchestrator(repo, link)
	c := filledCart(t)

	_, err := o.Submit(context.Background(), c, Request{
		Customer:    "Ana",
		Fulfillment: domain.FulfillmentDelivery,
		Address:     "Calle Falsa 123",
	})

	var pe *PersistenceError
	require.ErrorAs(t, err, &pe)
	assert.ErrorIs(t, err, repoErr)
	assert.False(t, IsValidation(err))

	// no link built, cart intact for retry
	assert.Empty(t, link.lastMessage)
	assert.Equal(t, 2, c.Count())
	assert.Equal(t, "37.80", c.Total().StringFixed(2))
}

func TestSubmitPassesIdempotencyKey(t *testing.T) {
	var created *domain.Order
	repo := &fakeOrderRepo{
		CreateFunc: func(ctx context.Context, order *domain.Order) error {
			order.ID = primitive.NewObjectID()
			created = order
			return nil
		},
	}
	o := newOrchestrator(repo, &fakeLink{})

	_, err := o.Submit(context.Background(), filledCart(t), Request{
		Customer:       "Ana",
		Fulfillment:    domain.FulfillmentPickup,
		IdempotencyKey: "key-123",
	})
	require.NoError(t, err)
	assert.Equal(t, "key-123", created.IdempotencyKey)
}
