package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MarcoBarzola22/carta-restaurante-app/internal/cart"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/catalog"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/checkout"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/domain"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/messaging"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type stubProductRepo struct {
	products []domain.Product
}

func (s *stubProductRepo) Create(ctx context.Context, product *domain.Product) error { return nil }
func (s *stubProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return nil, nil
}
func (s *stubProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	return s.products, nil
}
func (s *stubProductRepo) ListByCategory(ctx context.Context, categoryID string) ([]domain.Product, error) {
	return nil, nil
}
func (s *stubProductRepo) Update(ctx context.Context, product *domain.Product) error { return nil }
func (s *stubProductRepo) UpdateStatus(ctx context.Context, id string, status domain.ProductStatus) error {
	return nil
}
func (s *stubProductRepo) ReplaceAll(ctx context.Context, products []domain.Product) error {
	return nil
}
func (s *stubProductRepo) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	return 0, nil
}
func (s *stubProductRepo) NamesByCategory(ctx context.Context, categoryID string) ([]string, error) {
	return nil, nil
}
func (s *stubProductRepo) Delete(ctx context.Context, id string) error { return nil }

type stubCategoryRepo struct {
	categories []domain.Category
}

func (s *stubCategoryRepo) Create(ctx context.Context, category *domain.Category) error { return nil }
func (s *stubCategoryRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	return nil, nil
}
func (s *stubCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	return s.categories, nil
}
func (s *stubCategoryRepo) Update(ctx context.Context, category *domain.Category) error { return nil }
func (s *stubCategoryRepo) ReplaceAll(ctx context.Context, categories []domain.Category) error {
	return nil
}
func (s *stubCategoryRepo) Delete(ctx context.Context, id string) error { return nil }

type stubOrderRepo struct {
	createErr error
	orders    []*domain.Order
}

func (s *stubOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	if s.createErr != nil {
		return s.createErr
	}
	order.ID = primitive.NewObjectID()
	s.orders = append(s.orders, order)
	return nil
}

func (s *stubOrderRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) ListRecent(ctx context.Context, limit int64) ([]domain.Order, error) {
	return nil, nil
}

func (s *stubOrderRepo) MarkNotified(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func newTestApp(t *testing.T, orders *stubOrderRepo) *application {
	t.Helper()

	logger := zap.NewNop().Sugar()

	store := catalog.NewStore()
	productRepo := &stubProductRepo{products: []domain.Product{
		{ID: "1", Name: "Burger", Price: decimal.RequireFromString("18.90"), Category: "principales", Status: domain.StatusAvailable},
		{ID: "2", Name: "Milanesa", Price: decimal.RequireFromString("15.00"), Category: "principales", Status: domain.StatusSoldOut},
	}}
	categoryRepo := &stubCategoryRepo{categories: []domain.Category{
		{ID: "principales", Name: "Platos Principales"},
	}}

	catalogService := service.NewCatalogService(store, productRepo, categoryRepo, logger)
	require.NoError(t, catalogService.Refresh(context.Background()))

	carts := cart.NewManager(time.Hour)
	t.Cleanup(carts.Stop)

	app := &application{
		config:         config{cartTTL: time.Hour},
		logger:         logger,
		carts:          carts,
		catalogService: catalogService,
		checkout: checkout.NewOrchestrator(
			orders,
			messaging.NewWhatsApp("5492657249135"),
			nil,
			logger,
			time.Second,
		),
	}
	return app
}

func doJSON(t *testing.T, handler http.HandlerFunc, method, target string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestAddCartItemSetsSessionCookie(t *testing.T) {
	app := newTestApp(t, &stubOrderRepo{})

	rr := doJSON(t, app.addCartItemHandler, http.MethodPost, "/api/v1/cart/items",
		AddCartItemRequest{ProductID: "1", Quantity: 2}, nil)

	require.Equal(t, http.StatusOK, rr.Code)

	var sessionCookie *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == cartSessionCookie {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	assert.NotEmpty(t, sessionCookie.Value)

	var resp struct {
		Data CartResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.Count)
	assert.Equal(t, "37.80", resp.Data.Total)
}

func TestAddCartItemMergesAcrossRequests(t *testing.T) {
	app := newTestApp(t, &stubOrderRepo{})
	session := &http.Cookie{Name: cartSessionCookie, Value: "session-1"}

	for i := 0; i < 3; i++ {
		rr := doJSON(t, app.addCartItemHandler, http.MethodPost, "/api/v1/cart/items",
			AddCartItemRequest{ProductID: "1", Quantity: 1}, []*http.Cookie{session})
		require.Equal(t, http.StatusOK, rr.Code)
	}

	items := app.carts.Cart("session-1").Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	app := newTestApp(t, &stubOrderRepo{})

	rr := doJSON(t, app.addCartItemHandler, http.MethodPost, "/api/v1/cart/items",
		AddCartItemRequest{ProductID: "missing", Quantity: 1}, nil)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestAddCartItemRejectsSoldOut(t *testing.T) {
	app := newTestApp(t, &stubOrderRepo{})

	rr := doJSON(t, app.addCartItemHandler, http.MethodPost, "/api/v1/cart/items",
		AddCartItemRequest{ProductID: "2", Quantity: 1}, nil)

	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestCheckoutHappyPath(t *testing.T) {
	orders := &stubOrderRepo{}
	app := newTestApp(t, orders)
	session := &http.Cookie{Name: cartSessionCookie, Value: "session-1"}

	product, ok := app.catalogService.Store().Product("1")
	require.True(t, ok)
	app.carts.Cart("session-1").Add(product, 2)

	rr := doJSON(t, app.checkoutHandler, http.MethodPost, "/api/v1/checkout",
		CheckoutRequest{Customer: "Ana", Fulfillment: "DELIVERY", Address: "Calle Falsa 123"},
		[]*http.Cookie{session})

	require.Equal(t, http.StatusCreated, rr.Code)

	var resp struct {
		Data CheckoutResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	require.Len(t, orders.orders, 1)
	assert.Equal(t, orders.orders[0].ID.Hex(), resp.Data.OrderID)
	assert.Equal(t, "37.80", resp.Data.Total)
	assert.Contains(t, resp.Data.WhatsAppURL, "https://wa.me/5492657249135")
	assert.NotEmpty(t, orders.orders[0].IdempotencyKey)

	assert.True(t, app.carts.Cart("session-1").Empty())
}

func TestCheckoutEmptyCart(t *testing.T) {
	orders := &stubOrderRepo{}
	app := newTestApp(t, orders)

	rr := doJSON(t, app.checkoutHandler, http.MethodPost, "/api/v1/checkout",
		CheckoutRequest{Customer: "Ana", Fulfillment: "PICKUP"}, nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), checkout.CodeEmptyCart)
	assert.Empty(t, orders.orders)
}

func TestCheckoutDeliveryWithoutAddress(t *testing.T) {
	app := newTestApp(t, &stubOrderRepo{})
	session := &http.Cookie{Name: cartSessionCookie, Value: "session-1"}

	product, _ := app.catalogService.Store().Product("1")
	app.carts.Cart("session-1").Add(product, 1)

	rr := doJSON(t, app.checkoutHandler, http.MethodPost, "/api/v1/checkout",
		CheckoutRequest{Customer: "Ana", Fulfillment: "DELIVERY", Address: "  "},
		[]*http.Cookie{session})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), checkout.CodeMissingAddress)

	// cart untouched
	assert.Equal(t, 1, app.carts.Cart("session-1").Count())
}

func TestCheckoutPersistenceFailure(t *testing.T) {
	orders := &stubOrderRepo{createErr: context.DeadlineExceeded}
	app := newTestApp(t, orders)
	session := &http.Cookie{Name: cartSessionCookie, Value: "session-1"}

	product, _ := app.catalogService.Store().Product("1")
	app.carts.Cart("session-1").Add(product, 1)

	rr := doJSON(t, app.checkoutHandler, http.MethodPost, "/api/v1/checkout",
		CheckoutRequest{Customer: "Ana", Fulfillment: "PICKUP"},
		[]*http.Cookie{session})

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, 1, app.carts.Cart("session-1").Count())
}

func TestClearCart(t *testing.T) {
	app := newTestApp(t, &stubOrderRepo{})
	session := &http.Cookie{Name: cartSessionCookie, Value: "session-1"}

	product, _ := app.catalogService.Store().Product("1")
	app.carts.Cart("session-1").Add(product, 3)

	rr := doJSON(t, app.clearCartHandler, http.MethodDelete, "/api/v1/cart", nil, []*http.Cookie{session})

	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, app.carts.Cart("session-1").Empty())
}
