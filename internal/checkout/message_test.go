package checkout

import (
	"testing"

	"github.com/MarcoBarzola22/carta-restaurante-app/internal/cart"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatDetails(t *testing.T) {
	items := []cart.Item{
		{Name: "Burger", Price: decimal.RequireFromString("18.90"), Quantity: 2},
		{Name: "Flan", Price: decimal.RequireFromString("7.00"), Quantity: 1},
	}

	details := FormatDetails(items)

	assert.Equal(t, "2x Burger ($37.80)\n1x Flan ($7.00)", details)
}

func TestFormatMessageDelivery(t *testing.T) {
	items := []cart.Item{
		{Name: "Burger", Price: decimal.RequireFromString("18.90"), Quantity: 2},
	}

	msg := FormatMessage(items, decimal.RequireFromString("37.80"), "Ana", domain.FulfillmentDelivery, "Calle Falsa 123", "abc123")

	assert.Contains(t, msg, "Hola! Quiero hacer un pedido:")
	assert.Contains(t, msg, "2x Burger ($37.80)")
	assert.Contains(t, msg, "*Total Comida:* $37.80")
	assert.Contains(t, msg, "*Cliente:* Ana")
	assert.Contains(t, msg, "*Modo:* DELIVERY (Calle Falsa 123)")
	assert.Contains(t, msg, "*Envío:* A coordinar")
	assert.Contains(t, msg, "🆔 *ID de Seguridad:* #abc123")
	assert.Contains(t, msg, "_(No borrar este ID)_")
}

func TestFormatMessagePickupOmitsDeliveryLines(t *testing.T) {
	items := []cart.Item{
		{Name: "Flan", Price: decimal.RequireFromString("7.00"), Quantity: 1},
	}

	msg := FormatMessage(items, decimal.RequireFromString("7.00"), "Ana", domain.FulfillmentPickup, "", "abc123")

	assert.Contains(t, msg, "*Modo:* PICKUP")
	assert.NotContains(t, msg, "*Envío:*")
	assert.NotContains(t, msg, "DELIVERY")
}
