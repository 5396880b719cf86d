package cart

import (
	"testing"
	"time"

	"github.com/MarcoBarzola22/carta-restaurante-app/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id, name, price string) domain.Product {
	return domain.Product{
		ID:    id,
		Name:  name,
		Price: decimal.RequireFromString(price),
	}
}

func TestAddMergesByProductID(t *testing.T) {
	c := New()
	p := product("1", "Burger", "18.90")

	for i := 0; i < 5; i++ {
		c.Add(p, 1)
	}

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 5, c.Count())
}

func TestAddIgnoresNonPositiveQuantity(t *testing.T) {
	c := New()

	c.Add(product("1", "Burger", "18.90"), 0)
	c.Add(product("1", "Burger", "18.90"), -3)

	assert.True(t, c.Empty())
}

func TestAddSnapshotsPriceAtAddTime(t *testing.T) {
	c := New()
	p := product("1", "Burger", "18.90")

	c.Add(p, 1)
	p.Price = decimal.RequireFromString("25.00")

	items := c.Items()
	require.Len(t, items, 1)
	assert.True(t, items[0].Price.Equal(decimal.RequireFromString("18.90")))
}

func TestUpdateQuantityRemovesAtZero(t *testing.T) {
	c := New()
	c.Add(product("1", "Burger", "18.90"), 2)

	c.UpdateQuantity("1", -1)
	assert.Equal(t, 1, c.Count())

	c.UpdateQuantity("1", -1)
	assert.True(t, c.Empty())
	assert.Empty(t, c.Items())
}

func TestUpdateQuantityBelowZeroRemoves(t *testing.T) {
	c := New()
	c.Add(product("1", "Burger", "18.90"), 1)

	c.UpdateQuantity("1", -5)

	assert.True(t, c.Empty())
}

func TestUpdateQuantityUnknownProductIsNoop(t *testing.T) {
	c := New()
	c.Add(product("1", "Burger", "18.90"), 1)

	c.UpdateQuantity("missing", 3)

	assert.Equal(t, 1, c.Count())
}

func TestTotalIsRecomputedFromLines(t *testing.T) {
	c := New()
	c.Add(product("1", "Burger", "18.90"), 2)
	c.Add(product("2", "Pizza", "22.50"), 1)

	assert.Equal(t, "60.30", c.Total().StringFixed(2))

	c.UpdateQuantity("1", -1)
	assert.Equal(t, "41.40", c.Total().StringFixed(2))

	c.Remove("2")
	assert.Equal(t, "18.90", c.Total().StringFixed(2))
}

func TestItemsPreserveInsertionOrder(t *testing.T) {
	c := New()
	c.Add(product("1", "Burger", "18.90"), 1)
	c.Add(product("2", "Pizza", "22.50"), 1)
	c.Add(product("3", "Flan", "7.00"), 1)
	c.Add(product("1", "Burger", "18.90"), 1)

	items := c.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "1", items[0].ProductID)
	assert.Equal(t, "2", items[1].ProductID)
	assert.Equal(t, "3", items[2].ProductID)
}

func TestClearEmptiesEverything(t *testing.T) {
	c := New()
	c.Add(product("1", "Burger", "18.90"), 2)
	c.Add(product("2", "Pizza", "22.50"), 1)

	c.Clear()

	assert.True(t, c.Empty())
	assert.Equal(t, 0, c.Count())
	assert.True(t, c.Total().IsZero())

	// cart stays usable after a clear
	c.Add(product("3", "Flan", "7.00"), 1)
	assert.Equal(t, 1, c.Count())
}

func TestItemsReturnsCopies(t *testing.T) {
	c := New()
	c.Add(product("1", "Burger", "18.90"), 1)

	items := c.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, c.Count())
}

func TestManagerHandsOutPerSessionCarts(t *testing.T) {
	m := NewManager(time.Hour)
	defer m.Stop()

	a := m.Cart("session-a")
	b := m.Cart("session-b")

	a.Add(product("1", "Burger", "18.90"), 1)

	assert.True(t, b.Empty())
	assert.Same(t, a, m.Cart("session-a"))
}

func TestManagerDrop(t *testing.T) {
	m := NewManager(time.Hour)
	defer m.Stop()

	m.Cart("session-a").Add(product("1", "Burger", "18.90"), 1)
	m.Drop("session-a")

	assert.True(t, m.Cart("session-a").Empty())
}
