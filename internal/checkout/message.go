package checkout

import (
	"fmt"
	"strings"

	"github.com/MarcoBarzola22/carta-restaurante-app/internal/cart"
	"github.com/MarcoBarzola22/carta-restaurante-app/internal/domain"
	"github.com/shopspring/decimal"
)

// FormatDetails renders one line per cart item: quantity, name, subtotal.
func FormatDetails(items []cart.Item) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%dx %s ($%s)", item.Quantity, item.Name, item.Subtotal().StringFixed(2)))
	}
	return strings.Join(lines, "\n")
}

// FormatMessage builds the WhatsApp order text. The order id is included as
// a correlation token the customer is told not to delete.
func FormatMessage(items []cart.Item, total decimal.Decimal, customer string, fulfillment domain.Fulfillment, address, orderID string) string {
	var b strings.Builder

	b.WriteString("Hola! Quiero hacer un pedido:\n")
	b.WriteString(FormatDetails(items))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "*Total Comida:* $%s\n", total.StringFixed(2))
	fmt.Fprintf(&b, "*Cliente:* %s\n", customer)

	if fulfillment == domain.FulfillmentDelivery {
		fmt.Fprintf(&b, "*Modo:* %s (%s)\n", fulfillment, address)
		b.WriteString("*Envío:* A coordinar\n")
	} else {
		fmt.Fprintf(&b, "*Modo:* %s\n", fulfillment)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "🆔 *ID de Seguridad:* #%s\n", orderID)
	b.WriteString("_(No borrar este ID)_")

	return b.String()
}
