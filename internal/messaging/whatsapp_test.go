package messaging

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkEncodesMessage(t *testing.T) {
	w := NewWhatsApp("5492657249135")

	link := w.Link("Hola! Quiero hacer un pedido:\n*Total Comida:* $37.80")

	require.True(t, strings.HasPrefix(link, "https://wa.me/5492657249135?text="))

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "Hola! Quiero hacer un pedido:\n*Total Comida:* $37.80", parsed.Query().Get("text"))
}
