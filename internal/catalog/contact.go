package catalog

import (
	"fmt"
	"net/url"
	"strings"
)

const whatsAppBaseURL = "https://wa.me/"

// OrderMessage is the prefilled chat text for ordering a product.
func OrderMessage(p Product) string {
	return fmt.Sprintf("Halo! Saya tertarik dengan produk:\n\n*%s*\nHarga: %s\n\nApakah masih tersedia?", p.Name, FormatPrice(p.Price))
}

// OrderLink builds the WhatsApp deep link asking about p.
func OrderLink(phone string, p Product) string {
	return ContactLink(phone) + "?text=" + encodeComponent(OrderMessage(p))
}

// ContactLink builds the plain WhatsApp chat link for phone.
func ContactLink(phone string) string {
	return whatsAppBaseURL + strings.TrimPrefix(strings.TrimSpace(phone), "+")
}

// encodeComponent percent-encodes s with spaces as %20 rather than '+'.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
