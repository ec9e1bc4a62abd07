// Package order builds the WhatsApp hand-off used to place an order for a
// product. No order is recorded; the link opens a chat prefilled with the
// product details.
package order

import (
	"fmt"
	"strings"

	"github.com/siyara/storefront/internal/domain"
)

const (
	DefaultBaseURL  = "https://wa.me"
	DefaultCurrency = "₹"
)

// LinkBuilder renders order messages and deep links for one contact.
type LinkBuilder struct {
	baseURL  string
	contact  string
	currency string
}

// Option configures a LinkBuilder.
type Option func(*LinkBuilder)

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(b *LinkBuilder) {
		b.baseURL = strings.TrimRight(u, "/")
	}
}

// WithCurrency overrides DefaultCurrency.
func WithCurrency(symbol string) Option {
	return func(b *LinkBuilder) {
		b.currency = symbol
	}
}

// NewLinkBuilder creates a builder that sends orders to contact.
func NewLinkBuilder(contact string, opts ...Option) *LinkBuilder {
	b := &LinkBuilder{
		baseURL:  DefaultBaseURL,
		contact:  contact,
		currency: DefaultCurrency,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Contact returns the number orders are sent to.
func (b *LinkBuilder) Contact() string {
	return b.contact
}

// Message is the prefilled chat text for p.
func (b *LinkBuilder) Message(p domain.Product) string {
	return fmt.Sprintf("Hi! I'm interested in ordering:\n\nProduct ID: %s\nProduct Name: %s\nPrice: %s%d",
		p.ID, p.Name, b.currency, p.Price)
}

// Link is the deep link that opens a chat with the order message.
func (b *LinkBuilder) Link(p domain.Product) string {
	return b.baseURL + "/" + b.contact + "?text=" + EncodeURIComponent(b.Message(p))
}
