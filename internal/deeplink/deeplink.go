// Package deeplink builds the wa.me links that connect buyers to the seller.
// The links are fire-and-forget: nothing in the app depends on their outcome.
package deeplink

import (
	"fmt"
	"net/url"

	"barganhamogi/internal/domain"
)

// DefaultPhone is the site's seller WhatsApp number.
const DefaultPhone = "5511999812223"

// AnonymousClient is used when no client name is known.
const AnonymousClient = "Um cliente"

// Builder templates contact messages for one seller number.
type Builder struct {
	Phone string
}

func New(phone string) *Builder {
	if phone == "" {
		phone = DefaultPhone
	}
	return &Builder{Phone: phone}
}

// Negotiate links from a product card.
func (b *Builder) Negotiate(p domain.Product) string {
	return b.link(fmt.Sprintf(
		"Olá! Vi o produto *%s* no site *Barganha Mogi* e gostaria de negociar. Como podemos combinar?",
		p.Title))
}

// Details links from the product detail view, quoting the price.
func (b *Builder) Details(p domain.Product) string {
	return b.link(fmt.Sprintf(
		"Olá! Tenho interesse no produto *%s* (R$ %.2f) que vi no *Barganha Mogi*. Poderia me dar mais informações?",
		p.Title, p.Price))
}

// Favorited notifies the seller right after a product is favorited.
func (b *Builder) Favorited(clientName string, p domain.Product) string {
	if clientName == "" {
		clientName = AnonymousClient
	}
	return b.link(fmt.Sprintf(
		"Olá! Eu (%s) acabei de favoritar o seu produto *%s* no site *Barganha Mogi*! ❤️ Ele ainda está disponível?",
		clientName, p.Title))
}

// FromFavorites links from the favorites page.
func (b *Builder) FromFavorites(p domain.Product) string {
	return b.link(fmt.Sprintf(
		"Olá! Vi o produto *%s* nos meus favoritos do site *Barganha Mogi* e gostaria de negociar.",
		p.Title))
}

func (b *Builder) link(message string) string {
	return "https://wa.me/" + b.Phone + "?text=" + url.QueryEscape(message)
}
